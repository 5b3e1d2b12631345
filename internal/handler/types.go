package handler

import (
	"medexplain/internal/domain"
)

// Types below describe request and response bodies for the API documentation
// and for binding.

// Response wraps a success response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

// DocumentRequest carries a document as a data URI when not sent as multipart.
type DocumentRequest struct {
	DataURI string `json:"data_uri" binding:"required" example:"data:application/pdf;base64,JVBERi0xLjQK"`
}

// AddMedicationRequest represents the manual medication entry body.
type AddMedicationRequest struct {
	Name      string `json:"name" binding:"required" example:"Metformin"`
	Dosage    string `json:"dosage" example:"500mg"`
	Frequency string `json:"frequency" example:"Twice daily"`
}

// AddFoodRequest represents the food entry body.
type AddFoodRequest struct {
	Name string `json:"name" binding:"required" example:"Grapefruit"`
}

// CheckInteractionsRequest represents the stateless interaction check body.
type CheckInteractionsRequest struct {
	Medications []string `json:"medications" example:"Warfarin,Lisinopril"`
	Foods       []string `json:"foods" example:"Kale,Bananas"`
}

// MedicationsResponse is the stateless extraction result.
type MedicationsResponse struct {
	Medications []domain.Medication `json:"medications"`
}

// ExtractIntoSessionResponse is the result of extracting into a session.
type ExtractIntoSessionResponse struct {
	Session   *domain.Session     `json:"session"`
	Extracted []domain.Medication `json:"extracted"`
	Added     int                 `json:"added"`
}

// AddFoodResponse reports whether the food was new.
type AddFoodResponse struct {
	Session *domain.Session `json:"session"`
	Added   bool            `json:"added"`
}

// InteractionsResponse is the classified interaction list of one run.
type InteractionsResponse struct {
	Records             []domain.InteractionRecord `json:"records"`
	PairsChecked        int                        `json:"pairs_checked"`
	SeverityCounts      domain.SeverityCounts      `json:"severity_counts"`
	NoInteractionsFound bool                       `json:"no_interactions_found"`
	FailedPairs         []domain.PairFailure       `json:"failed_pairs,omitempty"`
}

func newInteractionsResponse(r *domain.MatrixResult) *InteractionsResponse {
	return &InteractionsResponse{
		Records:             r.Records,
		PairsChecked:        r.PairsChecked,
		SeverityCounts:      domain.CountBySeverity(r.Records),
		NoInteractionsFound: r.NoInteractionsFound(),
		FailedPairs:         r.Failures,
	}
}
