package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotSpecified is stored for medication fields the user or the document left blank.
const NotSpecified = "N/A"

// Medication is a single drug entry, extracted from a prescription or entered manually.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
}

// Food is a single food item the user wants checked against their medications.
type Food struct {
	Name string `json:"name"`
}

// InteractionStatement is one raw interaction returned by the model for a single pair.
// Severity is whatever string the model produced.
type InteractionStatement struct {
	Text     string `json:"text"`
	Severity string `json:"severity"`
}

// InteractionRecord is a classified interaction tagged with its originating pair.
type InteractionRecord struct {
	Medication string   `json:"medication"`
	Food       string   `json:"food"`
	Text       string   `json:"text"`
	Severity   Severity `json:"severity"`
}

// Finding is one structured observation from a lab report.
type Finding struct {
	Term        string        `json:"term"`
	Explanation string        `json:"explanation"`
	Status      FindingStatus `json:"status"`
}

// ReportSummary is the plain-language summary of a lab report.
type ReportSummary struct {
	SummaryText string    `json:"summary"`
	Findings    []Finding `json:"key_findings"`
}

// ReportAnalysis pairs a summary with its derived banner state.
type ReportAnalysis struct {
	Summary       *ReportSummary `json:"summary"`
	OverallStatus OverallStatus  `json:"overall_status"`
}

// Document is an uploaded file held in memory for the duration of one request.
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Session holds the medication, food and result state of one user's visit.
type Session struct {
	ID                    uuid.UUID           `json:"id"`
	Medications           []Medication        `json:"medications"`
	Foods                 []Food              `json:"foods"`
	Interactions          []InteractionRecord `json:"interactions"`
	InteractionsCheckedAt *time.Time          `json:"interactions_checked_at,omitempty"`
	Summary               *ReportSummary      `json:"summary,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
	ExpiresAt             time.Time           `json:"expires_at"`
}

// PairFailure describes a (medication, food) pair whose request failed.
type PairFailure struct {
	Index      int    `json:"index"`
	Medication string `json:"medication"`
	Food       string `json:"food"`
	Reason     string `json:"reason"`
}

// MatrixResult is the outcome of one interaction matrix run.
type MatrixResult struct {
	Records      []InteractionRecord `json:"records"`
	PairsChecked int                 `json:"pairs_checked"`
	Failures     []PairFailure       `json:"failed_pairs,omitempty"`
}

// NoInteractionsFound reports a run that completed with zero statements.
func (r *MatrixResult) NoInteractionsFound() bool {
	return len(r.Records) == 0
}

// SeverityCounts tallies interaction records per severity.
type SeverityCounts map[Severity]int

// CountBySeverity returns a count for every severity, including zeros.
func CountBySeverity(records []InteractionRecord) SeverityCounts {
	counts := make(SeverityCounts, len(Severities))
	for _, s := range Severities {
		counts[s] = 0
	}
	for i := range records {
		counts[records[i].Severity]++
	}
	return counts
}
