package port

import (
	"context"

	"medexplain/internal/domain"
)

// DocumentUnderstanding is the set of logical requests sent to the document understanding service.
type DocumentUnderstanding interface {
	ExtractMedications(ctx context.Context, doc *domain.Document) ([]domain.Medication, error)
	SummarizeReport(ctx context.Context, doc *domain.Document) (*domain.ReportSummary, error)
	CheckInteraction(ctx context.Context, medications, foods []string) ([]domain.InteractionStatement, error)
}
