package parser

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"medexplain/internal/domain"
	"medexplain/internal/port"
)

// Understanding implements port.DocumentUnderstanding on top of an LLM provider.
// It owns the prompts and the decoding of each response shape.
type Understanding struct {
	parser port.DocumentParser
	logger *zap.Logger
}

// NewUnderstanding creates an Understanding adapter over p.
func NewUnderstanding(p port.DocumentParser, logger *zap.Logger) *Understanding {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Understanding{parser: p, logger: logger}
}

type medicationsPayload struct {
	Medications *[]struct {
		Name      string `json:"name"`
		Dosage    string `json:"dosage"`
		Frequency string `json:"frequency"`
	} `json:"medications"`
}

// ExtractMedications sends a prescription to the provider and returns the medications found.
// Entries without a name are dropped; blank dosage and frequency become domain.NotSpecified.
func (u *Understanding) ExtractMedications(ctx context.Context, doc *domain.Document) ([]domain.Medication, error) {
	out, err := u.parseDocument(ctx, doc, BuildMedicationExtractionPrompt(), TaskExtractMedications)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}

	var payload medicationsPayload
	if err := decodeStrict(out.StructuredData, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}
	if payload.Medications == nil {
		return nil, fmt.Errorf("%w: %w: missing medications", domain.ErrExtractionFailed, ErrInvalidOutput)
	}

	meds := make([]domain.Medication, 0, len(*payload.Medications))
	for _, m := range *payload.Medications {
		med, err := domain.NewMedication(m.Name, m.Dosage, m.Frequency)
		if err != nil {
			u.logger.Debug("skipping extracted medication without a name")
			continue
		}
		meds = append(meds, med)
	}

	u.logger.Info("medications extracted",
		zap.Int("count", len(meds)),
		zap.String("model", out.ModelUsed))
	return meds, nil
}

type findingPayload struct {
	Term        string `json:"term"`
	Explanation string `json:"explanation"`
	Status      string `json:"status"`
}

type summaryPayload struct {
	Summary     *string          `json:"summary"`
	KeyFindings []findingPayload `json:"key_findings"`
	// Some models echo the camelCase field name from the schema description.
	KeyFindingsCamel []findingPayload `json:"keyFindings"`
}

// SummarizeReport sends a lab report to the provider and returns its plain-language summary.
func (u *Understanding) SummarizeReport(ctx context.Context, doc *domain.Document) (*domain.ReportSummary, error) {
	out, err := u.parseDocument(ctx, doc, BuildReportSummaryPrompt(), TaskSummarizeReport)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSummarizationFailed, err)
	}

	var payload summaryPayload
	if err := decodeStrict(out.StructuredData, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSummarizationFailed, err)
	}
	if payload.Summary == nil {
		return nil, fmt.Errorf("%w: %w: missing summary", domain.ErrSummarizationFailed, ErrInvalidOutput)
	}

	raw := payload.KeyFindings
	if len(raw) == 0 {
		raw = payload.KeyFindingsCamel
	}
	findings := make([]domain.Finding, 0, len(raw))
	for _, f := range raw {
		findings = append(findings, domain.Finding{
			Term:        f.Term,
			Explanation: f.Explanation,
			Status:      domain.ParseFindingStatus(f.Status),
		})
	}

	return &domain.ReportSummary{SummaryText: *payload.Summary, Findings: findings}, nil
}

type statementPayload struct {
	Text     string          `json:"text"`
	Severity json.RawMessage `json:"severity"`
}

// CheckInteraction asks the provider about the given medications and foods.
// Severity is returned exactly as the provider produced it. Entries that come back
// as bare strings become statements with an empty severity.
func (u *Understanding) CheckInteraction(ctx context.Context, medications, foods []string) ([]domain.InteractionStatement, error) {
	out, err := u.parser.Parse(ctx, port.ParseInput{
		Prompt: BuildInteractionPrompt(medications, foods),
		Task:   TaskCheckInteraction,
	})
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := decodeStrict(out.StructuredData, &fields); err != nil {
		return nil, err
	}
	raw, ok := fields["interactions"]
	if !ok {
		return nil, fmt.Errorf("%w: missing interactions", ErrInvalidOutput)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: interactions: %v", ErrInvalidOutput, err)
	}

	statements := make([]domain.InteractionStatement, 0, len(items))
	for _, item := range items {
		st, ok, err := decodeStatement(item)
		if err != nil {
			return nil, err
		}
		if ok {
			statements = append(statements, st)
		}
	}
	return statements, nil
}

// decodeStatement accepts a bare string or an object. A severity that is not a
// JSON string is dropped so it classifies as Informational.
func decodeStatement(item json.RawMessage) (domain.InteractionStatement, bool, error) {
	var text string
	if err := json.Unmarshal(item, &text); err == nil {
		return domain.InteractionStatement{Text: text}, text != "", nil
	}
	var p statementPayload
	if err := json.Unmarshal(item, &p); err != nil {
		return domain.InteractionStatement{}, false, fmt.Errorf("%w: interaction entry: %v", ErrInvalidOutput, err)
	}
	st := domain.InteractionStatement{Text: p.Text}
	var severity string
	if err := json.Unmarshal(p.Severity, &severity); err == nil {
		st.Severity = severity
	}
	return st, st.Text != "", nil
}

func (u *Understanding) parseDocument(ctx context.Context, doc *domain.Document, prompt, task string) (*port.ParseOutput, error) {
	if doc == nil || len(doc.Data) == 0 {
		return nil, domain.ErrInvalidDocument
	}
	return u.parser.Parse(ctx, port.ParseInput{
		FileBytes:   doc.Data,
		ContentType: doc.ContentType,
		Prompt:      prompt,
		Task:        task,
	})
}

func decodeStrict(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return nil
}
