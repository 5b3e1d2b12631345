package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medexplain/internal/domain"
)

func TestClassifyReport(t *testing.T) {
	tests := []struct {
		name    string
		summary *domain.ReportSummary
		want    domain.OverallStatus
	}{
		{"no summary", nil, domain.OverallStatusNormal},
		{"empty findings", &domain.ReportSummary{SummaryText: "fine"}, domain.OverallStatusNormal},
		{
			"all normal",
			&domain.ReportSummary{Findings: []domain.Finding{{Status: domain.FindingStatusNormal}}},
			domain.OverallStatusNormal,
		},
		{
			"one high",
			&domain.ReportSummary{Findings: []domain.Finding{
				{Status: domain.FindingStatusNormal},
				{Status: domain.FindingStatusHigh},
			}},
			domain.OverallStatusAttentionNeeded,
		},
		{
			"high first",
			&domain.ReportSummary{Findings: []domain.Finding{
				{Status: domain.FindingStatusHigh},
				{Status: domain.FindingStatusNormal},
			}},
			domain.OverallStatusAttentionNeeded,
		},
		{
			"unrecognized raw status",
			&domain.ReportSummary{Findings: []domain.Finding{{Status: domain.FindingStatus("normal-ish")}}},
			domain.OverallStatusAttentionNeeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyReport(tt.summary))
		})
	}
}

func TestAnalyzeReport(t *testing.T) {
	summary := &domain.ReportSummary{Findings: []domain.Finding{{Status: domain.FindingStatusBorderline}}}
	analysis := domain.AnalyzeReport(summary)
	assert.Same(t, summary, analysis.Summary)
	assert.Equal(t, domain.OverallStatusAttentionNeeded, analysis.OverallStatus)
}
