package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medexplain/internal/domain"
)

func TestParseSeverity(t *testing.T) {
	cases := map[string]domain.Severity{
		"High":          domain.SeverityHigh,
		" moderate ":    domain.SeverityModerate,
		"LOW":           domain.SeverityLow,
		"Informational": domain.SeverityInformational,
		"":              domain.SeverityInformational,
		"Critical":      domain.SeverityInformational,
		"severe":        domain.SeverityInformational,
	}
	for in, want := range cases {
		assert.Equal(t, want, domain.ParseSeverity(in), "input %q", in)
	}
}

func TestSeverity_Valid(t *testing.T) {
	for _, s := range domain.Severities {
		assert.True(t, s.Valid())
	}
	assert.False(t, domain.Severity("Critical").Valid())
}

func TestParseFindingStatus(t *testing.T) {
	cases := map[string]domain.FindingStatus{
		"Normal":     domain.FindingStatusNormal,
		"normal":     domain.FindingStatusNormal,
		"High":       domain.FindingStatusHigh,
		"low":        domain.FindingStatusLow,
		"Borderline": domain.FindingStatusBorderline,
		"Abnormal":   domain.FindingStatusAbnormal,
		"elevated":   domain.FindingStatusAbnormal,
		"":           domain.FindingStatusAbnormal,
	}
	for in, want := range cases {
		assert.Equal(t, want, domain.ParseFindingStatus(in), "input %q", in)
	}
}

func TestCountBySeverity(t *testing.T) {
	counts := domain.CountBySeverity([]domain.InteractionRecord{
		{Severity: domain.SeverityHigh},
		{Severity: domain.SeverityHigh},
		{Severity: domain.SeverityLow},
	})
	assert.Equal(t, 2, counts[domain.SeverityHigh])
	assert.Equal(t, 0, counts[domain.SeverityModerate])
	assert.Equal(t, 1, counts[domain.SeverityLow])
	assert.Equal(t, 0, counts[domain.SeverityInformational])
	assert.Len(t, counts, 4)
}
