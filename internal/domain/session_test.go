package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medexplain/internal/domain"
)

func newTestSession() *domain.Session {
	return domain.NewSession(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Hour)
}

func TestNewMedication_DefaultsBlankFields(t *testing.T) {
	m, err := domain.NewMedication("  Aspirin ", "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", m.Name)
	assert.Equal(t, domain.NotSpecified, m.Dosage)
	assert.Equal(t, domain.NotSpecified, m.Frequency)
}

func TestNewMedication_EmptyName(t *testing.T) {
	_, err := domain.NewMedication(" ", "10mg", "daily")
	assert.ErrorIs(t, err, domain.ErrInvalidMedication)
}

func TestSession_AddMedication_AllowsDuplicates(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.AddMedication(domain.Medication{Name: "Aspirin"}))
	require.NoError(t, s.AddMedication(domain.Medication{Name: "Aspirin"}))

	assert.Len(t, s.Medications, 2)
	assert.Equal(t, []string{"Aspirin", "Aspirin"}, s.MedicationNames())
}

func TestSession_AppendMedications_KeepsManualEntriesFirst(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.AddMedication(domain.Medication{Name: "Manual", Dosage: "5mg"}))

	added := s.AppendMedications([]domain.Medication{
		{Name: "Warfarin", Dosage: "5mg", Frequency: "daily"},
		{Name: "", Dosage: "1mg"},
		{Name: "Metformin"},
	})

	assert.Equal(t, 2, added)
	assert.Equal(t, []string{"Manual", "Warfarin", "Metformin"}, s.MedicationNames())
	assert.Equal(t, domain.NotSpecified, s.Medications[2].Dosage)
}

func TestSession_RemoveMedication(t *testing.T) {
	s := newTestSession()
	s.AppendMedications([]domain.Medication{{Name: "A"}, {Name: "B"}, {Name: "C"}})
	snapshot := s.Medications

	require.NoError(t, s.RemoveMedication(1))
	assert.Equal(t, []string{"A", "C"}, s.MedicationNames())
	assert.Equal(t, "B", snapshot[1].Name, "removal must not rewrite the previous backing array")

	assert.ErrorIs(t, s.RemoveMedication(2), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, s.RemoveMedication(-1), domain.ErrIndexOutOfRange)
}

func TestSession_AddFood_Dedupe(t *testing.T) {
	s := newTestSession()

	added, err := s.AddFood("Kale")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.AddFood("Kale")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, s.Foods, 1)

	added, err = s.AddFood("kale")
	require.NoError(t, err)
	assert.True(t, added, "dedupe is exact match only")
	assert.Equal(t, []string{"Kale", "kale"}, s.FoodNames())
}

func TestSession_AddFood_Empty(t *testing.T) {
	s := newTestSession()
	_, err := s.AddFood("   ")
	assert.ErrorIs(t, err, domain.ErrInvalidFood)
	assert.Empty(t, s.Foods)
}

func TestSession_RemoveFood(t *testing.T) {
	s := newTestSession()
	_, _ = s.AddFood("Kale")
	_, _ = s.AddFood("Milk")

	require.NoError(t, s.RemoveFood(0))
	assert.Equal(t, []string{"Milk"}, s.FoodNames())
	assert.ErrorIs(t, s.RemoveFood(5), domain.ErrIndexOutOfRange)
}

func TestSession_ReplaceAndClearInteractions(t *testing.T) {
	s := newTestSession()
	checkedAt := time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)
	records := []domain.InteractionRecord{{Medication: "Warfarin", Food: "Kale", Severity: domain.SeverityHigh}}

	s.ReplaceInteractions(records, checkedAt)
	records[0].Food = "mutated"

	require.Len(t, s.Interactions, 1)
	assert.Equal(t, "Kale", s.Interactions[0].Food)
	require.NotNil(t, s.InteractionsCheckedAt)
	assert.Equal(t, checkedAt, *s.InteractionsCheckedAt)

	s.ClearInteractions()
	assert.Empty(t, s.Interactions)
	assert.Nil(t, s.InteractionsCheckedAt)
}

func TestSession_Expired(t *testing.T) {
	s := newTestSession()
	assert.False(t, s.Expired(s.CreatedAt))
	assert.True(t, s.Expired(s.ExpiresAt))
	assert.True(t, s.Expired(s.ExpiresAt.Add(time.Second)))
}

func TestSession_Clone(t *testing.T) {
	s := domain.NewSession(time.Now(), time.Hour)
	require.NoError(t, s.AddMedication(domain.Medication{Name: "Warfarin"}))
	_, err := s.AddFood("Kale")
	require.NoError(t, err)
	s.SetSummary(&domain.ReportSummary{SummaryText: "ok", Findings: []domain.Finding{{Term: "LDL", Status: domain.FindingStatusHigh}}})

	c := s.Clone()
	c.Medications[0].Name = "Aspirin"
	c.Foods = append(c.Foods, domain.Food{Name: "Milk"})
	c.Summary.Findings[0].Term = "HDL"

	assert.Equal(t, "Warfarin", s.Medications[0].Name)
	assert.Len(t, s.Foods, 1)
	assert.Equal(t, "LDL", s.Summary.Findings[0].Term)
	assert.Equal(t, s.ID, c.ID)
}
