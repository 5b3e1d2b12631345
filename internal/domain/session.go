package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewSession creates an empty session that expires after ttl.
func NewSession(now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:           uuid.New(),
		Medications:  []Medication{},
		Foods:        []Food{},
		Interactions: []InteractionRecord{},
		CreatedAt:    now,
		UpdatedAt:    now,
		ExpiresAt:    now.Add(ttl),
	}
}

// NewMedication trims the fields and fills blank dosage and frequency with NotSpecified.
func NewMedication(name, dosage, frequency string) (Medication, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Medication{}, ErrInvalidMedication
	}
	return Medication{
		Name:      name,
		Dosage:    orNotSpecified(dosage),
		Frequency: orNotSpecified(frequency),
	}, nil
}

func orNotSpecified(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return NotSpecified
	}
	return s
}

// Expired reports whether the session is past its expiry time.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// MedicationNames returns medication names in list order, duplicates included.
func (s *Session) MedicationNames() []string {
	names := make([]string, len(s.Medications))
	for i := range s.Medications {
		names[i] = s.Medications[i].Name
	}
	return names
}

// FoodNames returns food names in list order.
func (s *Session) FoodNames() []string {
	names := make([]string, len(s.Foods))
	for i := range s.Foods {
		names[i] = s.Foods[i].Name
	}
	return names
}

// AddMedication appends one medication. Duplicate names are allowed.
func (s *Session) AddMedication(m Medication) error {
	m, err := NewMedication(m.Name, m.Dosage, m.Frequency)
	if err != nil {
		return err
	}
	s.Medications = append(s.Medications, m)
	return nil
}

// AppendMedications appends extracted medications after any existing entries.
// Entries without a name are skipped; the number appended is returned.
func (s *Session) AppendMedications(meds []Medication) int {
	added := 0
	for _, m := range meds {
		if err := s.AddMedication(m); err != nil {
			continue
		}
		added++
	}
	return added
}

// RemoveMedication removes the medication at index.
func (s *Session) RemoveMedication(index int) error {
	if index < 0 || index >= len(s.Medications) {
		return ErrIndexOutOfRange
	}
	s.Medications = append(s.Medications[:index:index], s.Medications[index+1:]...)
	return nil
}

// AddFood appends a food unless one with exactly the same name is already present.
// It returns false when the food was a duplicate.
func (s *Session) AddFood(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrInvalidFood
	}
	for _, f := range s.Foods {
		if f.Name == name {
			return false, nil
		}
	}
	s.Foods = append(s.Foods, Food{Name: name})
	return true, nil
}

// RemoveFood removes the food at index.
func (s *Session) RemoveFood(index int) error {
	if index < 0 || index >= len(s.Foods) {
		return ErrIndexOutOfRange
	}
	s.Foods = append(s.Foods[:index:index], s.Foods[index+1:]...)
	return nil
}

// ClearInteractions drops the previously checked interaction list.
func (s *Session) ClearInteractions() {
	s.Interactions = []InteractionRecord{}
	s.InteractionsCheckedAt = nil
}

// ReplaceInteractions swaps in the records of a completed run.
func (s *Session) ReplaceInteractions(records []InteractionRecord, checkedAt time.Time) {
	s.Interactions = append([]InteractionRecord{}, records...)
	s.InteractionsCheckedAt = &checkedAt
}

// ClearSummary drops the stored report summary.
func (s *Session) ClearSummary() {
	s.Summary = nil
}

// SetSummary replaces the stored report summary.
func (s *Session) SetSummary(summary *ReportSummary) {
	s.Summary = summary
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	c := *s
	c.Medications = append([]Medication{}, s.Medications...)
	c.Foods = append([]Food{}, s.Foods...)
	c.Interactions = append([]InteractionRecord{}, s.Interactions...)
	if s.InteractionsCheckedAt != nil {
		t := *s.InteractionsCheckedAt
		c.InteractionsCheckedAt = &t
	}
	if s.Summary != nil {
		sum := *s.Summary
		sum.Findings = append([]Finding{}, s.Summary.Findings...)
		c.Summary = &sum
	}
	return &c
}
