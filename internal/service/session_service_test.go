package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medexplain/internal/domain"
	"medexplain/internal/service"
	"medexplain/mocks"
)

func newSession() *domain.Session {
	return domain.NewSession(time.Now().UTC(), time.Hour)
}

func setupSessionService() (service.SessionService, *mocks.MockSessionRepo) {
	repo := new(mocks.MockSessionRepo)
	return service.NewSessionService(repo, 2*time.Hour, nil, nil), repo
}

func TestSessionService_Create(t *testing.T) {
	svc, repo := setupSessionService()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)

	sess, err := svc.Create(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, sess.ID)
	assert.Empty(t, sess.Medications)
	assert.WithinDuration(t, sess.CreatedAt.Add(2*time.Hour), sess.ExpiresAt, time.Second)
	repo.AssertExpectations(t)
}

func TestSessionService_Create_RepoError(t *testing.T) {
	svc, repo := setupSessionService()
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := svc.Create(context.Background())
	assert.Error(t, err)
}

func TestSessionService_AddMedication_AppliesDefaults(t *testing.T) {
	svc, repo := setupSessionService()
	sess := newSession()
	repo.On("Update", mock.Anything, sess.ID, mock.Anything).Return(sess, nil)

	got, err := svc.AddMedication(context.Background(), sess.ID, &service.AddMedicationInput{Name: " Metformin "})
	require.NoError(t, err)
	require.Len(t, got.Medications, 1)
	assert.Equal(t, domain.Medication{Name: "Metformin", Dosage: domain.NotSpecified, Frequency: domain.NotSpecified}, got.Medications[0])
}

func TestSessionService_AddMedication_EmptyName(t *testing.T) {
	svc, repo := setupSessionService()

	_, err := svc.AddMedication(context.Background(), uuid.New(), &service.AddMedicationInput{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidMedication)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionService_RemoveMedication_OutOfRange(t *testing.T) {
	svc, repo := setupSessionService()
	sess := newSession()
	repo.On("Update", mock.Anything, sess.ID, mock.Anything).Return(sess, nil)

	_, err := svc.RemoveMedication(context.Background(), sess.ID, 3)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestSessionService_AddFood_Dedupes(t *testing.T) {
	svc, repo := setupSessionService()
	sess := newSession()
	repo.On("Update", mock.Anything, sess.ID, mock.Anything).Return(sess, nil)

	_, added, err := svc.AddFood(context.Background(), sess.ID, "Kale")
	require.NoError(t, err)
	assert.True(t, added)

	got, added, err := svc.AddFood(context.Background(), sess.ID, "Kale")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"Kale"}, got.FoodNames())
}

func TestSessionService_RemoveFood(t *testing.T) {
	svc, repo := setupSessionService()
	sess := newSession()
	_, _ = sess.AddFood("Kale")
	_, _ = sess.AddFood("Milk")
	repo.On("Update", mock.Anything, sess.ID, mock.Anything).Return(sess, nil)

	got, err := svc.RemoveFood(context.Background(), sess.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk"}, got.FoodNames())
}

func TestSessionService_Get_NotFound(t *testing.T) {
	svc, repo := setupSessionService()
	id := uuid.New()
	repo.On("Get", mock.Anything, id).Return(nil, domain.ErrSessionNotFound)

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
