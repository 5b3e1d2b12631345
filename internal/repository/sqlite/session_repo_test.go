package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medexplain/internal/domain"
	"medexplain/internal/repository/sqlite"
)

func newStore(t *testing.T) *sqlite.SessionStore {
	t.Helper()
	store, err := sqlite.NewSessionStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSessionStore_CreateGet(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	s := domain.NewSession(time.Now().UTC(), time.Hour)
	require.NoError(t, s.AddMedication(domain.Medication{Name: "Warfarin", Dosage: "5mg"}))
	require.NoError(t, store.Create(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.Medications, got.Medications)
	assert.True(t, s.ExpiresAt.Equal(got.ExpiresAt))
}

func TestSessionStore_Get_Missing(t *testing.T) {
	store := newStore(t)
	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_Get_Expired(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	s := domain.NewSession(time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, store.Create(ctx, s))

	_, err := store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_Update(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	s := domain.NewSession(time.Now().UTC(), time.Hour)
	require.NoError(t, store.Create(ctx, s))

	updated, err := store.Update(ctx, s.ID, func(sess *domain.Session) error {
		_, err := sess.AddFood("Grapefruit")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Grapefruit"}, updated.FoodNames())

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Grapefruit"}, got.FoodNames())
}

func TestSessionStore_Update_ErrorRollsBack(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	s := domain.NewSession(time.Now().UTC(), time.Hour)
	require.NoError(t, store.Create(ctx, s))

	boom := errors.New("boom")
	_, err := store.Update(ctx, s.ID, func(sess *domain.Session) error {
		_, _ = sess.AddFood("Kale")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Foods)
}

func TestSessionStore_Update_Missing(t *testing.T) {
	store := newStore(t)
	_, err := store.Update(context.Background(), uuid.New(), func(*domain.Session) error { return nil })
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_DeleteAndDeleteExpired(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	live := domain.NewSession(time.Now().UTC(), time.Hour)
	stale := domain.NewSession(time.Now().Add(-2*time.Hour).UTC(), time.Hour)
	doomed := domain.NewSession(time.Now().UTC(), time.Hour)
	for _, s := range []*domain.Session{live, stale, doomed} {
		require.NoError(t, store.Create(ctx, s))
	}

	require.NoError(t, store.Delete(ctx, doomed.ID))
	assert.ErrorIs(t, store.Delete(ctx, doomed.ID), domain.ErrSessionNotFound)

	n, err := store.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = store.Get(ctx, live.ID)
	assert.NoError(t, err)
	assert.NoError(t, store.Ping(ctx))
}
