package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medexplain/internal/faq"
	"medexplain/internal/handler"
	"medexplain/mocks"
)

func TestHealthHandler(t *testing.T) {
	repo := new(mocks.MockSessionRepo)
	h := handler.NewHealthHandler(repo)
	r := gin.New()
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)

	assert.Equal(t, http.StatusOK, serve(r, jsonRequest(t, http.MethodGet, "/healthz", nil)).Code)

	repo.On("Ping", mock.Anything).Return(nil).Once()
	assert.Equal(t, http.StatusOK, serve(r, jsonRequest(t, http.MethodGet, "/readyz", nil)).Code)

	repo.On("Ping", mock.Anything).Return(errors.New("down")).Once()
	assert.Equal(t, http.StatusServiceUnavailable, serve(r, jsonRequest(t, http.MethodGet, "/readyz", nil)).Code)
}

func TestFAQHandler_List(t *testing.T) {
	entries, err := faq.Default()
	require.NoError(t, err)
	h := handler.NewFAQHandler(entries)
	r := gin.New()
	r.GET("/faq", h.List)

	w := serve(r, jsonRequest(t, http.MethodGet, "/faq", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got []faq.Entry
	decode(t, w, &got)
	assert.Len(t, got, 5)
}
