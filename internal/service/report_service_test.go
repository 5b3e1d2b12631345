package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medexplain/internal/domain"
	"medexplain/internal/service"
	"medexplain/mocks"
)

var labReport = &domain.Document{ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}

func setupReportService() (service.ReportService, *mocks.MockDocumentUnderstanding, *mocks.MockSessionRepo) {
	u := new(mocks.MockDocumentUnderstanding)
	repo := new(mocks.MockSessionRepo)
	return service.NewReportService(u, repo, nil), u, repo
}

func TestReportService_Summarize_AttentionNeeded(t *testing.T) {
	svc, u, _ := setupReportService()
	summary := &domain.ReportSummary{
		SummaryText: "Your cholesterol is slightly high.",
		Findings: []domain.Finding{
			{Term: "Hemoglobin", Status: domain.FindingStatusNormal},
			{Term: "LDL", Status: domain.FindingStatusHigh},
		},
	}
	u.On("SummarizeReport", mock.Anything, labReport).Return(summary, nil)

	got, err := svc.Summarize(context.Background(), labReport)
	require.NoError(t, err)
	assert.Equal(t, domain.OverallStatusAttentionNeeded, got.OverallStatus)
	assert.Same(t, summary, got.Summary)
}

func TestReportService_Summarize_NoFindingsIsNormal(t *testing.T) {
	svc, u, _ := setupReportService()
	u.On("SummarizeReport", mock.Anything, labReport).Return(&domain.ReportSummary{SummaryText: "All good."}, nil)

	got, err := svc.Summarize(context.Background(), labReport)
	require.NoError(t, err)
	assert.Equal(t, domain.OverallStatusNormal, got.OverallStatus)
}

func TestReportService_SummarizeIntoSession_StoresSummary(t *testing.T) {
	svc, u, repo := setupReportService()
	sess := newSession()
	summary := &domain.ReportSummary{SummaryText: "Fine.", Findings: []domain.Finding{{Term: "Glucose", Status: domain.FindingStatusNormal}}}
	repo.On("Update", mock.Anything, sess.ID, mock.Anything).Return(sess, nil)
	u.On("SummarizeReport", mock.Anything, labReport).Return(summary, nil)

	got, err := svc.SummarizeIntoSession(context.Background(), sess.ID, labReport)
	require.NoError(t, err)
	assert.Equal(t, domain.OverallStatusNormal, got.OverallStatus)
	assert.Same(t, summary, sess.Summary)
	repo.AssertNumberOfCalls(t, "Update", 2)
}

func TestReportService_SummarizeIntoSession_FailureClearsPrevious(t *testing.T) {
	svc, u, repo := setupReportService()
	sess := newSession()
	sess.SetSummary(&domain.ReportSummary{SummaryText: "old"})
	repo.On("Update", mock.Anything, sess.ID, mock.Anything).Return(sess, nil)
	u.On("SummarizeReport", mock.Anything, labReport).
		Return(nil, fmt.Errorf("%w: bad json", domain.ErrSummarizationFailed))

	_, err := svc.SummarizeIntoSession(context.Background(), sess.ID, labReport)
	assert.ErrorIs(t, err, domain.ErrSummarizationFailed)
	assert.Nil(t, sess.Summary)
	repo.AssertNumberOfCalls(t, "Update", 1)
}

func TestReportService_SessionReport(t *testing.T) {
	svc, _, repo := setupReportService()
	sess := newSession()
	repo.On("Get", mock.Anything, sess.ID).Return(sess, nil).Once()

	_, err := svc.SessionReport(context.Background(), sess.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	sess.SetSummary(&domain.ReportSummary{Findings: []domain.Finding{{Term: "TSH", Status: domain.FindingStatusBorderline}}})
	repo.On("Get", mock.Anything, sess.ID).Return(sess, nil).Once()

	got, err := svc.SessionReport(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OverallStatusAttentionNeeded, got.OverallStatus)
}
