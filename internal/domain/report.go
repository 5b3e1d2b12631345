package domain

// ClassifyReport reduces a summary's findings to one banner state.
// A missing summary or an empty findings list is Normal; any finding whose
// status is not exactly Normal makes the report AttentionNeeded.
func ClassifyReport(summary *ReportSummary) OverallStatus {
	if summary == nil {
		return OverallStatusNormal
	}
	for i := range summary.Findings {
		if summary.Findings[i].Status != FindingStatusNormal {
			return OverallStatusAttentionNeeded
		}
	}
	return OverallStatusNormal
}

// AnalyzeReport wraps a summary with its classification.
func AnalyzeReport(summary *ReportSummary) *ReportAnalysis {
	return &ReportAnalysis{Summary: summary, OverallStatus: ClassifyReport(summary)}
}
