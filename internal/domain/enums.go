package domain

import "strings"

// FileType represents the allowed document types for analysis.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// Severity classifies the risk of a food-medication interaction.
type Severity string

const (
	SeverityHigh          Severity = "High"
	SeverityModerate      Severity = "Moderate"
	SeverityLow           Severity = "Low"
	SeverityInformational Severity = "Informational"
)

// Severities lists every severity from most to least severe.
var Severities = []Severity{SeverityHigh, SeverityModerate, SeverityLow, SeverityInformational}

// ParseSeverity maps any string returned by the model to a Severity.
// Matching ignores case and surrounding whitespace; anything else is Informational.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return SeverityHigh
	case "moderate":
		return SeverityModerate
	case "low":
		return SeverityLow
	default:
		return SeverityInformational
	}
}

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityModerate, SeverityLow, SeverityInformational:
		return true
	}
	return false
}

// FindingStatus classifies a single lab report finding.
type FindingStatus string

const (
	FindingStatusNormal     FindingStatus = "Normal"
	FindingStatusHigh       FindingStatus = "High"
	FindingStatusLow        FindingStatus = "Low"
	FindingStatusAbnormal   FindingStatus = "Abnormal"
	FindingStatusBorderline FindingStatus = "Borderline"
)

// ParseFindingStatus maps any string returned by the model to a FindingStatus.
// Unknown values become Abnormal so they are never mistaken for Normal.
func ParseFindingStatus(s string) FindingStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return FindingStatusNormal
	case "high":
		return FindingStatusHigh
	case "low":
		return FindingStatusLow
	case "borderline":
		return FindingStatusBorderline
	default:
		return FindingStatusAbnormal
	}
}

// OverallStatus is the single banner state derived from a report's findings.
type OverallStatus string

const (
	OverallStatusNormal          OverallStatus = "normal"
	OverallStatusAttentionNeeded OverallStatus = "attention_needed"
)

// FailurePolicy controls how the interaction matrix reacts to a failed pair request.
type FailurePolicy string

const (
	// FailurePolicyAbort stops the run at the first failed pair and discards all results.
	FailurePolicyAbort FailurePolicy = "abort"
	// FailurePolicyIsolate records failed pairs and keeps results from the others.
	FailurePolicyIsolate FailurePolicy = "isolate"
)
