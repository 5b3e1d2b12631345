package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrSessionNotFound        = errors.New("session not found")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrInvalidDocument        = errors.New("invalid document payload")
	ErrInvalidMedication      = errors.New("medication name is required")
	ErrInvalidFood            = errors.New("food name is required")
	ErrIndexOutOfRange        = errors.New("index out of range")
	ErrMissingInput           = errors.New("at least one medication and one food are required")
	ErrMatrixTooLarge         = errors.New("too many medication and food pairs")
	ErrExtractionFailed       = errors.New("medication extraction failed")
	ErrSummarizationFailed    = errors.New("report summarization failed")
	ErrInteractionCheckFailed = errors.New("interaction check failed")
)
