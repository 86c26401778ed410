package pipeline

import "errors"

var (
	ErrExtractionFailed = errors.New("extraction failed")
	ErrAnalysisFailed   = errors.New("analysis failed")
	ErrNominationFailed = errors.New("nomination failed")
	ErrNoLineItems      = errors.New("no line items extracted")
)
