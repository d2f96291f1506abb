package models

import "fmt"

// Error taxonomy. The orchestrator maps ExtractionError and ValidationError to
// user-facing failures (bad or incomplete source data) and everything else to
// internal errors.

// ExtractionError means the source document yielded no usable data. The
// normalizer raises it when every section comes back empty.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

// ValidationError is raised by a stage gate. Always fatal to the run.
type ValidationError struct {
	Stage  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed at %s: %s", e.Stage, e.Reason)
}

// CalculationError is raised by the ratio calculator only when no ratio in any
// category could be computed. Per-category failures degrade to fewer ratios.
type CalculationError struct {
	Reason string
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("calculation failed: %s", e.Reason)
}
