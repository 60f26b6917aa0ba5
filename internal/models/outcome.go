package models

// ResearchOptions tunes a single research run
type ResearchOptions struct {
	ForceRefresh bool // Bypass the freshness check and regenerate
	SkipEnrich   bool // Skip profile enrichment after analysis
}

// OutcomeStatus tags the result variant of a research run
type OutcomeStatus string

const (
	// OutcomeSuccess indicates a completed dossier persisted as a ResearchResult
	OutcomeSuccess OutcomeStatus = "success"

	// OutcomePartial indicates content was gathered but analysis could not
	// complete; the gathered sources are returned for diagnostics
	OutcomePartial OutcomeStatus = "partial"

	// OutcomeFailure indicates the pipeline failed before gathering usable content
	OutcomeFailure OutcomeStatus = "failure"
)

// ResearchOutcome is the tagged result of a pipeline run. Callers always
// receive one of these; the pipeline never surfaces a raw error.
type ResearchOutcome struct {
	Status   OutcomeStatus   `json:"status"`
	Name     string          `json:"name"`
	Position string          `json:"position"`
	Result   *ResearchResult `json:"result,omitempty"`  // Set when Status == OutcomeSuccess
	Sources  []Source        `json:"sources,omitempty"` // Gathered content when Status == OutcomePartial
	Error    string          `json:"error,omitempty"`   // Set when Status != OutcomeSuccess
	CacheHit bool            `json:"cache_hit"`         // True when an existing fresh result was returned
}

// SuccessOutcome wraps a persisted result
func SuccessOutcome(name, position string, result *ResearchResult, cacheHit bool) *ResearchOutcome {
	return &ResearchOutcome{
		Status:   OutcomeSuccess,
		Name:     name,
		Position: position,
		Result:   result,
		CacheHit: cacheHit,
	}
}

// PartialOutcome wraps gathered-but-unanalyzed content
func PartialOutcome(name, position, errMsg string, sources []Source) *ResearchOutcome {
	return &ResearchOutcome{
		Status:   OutcomePartial,
		Name:     name,
		Position: position,
		Sources:  sources,
		Error:    errMsg,
	}
}

// FailureOutcome wraps a pipeline failure
func FailureOutcome(name, position, errMsg string) *ResearchOutcome {
	return &ResearchOutcome{
		Status:   OutcomeFailure,
		Name:     name,
		Position: position,
		Error:    errMsg,
	}
}
