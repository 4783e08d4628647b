package model

import "time"

// ResolutionStatus indicates how a product name was resolved.
type ResolutionStatus string

const (
	// StatusResolvedByOverride means a stored user correction supplied
	// the code without a model call.
	StatusResolvedByOverride ResolutionStatus = "RESOLVED_BY_OVERRIDE"
	// StatusResolvedByAI means the inference step selected the code.
	StatusResolvedByAI ResolutionStatus = "RESOLVED_BY_AI"
	// StatusUnclassified means no candidate was a reasonable match and
	// the sentinel pairing was returned.
	StatusUnclassified ResolutionStatus = "UNCLASSIFIED"
)

// ClassificationRequest is a single product name to resolve.
type ClassificationRequest struct {
	// ProductName is the free-text item description. Minimum two
	// characters after trimming.
	ProductName string
	// ProductContext optionally narrows the interpretation of the name
	// (intended use, material, industry).
	ProductContext string
}

// ClassificationResult is the outcome of resolving one product name.
// CodeAndDescription always reproduces a catalog pairing verbatim, or
// the sentinel.
type ClassificationResult struct {
	ResolvedAt          time.Time
	OriginalProductName string
	AnalysisText        string
	CodeAndDescription  string
	Status              ResolutionStatus
}

// PriorityList is an ordered set of catalog codes consulted before the
// full catalog. It is a hint for the matching step, never a filter.
type PriorityList []string
