package model

import (
	"strings"
	"time"
)

// OverrideSource indicates how an override was created.
type OverrideSource string

const (
	// SourceCorrection indicates the user disputed a result and supplied
	// the correct code.
	SourceCorrection OverrideSource = "CORRECTION"
	// SourceConfirmed indicates the user confirmed a result, pinning it
	// for future lookups.
	SourceConfirmed OverrideSource = "CONFIRMED"
)

// Override is a user-confirmed correction that deterministically
// preempts inference for an exact product name match. Keys are compared
// case-insensitively but the stored name keeps its original casing.
type Override struct {
	LastUpdated time.Time      `json:"-"`
	ProductName string         `json:"productName"`
	CorrectCode string         `json:"correctCode"`
	Source      OverrideSource `json:"-"`
}

// NormalizeKey returns the comparison key for a product name.
func NormalizeKey(productName string) string {
	return strings.ToLower(strings.TrimSpace(productName))
}

// Matches reports whether the override applies to the given product name.
func (o Override) Matches(productName string) bool {
	return NormalizeKey(o.ProductName) == NormalizeKey(productName)
}
