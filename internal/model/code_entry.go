// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"regexp"
)

// Sentinel values for the reserved "no reasonable match" output.
const (
	SentinelCode  = "000000"
	SentinelLabel = "Unclassified"
)

// codePattern matches a valid 6-digit HS code.
var codePattern = regexp.MustCompile(`^\d{6}$`)

// pairingPattern matches the "CODE - description" output shape.
var pairingPattern = regexp.MustCompile(`^\d{6} - .+$`)

// CodeEntry is a single row of the HS code catalog.
type CodeEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Pairing renders the entry in the canonical "CODE - description" form
// used in candidate lists and classification results.
func (e CodeEntry) Pairing() string {
	return fmt.Sprintf("%s - %s", e.Code, e.Description)
}

// Sentinel returns the reserved pairing emitted when no catalog entry
// is a reasonable match.
func Sentinel() string {
	return fmt.Sprintf("%s - %s", SentinelCode, SentinelLabel)
}

// ValidCode reports whether s is a well-formed 6-digit HS code.
func ValidCode(s string) bool {
	return codePattern.MatchString(s)
}

// ValidPairing reports whether s has the "CODE - description" shape.
// It checks structure only; catalog membership is validated separately.
func ValidPairing(s string) bool {
	return pairingPattern.MatchString(s)
}
