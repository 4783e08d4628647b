package catalog

import (
	"strings"

	"github.com/msyaifulbhr/hscode/internal/model"
)

// CandidateBlocks holds the newline-joined "CODE - description" lines
// offered to the inference step. Priority is empty when no priority
// list was supplied; Full always contains every catalog entry. The
// blocks only order candidates, they never filter: precedence between
// them is decided by the inference step.
type CandidateBlocks struct {
	Priority string
	Full     string
}

// CandidateBlocks renders the candidate blocks for this catalog. Codes
// in the priority list that are absent from the catalog are silently
// skipped, preserving the order of the remaining priority codes.
func (c *Catalog) CandidateBlocks(priority model.PriorityList) CandidateBlocks {
	var blocks CandidateBlocks

	if len(priority) > 0 {
		lines := make([]string, 0, len(priority))
		for _, code := range priority {
			if entry, ok := c.byCode[code]; ok {
				lines = append(lines, entry.Pairing())
			}
		}
		blocks.Priority = strings.Join(lines, "\n")
	}

	lines := make([]string, len(c.entries))
	for i, entry := range c.entries {
		lines[i] = entry.Pairing()
	}
	blocks.Full = strings.Join(lines, "\n")

	return blocks
}
