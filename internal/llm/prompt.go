package llm

import (
	"fmt"
	"strings"

	"github.com/msyaifulbhr/hscode/internal/catalog"
	"github.com/msyaifulbhr/hscode/internal/model"
)

// buildPrompt assembles the classification prompt. Optional sections
// (context, overrides, priority candidates) are plain conditional
// string assembly over the request fields.
func buildPrompt(req model.ClassificationRequest, blocks catalog.CandidateBlocks, overrideBlock string) string {
	var b strings.Builder

	b.WriteString("Classify this product into the single most appropriate HS code from the candidate lists below.\n\n")

	b.WriteString("Product name:\n")
	b.WriteString(req.ProductName)
	b.WriteString("\n")

	if req.ProductContext != "" {
		b.WriteString("\nProduct context:\n")
		b.WriteString(req.ProductContext)
		b.WriteString("\n")
	}

	if overrideBlock != "" {
		b.WriteString("\nConfirmed overrides (JSON array of productName -> correctCode):\n")
		b.WriteString(overrideBlock)
		b.WriteString("\n")
		b.WriteString("If an override's productName equals the product name (case-insensitive), " +
			"its correctCode is authoritative: select that code and skip further reasoning.\n")
	}

	b.WriteString("\nInstructions:\n")
	b.WriteString("1. Interpret the product name: resolve colloquialisms and abbreviations, ignore brand and model noise")
	if req.ProductContext != "" {
		b.WriteString(", and use the product context to narrow the interpretation")
	}
	b.WriteString(".\n")
	b.WriteString("2. Classify by function, material, and industry.\n")
	if blocks.Priority != "" {
		b.WriteString("3. Match hierarchically: prefer a code from the priority candidates when one fits; " +
			"fall back to the full catalog when none does.\n")
	} else {
		b.WriteString("3. Match hierarchically against the full catalog.\n")
	}
	b.WriteString("4. You MUST select a code that appears in the candidate lists. Never output a code that is not listed.\n")
	b.WriteString(fmt.Sprintf("5. If no candidate is a reasonable match, output exactly %q.\n", model.Sentinel()))

	b.WriteString("\nRespond with this exact JSON shape:\n")
	b.WriteString(`{"analysisText": "<brief rationale for the chosen code>", ` +
		`"codeAndDescription": "<CODE - description, copied verbatim from the candidates>"}`)
	b.WriteString("\n")

	if blocks.Priority != "" {
		b.WriteString("\nPriority candidates (Format: 'CODE - description'):\n")
		b.WriteString(blocks.Priority)
		b.WriteString("\n")
	}

	b.WriteString("\nFull catalog (Format: 'CODE - description'):\n")
	b.WriteString(blocks.Full)
	b.WriteString("\n")

	return b.String()
}
