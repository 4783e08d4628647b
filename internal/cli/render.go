package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msyaifulbhr/hscode/internal/model"
)

// RenderResult renders one classification result the way the analyzer
// presents it: the analysis rationale followed by the matched pairing.
func RenderResult(result model.ClassificationResult) string {
	var b strings.Builder

	b.WriteString(SubtleStyle.Render("Analysis"))
	b.WriteString("\n")
	b.WriteString(result.AnalysisText)
	b.WriteString("\n\n")
	b.WriteString(SubtleStyle.Render("Matched code"))
	b.WriteString("\n")
	b.WriteString(BoldStyle.Render(result.CodeAndDescription))

	if result.Status == model.StatusResolvedByOverride {
		b.WriteString("\n")
		b.WriteString(SuccessStyle.Render("(pinned by user correction)"))
	}

	return RenderBox(result.OriginalProductName, b.String())
}

// RenderOverridesTable renders the override table for display.
func RenderOverridesTable(overrides []model.Override) string {
	if len(overrides) == 0 {
		return SubtleStyle.Render("No overrides recorded yet.")
	}

	nameWidth := len("Product Name")
	for _, o := range overrides {
		if w := lipgloss.Width(o.ProductName); w > nameWidth {
			nameWidth = w
		}
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(
		fmt.Sprintf("%-*s  %-8s  %-10s  %s", nameWidth, "Product Name", "Code", "Source", "Updated")))
	b.WriteString("\n")

	for _, o := range overrides {
		b.WriteString(fmt.Sprintf("%-*s  %-8s  %-10s  %s",
			nameWidth,
			o.ProductName,
			o.CorrectCode,
			o.Source,
			o.LastUpdated.Format("2006-01-02 15:04")))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderCatalogPage renders one page of catalog entries as a table.
func RenderCatalogPage(entries []model.CodeEntry, page, totalPages int) string {
	var b strings.Builder

	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-8s  %s", "Code", "Description")))
	b.WriteString("\n")
	for _, entry := range entries {
		b.WriteString(fmt.Sprintf("%-8s  %s\n", entry.Code, entry.Description))
	}
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("Page %d of %d", page, totalPages)))

	return b.String()
}
