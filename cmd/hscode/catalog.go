package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msyaifulbhr/hscode/internal/cli"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the HS code catalog",
	}

	cmd.AddCommand(catalogListCmd())
	cmd.AddCommand(catalogValidateCmd())

	return cmd
}

func catalogListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse the catalog page by page",
		RunE:  runCatalogList,
	}

	cmd.Flags().Int("page", 1, "Page to display")
	cmd.Flags().Int("page-size", 20, "Entries per page")

	return cmd
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	page, err := cmd.Flags().GetInt("page")
	if err != nil {
		return err
	}
	pageSize, err := cmd.Flags().GetInt("page-size")
	if err != nil {
		return err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	entries := cat.Entries()
	totalPages := (len(entries) + pageSize - 1) / pageSize
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(entries) {
		end = len(entries)
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("HS code catalog (%d entries)", len(entries))))
	fmt.Println(cli.RenderCatalogPage(entries[start:end], page, totalPages))

	return nil
}

func catalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the catalog and report validation errors",
		RunE: func(_ *cobra.Command, _ []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Catalog is valid: %d entries, no duplicates, all codes 6 digits.", cat.Len())))

			return nil
		},
	}
}
