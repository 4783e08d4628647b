package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/msyaifulbhr/hscode/internal/cli"
	"github.com/msyaifulbhr/hscode/internal/engine"
	"github.com/msyaifulbhr/hscode/internal/model"
)

func feedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback \"product name\" <correct-code>",
		Short: "Record a correction for a classification",
		Long: `Record the correct HS code for a product name. Future resolutions of
the same name (case-insensitive) return this code deterministically,
without consulting the model.

Use --agree to confirm a result instead of disputing it; the code is
pinned the same way.

Examples:
  hscode feedback "sapi hidup" 010229
  hscode feedback --agree "komputer portabel" 847130`,
		Args: cobra.ExactArgs(2),
		RunE: runFeedback,
	}

	cmd.Flags().Bool("agree", false, "Confirm the result instead of correcting it")

	return cmd
}

func runFeedback(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	productName, correctCode := args[0], args[1]

	agree, err := cmd.Flags().GetBool("agree")
	if err != nil {
		return err
	}

	source := model.SourceCorrection
	if agree {
		source = model.SourceConfirmed
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	if _, ok := cat.Lookup(correctCode); !ok {
		fmt.Println(cli.FormatWarning(fmt.Sprintf(
			"Code %s is not in the catalog; it will be stored but cannot resolve until the catalog contains it.", correctCode)))
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close override store", "error", closeErr)
		}
	}()

	// Feedback never needs the inference step; the resolver is built
	// without a classifier.
	resolver := engine.New(cat, store, nil, slog.Default())

	if err := resolver.RecordFeedback(ctx, productName, correctCode, source); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Recorded %s for %q. Future lookups resolve to it instantly.", correctCode, productName)))

	return nil
}
