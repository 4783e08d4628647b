package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/msyaifulbhr/hscode/internal/cli"
	"github.com/msyaifulbhr/hscode/internal/common"
	"github.com/msyaifulbhr/hscode/internal/engine"
	"github.com/msyaifulbhr/hscode/internal/model"
)

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve \"product name[; product name...]\"",
		Short: "Resolve product descriptions to HS codes",
		Long: `Resolve one or more free-text product descriptions to 6-digit HS codes.

Multiple items are separated by semicolons and resolved concurrently;
results keep input order. Stored corrections take precedence over the
model: a product name you have corrected before resolves instantly.

Examples:
  hscode resolve "live cattle"
  hscode resolve "sapi hidup; komputer portabel"
  hscode resolve "thermometer" --context "clinical use"
  hscode resolve "reagent kit" --priority 382200,382300`,
		Args: cobra.ExactArgs(1),
		RunE: runResolve,
	}

	cmd.Flags().StringP("context", "c", "", "Optional product context (intended use, material, industry)")
	cmd.Flags().StringP("priority", "p", "", "Comma-separated codes to consult before the full catalog")

	_ = viper.BindPFlag("resolve.context", cmd.Flags().Lookup("context"))
	_ = viper.BindPFlag("resolve.priority", cmd.Flags().Lookup("priority"))

	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rawInput := args[0]
	productContext := viper.GetString("resolve.context")
	priority := priorityCodes()

	itemCount := len(strings.Split(rawInput, ";"))

	var bar *progressbar.ProgressBar
	engineCfg := engine.DefaultConfig()
	if itemCount > 1 {
		bar = progressbar.NewOptions(itemCount,
			progressbar.OptionSetDescription("Resolving"),
			progressbar.OptionClearOnFinish(),
		)
		engineCfg.OnProgress = func(completed, total int) {
			_ = bar.Set(completed)
		}
	}

	resolver, cleanup, err := createResolver(engineCfg)
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := resolver.Resolve(ctx, rawInput, productContext, priority)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return resolveError(err)
	}

	for _, result := range results {
		fmt.Println(cli.RenderResult(result))
	}

	fmt.Println(cli.SubtleStyle.Render(
		"Not right? Record the correct code with: hscode feedback \"<product name>\" <code>"))

	return nil
}

// resolveError maps engine failures to actionable user messages; quota
// exhaustion and generic failure call for different corrective actions.
func resolveError(err error) error {
	switch {
	case errors.Is(err, common.ErrNoValidItems):
		return common.NewUserError(
			"No valid product names found. Separate items with ';' and use at least 2 characters each", err)
	case errors.Is(err, common.ErrQuotaExhausted):
		return common.NewUserError(
			fmt.Sprintf("The inference provider's quota is exhausted. Wait %s before retrying", common.QuotaCooldown), err)
	case errors.Is(err, common.ErrInferenceUnavailable):
		return common.NewUserError(
			"The inference provider is unreachable. Check your network and retry", err)
	default:
		return err
	}
}

// priorityCodes reads the priority list from the --priority flag,
// falling back to the priority.codes config key.
func priorityCodes() model.PriorityList {
	raw := viper.GetString("resolve.priority")
	if raw == "" {
		codes := viper.GetStringSlice("priority.codes")
		return model.PriorityList(codes)
	}

	var priority model.PriorityList
	for _, code := range strings.Split(raw, ",") {
		code = strings.TrimSpace(code)
		if code != "" {
			priority = append(priority, code)
		}
	}
	return priority
}
