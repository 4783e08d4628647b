package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/msyaifulbhr/hscode/internal/cli"
)

func overridesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overrides",
		Short: "Manage stored corrections",
	}

	cmd.AddCommand(overridesListCmd())

	return cmd
}

func overridesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all stored corrections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Error("Failed to close override store", "error", closeErr)
				}
			}()

			overrides, err := store.All(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Stored corrections (%d)", len(overrides))))
			fmt.Println(cli.RenderOverridesTable(overrides))

			return nil
		},
	}
}
