package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"portfolio.dconn.dev/internal/store"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the project store for missing or duplicate ids and bad media",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		source := store.New(cfg.Store)
		projects, err := source.Load(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		problems := store.Validate(projects)
		for _, p := range problems {
			fmt.Fprintln(out, p)
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d problem(s) in %s", len(problems), source)
		}
		fmt.Fprintf(out, "%s: %d project(s) OK\n", source, len(projects))
		return nil
	},
}
