package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kwbasket/kwbasket/internal/cli"
)

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect past classification runs",
		Long:  `List recorded classification runs and re-export their baskets in any format.`,
	}

	cmd.AddCommand(listRunsCmd())
	cmd.AddCommand(showRunCmd())
	cmd.AddCommand(exportRunCmd())

	return cmd
}

func listRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.ListRuns(ctx)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			if len(runs) == 0 {
				fmt.Println(cli.InfoStyle.Render("No runs recorded yet. Run 'kwbasket classify' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Created"),
				cli.BoldStyle.Render("Source"),
				cli.BoldStyle.Render("Keywords"),
				cli.BoldStyle.Render("Baskets"),
				cli.BoldStyle.Render("Uncategorized"))

			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
					shortID(run.ID),
					run.CreatedAt.Format("2006-01-02 15:04"),
					run.Source,
					run.KeywordCount,
					run.BasketCount,
					run.Uncategorized)
			}

			return nil
		},
	}
}

func showRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the summary of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			run, baskets, err := store.GetRun(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Run %s", shortID(run.ID))))
			fmt.Printf("Created:  %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Source:   %s\n", run.Source)
			if run.RuleSetName != "" {
				fmt.Printf("Rule set: %s\n", run.RuleSetName)
			}
			fmt.Println()

			return cli.RenderSummary(os.Stdout, baskets)
		},
	}
}

func exportRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Re-export the baskets of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			outputFile, _ := cmd.Flags().GetString("output")
			format, _ := cmd.Flags().GetString("format")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			_, baskets, err := store.GetRun(ctx, args[0])
			if err != nil {
				return err
			}

			return writeExport(baskets, format, outputFile)
		},
	}

	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringP("format", "f", "csv", "output format (csv, text, json)")

	return cmd
}

// shortID trims a UUID to its first segment for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
