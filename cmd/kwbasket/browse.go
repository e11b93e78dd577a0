package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kwbasket/kwbasket/internal/cli"
	"github.com/kwbasket/kwbasket/internal/engine"
	"github.com/kwbasket/kwbasket/internal/input"
	"github.com/kwbasket/kwbasket/internal/model"
	"github.com/kwbasket/kwbasket/internal/pattern"
	"github.com/kwbasket/kwbasket/internal/tui"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse baskets in an interactive terminal UI",
		Long: `Open an interactive browser over basket results.

Either load a recorded run:
  kwbasket browse --run 4f2a1c

Or classify fresh input on the fly:
  kwbasket browse --keywords keywords.csv --rules rules.yaml`,
		RunE: runBrowse,
	}

	cmd.Flags().String("run", "", "ID of a recorded run to browse")
	cmd.Flags().String("keywords", "", "CSV file with a Keyword column")
	cmd.Flags().String("column", input.DefaultKeywordColumn, "name of the keyword column")
	addDefinitionFlags(cmd)

	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	runID, _ := cmd.Flags().GetString("run")
	keywordsFile, _ := cmd.Flags().GetString("keywords")

	var baskets model.Baskets

	switch {
	case runID != "" && keywordsFile != "":
		return fmt.Errorf("--run and --keywords are mutually exclusive")

	case runID != "":
		store, err := initStorage(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		_, baskets, err = store.GetRun(ctx, runID)
		if err != nil {
			return err
		}

	case keywordsFile != "":
		column, _ := cmd.Flags().GetString("column")

		kf, err := os.Open(keywordsFile) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to open keywords file: %w", err)
		}
		keywords, err := input.ReadKeywords(kf, column)
		_ = kf.Close()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", keywordsFile, err)
		}

		defs, _, err := loadDefinitions(ctx, cmd)
		if err != nil {
			return err
		}

		rs, diags := pattern.NewRuleSet(defs)
		cli.RenderDiagnostics(os.Stderr, diags)

		baskets, err = engine.NewBuilder(rs).Build(ctx, keywords)
		if err != nil {
			return fmt.Errorf("classification failed: %w", err)
		}

	default:
		return fmt.Errorf("either --run or --keywords is required")
	}

	if len(baskets) == 0 {
		fmt.Println(cli.InfoStyle.Render("No baskets to browse."))
		return nil
	}

	return tui.Browse(baskets)
}
