package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kwbasket/kwbasket/internal/cli"
	"github.com/kwbasket/kwbasket/internal/common"
	"github.com/kwbasket/kwbasket/internal/config"
	"github.com/kwbasket/kwbasket/internal/engine"
	"github.com/kwbasket/kwbasket/internal/export"
	"github.com/kwbasket/kwbasket/internal/input"
	"github.com/kwbasket/kwbasket/internal/model"
	"github.com/kwbasket/kwbasket/internal/pattern"
	"github.com/kwbasket/kwbasket/internal/service"
	"github.com/kwbasket/kwbasket/internal/sheets"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a keyword list into baskets",
		Long: `Classify every keyword in a CSV file into baskets using ordered,
first-match-wins category pattern rules.

Examples:
  # Classify with a YAML rules file, write CSV rows
  kwbasket classify --keywords keywords.csv --rules rules.yaml --output baskets.csv

  # Names-only categories (word matching), readable text to stdout
  kwbasket classify --keywords keywords.csv --names categories.csv --format text

  # Use a stored rule set and export the nested JSON shape
  kwbasket classify --keywords keywords.csv --ruleset oktoberfest --format json --output baskets.json`,
		RunE: runClassify,
	}

	cmd.Flags().String("keywords", "", "CSV file with a Keyword column (required)")
	cmd.Flags().String("column", input.DefaultKeywordColumn, "name of the keyword column")
	addDefinitionFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringP("format", "f", "csv", "output format (csv, text, json)")
	cmd.Flags().Bool("sheets", false, "also export the baskets to Google Sheets")
	cmd.Flags().Bool("no-save", false, "do not record this run in the database")
	cmd.Flags().Duration("match-timeout", 0, "per-pattern match time limit (0 = unlimited)")
	_ = cmd.MarkFlagRequired("keywords")

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	keywordsFile, _ := cmd.Flags().GetString("keywords")
	column, _ := cmd.Flags().GetString("column")
	outputFile, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	toSheets, _ := cmd.Flags().GetBool("sheets")
	noSave, _ := cmd.Flags().GetBool("no-save")
	matchTimeout, _ := cmd.Flags().GetDuration("match-timeout")

	kf, err := os.Open(keywordsFile) // #nosec G304
	if err != nil {
		return common.NewUserError(fmt.Sprintf("could not open keywords file %s", keywordsFile), err)
	}
	keywords, err := input.ReadKeywords(kf, column)
	_ = kf.Close()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", keywordsFile, err)
	}
	if len(keywords) == 0 {
		return fmt.Errorf("no keywords found in %s", keywordsFile)
	}

	defs, rulesetName, err := loadDefinitions(ctx, cmd)
	if err != nil {
		return err
	}

	var opts []pattern.Option
	if matchTimeout > 0 {
		opts = append(opts, pattern.WithMatchTimeout(matchTimeout))
	}
	rs, diags := pattern.NewRuleSet(defs, opts...)
	if rs.Empty() {
		fmt.Fprintln(os.Stderr, cli.FormatWarning(common.ErrEmptyRuleSet.Error()+"; every keyword will be uncategorized"))
	}

	builder := engine.NewBuilder(rs)
	bar := cli.NewClassifyProgress(len(keywords), os.Stderr)
	builder.OnProgress = func(_, _ int) {
		_ = bar.Add(1)
	}

	baskets, err := builder.Build(ctx, keywords)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	cli.RenderDiagnostics(os.Stderr, diags)
	if err := cli.RenderSummary(os.Stderr, baskets); err != nil {
		return err
	}

	if err := writeExport(baskets, format, outputFile); err != nil {
		return err
	}

	if toSheets {
		if err := exportToSheets(ctx, baskets); err != nil {
			return err
		}
	}

	if !noSave {
		if err := saveRun(ctx, baskets, keywordsFile, rulesetName, len(keywords)); err != nil {
			// Run history is a convenience; the export already succeeded.
			slog.Warn("failed to save run", "error", err)
		}
	}

	return nil
}

// writeExport serializes the baskets in the requested format.
func writeExport(baskets model.Baskets, format, outputFile string) error {
	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	var err error
	switch format {
	case "csv":
		err = export.WriteCSV(w, baskets)
	case "text":
		err = export.WriteText(w, baskets)
	case "json":
		err = export.WriteJSON(w, baskets)
	default:
		return fmt.Errorf("invalid format %q (expected csv, text, or json)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s export: %w", format, err)
	}

	if outputFile != "" {
		fmt.Fprintln(os.Stderr, cli.FormatSuccess(fmt.Sprintf("Wrote %s export to %s", format, outputFile)))
	}
	return nil
}

// exportToSheets uploads the baskets using the configured credentials.
func exportToSheets(ctx context.Context, baskets model.Baskets) error {
	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("sheets export not configured: %w", err)
	}

	var writer service.ReportWriter
	writer, err = sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
	if err != nil {
		return err
	}

	if err := writer.Write(ctx, baskets, baskets.Summary()); err != nil {
		return fmt.Errorf("sheets export failed: %w", err)
	}

	fmt.Fprintln(os.Stderr, cli.FormatSuccess("Exported baskets to Google Sheets"))
	return nil
}

// saveRun records the run in the local database.
func saveRun(ctx context.Context, baskets model.Baskets, source, rulesetName string, keywordCount int) error {
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	summary := baskets.Summary()
	run := &model.Run{
		ID:            uuid.New().String(),
		CreatedAt:     time.Now(),
		Source:        source,
		RuleSetName:   rulesetName,
		KeywordCount:  keywordCount,
		BasketCount:   summary.BasketCount,
		Uncategorized: summary.Uncategorized,
	}

	if err := store.SaveRun(ctx, run, baskets); err != nil {
		return err
	}

	slog.Debug("recorded run", "id", run.ID)
	return nil
}
