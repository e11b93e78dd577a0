package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kwbasket/kwbasket/internal/cli"
	"github.com/kwbasket/kwbasket/internal/common"
	"github.com/kwbasket/kwbasket/internal/pattern"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage stored category rule sets",
		Long:  `Import, list, inspect, and delete the named rule sets used for keyword classification.`,
	}

	cmd.AddCommand(importRuleSetCmd())
	cmd.AddCommand(listRuleSetsCmd())
	cmd.AddCommand(showRuleSetCmd())
	cmd.AddCommand(deleteRuleSetCmd())

	return cmd
}

func importRuleSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <name>",
		Short: "Import a rule set from a file",
		Long: `Store a named rule set from a YAML rules file or a names-only CSV.
The category and pattern order of the file is preserved exactly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]
			force, _ := cmd.Flags().GetBool("force")

			defs, _, err := loadDefinitions(ctx, cmd)
			if err != nil {
				return err
			}

			// Surface invalid patterns at import time so they are not a
			// surprise on the first classify.
			_, diags := pattern.NewRuleSet(defs)
			cli.RenderDiagnostics(os.Stderr, diags)

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if force {
				if err := store.DeleteRuleSet(ctx, name); err != nil && !errors.Is(err, common.ErrNotFound) {
					return err
				}
			}

			if err := store.SaveRuleSet(ctx, name, defs); err != nil {
				if errors.Is(err, common.ErrDuplicateEntry) {
					return fmt.Errorf("rule set %q already exists (use --force to replace it)", name)
				}
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported rule set %q with %d categories", name, len(defs))))
			return nil
		},
	}

	addDefinitionFlags(cmd)
	// A stored set can't be its own import source.
	_ = cmd.Flags().MarkHidden("ruleset")
	cmd.Flags().Bool("force", false, "replace an existing rule set with the same name")

	return cmd
}

func listRuleSetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored rule sets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			names, err := store.ListRuleSets(ctx)
			if err != nil {
				return fmt.Errorf("failed to list rule sets: %w", err)
			}

			if len(names) == 0 {
				fmt.Println(cli.InfoStyle.Render("No rule sets found. Use 'kwbasket categories import' to create one."))
				return nil
			}

			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func showRuleSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show the categories and patterns of a rule set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			defs, err := store.GetRuleSet(ctx, args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\n",
				cli.BoldStyle.Render("Category"),
				cli.BoldStyle.Render("Patterns"))
			fmt.Fprintf(w, "%s\t%s\n",
				strings.Repeat("-", 24),
				strings.Repeat("-", 40))

			for _, def := range defs {
				fmt.Fprintf(w, "%s\t%s\n", def.Name, strings.Join(def.Patterns, ", "))
			}

			return nil
		},
	}
}

func deleteRuleSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored rule set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteRuleSet(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted rule set %q", args[0])))
			return nil
		},
	}
}
