package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kwbasket/kwbasket/internal/common"
	"github.com/kwbasket/kwbasket/internal/config"
	"github.com/kwbasket/kwbasket/internal/input"
	"github.com/kwbasket/kwbasket/internal/model"
	"github.com/kwbasket/kwbasket/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/kwbasket/kwbasket.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadDefinitions resolves category definitions from exactly one of the
// --rules, --names, or --ruleset flags.
func loadDefinitions(ctx context.Context, cmd *cobra.Command) ([]model.CategoryDefinition, string, error) {
	rulesFile, _ := cmd.Flags().GetString("rules")
	namesFile, _ := cmd.Flags().GetString("names")
	rulesetName, _ := cmd.Flags().GetString("ruleset")

	given := 0
	for _, v := range []string{rulesFile, namesFile, rulesetName} {
		if v != "" {
			given++
		}
	}
	if given != 1 {
		return nil, "", fmt.Errorf("exactly one of --rules, --names, or --ruleset is required")
	}

	switch {
	case rulesFile != "":
		f, err := os.Open(rulesFile) // #nosec G304
		if err != nil {
			return nil, "", common.NewUserError(fmt.Sprintf("could not open rules file %s", rulesFile), err)
		}
		defer func() { _ = f.Close() }()

		defs, err := input.ReadCategoryRules(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", rulesFile, err)
		}
		return defs, "", nil

	case namesFile != "":
		f, err := os.Open(namesFile) // #nosec G304
		if err != nil {
			return nil, "", common.NewUserError(fmt.Sprintf("could not open names file %s", namesFile), err)
		}
		defer func() { _ = f.Close() }()

		defs, err := input.ReadCategoryNames(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", namesFile, err)
		}
		return defs, "", nil

	default:
		store, err := initStorage(ctx)
		if err != nil {
			return nil, "", err
		}
		defer func() { _ = store.Close() }()

		defs, err := store.GetRuleSet(ctx, rulesetName)
		if err != nil {
			return nil, "", err
		}
		return defs, rulesetName, nil
	}
}

// addDefinitionFlags registers the shared category source flags.
func addDefinitionFlags(cmd *cobra.Command) {
	cmd.Flags().String("rules", "", "YAML rules file (ordered categories with patterns)")
	cmd.Flags().String("names", "", "CSV file with a Category column; patterns derived from name words")
	cmd.Flags().String("ruleset", "", "name of a stored rule set")
}

// saveConfig writes the current viper configuration back to disk.
func saveConfig() error {
	if err := viper.WriteConfig(); err != nil {
		// No config file yet; create one in the default location.
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return homeErr
		}
		dir := fmt.Sprintf("%s/.config/kwbasket", home)
		if mkErr := os.MkdirAll(dir, 0750); mkErr != nil {
			return mkErr
		}
		return viper.WriteConfigAs(dir + "/config.yaml")
	}
	return nil
}
