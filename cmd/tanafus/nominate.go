package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tanafus/engine/internal/catalog"
	"github.com/tanafus/engine/internal/config"
	"github.com/tanafus/engine/internal/extract"
	"github.com/tanafus/engine/internal/pipeline"
	"github.com/tanafus/engine/internal/providers"
	"github.com/tanafus/engine/pkg/database"
)

var catalogFile string

var nominateCmd = &cobra.Command{
	Use:   "nominate <file>",
	Short: "Generate spec cards from a tender's bill of quantities and nominate catalog products",
	Args:  cobra.ExactArgs(1),
	RunE:  runNominate,
}

func init() {
	nominateCmd.Flags().StringVar(&catalogFile, "catalog", "", "JSON catalog file to use instead of the database")
	rootCmd.AddCommand(nominateCmd)
}

func runNominate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	provider, err := providers.New(providers.Config{
		Model:     cfg.Provider.Model,
		APIKey:    cfg.Provider.APIKey,
		MaxTokens: cfg.Provider.MaxTokens,
	})
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}

	items, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	orchestrator := extract.NewOrchestrator(documentSource(), logger)
	pre, err := orchestrator.Run(ctx, data)
	if err != nil {
		return fmt.Errorf("extract %s: %w", args[0], err)
	}

	p := pipeline.New(orchestrator, provider, logger)
	job, err := p.Nominate(ctx, pre.BOQ.Items, items)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// loadCatalog reads items from the catalog file when one is given, otherwise
// from the configured database.
func loadCatalog(ctx context.Context, cfg *config.Config) ([]catalog.Item, error) {
	if catalogFile != "" {
		data, err := os.ReadFile(catalogFile)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", catalogFile, err)
		}
		var items []catalog.Item
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode catalog %s: %w", catalogFile, err)
		}
		return items, nil
	}

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("create database: %w", err)
	}
	defer db.Close()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	items, err := catalog.NewRepository(db.Connection()).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return items, nil
}
