package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tanafus/engine/internal/catalog"
	"github.com/tanafus/engine/internal/config"
)

var (
	matchLimit int
	matchFloor float64
)

var matchCmd = &cobra.Command{
	Use:   "match <query>",
	Short: "Match free-text item descriptions against the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().IntVarP(&matchLimit, "limit", "n", 10, "maximum matches returned")
	matchCmd.Flags().Float64Var(&matchFloor, "floor", catalog.CostItemFloor, "minimum similarity score")
	matchCmd.Flags().StringVar(&catalogFile, "catalog", "", "JSON catalog file to use instead of the database")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	items, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	matches := catalog.Search(args[0], items, matchFloor, matchLimit)
	if len(matches) == 0 {
		logger.Info("no matches above floor", "query", args[0], "floor", matchFloor)
		return nil
	}

	out, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("encode matches: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
