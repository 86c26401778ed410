package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tanafus/engine/internal/config"
	"github.com/tanafus/engine/internal/extract"
	"github.com/tanafus/engine/internal/pipeline"
	"github.com/tanafus/engine/internal/providers"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a tender document with the configured model, verified",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	orchestrator := extract.NewOrchestrator(documentSource(), logger)
	p := pipeline.New(orchestrator, provider, logger)

	job, err := p.Analyze(cmd.Context(), data)
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
