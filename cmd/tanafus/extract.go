package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tanafus/engine/internal/extract"
	"github.com/tanafus/engine/pkg/formatting"
	"github.com/tanafus/engine/pkg/textract"
)

const extractWorkers = 4

var extractOut string

var extractCmd = &cobra.Command{
	Use:   "extract <file>...",
	Short: "Run the deterministic extraction pass over tender documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "directory for JSON results (default stdout)")
	rootCmd.AddCommand(extractCmd)
}

func documentSource() extract.TextSource {
	return extract.TextSourceFunc(func(ctx context.Context, data []byte) (extract.ExtractedText, error) {
		result, err := textract.Extract(ctx, data)
		if err != nil {
			return extract.ExtractedText{}, err
		}
		return extract.ExtractedText{Text: result.Text, PageCount: result.PageCount}, nil
	})
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	orchestrator := extract.NewOrchestrator(documentSource(), logger)

	if extractOut != "" {
		if err := os.MkdirAll(extractOut, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	results := make([]*extract.PreExtraction, len(args))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(extractWorkers)

	for i, path := range args {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			logger.InfoContext(
				gctx, "extracting document",
				"file", path,
				"size", formatting.FormatBytes(int64(len(data)), 1),
			)

			pre, err := orchestrator.Run(gctx, data)
			if err != nil {
				return fmt.Errorf("extract %s: %w", path, err)
			}
			results[i] = pre
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, pre := range results {
		if err := writeResult(args[i], pre); err != nil {
			return err
		}
	}
	return nil
}

func writeResult(source string, pre *extract.PreExtraction) error {
	data, err := json.MarshalIndent(pre, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if extractOut == "" {
		fmt.Println(string(data))
		return nil
	}

	name := filepath.Base(source)
	out := filepath.Join(extractOut, name[:len(name)-len(filepath.Ext(name))]+".json")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}
