package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/medclaims/claims-pipeline/internal/common"
	"github.com/medclaims/claims-pipeline/internal/entity"
	"github.com/medclaims/claims-pipeline/internal/export"
	"github.com/medclaims/claims-pipeline/internal/llm/openai"
	"github.com/medclaims/claims-pipeline/internal/pipeline"
	"github.com/medclaims/claims-pipeline/internal/policy"
	"github.com/medclaims/claims-pipeline/internal/version"
)

var (
	flagDir      string
	flagPolicyDB string
	flagXLSX     string
	flagVerbose  bool
)

func main() {
	root := &cobra.Command{
		Use:   "claims-adjudicate",
		Short: "Adjudicate one claim from a directory of page text files",
		Long: `Reads the *.txt page files of a single claim (one file per page,
ordered by file name), runs the full adjudication pipeline, and prints the
claim result as JSON.`,
		RunE: run,
	}

	root.Flags().StringVarP(&flagDir, "dir", "d", "", "directory holding the claim's page .txt files (required)")
	root.Flags().StringVar(&flagPolicyDB, "policy-db", "", "path to a sqlite policy store; seeds the demo policy when the file is new")
	root.Flags().StringVar(&flagXLSX, "xlsx", "", "also write the result as an XLSX workbook at this path")
	root.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log pipeline stages to stderr")
	_ = root.MarkFlagRequired("dir")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	versions, err := version.Load(cfg.Versions.GlobalPath, cfg.Versions.DocumentsPath)
	if err != nil {
		return err
	}

	pageTexts, err := readPages(flagDir)
	if err != nil {
		return err
	}
	if len(pageTexts) == 0 {
		return fmt.Errorf("no .txt page files in %s", flagDir)
	}

	ctx := cmd.Context()
	policies, cleanup, err := openPolicyStore(ctx, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	client := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       versions.Model(),
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		MaxAttempts: cfg.LLM.MaxAttempts,
		RetryDelay:  cfg.LLM.RetryDelay,
	}, logger)

	pipe, err := pipeline.New(logger, versions, client, policies, cfg.Pipeline)
	if err != nil {
		return err
	}

	result, err := pipe.Process(ctx, pageTexts)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if flagXLSX != "" {
		book, err := export.NewService(logger).ClaimsXLSX([]*entity.ClaimResult{result})
		if err != nil {
			return err
		}
		if err := os.WriteFile(flagXLSX, book, 0o644); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
		logger.Info("cli.xlsx_written", "path", flagXLSX)
	}
	return nil
}

// readPages collects the claim's page texts, one file per page, ordered by
// file name.
func readPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read claim directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	texts := make([]string, 0, len(names))
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", name, err)
		}
		texts = append(texts, string(b))
	}
	return texts, nil
}

func openPolicyStore(ctx context.Context, logger *slog.Logger) (policy.Repository, func(), error) {
	if flagPolicyDB == "" {
		return policy.DemoStore{}, func() {}, nil
	}
	store, err := policy.OpenSQLite(flagPolicyDB, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := store.SeedPolicy(ctx, policy.DemoPolicy("POL-DEMO-001")); err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, func() { store.Close() }, nil
}
