package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/statement-parser/internal/extract"
	"github.com/FACorreiaa/statement-parser/internal/output"
	"github.com/FACorreiaa/statement-parser/internal/source/csvfile"
	"github.com/FACorreiaa/statement-parser/internal/source/excel"
	"github.com/FACorreiaa/statement-parser/internal/statement"
	"github.com/FACorreiaa/statement-parser/pkg/config"
)

func newParseCommand() *cobra.Command {
	var outPath string
	var format string
	var delimiter string

	cmd := &cobra.Command{
		Use:   "parse <statement-file>",
		Short: "Parse one statement export into normalized transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if format != "" {
				cfg.Output.Format = format
			}
			return runParse(args[0], outPath, delimiter, cfg)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json, csv or xlsx (default from config)")
	cmd.Flags().StringVar(&delimiter, "delimiter", ",", "cell delimiter for csv input")

	return cmd
}

func runParse(inPath, outPath, delimiter string, cfg *config.Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))

	fmtName, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	doc, err := readDocument(inPath, delimiter, logger)
	if err != nil {
		return err
	}

	render := extract.RenderOptions{
		DateLayout:      cfg.Output.DateLayout,
		AmountPrecision: int32(cfg.Output.AmountPrecision),
		IncludeCategory: cfg.Output.IncludeCategory,
	}
	extractor := extract.NewExtractor(nil, nil, nil, render, logger)
	parser := statement.NewParser(extractor, nil, logger)

	res := parser.Process(doc)

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	payload := output.Document{
		Transactions:   res.Transactions,
		ClosingBalance: res.ClosingBalance,
	}
	if err := output.Write(out, fmtName, payload); err != nil {
		return err
	}

	logger.Info("parse finished",
		"input", inPath,
		"format", string(fmtName),
		"transactions", res.Summary.Parsed,
		"skipped", res.Summary.Skipped)
	return nil
}

// readDocument picks the acquisition path from the file extension.
func readDocument(path, delimiter string, logger *slog.Logger) (statement.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return statement.Document{}, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		tables, texts, err := excel.NewReader(logger).Read(f)
		if err != nil {
			return statement.Document{}, err
		}
		return statement.Document{Tables: tables, Texts: texts}, nil

	case ".csv", ".txt":
		runes := []rune(delimiter)
		if len(runes) != 1 {
			return statement.Document{}, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
		}
		table, err := csvfile.Read(f, runes[0])
		if err != nil {
			return statement.Document{}, err
		}
		return statement.Document{
			Tables: []extract.RawTable{table},
			Texts:  table.Flatten(),
		}, nil

	default:
		return statement.Document{}, fmt.Errorf("unsupported statement format %q (want xlsx or csv)", ext)
	}
}
