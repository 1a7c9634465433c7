package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/tsawler/pagelayout/batch"
	"github.com/tsawler/pagelayout/config"
	"github.com/tsawler/pagelayout/export"
	"github.com/tsawler/pagelayout/model"
	"github.com/tsawler/pagelayout/version"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "pagelayout <input_folder> <output_folder>",
		Short: "Reconstruct the layout of PDF documents",
		Long: `pagelayout reads every PDF in the input folder, groups glyphs into words
and lines, classifies each line as a title, heading level or paragraph, and
writes one JSON document per PDF to the output folder.

Settings are read from pagelayout.yaml (in the current directory or
~/.pagelayout), PAGELAYOUT_* environment variables and the flags below.`,
		Version: version.GitRelease,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runBatch(cmd, cfgFile, args[0], args[1])
		},
	}

	def := config.Default()
	flags := cmd.Flags()
	flags.Float64("x-tolerance", def.XTolerance, "largest horizontal gap inside a word")
	flags.Float64("y-tolerance", def.YTolerance, "vertical quantization step for grouping lines")
	flags.Float64("default-font-size", def.DefaultFontSize, "font size statistics for pages without text")
	flags.String("line-order", def.LineOrder, "line order: source or top-down")
	flags.Bool("tables", def.Tables, "detect ruled tables")
	flags.Bool("images", def.Images, "report image placements")
	flags.IntP("workers", "w", def.Workers, "documents processed in parallel")
	flags.StringP("format", "f", def.Format, "output format: json, markdown or html")
	flags.String("log-level", def.LogLevel, "log level: debug, info, warn or error")
	flags.String("log-format", def.LogFormat, "log format: text or json")
	flags.Bool("progress", def.Progress, "show a progress bar")

	cmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./pagelayout.yaml or ~/.pagelayout/pagelayout.yaml)",
	)

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitConfigCmd())

	return cmd
}

func runBatch(cmd *cobra.Command, cfgFile, inDir, outDir string) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger := cfg.Logger()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.WithField("version", version.String()).Debug("pagelayout starting")

	enc, err := export.New(cfg.OutputFormat())
	if err != nil {
		return err
	}

	p := batch.NewProcessor(logger)
	p.ReaderOptions = cfg.ReaderOptions()
	p.Analyzer = cfg.AnalyzerConfig()
	p.Encoder = enc
	p.Workers = cfg.Workers

	if cfg.Progress {
		if files, err := batch.List(inDir); err == nil && len(files) > 0 {
			bar := newProgressBar(cmd.ErrOrStderr(), len(files))
			p.OnDocument = func(batch.Result) { _ = bar.Add(1) }
			defer func() { _ = bar.Finish() }()
		}
	}

	summary, err := p.Run(cmd.Context(), inDir, outDir)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), summary)

	if len(summary.Failed) > 0 {
		return fmt.Errorf("%d of %d documents failed", len(summary.Failed), len(summary.Results))
	}
	return nil
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(color.BlueString("Analyzing")),
		progressbar.OptionSetItsString("docs"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
}

func printSummary(w io.Writer, summary *batch.Summary) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	green.Fprintf(w, "✓ %d documents written\n", summary.Processed())

	types := make([]model.ElementType, 0, len(summary.Elements))
	for et := range summary.Elements {
		types = append(types, et)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, et := range types {
		fmt.Fprintf(w, "  %-10s %d\n", et, summary.Elements[et])
	}

	for _, f := range summary.Failed {
		red.Fprintf(w, "✗ %s: %v\n", filepath.Base(f.Path), f.Err)
	}
}
