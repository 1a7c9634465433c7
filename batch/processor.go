package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/pagelayout"
	"github.com/tsawler/pagelayout/export"
	"github.com/tsawler/pagelayout/format"
	"github.com/tsawler/pagelayout/layout"
	"github.com/tsawler/pagelayout/model"
	"github.com/tsawler/pagelayout/reader"
	"github.com/tsawler/pagelayout/source"
)

// Opener opens the page source for one input file
type Opener func(path string) (source.PageSource, error)

// FileError is a document that could not be processed
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Result describes one input file after processing
type Result struct {
	Input    string
	Output   string // empty when the document failed
	Pages    int
	Elements map[model.ElementType]int
	Warnings []pagelayout.Warning
	Err      error
	Duration time.Duration
}

// Summary reports the outcome of a batch
type Summary struct {
	// Results holds one entry per input file in name order
	Results []Result

	// Failed lists the documents that could not be decoded
	Failed []*FileError

	// Elements counts structure elements by type over all written documents
	Elements map[model.ElementType]int
}

// Processed returns the number of documents written
func (s *Summary) Processed() int {
	n := 0
	for _, r := range s.Results {
		if r.Output != "" {
			n++
		}
	}
	return n
}

// Processor converts a folder of PDFs
type Processor struct {
	// Open creates the page source for a file. Defaults to the PDF reader
	// with ReaderOptions.
	Open Opener

	ReaderOptions reader.Options
	Analyzer      layout.AnalyzerConfig
	Encoder       export.Encoder

	// Workers bounds the number of documents processed at once
	Workers int

	Logger *logrus.Logger

	// OnDocument is called after each document, from one goroutine at a time
	OnDocument func(Result)
}

// NewProcessor creates a processor with default settings writing JSON
func NewProcessor(logger *logrus.Logger) *Processor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Processor{
		ReaderOptions: reader.DefaultOptions(),
		Analyzer:      layout.DefaultAnalyzerConfig(),
		Encoder:       export.NewJSONEncoder(),
		Workers:       1,
		Logger:        logger,
	}
}

// List returns the PDF files directly inside dir, sorted by name
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input folder: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || format.Detect(entry.Name()) != format.PDF {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Run processes every PDF in inDir and writes results to outDir, which is
// created if needed. The returned error is set only when the batch could
// not complete: the input folder is unreadable, an output file could not
// be written or ctx was cancelled. The summary is returned in every case.
func (p *Processor) Run(ctx context.Context, inDir, outDir string) (*Summary, error) {
	summary := &Summary{Elements: make(map[model.ElementType]int)}

	files, err := List(inDir)
	if err != nil {
		return summary, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return summary, fmt.Errorf("creating output folder: %w", err)
	}

	log := p.logger().WithFields(logrus.Fields{
		"input":  inDir,
		"output": outDir,
		"files":  len(files),
	})
	log.Info("Starting batch")

	results := make([]*Result, len(files))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := p.processFile(path, outDir)

			mu.Lock()
			defer mu.Unlock()
			results[i] = res
			if p.OnDocument != nil {
				p.OnDocument(*res)
			}
			return err
		})
	}

	runErr := g.Wait()

	for _, res := range results {
		if res == nil {
			continue
		}
		summary.Results = append(summary.Results, *res)
		if res.Output == "" && res.Err != nil {
			var fe *FileError
			if errors.As(res.Err, &fe) {
				summary.Failed = append(summary.Failed, fe)
			}
			continue
		}
		for et, n := range res.Elements {
			summary.Elements[et] += n
		}
	}

	if runErr != nil {
		log.WithError(runErr).Error("Batch stopped")
		return summary, runErr
	}

	log.WithFields(logrus.Fields{
		"processed": summary.Processed(),
		"failed":    len(summary.Failed),
	}).Info("Batch complete")
	return summary, nil
}

// processFile analyzes one document and writes its output. A decode
// failure is reported in the result only; a write failure is also
// returned so the batch stops.
func (p *Processor) processFile(path, outDir string) (*Result, error) {
	start := time.Now()
	res := &Result{Input: path}
	log := p.logger().WithField("file", filepath.Base(path))

	doc, warnings, err := p.analyze(path)
	res.Warnings = warnings
	res.Duration = time.Since(start)
	for _, w := range warnings {
		log.WithField("page", w.Page).Warn(w.Message)
	}
	if err != nil {
		res.Err = &FileError{Path: path, Err: err}
		log.WithError(err).Error("Skipping document")
		return res, nil
	}

	res.Pages = doc.PageCount()
	res.Elements = doc.ElementCounts()

	outPath := filepath.Join(outDir, export.OutputName(filepath.Base(path), p.encoder()))
	if err := export.WriteFile(p.encoder(), doc, outPath); err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		log.WithError(err).Error("Failed to write output")
		return res, err
	}

	res.Output = outPath
	res.Duration = time.Since(start)
	log.WithFields(logrus.Fields{
		"pages":    res.Pages,
		"elements": countAll(res.Elements),
		"duration": res.Duration.Round(time.Millisecond),
	}).Debug("Wrote document")
	return res, nil
}

// analyze builds the layout document for a file. The source is closed on
// every path.
func (p *Processor) analyze(path string) (doc *model.Document, warnings []pagelayout.Warning, err error) {
	src, err := p.opener()(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			doc, err = nil, fmt.Errorf("closing source: %w", cerr)
		}
	}()

	doc, warnings, err = pagelayout.FromSource(src).WithAnalyzerConfig(p.Analyzer).Document()
	if err != nil {
		return nil, warnings, err
	}
	doc.Source = path
	return doc, warnings, nil
}

func (p *Processor) opener() Opener {
	if p.Open != nil {
		return p.Open
	}
	opts := p.ReaderOptions
	return func(path string) (source.PageSource, error) {
		return reader.OpenWithOptions(path, opts)
	}
}

func (p *Processor) encoder() export.Encoder {
	if p.Encoder == nil {
		return export.NewJSONEncoder()
	}
	return p.Encoder
}

func (p *Processor) workers() int {
	if p.Workers < 1 {
		return 1
	}
	return p.Workers
}

func (p *Processor) logger() *logrus.Logger {
	if p.Logger == nil {
		return logrus.StandardLogger()
	}
	return p.Logger
}

func countAll(counts map[model.ElementType]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
