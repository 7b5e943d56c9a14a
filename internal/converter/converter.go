// Package converter runs the batch: it discovers input documents, parses
// each one and hands it to every enabled backend.
package converter

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ramlconv/internal/backend"
	"ramlconv/internal/config"
	"ramlconv/internal/generator"
	"ramlconv/internal/logger"
	"ramlconv/internal/parser"
)

// Extension is the file extension of input documents.
const Extension = ".raml"

var (
	// ErrNoInput is returned when discovery finds nothing to convert.
	ErrNoInput = errors.New("no input documents")

	// ErrNoBackends is returned when every backend is disabled.
	ErrNoBackends = errors.New("no backend enabled")

	// ErrConversionFailed marks a batch in which at least one unit failed.
	ErrConversionFailed = errors.New("conversion failed")
)

// Unit is the outcome of one (document, backend) pair. Backend is empty
// when the document itself could not be parsed.
type Unit struct {
	Document string
	Backend  string
	Result   *generator.Result
	Err      error
}

// Summary collects every unit of a batch.
type Summary struct {
	RunID string
	Units []Unit
}

// Failed returns the units that ended in an error.
func (s *Summary) Failed() []Unit {
	var failed []Unit
	for _, u := range s.Units {
		if u.Err != nil {
			failed = append(failed, u)
		}
	}
	return failed
}

// Artifacts returns every written file in batch order.
func (s *Summary) Artifacts() []string {
	var paths []string
	for _, u := range s.Units {
		if u.Result != nil {
			paths = append(paths, u.Result.Artifacts...)
		}
	}
	return paths
}

// Err returns nil when every unit succeeded.
func (s *Summary) Err() error {
	failed := s.Failed()
	if len(failed) == 0 {
		return nil
	}
	first := failed[0]
	return errors.Mark(
		errors.Wrapf(first.Err, "%d of %d conversions failed, first: %s", len(failed), len(s.Units), first.Document),
		ErrConversionFailed)
}

// Converter runs batches for one configuration.
type Converter struct {
	cfg    *config.Config
	parser *parser.Parser
}

// New creates a Converter. cfg must already be validated.
func New(cfg *config.Config) *Converter {
	return &Converter{
		cfg:    cfg,
		parser: parser.New(cfg.RootTypes...),
	}
}

// Inputs returns the documents to convert: the configured file alone, or
// every .raml file in the input directory sorted by name.
func Inputs(cfg *config.Config) ([]string, error) {
	if cfg.InputFileName != "" {
		info, err := os.Stat(cfg.InputFileName)
		if err != nil {
			return nil, errors.Wrapf(err, "input file %s", cfg.InputFileName)
		}
		if info.IsDir() {
			return nil, errors.Wrapf(ErrNoInput, "%s is a directory", cfg.InputFileName)
		}
		return []string{cfg.InputFileName}, nil
	}

	dir := cfg.InputDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading input directory %s", dir)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isInput(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, errors.WithHintf(
			errors.Wrapf(ErrNoInput, "in %s", dir),
			"pass --file or point --input-dir at a directory containing *%s files", Extension)
	}
	return paths, nil
}

func isInput(name string) bool {
	return strings.EqualFold(filepath.Ext(name), Extension)
}

// Run converts every input document with every enabled backend.
//
// Discovery problems and cancellation are returned as errors. Failures of
// individual units are recorded in the Summary and never stop the batch.
func (c *Converter) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{RunID: uuid.NewString()}
	log := logger.With("run", summary.RunID)

	kinds := c.cfg.EnabledBackends()
	if len(kinds) == 0 {
		return summary, errors.WithHint(ErrNoBackends, "enable at least one of --xml, --json, --cs or --ts")
	}

	paths, err := Inputs(c.cfg)
	if err != nil {
		return summary, err
	}

	log.Infow("starting batch", "documents", len(paths), "backends", kinds)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Units = append(summary.Units, c.convert(log, path, kinds)...)
	}

	log.Infow("batch finished", "units", len(summary.Units), "failed", len(summary.Failed()))
	return summary, nil
}

func (c *Converter) convert(log *zap.SugaredLogger, path string, kinds []backend.Kind) []Unit {
	doc, err := c.parser.ParseFile(path)
	if err != nil {
		log.Errorw("cannot parse document", "document", path, "error", err)
		return []Unit{{Document: path, Err: err}}
	}

	units := make([]Unit, 0, len(kinds))
	for _, kind := range kinds {
		unit := Unit{Document: path, Backend: string(kind)}

		b, err := backend.New(kind)
		if err != nil {
			unit.Err = err
			units = append(units, unit)
			continue
		}

		unit.Result, unit.Err = b.Run(doc, c.cfg.OptionsFor(kind))
		if unit.Err != nil {
			log.Errorw("conversion failed", "document", path, "backend", kind, "error", unit.Err)
		}
		units = append(units, unit)
	}
	return units
}
