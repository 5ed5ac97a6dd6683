package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/picolabs/pico/core"
	"github.com/picolabs/pico/evidence"
)

// entry is one record of an ingestion file.
type entry struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// FileReport describes the outcome of loading one file.
type FileReport struct {
	File   string
	Loaded int
	Err    error
}

// Report aggregates the outcome of a directory load.
type Report struct {
	Files []FileReport
	Total int
}

// Failed returns the reports of files that could not be loaded.
func (r *Report) Failed() []FileReport {
	var out []FileReport
	for _, fr := range r.Files {
		if fr.Err != nil {
			out = append(out, fr)
		}
	}
	return out
}

// Loader ingests directories of JSON evidence files into the store.
type Loader struct {
	store  *evidence.Store
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithPoolSize sets the worker pool size for concurrent file loading.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}

		if l.pool != nil {
			l.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		l.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a loader over the given evidence store.
func NewLoader(store *evidence.Store, opts ...Option) (*Loader, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		store:  store,
		pool:   pool,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(l); err != nil {
			l.Release()
			return nil, err
		}
	}

	return l, nil
}

// Release frees the worker pool.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}

// LoadDirectory ingests every *.json file under dir. Files are loaded
// concurrently; a malformed file yields a per-file error in the report
// and a warn log while the rest of the batch continues.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) (*Report, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing ingestion files: %w", err)
	}
	sort.Strings(files)

	reports := make([]FileReport, len(files))
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		if err := l.pool.Submit(func() {
			defer wg.Done()
			reports[i] = l.loadFile(ctx, file)
		}); err != nil {
			wg.Done()
			reports[i] = FileReport{File: filepath.Base(file), Err: err}
		}
	}
	wg.Wait()

	report := &Report{Files: reports}
	for _, fr := range reports {
		if fr.Err != nil {
			l.logger.Warn("failed to load file", "file", fr.File, "err", fr.Err)
			continue
		}
		l.logger.Info("loaded file", "file", fr.File, "documents", fr.Loaded)
		report.Total += fr.Loaded
	}
	l.logger.Info("ingestion complete", "files", len(files), "documents", report.Total)
	return report, nil
}

func (l *Loader) loadFile(ctx context.Context, path string) FileReport {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return FileReport{File: name, Err: err}
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return FileReport{File: name, Err: fmt.Errorf("%w: %w", ErrMalformedFile, err)}
	}

	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		if core.Normalize(e.Text) == "" {
			continue
		}
		texts = append(texts, e.Text)
	}

	loaded, err := l.store.Upsert(ctx, texts, core.SourceIngested)
	if err != nil {
		return FileReport{File: name, Err: err}
	}
	return FileReport{File: name, Loaded: loaded}
}
