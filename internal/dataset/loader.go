// Package dataset loads the fixed set of dataset CSV files into
// immutable in-memory tables.
package dataset

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pitchlens/pitchlens/internal/cache"
	"github.com/pitchlens/pitchlens/internal/model"
	"github.com/pitchlens/pitchlens/internal/worker"
)

// Loader performs the bulk load phase: a fixed list of CSV files is
// read from the data directory, each becoming a Table. A missing file
// is skipped with a warning; a file over the size threshold is skipped
// by design; a malformed file aborts the run.
type Loader struct {
	dir      string
	maxBytes int64
	workers  int
	cache    cache.Cache // nil when caching is disabled
	verbose  bool
}

// NewLoader creates a loader from the configuration
func NewLoader(cfg *model.Config) *Loader {
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}
	workers := cfg.Concurrency.LoadWorkers
	if workers <= 0 {
		workers = 1
	}
	return &Loader{
		dir:      cfg.Data.Dir,
		maxBytes: cfg.Data.MaxFileBytes,
		workers:  workers,
		cache:    c,
		verbose:  cfg.Output.Verbose,
	}
}

// Result holds the loaded tables and the per-file outcomes
type Result struct {
	Tables map[string]*Table
	Report model.LoadReport
}

// Table returns a loaded table by name, or nil
func (r *Result) Table(name string) *Table {
	return r.Tables[name]
}

// loadJob parses a single CSV file
type loadJob struct {
	loader *Loader
	name   string
	path   string
	size   int64
}

// loadResult is the outcome of a single file parse
type loadResult struct {
	name  string
	table *Table
	size  int64
	err   error
}

func (r *loadResult) GetError() error { return r.err }

func (j *loadJob) Execute(ctx context.Context) worker.Result {
	table, err := j.loader.parseFile(j.name, j.path)
	if err != nil {
		return &loadResult{name: j.name, size: j.size, err: fmt.Errorf("load %s: %w", filepath.Base(j.path), err)}
	}
	return &loadResult{name: j.name, table: table, size: j.size}
}

// Load reads the named tables from the data directory. Files are parsed
// in parallel; the result is keyed by table name so the outcome is
// identical to a sequential load.
func (l *Loader) Load(ctx context.Context, names []string) (*Result, error) {
	if _, err := os.Stat(l.dir); err != nil {
		return nil, fmt.Errorf("data directory %s: %w", l.dir, err)
	}

	result := &Result{Tables: make(map[string]*Table, len(names))}

	var jobs []worker.Job
	for _, name := range names {
		path := filepath.Join(l.dir, name+".csv")
		info, err := os.Stat(path)
		if err != nil {
			if l.verbose {
				fmt.Fprintf(os.Stderr, "⚠ Missing %s.csv (skipped)\n", name)
			}
			result.Report.Missing = append(result.Report.Missing, name)
			continue
		}
		if info.Size() > l.maxBytes {
			if l.verbose {
				fmt.Fprintf(os.Stderr, "⚠ Skipped %s.csv (too large: %.1fMB)\n", name, float64(info.Size())/1024/1024)
			}
			result.Report.Skipped = append(result.Report.Skipped, model.TableLoad{
				Name:  name,
				File:  name + ".csv",
				Bytes: info.Size(),
			})
			continue
		}
		jobs = append(jobs, &loadJob{loader: l, name: name, path: path, size: info.Size()})
	}

	pool := worker.NewPool(l.workers)
	for _, res := range pool.Run(ctx, jobs) {
		lr := res.(*loadResult)
		if lr.err != nil {
			// Unparsable input aborts the run; there is no partial
			// recovery for malformed rows.
			return nil, lr.err
		}
		result.Tables[lr.name] = lr.table
		result.Report.Loaded = append(result.Report.Loaded, model.TableLoad{
			Name:    lr.name,
			File:    lr.name + ".csv",
			Rows:    lr.table.Len(),
			Columns: len(lr.table.Headers),
			Bytes:   lr.size,
		})
		result.Report.TotalRows += lr.table.Len()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Pool results arrive in completion order
	sort.Slice(result.Report.Loaded, func(i, j int) bool {
		return result.Report.Loaded[i].Name < result.Report.Loaded[j].Name
	})

	if l.verbose {
		for _, t := range result.Report.Loaded {
			fmt.Fprintf(os.Stderr, "✓ Loaded %s (%d rows)\n", t.File, t.Rows)
		}
		fmt.Fprintf(os.Stderr, "\nTotal files loaded: %d\n", len(result.Report.Loaded))
	}

	return result, nil
}

// parseFile reads one CSV file, consulting the cache first
func (l *Loader) parseFile(name, path string) (*Table, error) {
	var key string
	if l.cache != nil {
		if info, err := os.Stat(path); err == nil {
			key = cache.TableKey(path, info.Size(), info.ModTime())
			if data, ok := l.cache.Get(key); ok {
				var snap TableSnapshot
				if err := json.Unmarshal(data, &snap); err == nil {
					if table, err := FromSnapshot(snap); err == nil {
						return table, nil
					}
				}
				// Corrupt entry: fall through to a fresh parse
				l.cache.Delete(key)
			}
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse: empty file")
	}

	// Exports carry a UTF-8 BOM for Excel; strip it on the way back in
	if len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\uFEFF")
	}

	table := NewTable(name, records[0], records[1:])

	if l.cache != nil && key != "" {
		if data, err := json.Marshal(table.Snapshot()); err == nil {
			_ = l.cache.Set(key, data, 0)
		}
	}

	return table, nil
}
