// Package batch summarizes trade exports from disk, one output workbook per input file.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/signstats/internal/logger"
	"github.com/guttosm/signstats/internal/service"
)

const (
	// OutputSuffix replaces the input extension in the generated file name.
	OutputSuffix = "_统计结果.xlsx"
	maxParallel  = 8
)

// ErrNoInputs is returned when a directory holds no xlsx or csv file.
var ErrNoInputs = errors.New("no input files")

// Options controls where results go and how many files run at once.
//
// Parallel <= 0 means min(NumCPU, 8).
type Options struct {
	OutDir   string
	Parallel int
}

// Result describes one processed file.
type Result struct {
	Input   string
	Output  string
	Rows    int
	BuyRows int
}

// CollectInputs lists the .xlsx and .csv files directly under dir, in name order.
// Office lock files and previously generated outputs are skipped.
func CollectInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") || strings.HasSuffix(name, OutputSuffix) {
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".xlsx", ".csv":
			files = append(files, filepath.Join(dir, name))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInputs, dir)
	}
	return files, nil
}

// ProcessDirectory summarizes every input found by CollectInputs.
func ProcessDirectory(ctx context.Context, svc service.SummaryService, dir string, opts Options) ([]Result, error) {
	files, err := CollectInputs(dir)
	if err != nil {
		return nil, err
	}
	return ProcessFiles(ctx, svc, files, opts)
}

// ProcessFiles summarizes each file independently and writes
// <name>_统计结果.xlsx into opts.OutDir.
//
// Behavior:
//   - Files are never merged; each gets its own summary.
//   - Up to opts.Parallel files run concurrently.
//   - If any file returns error, cancels the rest and returns that error.
func ProcessFiles(ctx context.Context, svc service.SummaryService, files []string, opts Options) ([]Result, error) {
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", opts.OutDir, err)
	}

	limit := parallelism(opts.Parallel)
	logger.L().Info().Int("files", len(files)).Int("max_parallel", limit).Str("out", opts.OutDir).Msg("batch start")

	results := make([]Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			start := time.Now()
			res, err := processFile(gctx, svc, file, opts.OutDir)
			if err != nil {
				logger.L().Error().Str("file", filepath.Base(file)).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", file, err)
			}
			results[i] = res
			logger.L().Info().
				Int("idx", i+1).
				Int("total", len(files)).
				Str("file", filepath.Base(file)).
				Str("output", filepath.Base(res.Output)).
				Int("rows", res.Rows).
				Dur("elapsed", time.Since(start)).
				Msg("file done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func processFile(ctx context.Context, svc service.SummaryService, path, outDir string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	rep, err := svc.Summarize(ctx, f, filepath.Base(path))
	if err != nil {
		return Result{}, err
	}
	buf, err := svc.Export(ctx, rep)
	if err != nil {
		return Result{}, err
	}

	out := filepath.Join(outDir, OutputName(path))
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", out, err)
	}
	return Result{Input: path, Output: out, Rows: len(rep.Rows), BuyRows: rep.Stats.BuyRows}, nil
}

// OutputName derives the result file name from an input path.
func OutputName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + OutputSuffix
}

func parallelism(n int) int {
	if n > 0 {
		return min(n, maxParallel)
	}
	return min(runtime.NumCPU(), maxParallel)
}
