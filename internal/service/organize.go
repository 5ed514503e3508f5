package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"member-organizer/internal/diff"
	"member-organizer/internal/errs"
	"member-organizer/internal/metrics"
	"member-organizer/internal/utils"
	"member-organizer/pkg/logger"
	"member-organizer/pkg/organizer/pool"
)

// Status is the outcome of organizing one file.
type Status string

const (
	StatusChanged   Status = "changed"
	StatusUnchanged Status = "unchanged"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// FileOrganizer rewrites the text of one file.
type FileOrganizer interface {
	Organize(ctx context.Context, source, fileName string) (string, error)
}

// FileScanner lists the files of a directory tree to organize.
type FileScanner interface {
	ScanDirectory(ctx context.Context, root string) ([]string, error)
}

// RunOptions selects what happens to organized text.
type RunOptions struct {
	// Write saves changed files in place.
	Write bool
	// Diff attaches a unified diff to changed results.
	Diff bool
}

// FileResult describes one organized file.
type FileResult struct {
	Path   string
	Status Status
	// Text is the organized content when organizing succeeded.
	Text    string
	Diff    string
	Err     error
	Elapsed time.Duration
}

// Summary aggregates a batch run.
type Summary struct {
	RunID     string
	Root      string
	Results   []*FileResult
	Changed   int
	Unchanged int
	Skipped   int
	Failed    int
	Duration  time.Duration
}

func (s *Summary) add(r *FileResult) {
	s.Results = append(s.Results, r)
	switch r.Status {
	case StatusChanged:
		s.Changed++
	case StatusUnchanged:
		s.Unchanged++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

// OrganizeService 整理服务接口
type OrganizeService interface {
	OrganizeFile(ctx context.Context, path string, opts RunOptions) *FileResult
	OrganizeAll(ctx context.Context, root string, opts RunOptions) (*Summary, error)
}

type organizeService struct {
	organizer FileOrganizer
	scanner   FileScanner
	metrics   *metrics.Metrics
	logger    logger.Logger
	workers   int
}

// NewOrganizeService 创建整理服务. metrics may be nil.
func NewOrganizeService(
	organizer FileOrganizer,
	scanner FileScanner,
	metrics *metrics.Metrics,
	logger logger.Logger,
	workers int,
) OrganizeService {
	return &organizeService{
		organizer: organizer,
		scanner:   scanner,
		metrics:   metrics,
		logger:    logger,
		workers:   workers,
	}
}

// OrganizeFile organizes one file. Failures are reported in the result,
// and the file on disk is only replaced after a complete organize.
func (s *organizeService) OrganizeFile(ctx context.Context, path string, opts RunOptions) *FileResult {
	start := time.Now()
	result := s.organizeFile(ctx, path, opts)
	result.Elapsed = time.Since(start)
	s.metrics.ObserveFile(string(result.Status), result.Elapsed)

	switch result.Status {
	case StatusFailed:
		s.logger.Warn("organize %s failed: %v", path, result.Err)
	case StatusSkipped:
		s.logger.Debug("organize %s skipped: %v", path, result.Err)
	default:
		s.logger.Debug("organize %s: %s in %v", path, result.Status, result.Elapsed)
	}
	return result
}

func (s *organizeService) organizeFile(ctx context.Context, path string, opts RunOptions) *FileResult {
	result := &FileResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		result.Status, result.Err = StatusFailed, fmt.Errorf("stat %s: %w", path, err)
		return result
	}
	if !info.Mode().IsRegular() {
		result.Status, result.Err = StatusSkipped, errs.NewUnsupportedFileErr(path)
		return result
	}

	content, err := os.ReadFile(path)
	if err != nil {
		result.Status, result.Err = StatusFailed, fmt.Errorf("read %s: %w", path, err)
		return result
	}
	source := string(content)

	organized, err := s.organizer.Organize(ctx, source, path)
	if err != nil {
		if errs.IsUnsupportedFile(err) {
			result.Status, result.Err = StatusSkipped, err
		} else {
			result.Status, result.Err = StatusFailed, err
		}
		return result
	}

	result.Text = organized
	if organized == source {
		result.Status = StatusUnchanged
		return result
	}
	result.Status = StatusChanged
	if opts.Diff {
		result.Diff = diff.Unified(filepath.ToSlash(path), source, organized)
	}
	if opts.Write {
		if err := writeFileAtomic(path, []byte(organized), info.Mode().Perm()); err != nil {
			result.Status, result.Err = StatusFailed, err
		}
	}
	return result
}

// OrganizeAll organizes every file the scanner finds under root on the
// worker pool. One failing file never stops the others.
func (s *organizeService) OrganizeAll(ctx context.Context, root string, opts RunOptions) (*Summary, error) {
	start := time.Now()
	runID, err := utils.GenerateUUID()
	if err != nil {
		return nil, fmt.Errorf("generate run id: %w", err)
	}

	files, err := s.scanner.ScanDirectory(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	s.logger.Info("run %s: organizing %d files under %s", runID, len(files), root)
	s.metrics.ObserveRun()

	p := pool.NewTaskPool(s.workers, s.logger)
	defer p.Close()

	var mu sync.Mutex
	results := make([]*FileResult, 0, len(files))
	for _, file := range files {
		file := file
		err := p.Submit(ctx, func(ctx context.Context, taskID uint64) error {
			r := s.OrganizeFile(ctx, file, opts)
			mu.Lock()
			results = append(results, r)
			mu.Unlock()
			if r.Status == StatusFailed {
				return r.Err
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("submit %s: %w", file, err)
		}
	}
	p.Wait()
	stats := p.Stats()
	s.logger.Debug("run %s pool: %d tasks completed, %d failed, %d cancelled",
		runID, stats.Completed, stats.Failed, stats.Cancelled)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	summary := &Summary{RunID: runID, Root: root}
	for _, r := range results {
		summary.add(r)
	}
	summary.Duration = time.Since(start)

	s.logger.Info("run %s finished in %v: %d changed, %d unchanged, %d skipped, %d failed",
		runID, summary.Duration, summary.Changed, summary.Unchanged, summary.Skipped, summary.Failed)
	return summary, nil
}

// writeFileAtomic replaces path through a temporary file in the same directory.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
