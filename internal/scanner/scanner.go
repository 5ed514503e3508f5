// scanner/scanner.go - 文件扫描器
package scanner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"member-organizer/internal/config"
	"member-organizer/internal/utils"
	"member-organizer/pkg/logger"
	"member-organizer/pkg/organizer/lang"

	gitignore "github.com/sabhiram/go-gitignore"
)

// FileScanner finds the TypeScript files of a directory tree that the
// organizer should touch.
type FileScanner struct {
	logger     logger.Logger
	extensions []string
	maxSize    int64
	patterns   []string
}

func NewFileScanner(logger logger.Logger, scan config.ConfigScan) *FileScanner {
	exts := utils.NormalizeExtensions(scan.Extensions)
	if len(exts) == 0 {
		exts = config.DefaultExtensions
	}
	patterns := scan.IgnorePatterns
	if patterns == nil {
		patterns = config.DefaultIgnorePatterns
	}
	return &FileScanner{
		logger:     logger,
		extensions: exts,
		maxSize:    int64(scan.MaxFileSizeKB) * 1024,
		patterns:   patterns,
	}
}

// Ignore matches slash separated paths relative to the scanned root.
type Ignore interface {
	MatchesPath(f string) bool
}

// LoadIgnoreRules merges the configured patterns with the root .gitignore.
func (fs *FileScanner) LoadIgnoreRules(root string) Ignore {
	lines := slices.Clone(fs.patterns)

	content, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err == nil {
		for _, line := range bytes.Split(content, []byte{'\n'}) {
			line = bytes.TrimRight(line, "\r")
			if len(line) > 0 && !bytes.HasPrefix(line, []byte{'#'}) {
				lines = append(lines, string(line))
			}
		}
	} else if !os.IsNotExist(err) {
		fs.logger.Warn("read .gitignore of %s failed: %v", root, err)
	}

	return gitignore.CompileIgnoreLines(lines...)
}

// Accepts reports whether a single file should be organized. Used by the
// watcher for files it is told about one at a time.
func (fs *FileScanner) Accepts(root string, ignore Ignore, path string, info os.FileInfo) bool {
	if info.IsDir() || !info.Mode().IsRegular() {
		return false
	}
	if !fs.hasExtension(path) || !lang.IsSupportedFile(path) {
		return false
	}
	if fs.maxSize > 0 && info.Size() > fs.maxSize {
		fs.logger.Debug("skip %s: %d bytes exceeds limit", path, info.Size())
		return false
	}
	rel, ok := utils.ToSlashRel(root, path)
	if !ok {
		return false
	}
	return ignore == nil || !ignore.MatchesPath(rel)
}

func (fs *FileScanner) hasExtension(path string) bool {
	name := strings.ToLower(path)
	for _, ext := range fs.extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// ScanDirectory walks root and returns the absolute paths of the files to
// organize, in lexical order.
func (fs *FileScanner) ScanDirectory(ctx context.Context, root string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	fs.logger.Info("start scanning %s", root)
	startTime := time.Now()

	ignore := fs.LoadIgnoreRules(root)
	var files []string

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			fs.logger.Warn("access %s failed: %v", path, err)
			return nil // 继续扫描其他文件
		}

		if info.IsDir() {
			if path == root {
				return nil
			}
			rel, ok := utils.ToSlashRel(root, path)
			if ok && ignore.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if fs.Accepts(root, ignore, path, info) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	fs.logger.Info("scan of %s finished, %d files, cost %v", root, len(files), time.Since(startTime))
	return files, nil
}
