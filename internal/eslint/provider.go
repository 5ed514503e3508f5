// Package eslint resolves the @typescript-eslint/member-ordering rule that
// applies to a file from the ESLint configuration files above it.
package eslint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"member-organizer/internal/errs"
	"member-organizer/internal/utils"
	"member-organizer/pkg/logger"
	"member-organizer/pkg/organizer"
	"member-organizer/pkg/organizer/cache"

	gitignore "github.com/sabhiram/go-gitignore"
)

const (
	ignoreFileName       = ".eslintignore"
	defaultCacheCapacity = 256
)

// ESLint ignores dependencies even without an ignore file.
var defaultIgnorePatterns = []string{"node_modules/"}

var _ organizer.PolicyProvider = (*Provider)(nil)

type stamp struct {
	modTime time.Time
	size    int64
}

type cachedConfig struct {
	stamp
	config *Config
}

type cachedIgnore struct {
	stamp
	ignore *gitignore.GitIgnore
}

// Provider answers member ordering lookups from ESLint configuration files.
// Parsed files are cached and re-read when their size or mtime changes.
type Provider struct {
	logger  logger.Logger
	configs *cache.LRU[string, cachedConfig]
	ignores *cache.LRU[string, cachedIgnore]
}

func NewProvider(logger logger.Logger, capacity int) *Provider {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	return &Provider{
		logger:  logger,
		configs: cache.NewLRU[string, cachedConfig](capacity),
		ignores: cache.NewLRU[string, cachedIgnore](capacity),
	}
}

// MemberOrdering walks up from filePath. The closest configuration that sets
// the rule decides; a configuration with root: true ends the walk. A rule
// turned off and files matched by the nearest .eslintignore report
// organizer.ErrOrderingDisabled.
func (p *Provider) MemberOrdering(ctx context.Context, filePath string) ([]string, bool, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, false, fmt.Errorf("resolve %s: %w", filePath, err)
	}

	ignored, err := p.isIgnored(ctx, abs)
	if err != nil {
		return nil, false, err
	}
	if ignored {
		p.logger.Debug("%s is ignored by %s", abs, ignoreFileName)
		return nil, false, organizer.ErrOrderingDisabled
	}

	for dir := filepath.Dir(abs); ; {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		cfg, err := p.configIn(dir)
		if err != nil {
			return nil, false, err
		}
		if cfg != nil {
			if cfg.Rule.Set {
				if cfg.Rule.Off || len(cfg.Rule.Tokens) == 0 {
					p.logger.Debug("%s disables member ordering for %s", cfg.Path, abs)
					return nil, false, organizer.ErrOrderingDisabled
				}
				p.logger.Debug("member ordering for %s from %s", abs, cfg.Path)
				return cfg.Rule.Tokens, true, nil
			}
			if cfg.Root {
				break
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, false, nil
}

// Invalidate forgets cached data for path, a configuration or ignore file
// that changed on disk, and for every file below path when it was a
// directory.
func (p *Provider) Invalidate(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	prefix := abs + string(filepath.Separator)
	under := func(key string) bool {
		return key == abs || strings.HasPrefix(key, prefix)
	}
	if n := p.configs.RemoveFunc(under) + p.ignores.RemoveFunc(under); n > 0 {
		p.logger.Debug("dropped %d cached ESLint files under %s", n, abs)
	}
}

// IsConfigFile reports whether a file name is one the provider reads.
func IsConfigFile(path string) bool {
	name := filepath.Base(path)
	if name == ignoreFileName {
		return true
	}
	for _, n := range configFileNames {
		if n == name {
			return true
		}
	}
	return false
}

// configIn returns the configuration of dir, the first existing file in
// configFileNames order that holds one.
func (p *Provider) configIn(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		cfg, err := p.loadConfig(path)
		if err != nil {
			return nil, err
		}
		if cfg != nil {
			return cfg, nil
		}
	}
	return nil, nil
}

func (p *Provider) loadConfig(path string) (*Config, error) {
	st, ok, err := statFile(path)
	if err != nil || !ok {
		p.configs.Remove(path)
		return nil, err
	}
	if cached, hit := p.configs.Get(path); hit && cached.stamp == st {
		return cached.config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := ParseConfig(path, data)
	if err != nil {
		return nil, errs.NewConfigInvalidErr(path, err)
	}
	p.configs.Put(path, cachedConfig{stamp: st, config: cfg})
	return cfg, nil
}

func (p *Provider) isIgnored(ctx context.Context, abs string) (bool, error) {
	for dir := filepath.Dir(abs); ; {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		ignore, err := p.loadIgnore(filepath.Join(dir, ignoreFileName))
		if err != nil {
			return false, err
		}
		if ignore != nil {
			rel, ok := utils.ToSlashRel(dir, abs)
			return ok && ignore.MatchesPath(rel), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return false, nil
}

func (p *Provider) loadIgnore(path string) (*gitignore.GitIgnore, error) {
	st, ok, err := statFile(path)
	if err != nil || !ok {
		p.ignores.Remove(path)
		return nil, err
	}
	if cached, hit := p.ignores.Get(path); hit && cached.stamp == st {
		return cached.ignore, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	lines := append([]string{}, defaultIgnorePatterns...)
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimRight(line, "\r")
		if len(line) > 0 && !bytes.HasPrefix(line, []byte{'#'}) {
			lines = append(lines, string(line))
		}
	}
	ignore := gitignore.CompileIgnoreLines(lines...)
	p.ignores.Put(path, cachedIgnore{stamp: st, ignore: ignore})
	return ignore, nil
}

// statFile reports whether path is an existing regular file.
func statFile(path string) (stamp, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return stamp{}, false, nil
		}
		return stamp{}, false, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return stamp{}, false, nil
	}
	return stamp{modTime: info.ModTime(), size: info.Size()}, true, nil
}
