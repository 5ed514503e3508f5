// config.go - Tool configuration management

package config

import (
	"errors"
	"fmt"
	"os"

	"member-organizer/internal/errs"

	"github.com/pelletier/go-toml/v2"
)

const DefaultConfigFileName = "member-organizer.toml"

type ConfigLog struct {
	Level string `toml:"level"`
	Dir   string `toml:"dir"`
}

type ConfigScan struct {
	Workers        int      `toml:"workers"`
	MaxFileSizeKB  int      `toml:"maxFileSizeKB"`
	Extensions     []string `toml:"extensions"`
	IgnorePatterns []string `toml:"ignorePatterns"`
}

type ConfigWatch struct {
	DebounceMillis int    `toml:"debounceMillis"`
	MetricsAddr    string `toml:"metricsAddr"`
}

// Config is the on-disk tool configuration.
type Config struct {
	AddPublicModifierIfMissing bool `toml:"addPublicModifierIfMissing"`
	// MemberOrdering is used when no ESLint configuration applies to a file.
	MemberOrdering []string    `toml:"memberOrdering"`
	Log            ConfigLog   `toml:"log"`
	Scan           ConfigScan  `toml:"scan"`
	Watch          ConfigWatch `toml:"watch"`
}

var DefaultConfigLog = ConfigLog{
	Level: "info",
	Dir:   "", // empty: stderr, or the application logs directory for watch
}

var DefaultIgnorePatterns = []string{
	// Filter all directories starting with dot
	".*/",
	"node_modules/", "bower_components/", "jspm_packages/",
	"dist/", "build/", "out/", "coverage/",
	"*.d.ts",
	"*.min.js",
}

var DefaultExtensions = []string{".ts", ".mts", ".cts", ".tsx"}

var DefaultConfigScan = ConfigScan{
	Workers:        4,    // Default number of files organized concurrently
	MaxFileSizeKB:  1024, // Files above this size are skipped
	Extensions:     DefaultExtensions,
	IgnorePatterns: DefaultIgnorePatterns,
}

var DefaultConfigWatch = ConfigWatch{
	DebounceMillis: 300,
	MetricsAddr:    "", // empty disables the metrics endpoint
}

var DefaultConfig = Config{
	AddPublicModifierIfMissing: false,
	Log:                        DefaultConfigLog,
	Scan:                       DefaultConfigScan,
	Watch:                      DefaultConfigWatch,
}

// Load reads a TOML file over the defaults. Missing keys keep their default
// values. A missing file is not an error when optional is true.
func Load(path string, optional bool) (Config, error) {
	c := DefaultConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return DefaultConfig, errs.NewConfigInvalidErr(path, err)
	}
	if err := c.Validate(); err != nil {
		return DefaultConfig, errs.NewConfigInvalidErr(path, err)
	}
	return c, nil
}

// Validate fills zero values with defaults and rejects impossible settings.
func (c *Config) Validate() error {
	if c.Scan.Workers < 0 {
		return errs.NewInvalidParamErr("scan.workers", c.Scan.Workers)
	}
	if c.Scan.Workers == 0 {
		c.Scan.Workers = DefaultConfigScan.Workers
	}
	if c.Scan.MaxFileSizeKB < 0 {
		return errs.NewInvalidParamErr("scan.maxFileSizeKB", c.Scan.MaxFileSizeKB)
	}
	if c.Scan.MaxFileSizeKB == 0 {
		c.Scan.MaxFileSizeKB = DefaultConfigScan.MaxFileSizeKB
	}
	if len(c.Scan.Extensions) == 0 {
		c.Scan.Extensions = DefaultExtensions
	}
	if c.Watch.DebounceMillis < 0 {
		return errs.NewInvalidParamErr("watch.debounceMillis", c.Watch.DebounceMillis)
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultConfigLog.Level
	}
	return nil
}

// AppInfo holds application metadata
type AppInfo struct {
	AppName string
	Version string
}

var appInfo = AppInfo{AppName: "member-organizer", Version: "dev"}

func GetAppInfo() AppInfo {
	return appInfo
}

func SetAppInfo(info AppInfo) {
	appInfo = info
}
