// utils/path.go - Path handling utilities
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	AppRootDir = "./.member-organizer"
	LogsDir    = "./.member-organizer/logs"
)

// GetRootDir gets cross-platform root directory
// Returns paths like Windows: %USERPROFILE%/.appname, Linux/macOS: ~/.appname
// or $XDG_CONFIG_HOME/appname when set.
func GetRootDir(appName string) (string, error) {
	var rootDir string

	switch runtime.GOOS {
	case "windows":
		if userProfile := os.Getenv("USERPROFILE"); userProfile != "" {
			rootDir = filepath.Join(userProfile, "."+appName)
		} else if appData := os.Getenv("APPDATA"); appData != "" {
			rootDir = filepath.Join(appData, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			rootDir = filepath.Join(homeDir, "."+appName)
		}
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" && runtime.GOOS != "darwin" {
			rootDir = filepath.Join(xdgConfig, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			rootDir = filepath.Join(homeDir, "."+appName)
		}
	}

	// Ensure config directory exists
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return "", err
	}

	AppRootDir = rootDir

	return rootDir, nil
}

// GetLogDir gets log directory
func GetLogDir(rootPath string) (string, error) {
	if _, err := os.Stat(rootPath); os.IsNotExist(err) {
		return "", fmt.Errorf("root path %s does not exist", rootPath)
	}

	logPath := filepath.Join(rootPath, "logs")
	if err := os.MkdirAll(logPath, 0755); err != nil {
		return "", err
	}

	LogsDir = logPath

	return logPath, nil
}

// ToSlashRel returns path relative to base using forward slashes, the form
// gitignore style matchers expect. ok is false when path is outside base.
func ToSlashRel(base, path string) (string, bool) {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}
