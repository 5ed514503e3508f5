package utils

import (
	"strings"
)

// UniqueStringSlice 删除重复的字符串
func UniqueStringSlice(slice []string) []string {
	uniqueSlice := make([]string, 0, len(slice))
	uniqueMap := make(map[string]struct{})
	for _, str := range slice {
		if _, ok := uniqueMap[str]; !ok {
			uniqueMap[str] = struct{}{}
			uniqueSlice = append(uniqueSlice, str)
		}
	}
	return uniqueSlice
}

// NormalizeExtensions lower-cases extensions, adds the leading dot and drops duplicates.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return UniqueStringSlice(out)
}
