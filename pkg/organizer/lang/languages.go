package lang

import (
	"errors"
	"path/filepath"
	"strings"

	"member-organizer/pkg/organizer/types"

	sitter "github.com/tree-sitter/go-tree-sitter"
	sittertypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

var (
	ErrFileExtNotFound        = errors.New("file extension not found")
	ErrLanguageParserNotFound = errors.New("language parser not found")
)

// Language represents a source dialect handled by the organizer.
type Language string

const (
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
)

// TreeSitterParser holds the configuration for a language
type TreeSitterParser struct {
	Language       Language
	SitterLanguage func() *sitter.Language
	SupportedExts  []string
}

// treeSitterParsers 定义了所有支持的语言配置
var treeSitterParsers = []*TreeSitterParser{
	{
		Language: TypeScript,
		SitterLanguage: func() *sitter.Language {
			return sitter.NewLanguage(sittertypescript.LanguageTypescript())
		},
		SupportedExts: []string{".ts", ".mts", ".cts"},
	},
	{
		Language: TSX,
		SitterLanguage: func() *sitter.Language {
			return sitter.NewLanguage(sittertypescript.LanguageTSX())
		},
		SupportedExts: []string{".tsx"},
	},
}

// GetTreeSitterParsers 获取所有语言配置
func GetTreeSitterParsers() []*TreeSitterParser {
	return treeSitterParsers
}

// SupportedExts returns every extension the organizer can parse.
func SupportedExts() []string {
	var exts []string
	for _, tp := range treeSitterParsers {
		exts = append(exts, tp.SupportedExts...)
	}
	return exts
}

// getSitterParserByExt 根据文件扩展名获取语言配置
func getSitterParserByExt(ext string) *TreeSitterParser {
	ext = strings.ToLower(ext)
	for _, tp := range treeSitterParsers {
		for _, supportedExt := range tp.SupportedExts {
			if supportedExt == ext {
				return tp
			}
		}
	}
	return nil
}

func GetSitterParserByFilePath(path string) (*TreeSitterParser, error) {
	// 声明文件只有类型，不做处理
	if strings.HasSuffix(strings.ToLower(path), ".d.ts") {
		return nil, ErrLanguageParserNotFound
	}
	ext := filepath.Ext(path)
	if ext == types.EmptyString {
		return nil, ErrFileExtNotFound
	}
	langConf := getSitterParserByExt(ext)
	if langConf == nil {
		return nil, ErrLanguageParserNotFound
	}
	return langConf, nil
}

// IsSupportedFile reports whether path has an extension the organizer handles.
func IsSupportedFile(path string) bool {
	_, err := GetSitterParserByFilePath(path)
	return err == nil
}

func IsUnSupportedFileError(err error) bool {
	return errors.Is(err, ErrFileExtNotFound) ||
		errors.Is(err, ErrLanguageParserNotFound)
}
