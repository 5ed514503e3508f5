package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"member-organizer/pkg/logger"
	"member-organizer/pkg/organizer/lang"
	"member-organizer/pkg/organizer/types"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ErrSyntax is returned when the file does not parse cleanly.
var ErrSyntax = errors.New("syntax error")

// SourceFile is the walked form of one TypeScript file.
type SourceFile struct {
	Path    string
	Content []byte
	// Elements holds the top-level declarations in source order. Class and
	// interface members hang off their declaration's Members.
	Elements []*types.ElementNode
	// Literals are the string and template literals spanning several lines.
	Literals []types.Span
}

type SourceFileParser struct {
	logger logger.Logger
}

func NewSourceFileParser(logger logger.Logger) *SourceFileParser {
	return &SourceFileParser{
		logger: logger,
	}
}

// Parse parses content with the grammar matching path and walks the tree into elements.
func (p *SourceFileParser) Parse(ctx context.Context, path string, content []byte) (*SourceFile, error) {
	langParser, err := lang.GetSitterParserByFilePath(path)
	if err != nil {
		return nil, err
	}

	sitterParser := sitter.NewParser()
	defer sitterParser.Close()
	if err := sitterParser.SetLanguage(langParser.SitterLanguage()); err != nil {
		return nil, err
	}

	tree := sitterParser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse file: %s", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstErrorNode(root); bad != nil {
			pos := bad.StartPosition()
			return nil, fmt.Errorf("%w: %s:%d:%d", ErrSyntax, path, pos.Row+1, pos.Column+1)
		}
		return nil, fmt.Errorf("%w: %s", ErrSyntax, path)
	}

	w := &walker{content: content}
	elements, err := w.walkProgram(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", path, err)
	}
	p.logger.Debug("parsed %s: %d top-level elements", path, len(elements))

	return &SourceFile{
		Path:     path,
		Content:  content,
		Elements: elements,
		Literals: multiLineLiterals(root, content, nil),
	}, nil
}

func multiLineLiterals(node *sitter.Node, content []byte, out []types.Span) []types.Span {
	switch node.Kind() {
	case kindTemplateString, kindString:
		span := types.Span{Start: int(node.StartByte()), End: int(node.EndByte())}
		if bytes.IndexByte(content[span.Start:span.End], '\n') >= 0 {
			out = append(out, span)
		}
		return out
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			out = multiLineLiterals(child, content, out)
		}
	}
	return out
}

// firstErrorNode 深度优先查找第一个错误或缺失节点
func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if bad := firstErrorNode(child); bad != nil {
			return bad
		}
	}
	return nil
}
