package parser

import (
	"context"
	"strings"

	"member-organizer/pkg/organizer/types"
	"member-organizer/pkg/organizer/utils"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// walker turns a tree-sitter syntax tree into element nodes. Comments are
// extras in tree-sitter, so the full start of a node is computed as the end
// of the previous non-comment sibling, which makes leading comments part of
// the trivia of the element that follows them.
type walker struct {
	content []byte
}

func (w *walker) text(n *sitter.Node) string {
	return string(w.content[n.StartByte():n.EndByte()])
}

func (w *walker) walkProgram(ctx context.Context, root *sitter.Node) ([]*types.ElementNode, error) {
	var elements []*types.ElementNode
	prevEnd := 0
	for i := uint(0); i < root.ChildCount(); i++ {
		if err := utils.CheckContext(ctx); err != nil {
			return nil, err
		}
		child := root.Child(i)
		if child == nil || child.Kind() == kindComment {
			continue
		}
		elem := w.declaration(child)
		elem.FullStart = prevEnd
		elements = append(elements, elem)
		prevEnd = elem.End
	}
	return elements, nil
}

// declaration maps a top-level statement to an element. Anything outside the
// six declaration kinds becomes Unknown.
func (w *walker) declaration(node *sitter.Node) *types.ElementNode {
	elem := &types.ElementNode{
		Kind:      types.KindUnknown,
		Start:     int(node.StartByte()),
		End:       int(node.EndByte()),
		WriteMode: types.WriteModeWritable,
	}
	elem.ModifiersStart = elem.Start
	elem.NameStart = elem.Start

	decl := node
	if node.Kind() == kindExportStatement {
		decl = node.ChildByFieldName(fieldDeclaration)
		if decl == nil {
			return elem
		}
		elem.IsExport = true
		elem.HasDecorators = hasDecoratorChild(node)
	}

	switch decl.Kind() {
	case kindImportStatement:
		elem.Kind = types.KindImport
		elem.Name = importName
	case kindTypeAliasDeclaration:
		elem.Kind = types.KindTypeAlias
		w.readName(decl, elem)
	case kindInterfaceDeclaration:
		elem.Kind = types.KindInterface
		w.readName(decl, elem)
		elem.Members = w.body(decl.ChildByFieldName(fieldBody), w.interfaceMember)
	case kindClassDeclaration, kindAbstractClassDeclaration:
		elem.Kind = types.KindClass
		elem.IsAbstract = decl.Kind() == kindAbstractClassDeclaration
		elem.HasDecorators = elem.HasDecorators || hasDecoratorChild(decl)
		w.readName(decl, elem)
		elem.Members = w.body(decl.ChildByFieldName(fieldBody), w.classMember)
	case kindEnumDeclaration:
		elem.Kind = types.KindEnum
		w.readName(decl, elem)
	case kindFunctionDeclaration, kindGeneratorFunctionDecl, kindFunctionSignature:
		elem.Kind = types.KindFunction
		w.readName(decl, elem)
	}
	return elem
}

func (w *walker) readName(node *sitter.Node, elem *types.ElementNode) {
	if name := node.ChildByFieldName(fieldName); name != nil {
		elem.Name = w.text(name)
		elem.NameStart = int(name.StartByte())
	}
}

type memberFunc func(node *sitter.Node, decorators []*sitter.Node) *types.ElementNode

// body walks a class or interface body. Decorators written as siblings before
// a member are attached to it, and a separator directly following a member is
// absorbed into the member's span.
func (w *walker) body(body *sitter.Node, member memberFunc) *types.Members {
	members := &types.Members{}
	if body == nil {
		return members
	}

	prevEnd := int(body.StartByte())
	var decorators []*sitter.Node
	var last *types.ElementNode
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case kindOpenBrace:
			prevEnd = int(child.EndByte())
			continue
		case kindCloseBrace, kindComment:
			continue
		case kindDecorator:
			decorators = append(decorators, child)
			continue
		case kindSemicolon, kindComma:
			if last != nil && len(decorators) == 0 {
				last.End = int(child.EndByte())
				members.End = last.End
				last = nil
			}
			// stray separators are empty class elements and are not carried over
			prevEnd = int(child.EndByte())
			continue
		}

		elem := member(child, decorators)
		elem.FullStart = prevEnd
		decorators = nil
		members.Add(elem)
		last = elem
		prevEnd = elem.End
	}
	return members
}

func newMember(node *sitter.Node, decorators []*sitter.Node) *types.ElementNode {
	elem := &types.ElementNode{
		Kind:      types.KindUnknown,
		Start:     int(node.StartByte()),
		End:       int(node.EndByte()),
		WriteMode: types.WriteModeWritable,
	}
	elem.ModifiersStart = elem.Start
	elem.NameStart = elem.Start
	if len(decorators) > 0 {
		elem.Start = int(decorators[0].StartByte())
		elem.ModifiersStart = int(decorators[len(decorators)-1].EndByte())
		elem.HasDecorators = true
	}
	return elem
}

func (w *walker) classMember(node *sitter.Node, decorators []*sitter.Node) *types.ElementNode {
	elem := newMember(node, decorators)
	switch node.Kind() {
	case kindMethodDefinition, kindMethodSignature, kindAbstractMethodSignature:
		accessor := w.readModifiers(node, elem)
		switch {
		case accessor == keywordGet:
			elem.Kind = types.KindGetter
		case accessor == keywordSet:
			elem.Kind = types.KindSetter
		case elem.Name == constructorName:
			elem.Kind = types.KindConstructor
		default:
			elem.Kind = types.KindMethod
		}
	case kindPublicFieldDefinition:
		w.readModifiers(node, elem)
		elem.Kind = types.KindProperty
		if value := node.ChildByFieldName(fieldValue); value != nil {
			switch value.Kind() {
			case kindArrowFunction, kindFunctionExpression, kindFunction:
				elem.IsArrowFunction = true
			}
		}
	case kindIndexSignature:
		w.readIndexModifiers(node, elem)
		elem.Kind = types.KindIndex
		elem.Name = indexName
	}
	return elem
}

func (w *walker) interfaceMember(node *sitter.Node, decorators []*sitter.Node) *types.ElementNode {
	elem := newMember(node, decorators)
	switch node.Kind() {
	case kindPropertySignature:
		w.readModifiers(node, elem)
		elem.Kind = types.KindPropertySignature
	case kindMethodSignature:
		w.readModifiers(node, elem)
		elem.Kind = types.KindMethodSignature
	case kindIndexSignature:
		w.readIndexModifiers(node, elem)
		elem.Kind = types.KindIndexSignature
		elem.Name = indexName
	}
	return elem
}

// readModifiers reads the name and the modifier tokens preceding it. It
// returns "get" or "set" for accessors.
func (w *walker) readModifiers(node *sitter.Node, elem *types.ElementNode) string {
	nameNode := node.ChildByFieldName(fieldName)
	nameStart := node.EndByte()
	if nameNode != nil {
		nameStart = nameNode.StartByte()
		elem.Name = w.text(nameNode)
		elem.NameStart = int(nameStart)
	}

	accessor := types.EmptyString
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.StartByte() >= nameStart {
			break
		}
		switch child.Kind() {
		case kindDecorator:
			elem.HasDecorators = true
			elem.ModifiersStart = int(child.EndByte())
		case kindAccessibilityModifier:
			elem.AccessModifier = types.AccessModifier(strings.TrimSpace(w.text(child)))
		case keywordStatic:
			elem.IsStatic = true
		case keywordAbstract:
			elem.IsAbstract = true
		case keywordReadonly:
			if elem.WriteMode != types.WriteModeConstant {
				elem.WriteMode = types.WriteModeReadOnly
			}
		case keywordConst:
			elem.WriteMode = types.WriteModeConstant
		case keywordGet, keywordSet:
			accessor = child.Kind()
		}
	}

	// 私有属性标识符 (#name)
	if nameNode != nil && nameNode.Kind() == kindPrivatePropertyIdentifier && elem.AccessModifier == types.AccessNone {
		elem.AccessModifier = types.AccessPrivate
	}
	return accessor
}

func (w *walker) readIndexModifiers(node *sitter.Node, elem *types.ElementNode) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() == kindOpenBracket {
			break
		}
		switch child.Kind() {
		case keywordStatic:
			elem.IsStatic = true
		case keywordReadonly:
			elem.WriteMode = types.WriteModeReadOnly
		}
	}
}

func hasDecoratorChild(node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil && child.Kind() == kindDecorator {
			return true
		}
	}
	return false
}
