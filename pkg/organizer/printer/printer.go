package printer

import (
	"slices"
	"strings"

	"member-organizer/pkg/organizer/format"
	"member-organizer/pkg/organizer/types"
)

const (
	whitespace     = " \t\r\n"
	publicKeyword  = "public"
	generatorToken = "*"
)

// modifierKeywords are stripped from the end of a modifier region, in this
// precedence, before "public" is inserted in front of them.
var modifierKeywords = []string{
	"async", "abstract", "readonly", "static", "get", "set", "override", "accessor", generatorToken,
}

// Options controls how a group list is rendered.
type Options struct {
	// Depth is 0 at file scope and 1 inside a class or interface body.
	Depth       int
	Indentation string
	// NewLine defaults to the newline detected in the source.
	NewLine                    string
	AddPublicModifierIfMissing bool
}

// Print replaces source[start:end] with the elements of groups, in group
// order, and returns the new text. Each element is emitted as its trimmed
// leading comment line (if any) followed by its trimmed code. Groups are
// separated by blank lines, and a blank line follows any element whose code
// ends with "}" and any arrow-function property.
func Print(source string, start, end int, groups []*types.ElementNodeGroup, opts Options) string {
	nl := opts.NewLine
	if nl == types.EmptyString {
		nl = format.DetectNewLine(source)
	}
	indent := types.EmptyString
	if opts.Depth > 0 {
		indent = opts.Indentation
	}

	var members strings.Builder
	for _, group := range groups {
		nodeGroups := nodeGroupsOf(group)
		if len(nodeGroups) == 0 {
			continue
		}

		members.WriteString(nl)
		for _, nodes := range nodeGroups {
			for _, node := range nodes {
				comment := strings.Trim(source[node.FullStart:node.Start], whitespace)
				code := strings.Trim(source[node.Start:node.End], whitespace)
				if opts.Depth > 0 && opts.AddPublicModifierIfMissing && needsPublicModifier(node) {
					code = strings.Trim(AddPublicModifier(source, node), whitespace)
				}

				if comment != types.EmptyString {
					members.WriteString(indent + comment + nl)
				}
				members.WriteString(indent + code + nl)
				if strings.HasSuffix(code, "}") || (node.Kind == types.KindProperty && node.IsArrowFunction) {
					members.WriteString(nl)
				}
			}
			members.WriteString(nl)
		}
		members.WriteString(nl)
	}

	var out strings.Builder
	out.WriteString(strings.TrimRight(source[:start], whitespace))
	out.WriteString(nl)
	out.WriteString(indent)
	out.WriteString(strings.Trim(members.String(), whitespace))
	out.WriteString(nl)
	out.WriteString(tailOf(source[end:]))
	return strings.TrimLeft(out.String(), whitespace)
}

// tailOf drops the blank lines in front of the text after the replaced range
// but keeps the indentation of its first line.
func tailOf(rest string) string {
	trimmed := strings.TrimLeft(rest, whitespace)
	lead := rest[:len(rest)-len(trimmed)]
	i := strings.LastIndexByte(lead, '\n')
	if i < 0 {
		return trimmed
	}
	return strings.TrimLeft(lead[i+1:], "\r") + trimmed
}

// nodeGroupsOf returns the non-empty node lists of a group. A region is
// decomposed into one list per subgroup; any other group prints as a single
// list.
func nodeGroupsOf(group *types.ElementNodeGroup) [][]*types.ElementNode {
	if group.Count() == 0 {
		return nil
	}
	if !group.IsRegion {
		return [][]*types.ElementNode{leafNodes(group, nil)}
	}
	var out [][]*types.ElementNode
	for _, sub := range group.SubGroups {
		out = append(out, nodeGroupsOf(sub)...)
	}
	return out
}

func leafNodes(group *types.ElementNodeGroup, out []*types.ElementNode) []*types.ElementNode {
	if len(group.Nodes) > 0 {
		return append(out, group.Nodes...)
	}
	for _, sub := range group.SubGroups {
		out = leafNodes(sub, out)
	}
	return out
}

func needsPublicModifier(node *types.ElementNode) bool {
	switch node.Kind {
	case types.KindMethod, types.KindProperty, types.KindGetter, types.KindSetter:
	default:
		return false
	}
	// ES private names cannot carry an accessibility modifier
	return node.AccessModifier == types.AccessNone && !strings.HasPrefix(node.Name, "#")
}

// AddPublicModifier returns the code of node with "public" placed before its
// modifier keywords. Decorators and the whitespace after them are kept as
// written; keywords are re-emitted in their original left-to-right order.
func AddPublicModifier(source string, node *types.ElementNode) string {
	modStart, nameStart := node.ModifiersStart, node.NameStart
	if modStart < node.Start || nameStart < modStart || nameStart > node.End {
		return source[node.Start:node.End]
	}

	head := source[node.Start:modStart]
	region := source[modStart:nameStart]
	rest := source[nameStart:node.End]

	body := strings.TrimLeft(region, whitespace)
	lead := region[:len(region)-len(body)]
	body = strings.TrimRight(body, whitespace)

	var found []string
	for {
		stripped := false
		for _, keyword := range modifierKeywords {
			remaining, ok := cutTrailingKeyword(body, keyword)
			if !ok {
				continue
			}
			if !slices.Contains(found, keyword) {
				found = append(found, keyword)
			}
			body = remaining
			stripped = true
		}
		if !stripped {
			break
		}
	}
	slices.Reverse(found)

	var parts []string
	if len(found) == 0 && body != types.EmptyString {
		// nothing recognisable, only put public in front
		parts = []string{publicKeyword, body}
	} else {
		if body != types.EmptyString {
			parts = append(parts, body)
		}
		parts = append(parts, publicKeyword)
		parts = append(parts, found...)
	}

	modifiers := strings.Join(parts, types.Space)
	if len(found) > 0 && found[len(found)-1] == generatorToken {
		return head + lead + modifiers + rest
	}
	return head + lead + modifiers + types.Space + rest
}

// cutTrailingKeyword removes keyword from the end of text when it stands as
// a separate token.
func cutTrailingKeyword(text, keyword string) (string, bool) {
	if !strings.HasSuffix(text, keyword) {
		return text, false
	}
	before := text[:len(text)-len(keyword)]
	if keyword != generatorToken && before != types.EmptyString && !strings.ContainsAny(before[len(before)-1:], whitespace) {
		return text, false
	}
	return strings.TrimRight(before, whitespace), true
}
