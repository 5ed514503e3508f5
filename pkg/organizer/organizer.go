package organizer

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"member-organizer/pkg/logger"
	"member-organizer/pkg/organizer/format"
	"member-organizer/pkg/organizer/parser"
	"member-organizer/pkg/organizer/printer"
	"member-organizer/pkg/organizer/taxonomy"
	"member-organizer/pkg/organizer/types"
	"member-organizer/pkg/organizer/utils"
)

const remainderCaption = "unordered"

// Options toggles optional rewrites.
type Options struct {
	AddPublicModifierIfMissing bool
}

// Organizer reorders the declarations of a TypeScript file and the members
// of its classes and interfaces according to a member ordering policy.
type Organizer struct {
	logger logger.Logger
	parser *parser.SourceFileParser
	policy PolicyProvider
	opts   Options
}

func NewOrganizer(logger logger.Logger, policy PolicyProvider, opts Options) *Organizer {
	return &Organizer{
		logger: logger,
		parser: parser.NewSourceFileParser(logger),
		policy: policy,
		opts:   opts,
	}
}

// Organize looks up the ordering policy for fileName and applies it. Without
// a policy, or when the policy cannot be read, source is returned unchanged.
func (o *Organizer) Organize(ctx context.Context, source, fileName string) (string, error) {
	tokens, ok, err := o.policy.MemberOrdering(ctx, fileName)
	if errors.Is(err, ErrOrderingDisabled) {
		o.logger.Debug("member ordering disabled for %s", fileName)
		return source, nil
	}
	if err != nil {
		o.logger.Warn("member ordering for %s unavailable, leaving file untouched: %v", fileName, err)
		return source, nil
	}
	if !ok {
		o.logger.Debug("no member ordering configured for %s", fileName)
		return source, nil
	}
	return o.OrganizeWithPolicy(ctx, source, fileName, tokens)
}

// OrganizeWithPolicy organizes source with an explicit token list. On error
// the caller must keep the original text.
func (o *Organizer) OrganizeWithPolicy(ctx context.Context, source, fileName string, tokens []string) (string, error) {
	categories := taxonomy.ResolvePolicy(tokens)

	text := format.StripRegionMarkers(source)
	opts := printer.Options{
		Indentation:                format.DetectIndentation(text),
		NewLine:                    format.DetectNewLine(text),
		AddPublicModifierIfMissing: o.opts.AddPublicModifierIfMissing,
	}

	text, err := o.organizeDeclarations(ctx, text, fileName, opts)
	if err != nil {
		return source, err
	}
	text, err = o.organizeMembers(ctx, text, fileName, categories, opts)
	if err != nil {
		return source, err
	}
	return format.CollapseBlankLines(text, o.literalSpans(ctx, text, fileName)...), nil
}

// literalSpans returns the multi-line literals of the organized text, whose
// blank lines belong to the program and must survive the final cleanup.
func (o *Organizer) literalSpans(ctx context.Context, text, fileName string) []types.Span {
	file, err := o.parser.Parse(ctx, fileName, []byte(text))
	if err != nil {
		o.logger.Debug("reparse of organized %s failed: %v", fileName, err)
		return nil
	}
	return file.Literals
}

// organizeDeclarations is the file-scope pass. It refuses to touch files
// holding anything outside the six declaration kinds.
func (o *Organizer) organizeDeclarations(ctx context.Context, text, fileName string, opts printer.Options) (string, error) {
	file, err := o.parser.Parse(ctx, fileName, []byte(text))
	if err != nil {
		return text, err
	}
	if len(file.Elements) == 0 {
		return text, nil
	}

	byKind := make(map[types.Kind][]*types.ElementNode)
	for _, e := range file.Elements {
		if e.Kind == types.KindUnknown {
			o.logger.Debug("%s has top-level statements other than declarations, skipping file scope", fileName)
			return text, nil
		}
		byKind[e.Kind] = append(byKind[e.Kind], e)
	}

	order := []types.Kind{types.KindImport, types.KindTypeAlias, types.KindInterface, types.KindClass, types.KindEnum, types.KindFunction}
	groups := make([]*types.ElementNodeGroup, 0, len(order))
	reorderable := 0
	for _, kind := range order {
		nodes := byKind[kind]
		types.SortByName(nodes)
		groups = append(groups, types.NewGroup(string(kind), nodes))
		if kind != types.KindImport {
			reorderable += len(nodes)
		}
	}
	if reorderable <= 1 && len(byKind[types.KindFunction]) == 0 {
		return text, nil
	}

	last := file.Elements[len(file.Elements)-1]
	opts.Depth = 0
	return printer.Print(text, 0, last.End, groups, opts), nil
}

// organizeMembers is the member-scope pass over a fresh parse. Declarations
// are spliced last to first so earlier offsets stay valid.
func (o *Organizer) organizeMembers(ctx context.Context, text, fileName string, categories []taxonomy.Category, opts printer.Options) (string, error) {
	if len(categories) == 0 {
		o.logger.Debug("member ordering for %s names no known member groups", fileName)
		return text, nil
	}

	file, err := o.parser.Parse(ctx, fileName, []byte(text))
	if err != nil {
		return text, err
	}

	var decls []*types.ElementNode
	for _, e := range file.Elements {
		if e.Kind != types.KindClass && e.Kind != types.KindInterface {
			continue
		}
		if e.Members.Len() == 0 {
			continue
		}
		if len(e.Members.Unknown) > 0 {
			o.logger.Debug("%s %s has members that cannot be ordered, skipping", e.Kind, e.Name)
			continue
		}
		decls = append(decls, e)
	}
	slices.SortFunc(decls, func(a, b *types.ElementNode) int {
		return cmp.Compare(b.FullStart, a.FullStart)
	})

	opts.Depth = 1
	for _, decl := range decls {
		if err := utils.CheckContext(ctx); err != nil {
			return text, fmt.Errorf("organize members of %s: %w", fileName, err)
		}
		groups := memberGroups(decl, categories)
		text = printer.Print(text, decl.Members.Start, decl.Members.End, groups, opts)
	}
	return text, nil
}

// memberGroups builds one region for decl with a subgroup per category.
// Decorated properties of one visibility and scope share a single name-sorted
// subgroup whatever their write mode. Members matched by no category follow
// in source order.
func memberGroups(decl *types.ElementNode, categories []taxonomy.Category) []*types.ElementNodeGroup {
	buckets := taxonomy.Classify(decl)
	region := &types.ElementNodeGroup{Caption: decl.Name, IsRegion: true}

	resolved := make(map[taxonomy.Category]bool, len(categories))
	for i, c := range categories {
		resolved[c] = true
		nodes := buckets.Get(c)
		if i > 0 && sameDecoratedProperties(categories[i-1], c) {
			last := region.SubGroups[len(region.SubGroups)-1]
			last.Caption = c.String()
			last.Nodes = slices.Concat(last.Nodes, nodes)
			types.SortByName(last.Nodes)
			continue
		}
		region.SubGroups = append(region.SubGroups, types.NewGroup(c.String(), nodes))
	}

	var remainder []*types.ElementNode
	for _, n := range decl.Members.All() {
		if c, ok := buckets.Of(n); !ok || !resolved[c] {
			remainder = append(remainder, n)
		}
	}
	if len(remainder) > 0 {
		region.SubGroups = append(region.SubGroups, types.NewGroup(remainderCaption, remainder))
	}
	return []*types.ElementNodeGroup{region}
}

func sameDecoratedProperties(a, b taxonomy.Category) bool {
	return a.Decorated && b.Decorated &&
		a.Shape.IsProperty() && b.Shape.IsProperty() &&
		a.Visibility == b.Visibility && a.Scope == b.Scope
}
