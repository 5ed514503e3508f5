package taxonomy

import (
	"member-organizer/pkg/organizer/types"
)

// Buckets maps each category to its members, name-sorted. Every member lands
// in exactly one bucket.
type Buckets struct {
	nodes map[Category][]*types.ElementNode
	of    map[*types.ElementNode]Category
}

func newBuckets() *Buckets {
	return &Buckets{
		nodes: make(map[Category][]*types.ElementNode),
		of:    make(map[*types.ElementNode]Category),
	}
}

func (b *Buckets) add(c Category, n *types.ElementNode) {
	b.nodes[c] = append(b.nodes[c], n)
	b.of[n] = c
}

func (b *Buckets) sort() {
	for _, nodes := range b.nodes {
		types.SortByName(nodes)
	}
}

// Get returns the members of category c.
func (b *Buckets) Get(c Category) []*types.ElementNode {
	return b.nodes[c]
}

// Len returns the number of classified members.
func (b *Buckets) Len() int {
	return len(b.of)
}

// Of returns the category the member was classified into.
func (b *Buckets) Of(n *types.ElementNode) (Category, bool) {
	c, ok := b.of[n]
	return c, ok
}

func scopeOf(n *types.ElementNode) Scope {
	switch {
	case n.IsAbstract:
		return ScopeAbstract
	case n.IsStatic:
		return ScopeStatic
	default:
		return ScopeInstance
	}
}

func propertyShapeOf(n *types.ElementNode) Shape {
	if shape, ok := propertyShape[n.WriteMode]; ok {
		return shape
	}
	return ShapeWritable
}

func memberCategory(n *types.ElementNode, shape Shape, decorated bool) Category {
	return Category{
		Shape:      shape,
		Visibility: n.AccessModifier.Effective(),
		Scope:      scopeOf(n),
		Decorated:  decorated,
	}
}

// ClassifyClass sorts the members of a class into categories. A getter and a
// setter of the same name count as decorated when either of them is.
func ClassifyClass(members *types.Members) *Buckets {
	b := newBuckets()
	if members == nil {
		return b
	}

	decoratedAccessors := make(map[string]bool)
	for _, list := range [][]*types.ElementNode{members.Getters, members.Setters} {
		for _, n := range list {
			if n.HasDecorators {
				decoratedAccessors[n.Name] = true
			}
		}
	}

	for _, n := range members.Constructors {
		b.add(Category{Shape: ShapeConstructor, Visibility: n.AccessModifier.Effective()}, n)
	}
	for _, n := range members.Properties {
		b.add(memberCategory(n, propertyShapeOf(n), n.HasDecorators), n)
	}
	// getters before setters so a pair prints get then set
	for _, list := range [][]*types.ElementNode{members.Getters, members.Setters} {
		for _, n := range list {
			b.add(memberCategory(n, ShapeAccessor, decoratedAccessors[n.Name]), n)
		}
	}
	for _, n := range members.Methods {
		b.add(memberCategory(n, ShapeMethod, n.HasDecorators), n)
	}
	for _, n := range members.Indexes {
		b.add(memberCategory(n, ShapeIndex, n.HasDecorators), n)
	}

	b.sort()
	return b
}

// ClassifyInterface sorts interface members. Interfaces have no visibility,
// scope or decorators, so everything lands in the public instance categories.
func ClassifyInterface(members *types.Members) *Buckets {
	b := newBuckets()
	if members == nil {
		return b
	}

	public := func(shape Shape) Category {
		return Category{Shape: shape, Visibility: types.AccessPublic, Scope: ScopeInstance}
	}
	for _, n := range members.Properties {
		b.add(public(propertyShapeOf(n)), n)
	}
	for _, n := range members.Methods {
		b.add(public(ShapeMethod), n)
	}
	for _, n := range members.Indexes {
		b.add(public(ShapeIndex), n)
	}

	b.sort()
	return b
}

// Classify dispatches on the declaration kind.
func Classify(decl *types.ElementNode) *Buckets {
	if decl.Kind == types.KindInterface {
		return ClassifyInterface(decl.Members)
	}
	return ClassifyClass(decl.Members)
}
