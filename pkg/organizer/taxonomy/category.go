package taxonomy

import (
	"strings"
	"sync"

	"member-organizer/pkg/organizer/types"
)

// Shape is the structural kind of a member as seen by ordering.
type Shape string

const (
	ShapeConstructor Shape = "constructors"
	ShapeConst       Shape = "const-properties"
	ShapeReadOnly    Shape = "readonly-properties"
	ShapeWritable    Shape = "properties"
	ShapeAccessor    Shape = "getters-and-setters"
	ShapeMethod      Shape = "methods"
	ShapeIndex       Shape = "indexes"
)

// IsProperty reports whether s is one of the three property write modes.
func (s Shape) IsProperty() bool {
	_, ok := propertyShapes[s]
	return ok
}

// Scope of a member. Abstract wins over static.
type Scope string

const (
	ScopeInstance Scope = "instance"
	ScopeStatic   Scope = "static"
	ScopeAbstract Scope = "abstract"
)

var (
	visibilities  = []types.AccessModifier{types.AccessPublic, types.AccessProtected, types.AccessPrivate}
	scopes        = []Scope{ScopeInstance, ScopeStatic, ScopeAbstract}
	memberShapes  = []Shape{ShapeConst, ShapeReadOnly, ShapeWritable, ShapeAccessor, ShapeMethod, ShapeIndex}
	propertyShape = map[types.WriteMode]Shape{
		types.WriteModeConstant: ShapeConst,
		types.WriteModeReadOnly: ShapeReadOnly,
		types.WriteModeWritable: ShapeWritable,
	}
	propertyShapes = map[Shape]bool{ShapeConst: true, ShapeReadOnly: true, ShapeWritable: true}
)

// Category is one cell of the member taxonomy. Constructors only vary by
// visibility; their Scope is empty and Decorated is false.
type Category struct {
	Shape      Shape
	Visibility types.AccessModifier
	Scope      Scope
	Decorated  bool
}

// String renders a caption such as "decorated-static-public-methods".
func (c Category) String() string {
	var parts []string
	if c.Decorated {
		parts = append(parts, "decorated")
	}
	if c.Scope != "" && c.Scope != ScopeInstance {
		parts = append(parts, string(c.Scope))
	}
	parts = append(parts, string(c.Visibility), string(c.Shape))
	return strings.Join(parts, "-")
}

var (
	categoriesOnce sync.Once
	categories     []Category
)

// buildCategories fills the category table exactly once.
func buildCategories() {
	categoriesOnce.Do(func() {
		add := func(c Category) {
			categories = append(categories, c)
		}
		for _, vis := range visibilities {
			add(Category{Shape: ShapeConstructor, Visibility: vis})
			for _, scope := range scopes {
				for _, decorated := range []bool{false, true} {
					for _, shape := range memberShapes {
						add(Category{Shape: shape, Visibility: vis, Scope: scope, Decorated: decorated})
					}
				}
			}
		}
	})
}

// Categories returns every category of the taxonomy in a fixed order.
func Categories() []Category {
	buildCategories()
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}
