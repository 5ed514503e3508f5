package taxonomy

import (
	"testing"

	"member-organizer/pkg/organizer/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(nodes []*types.ElementNode) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func member(kind types.Kind, name string, opts ...func(*types.ElementNode)) *types.ElementNode {
	n := &types.ElementNode{Kind: kind, Name: name, WriteMode: types.WriteModeWritable}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func private(n *types.ElementNode)   { n.AccessModifier = types.AccessPrivate }
func protected(n *types.ElementNode) { n.AccessModifier = types.AccessProtected }
func static(n *types.ElementNode)    { n.IsStatic = true }
func abstract(n *types.ElementNode)  { n.IsAbstract = true }
func decorated(n *types.ElementNode) { n.HasDecorators = true }
func readonly(n *types.ElementNode)  { n.WriteMode = types.WriteModeReadOnly }

func TestCategories(t *testing.T) {
	all := Categories()
	// 3 constructors plus visibility x scope x decorated x shape
	assert.Len(t, all, 3+3*3*2*6)

	seen := map[Category]bool{}
	for _, c := range all {
		assert.False(t, seen[c], "duplicate category %s", c)
		seen[c] = true
	}
	assert.False(t, seen[Category{Shape: ShapeConstructor, Visibility: types.AccessPublic, Scope: ScopeStatic}])
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "public-constructors", Category{Shape: ShapeConstructor, Visibility: types.AccessPublic}.String())
	assert.Equal(t, "decorated-static-private-methods", cat(ShapeMethod, types.AccessPrivate, ScopeStatic, true).String())
	assert.Equal(t, "protected-readonly-properties", cat(ShapeReadOnly, types.AccessProtected, ScopeInstance, false).String())
}

func TestClassifyClass(t *testing.T) {
	m := &types.Members{}
	for _, n := range []*types.ElementNode{
		member(types.KindConstructor, "constructor"),
		member(types.KindProperty, "b"),
		member(types.KindProperty, "a"),
		member(types.KindProperty, "id", readonly, static, private),
		member(types.KindProperty, "shape", abstract, readonly, protected),
		member(types.KindProperty, "input", decorated),
		member(types.KindMethod, "run"),
		member(types.KindMethod, "create", static),
		member(types.KindMethod, "draw", abstract),
		member(types.KindIndex, "index"),
	} {
		m.Add(n)
	}

	b := ClassifyClass(m)
	assert.Equal(t, 10, b.Len())

	assert.Equal(t, []string{"constructor"}, names(b.Get(Category{Shape: ShapeConstructor, Visibility: types.AccessPublic})))
	assert.Equal(t, []string{"a", "b"}, names(b.Get(cat(ShapeWritable, types.AccessPublic, ScopeInstance, false))))
	assert.Equal(t, []string{"id"}, names(b.Get(cat(ShapeReadOnly, types.AccessPrivate, ScopeStatic, false))))
	// abstract readonly is its own category, not an instance readonly one
	assert.Equal(t, []string{"shape"}, names(b.Get(cat(ShapeReadOnly, types.AccessProtected, ScopeAbstract, false))))
	assert.Empty(t, b.Get(cat(ShapeReadOnly, types.AccessProtected, ScopeInstance, false)))
	assert.Equal(t, []string{"input"}, names(b.Get(cat(ShapeWritable, types.AccessPublic, ScopeInstance, true))))
	assert.Equal(t, []string{"run"}, names(b.Get(cat(ShapeMethod, types.AccessPublic, ScopeInstance, false))))
	assert.Equal(t, []string{"create"}, names(b.Get(cat(ShapeMethod, types.AccessPublic, ScopeStatic, false))))
	assert.Equal(t, []string{"draw"}, names(b.Get(cat(ShapeMethod, types.AccessPublic, ScopeAbstract, false))))
	assert.Equal(t, []string{"index"}, names(b.Get(cat(ShapeIndex, types.AccessPublic, ScopeInstance, false))))
}

func TestClassifyClass_Disjoint(t *testing.T) {
	m := &types.Members{}
	m.Add(member(types.KindProperty, "x", static, abstract))
	m.Add(member(types.KindProperty, "y", readonly, abstract, decorated))
	m.Add(member(types.KindMethod, "z", static, decorated, private))

	b := ClassifyClass(m)
	hits := map[*types.ElementNode]int{}
	for _, c := range Categories() {
		for _, n := range b.Get(c) {
			hits[n]++
		}
	}
	require.Len(t, hits, 3)
	for n, count := range hits {
		assert.Equal(t, 1, count, "member %s", n.Name)
	}
}

func TestClassifyClass_AccessorPairs(t *testing.T) {
	m := &types.Members{}
	m.Add(member(types.KindGetter, "value", decorated))
	m.Add(member(types.KindSetter, "value"))
	m.Add(member(types.KindSetter, "plain"))
	m.Add(member(types.KindGetter, "plain"))

	b := ClassifyClass(m)
	pair := b.Get(cat(ShapeAccessor, types.AccessPublic, ScopeInstance, true))
	require.Len(t, pair, 2)
	assert.Equal(t, types.KindGetter, pair[0].Kind)
	assert.Equal(t, types.KindSetter, pair[1].Kind)

	plain := b.Get(cat(ShapeAccessor, types.AccessPublic, ScopeInstance, false))
	require.Len(t, plain, 2)
	assert.Equal(t, types.KindGetter, plain[0].Kind)
	assert.Equal(t, types.KindSetter, plain[1].Kind)

	c, ok := b.Of(pair[1])
	assert.True(t, ok)
	assert.True(t, c.Decorated)
}

func TestClassifyInterface(t *testing.T) {
	m := &types.Members{}
	m.Add(member(types.KindPropertySignature, "name"))
	m.Add(member(types.KindPropertySignature, "id", readonly))
	m.Add(member(types.KindMethodSignature, "area"))
	m.Add(member(types.KindIndexSignature, "index"))

	decl := &types.ElementNode{Kind: types.KindInterface, Members: m}
	b := Classify(decl)
	assert.Equal(t, []string{"name"}, names(b.Get(cat(ShapeWritable, types.AccessPublic, ScopeInstance, false))))
	assert.Equal(t, []string{"id"}, names(b.Get(cat(ShapeReadOnly, types.AccessPublic, ScopeInstance, false))))
	assert.Equal(t, []string{"area"}, names(b.Get(cat(ShapeMethod, types.AccessPublic, ScopeInstance, false))))
	assert.Equal(t, []string{"index"}, names(b.Get(cat(ShapeIndex, types.AccessPublic, ScopeInstance, false))))
}

func TestClassify_NilMembers(t *testing.T) {
	assert.Equal(t, 0, ClassifyClass(nil).Len())
	assert.Equal(t, 0, ClassifyInterface(nil).Len())
}

func TestExpandToken(t *testing.T) {
	pub := types.AccessPublic
	tests := []struct {
		token string
		want  []Category
		ok    bool
	}{
		{token: "public-constructor", want: []Category{{Shape: ShapeConstructor, Visibility: pub}}, ok: true},
		{token: "public-instance-method", want: []Category{cat(ShapeMethod, pub, ScopeInstance, false)}, ok: true},
		{token: "public-static-method", want: []Category{
			cat(ShapeMethod, pub, ScopeStatic, false),
			cat(ShapeMethod, pub, ScopeStatic, true),
		}, ok: true},
		{token: "public-instance-field", want: []Category{
			cat(ShapeConst, pub, ScopeInstance, false),
			cat(ShapeReadOnly, pub, ScopeInstance, false),
			cat(ShapeWritable, pub, ScopeInstance, false),
			cat(ShapeAccessor, pub, ScopeInstance, false),
		}, ok: true},
		{token: "public-abstract-field", want: []Category{
			cat(ShapeConst, pub, ScopeAbstract, false),
			cat(ShapeReadOnly, pub, ScopeAbstract, false),
			cat(ShapeWritable, pub, ScopeAbstract, false),
			cat(ShapeAccessor, pub, ScopeAbstract, false),
		}, ok: true},
		{token: "public-static-constructor", ok: false},
		{token: "public-static-thing", ok: false},
		{token: "everything", ok: false},
		{token: "secret-method", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ExpandToken(tt.token)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExpandToken_StaticFieldOrder(t *testing.T) {
	got, ok := ExpandToken("private-static-field")
	require.True(t, ok)
	require.Len(t, got, 8)
	priv := types.AccessPrivate
	// decorated static properties come first, then const, read-only, writable, accessors
	assert.True(t, got[0].Decorated)
	assert.Equal(t, cat(ShapeConst, priv, ScopeStatic, false), got[3])
	assert.Equal(t, cat(ShapeReadOnly, priv, ScopeStatic, false), got[4])
	assert.Equal(t, cat(ShapeWritable, priv, ScopeStatic, false), got[5])
	assert.Equal(t, cat(ShapeAccessor, priv, ScopeStatic, false), got[6])
}

func TestExpandToken_Signature(t *testing.T) {
	got, ok := ExpandToken("signature")
	require.True(t, ok)
	require.Len(t, got, 18)
	assert.Equal(t, cat(ShapeIndex, types.AccessPublic, ScopeInstance, true), got[0])
	assert.Equal(t, cat(ShapeIndex, types.AccessPublic, ScopeStatic, false), got[9])
	assert.Equal(t, cat(ShapeIndex, types.AccessPublic, ScopeInstance, false), got[12])
	assert.Equal(t, cat(ShapeIndex, types.AccessPrivate, ScopeAbstract, false), got[17])
}

func TestResolvePolicy(t *testing.T) {
	t.Run("unknown tokens are dropped", func(t *testing.T) {
		got := ResolvePolicy([]string{"bogus", "public-instance-method", "also-bogus"})
		assert.Equal(t, []Category{cat(ShapeMethod, types.AccessPublic, ScopeInstance, false)}, got)
	})

	t.Run("first occurrence wins", func(t *testing.T) {
		got := ResolvePolicy([]string{"public-instance-method", "method"})
		require.NotEmpty(t, got)
		assert.Equal(t, cat(ShapeMethod, types.AccessPublic, ScopeInstance, false), got[0])
		count := 0
		for _, c := range got {
			if c == got[0] {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("aggregates cover every category", func(t *testing.T) {
		got := ResolvePolicy([]string{"signature", "field", "constructor", "method"})
		assert.ElementsMatch(t, Categories(), got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, ResolvePolicy(nil))
	})
}
