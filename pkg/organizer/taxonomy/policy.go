package taxonomy

import (
	"strings"

	"member-organizer/pkg/organizer/types"
)

const (
	tokenSignature   = "signature"
	tokenField       = "field"
	tokenMethod      = "method"
	tokenConstructor = "constructor"
	scopeDecorated   = "decorated"
)

var visibilityByName = map[string]types.AccessModifier{
	"public":    types.AccessPublic,
	"protected": types.AccessProtected,
	"private":   types.AccessPrivate,
}

// scope names accepted in tokens, in aggregate expansion order
var tokenScopes = []string{string(ScopeStatic), scopeDecorated, string(ScopeInstance), string(ScopeAbstract)}

func cat(shape Shape, vis types.AccessModifier, scope Scope, decorated bool) Category {
	return Category{Shape: shape, Visibility: vis, Scope: scope, Decorated: decorated}
}

func properties(vis types.AccessModifier, scope Scope, decorated bool) []Category {
	return []Category{
		cat(ShapeConst, vis, scope, decorated),
		cat(ShapeReadOnly, vis, scope, decorated),
		cat(ShapeWritable, vis, scope, decorated),
	}
}

// fieldCategories expands "{vis}-{scope}-field".
func fieldCategories(vis types.AccessModifier, scope string) []Category {
	var out []Category
	switch scope {
	case string(ScopeStatic):
		out = append(out, properties(vis, ScopeStatic, true)...)
		out = append(out, properties(vis, ScopeStatic, false)...)
		out = append(out, cat(ShapeAccessor, vis, ScopeStatic, false), cat(ShapeAccessor, vis, ScopeStatic, true))
	case scopeDecorated:
		for _, s := range []Scope{ScopeInstance, ScopeAbstract} {
			out = append(out, properties(vis, s, true)...)
			out = append(out, cat(ShapeAccessor, vis, s, true))
		}
	case string(ScopeInstance), string(ScopeAbstract):
		s := Scope(scope)
		out = append(out, properties(vis, s, false)...)
		out = append(out, cat(ShapeAccessor, vis, s, false))
	}
	return out
}

// methodCategories expands "{vis}-{scope}-method".
func methodCategories(vis types.AccessModifier, scope string) []Category {
	switch scope {
	case string(ScopeStatic):
		return []Category{cat(ShapeMethod, vis, ScopeStatic, false), cat(ShapeMethod, vis, ScopeStatic, true)}
	case scopeDecorated:
		return []Category{cat(ShapeMethod, vis, ScopeInstance, true), cat(ShapeMethod, vis, ScopeAbstract, true)}
	case string(ScopeInstance), string(ScopeAbstract):
		return []Category{cat(ShapeMethod, vis, Scope(scope), false)}
	}
	return nil
}

// signatureCategories expands "signature": decorated, static, instance and
// abstract index signatures, each over public, protected and private.
func signatureCategories() []Category {
	var out []Category
	for _, vis := range visibilities {
		for _, s := range scopes {
			out = append(out, cat(ShapeIndex, vis, s, true))
		}
	}
	for _, s := range []Scope{ScopeStatic, ScopeInstance, ScopeAbstract} {
		for _, vis := range visibilities {
			out = append(out, cat(ShapeIndex, vis, s, false))
		}
	}
	return out
}

func kindCategories(kind string, vis types.AccessModifier, scope string) []Category {
	switch kind {
	case tokenField:
		return fieldCategories(vis, scope)
	case tokenMethod:
		return methodCategories(vis, scope)
	}
	return nil
}

// ExpandToken returns the categories named by one policy token. The second
// result is false for tokens outside the vocabulary.
//
// Recognised forms are "signature", "{vis}-constructor",
// "{vis}-{scope}-field", "{vis}-{scope}-method" and the aggregates
// "{vis}-field", "{scope}-field", "field" (same for method) and "constructor".
func ExpandToken(token string) ([]Category, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == tokenSignature {
		return signatureCategories(), true
	}

	parts := strings.Split(token, "-")
	kind := parts[len(parts)-1]
	if kind != tokenField && kind != tokenMethod && kind != tokenConstructor {
		return nil, false
	}
	qualifiers := parts[:len(parts)-1]

	var vis []types.AccessModifier
	var scopeNames []string
	switch len(qualifiers) {
	case 0:
		vis, scopeNames = visibilities, tokenScopes
	case 1:
		if v, ok := visibilityByName[qualifiers[0]]; ok {
			vis, scopeNames = []types.AccessModifier{v}, tokenScopes
		} else if isScopeName(qualifiers[0]) && kind != tokenConstructor {
			vis, scopeNames = visibilities, []string{qualifiers[0]}
		} else {
			return nil, false
		}
	case 2:
		v, ok := visibilityByName[qualifiers[0]]
		if !ok || !isScopeName(qualifiers[1]) || kind == tokenConstructor {
			return nil, false
		}
		vis, scopeNames = []types.AccessModifier{v}, []string{qualifiers[1]}
	default:
		return nil, false
	}

	var out []Category
	if kind == tokenConstructor {
		for _, v := range vis {
			out = append(out, Category{Shape: ShapeConstructor, Visibility: v})
		}
		return out, true
	}
	// aggregates without a visibility are scope-major
	if len(vis) > 1 {
		for _, s := range scopeNames {
			for _, v := range vis {
				out = append(out, kindCategories(kind, v, s)...)
			}
		}
		return out, true
	}
	for _, s := range scopeNames {
		out = append(out, kindCategories(kind, vis[0], s)...)
	}
	return out, true
}

func isScopeName(s string) bool {
	for _, name := range tokenScopes {
		if name == s {
			return true
		}
	}
	return false
}

// ResolvePolicy expands an ordered token list into an ordered category list.
// Unknown tokens are dropped and a category keeps the position of its first
// occurrence.
func ResolvePolicy(tokens []string) []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, token := range tokens {
		expanded, ok := ExpandToken(token)
		if !ok {
			continue
		}
		for _, c := range expanded {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
