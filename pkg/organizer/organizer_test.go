package organizer

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"member-organizer/pkg/logger"
	"member-organizer/pkg/organizer/mocks"
	"member-organizer/pkg/organizer/parser"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrganizer(tokens []string, addPublic bool) *Organizer {
	return NewOrganizer(logger.NewNopLogger(), StaticPolicy(tokens), Options{AddPublicModifierIfMissing: addPublic})
}

func organize(t *testing.T, o *Organizer, source string) string {
	t.Helper()
	got, err := o.Organize(context.Background(), source, "sample.ts")
	require.NoError(t, err)
	return got
}

func assertText(t *testing.T, want, got string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("organized text mismatch (-want +got):\n%s", diff)
	}
}

func TestOrganize_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []string
		addPublic bool
		source    string
		want      string
	}{
		{
			name:   "groups follow policy order",
			tokens: []string{"public-instance-field", "public-instance-method", "private-instance-field"},
			source: "class A {\n    private x;\n    public y(){}\n    public z;\n}\n",
			want:   "class A {\n    public z;\n\n    public y(){}\n\n    private x;\n}\n",
		},
		{
			name:   "arrow property gets a blank line",
			tokens: []string{"public-instance-field"},
			source: "class A {\n    b = 1;\n    a = () => {};\n}\n",
			want:   "class A {\n    a = () => {};\n\n    b = 1;\n}\n",
		},
		{
			name:      "public synthesized before static readonly",
			tokens:    []string{"public-static-field"},
			addPublic: true,
			source:    "class A {\n    static readonly x = 1;\n}\n",
			want:      "class A {\n    public static readonly x = 1;\n}\n",
		},
		{
			name:   "single class keeps file layout",
			tokens: []string{"public-instance-method"},
			source: "import { x } from \"x\";\n\n// the class\nclass A {\n    b() {}\n    a() {}\n}\n",
			want:   "import { x } from \"x\";\n\n// the class\nclass A {\n    a() {}\n\n    b() {}\n}\n",
		},
		{
			name:   "interface follows category expansion",
			tokens: []string{"public-instance-method", "public-instance-field"},
			source: "interface Shape {\n    readonly id: string;\n    area(): number;\n}\n",
			want:   "interface Shape {\n    area(): number;\n\n    readonly id: string;\n}\n",
		},
		{
			name:   "file scope groups and sorts declarations",
			tokens: []string{"public-instance-method"},
			source: "function b() {}\nclass Z {}\nimport a from \"a\";\nfunction a() {}\n",
			want:   "import a from \"a\";\n\nclass Z {}\n\nfunction a() {}\n\nfunction b() {}\n",
		},
		{
			name:   "unknown statement skips file scope only",
			tokens: []string{"public-instance-method"},
			source: "const x = 1;\nclass A {\n    b() {}\n    a() {}\n}\n",
			want:   "const x = 1;\nclass A {\n    a() {}\n\n    b() {}\n}\n",
		},
		{
			name:   "members outside the policy are kept at the end",
			tokens: []string{"public-instance-method"},
			source: "class A {\n    private x = 1;\n    b() {}\n    a() {}\n}\n",
			want:   "class A {\n    a() {}\n\n    b() {}\n\n    private x = 1;\n}\n",
		},
		{
			name:   "interface with call signature is left alone",
			tokens: []string{"public-instance-field"},
			source: "interface Fn {\n    name: string;\n    (x: number): string;\n    age: number;\n}\n",
			want:   "interface Fn {\n    name: string;\n    (x: number): string;\n    age: number;\n}\n",
		},
		{
			name:   "region markers are removed",
			tokens: []string{"public-instance-field"},
			source: "class A {\n    // #region fields\n    b = 1;\n    a = 2;\n    // #endregion\n}\n",
			want:   "class A {\n    a = 2;\n    b = 1;\n}\n",
		},
		{
			name:   "several classes are all reordered",
			tokens: []string{"public-instance-method"},
			source: "class A {\n  d() {}\n  c() {}\n}\nclass B {\n  f() {}\n  e() {}\n}\n",
			want:   "class A {\n  c() {}\n\n  d() {}\n}\n\nclass B {\n  e() {}\n\n  f() {}\n}\n",
		},
		{
			name:   "names compare byte-wise",
			tokens: []string{"public-instance-field"},
			source: "class A {\n    b = 1;\n    _x = 2;\n    X = 3;\n    a = 4;\n    B = 5;\n}\n",
			want:   "class A {\n    B = 5;\n    X = 3;\n    _x = 2;\n    a = 4;\n    b = 1;\n}\n",
		},
		{
			name:   "decorated static properties share one group",
			tokens: []string{"public-static-field"},
			source: "class A {\n    @D static readonly b = 1;\n    @D static a = 2;\n}\n",
			want:   "class A {\n    @D static a = 2;\n    @D static readonly b = 1;\n}\n",
		},
		{
			name:   "undecorated write modes keep separate groups",
			tokens: []string{"public-instance-field"},
			source: "class A {\n    b = 1;\n    readonly a = 2;\n}\n",
			want:   "class A {\n    readonly a = 2;\n\n    b = 1;\n}\n",
		},
		{
			name:   "blank lines inside template literals are kept",
			tokens: []string{"public-instance-field"},
			source: "class A {\n    b = 1;\n    a = `x\n\n\n  y`;\n}\n",
			want:   "class A {\n    a = `x\n\n\n  y`;\n    b = 1;\n}\n",
		},
		{
			name:   "comment after the last member keeps its indentation",
			tokens: []string{"public-instance-field"},
			source: "class A {\n    b = 1;\n    a = 2;\n    // tail\n}\n",
			want:   "class A {\n    a = 2;\n    b = 1;\n    // tail\n}\n",
		},
		{
			name:   "unknown tokens only leave members as written",
			tokens: []string{"not-a-token"},
			source: "class A {\n    b = 1;\n    a = 2;\n}\n",
			want:   "class A {\n    b = 1;\n    a = 2;\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrganizer(tt.tokens, tt.addPublic)
			assertText(t, tt.want, organize(t, o, tt.source))
		})
	}
}

const richSource = `import { b } from "b";
import { a } from "a";

/** Z docs */
export class Zeta {
    private static count = 0;
    // the name
    name: string;
    @Input() label: string;
    constructor(name: string) {
        this.name = name;
    }
    get size(): number { return 1; }
    set size(v: number) {}
    static create(): Zeta { return new Zeta("z"); }
    private helper = () => {};
    render(): void {}
}

interface Alpha {
    run(): void;
    readonly id: string;
    [key: string]: unknown;
}

type Beta = string;

function omega() {}
function alpha() {}
`

var richPolicy = []string{
	"signature",
	"public-static-field",
	"protected-static-field",
	"private-static-field",
	"public-decorated-field",
	"public-instance-field",
	"private-instance-field",
	"public-constructor",
	"public-static-method",
	"public-instance-method",
	"private-instance-method",
}

func TestOrganize_Idempotent(t *testing.T) {
	for _, addPublic := range []bool{false, true} {
		o := newTestOrganizer(richPolicy, addPublic)
		once := organize(t, o, richSource)
		twice := organize(t, o, once)
		assertText(t, once, twice)
	}
}

func TestOrganize_RichLayout(t *testing.T) {
	o := newTestOrganizer(richPolicy, true)
	got := organize(t, o, richSource)

	// file scope: imports, type aliases, interfaces, classes, functions
	order := []string{`import { b }`, `import { a }`, "type Beta", "interface Alpha", "/** Z docs */", "export class Zeta", "function alpha", "function omega"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(got, marker)
		require.GreaterOrEqual(t, idx, 0, marker)
		assert.Greater(t, idx, last, marker)
		last = idx
	}

	members := []string{
		"private static count = 0;",
		"@Input() public label: string;",
		"// the name\n    public name: string;",
		"public get size()",
		"public set size(",
		"private helper = () => {};",
		"constructor(name: string)",
		"public static create()",
		"public render()",
	}
	last = -1
	for _, marker := range members {
		idx := strings.Index(got, marker)
		require.GreaterOrEqual(t, idx, 0, marker)
		assert.Greater(t, idx, last, marker)
		last = idx
	}

	assert.Less(t, strings.Index(got, "[key: string]: unknown;"), strings.Index(got, "run(): void;"))
	assert.Less(t, strings.Index(got, "readonly id: string;"), strings.Index(got, "run(): void;"))
}

func codeOf(t *testing.T, source string) []string {
	t.Helper()
	file, err := parser.NewSourceFileParser(logger.NewNopLogger()).Parse(context.Background(), "sample.ts", []byte(source))
	require.NoError(t, err)
	var out []string
	for _, e := range file.Elements {
		if e.Members == nil {
			out = append(out, strings.TrimSpace(source[e.Start:e.End]))
			continue
		}
		for _, m := range e.Members.All() {
			out = append(out, strings.TrimSpace(source[m.Start:m.End]))
		}
	}
	sort.Strings(out)
	return out
}

func TestOrganize_Completeness(t *testing.T) {
	o := newTestOrganizer(richPolicy, false)
	got := organize(t, o, richSource)
	assert.Equal(t, codeOf(t, richSource), codeOf(t, got))
}

func TestOrganize_NoPolicyIsNoOp(t *testing.T) {
	source := "class A {\n\n\n    // #region x\n    b = 1;\n    a = 2;\n    // #endregion\n}\n"
	o := newTestOrganizer(nil, true)
	assert.Equal(t, source, organize(t, o, source))
}

func TestOrganize_PolicyErrorIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockPolicyProvider(ctrl)
	provider.EXPECT().MemberOrdering(gomock.Any(), "broken.ts").Return(nil, false, errors.New("bad config"))

	o := NewOrganizer(logger.NewNopLogger(), provider, Options{})
	source := "class A {\n    b = 1;\n    a = 2;\n}\n"
	got, err := o.Organize(context.Background(), source, "broken.ts")
	require.NoError(t, err)
	assert.Equal(t, source, got)
}

func TestOrganize_UsesProviderPolicy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockPolicyProvider(ctrl)
	provider.EXPECT().MemberOrdering(gomock.Any(), "src/a.ts").Return([]string{"public-instance-field"}, true, nil)

	o := NewOrganizer(logger.NewNopLogger(), provider, Options{})
	got, err := o.Organize(context.Background(), "class A {\n  b = 1;\n  a = 2;\n}\n", "src/a.ts")
	require.NoError(t, err)
	assert.Equal(t, "class A {\n  a = 2;\n  b = 1;\n}\n", got)
}

func TestOrganize_SyntaxErrorIsFatal(t *testing.T) {
	o := newTestOrganizer([]string{"public-instance-field"}, false)
	source := "class A {\n    b = ;\n"
	got, err := o.Organize(context.Background(), source, "broken.ts")
	assert.True(t, errors.Is(err, parser.ErrSyntax))
	assert.Equal(t, source, got)
}

func TestOrganize_Cancelled(t *testing.T) {
	o := newTestOrganizer([]string{"public-instance-field"}, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := o.OrganizeWithPolicy(ctx, "class A {\n  b = 1;\n}\n", "a.ts", []string{"public-instance-field"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChainPolicy(t *testing.T) {
	ctx := context.Background()

	tokens, ok, err := ChainPolicy{StaticPolicy(nil), nil, StaticPolicy{"field"}}.MemberOrdering(ctx, "a.ts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"field"}, tokens)

	_, ok, err = ChainPolicy{}.MemberOrdering(ctx, "a.ts")
	require.NoError(t, err)
	assert.False(t, ok)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	failing := mocks.NewMockPolicyProvider(ctrl)
	failing.EXPECT().MemberOrdering(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("boom"))
	_, _, err = ChainPolicy{failing, StaticPolicy{"field"}}.MemberOrdering(ctx, "a.ts")
	assert.Error(t, err)

	disabled := mocks.NewMockPolicyProvider(ctrl)
	disabled.EXPECT().MemberOrdering(gomock.Any(), gomock.Any()).Return(nil, false, ErrOrderingDisabled)
	_, ok, err = ChainPolicy{disabled, StaticPolicy{"field"}}.MemberOrdering(ctx, "a.ts")
	require.NoError(t, err)
	assert.False(t, ok)
}
