package types

const (
	EmptyString = ""
	Space       = " "
	LF          = "\n"
	CRLF        = "\r\n"
	Tab         = "\t"
)

// Span is a half-open byte range of a source text.
type Span struct {
	Start int
	End   int
}

// Contains reports whether offset lies strictly inside the span.
func (s Span) Contains(offset int) bool {
	return s.Start < offset && offset < s.End
}

// Kind 元素类型，使用字符串字面量作为枚举值
type Kind string

const (
	KindUnknown           Kind = "unknown"
	KindImport            Kind = "import"
	KindTypeAlias         Kind = "type_alias"
	KindInterface         Kind = "interface"
	KindClass             Kind = "class"
	KindEnum              Kind = "enum"
	KindFunction          Kind = "function"
	KindConstructor       Kind = "constructor"
	KindMethod            Kind = "method"
	KindProperty          Kind = "property"
	KindGetter            Kind = "getter"
	KindSetter            Kind = "setter"
	KindIndex             Kind = "index"
	KindIndexSignature    Kind = "index_signature"
	KindMethodSignature   Kind = "method_signature"
	KindPropertySignature Kind = "property_signature"
)

// AccessModifier 访问修饰符
type AccessModifier string

const (
	AccessNone      AccessModifier = ""
	AccessPublic    AccessModifier = "public"
	AccessProtected AccessModifier = "protected"
	AccessPrivate   AccessModifier = "private"
)

// Effective returns the visibility used for classification; a missing modifier means public.
func (a AccessModifier) Effective() AccessModifier {
	if a == AccessNone {
		return AccessPublic
	}
	return a
}

// WriteMode 属性的可写性
type WriteMode string

const (
	WriteModeWritable WriteMode = "writable"
	WriteModeReadOnly WriteMode = "readonly"
	WriteModeConstant WriteMode = "const"
)
