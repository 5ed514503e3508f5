package types

// ElementNode is one declaration located in a source file. Offsets are byte
// offsets into the parsed text: FullStart includes the leading trivia
// (whitespace and comments), Start is the first byte of the declaration
// itself (its first decorator when decorated) and End is exclusive.
type ElementNode struct {
	Kind      Kind
	Name      string
	FullStart int
	Start     int
	End       int

	AccessModifier  AccessModifier
	IsStatic        bool
	IsAbstract      bool
	IsExport        bool
	HasDecorators   bool
	IsArrowFunction bool
	WriteMode       WriteMode

	// ModifiersStart..NameStart is the modifier region of a member, i.e. the
	// text after the last decorator and before the member name.
	ModifiersStart int
	NameStart      int

	// Members is set for classes and interfaces only.
	Members *Members
}

// Members holds the members of a class or interface in source order.
type Members struct {
	Constructors []*ElementNode
	Properties   []*ElementNode
	Getters      []*ElementNode
	Setters      []*ElementNode
	Methods      []*ElementNode
	Indexes      []*ElementNode
	// Unknown 无法识别的成员，存在时整个声明不参与重排
	Unknown []*ElementNode

	// Start is the FullStart of the first member, End the End of the last one.
	// Both are 0 when the body has no members.
	Start int
	End   int
}

// Add appends a member to the list matching its kind and widens the members range.
func (m *Members) Add(n *ElementNode) {
	switch n.Kind {
	case KindConstructor:
		m.Constructors = append(m.Constructors, n)
	case KindProperty, KindPropertySignature:
		m.Properties = append(m.Properties, n)
	case KindGetter:
		m.Getters = append(m.Getters, n)
	case KindSetter:
		m.Setters = append(m.Setters, n)
	case KindMethod, KindMethodSignature:
		m.Methods = append(m.Methods, n)
	case KindIndex, KindIndexSignature:
		m.Indexes = append(m.Indexes, n)
	default:
		m.Unknown = append(m.Unknown, n)
	}
	if m.Len() == 1 {
		m.Start = n.FullStart
	}
	m.End = n.End
}

// Len returns the number of members, unknown ones included.
func (m *Members) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Constructors) + len(m.Properties) + len(m.Getters) + len(m.Setters) +
		len(m.Methods) + len(m.Indexes) + len(m.Unknown)
}

// All returns every member in source order.
func (m *Members) All() []*ElementNode {
	if m == nil {
		return nil
	}
	all := make([]*ElementNode, 0, m.Len())
	for _, list := range [][]*ElementNode{m.Constructors, m.Properties, m.Getters, m.Setters, m.Methods, m.Indexes, m.Unknown} {
		all = append(all, list...)
	}
	SortByPosition(all)
	return all
}

// ElementNodeGroup is a captioned, possibly nested collection of elements to print.
// A group either carries Nodes directly or delegates to SubGroups.
type ElementNodeGroup struct {
	Caption   string
	SubGroups []*ElementNodeGroup
	Nodes     []*ElementNode
	IsRegion  bool
}

// NewGroup creates a leaf group.
func NewGroup(caption string, nodes []*ElementNode) *ElementNodeGroup {
	return &ElementNodeGroup{Caption: caption, Nodes: nodes}
}

// Count returns the number of nodes carried by the group and its subgroups.
func (g *ElementNodeGroup) Count() int {
	if len(g.Nodes) > 0 {
		return len(g.Nodes)
	}
	count := 0
	for _, sub := range g.SubGroups {
		count += sub.Count()
	}
	return count
}
