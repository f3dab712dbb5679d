package nodes

// RawNode is an opaque SQL fragment with embedded parameter slots. Each
// unescaped ? in the fragment consumes one entry from Values in order; a
// doubled ?? emits a literal question mark. The compiler rejects fragments
// whose slot count does not match len(Values).
//
// SECURITY: the fragment is emitted verbatim. Never build fragments from
// user input; bind user-provided values through the slots instead.
type RawNode struct {
	Predications
	Combinable
	Fragment string
	Values   []any
}

func (n *RawNode) Accept(v Visitor) error { return v.VisitRaw(n) }

// Raw creates a raw SQL fragment node with optional bind values.
func Raw(fragment string, values ...any) *RawNode {
	n := &RawNode{Fragment: fragment, Values: values}
	n.Predications.self = n
	n.Combinable.self = n
	return n
}
