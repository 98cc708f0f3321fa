// Package typeinfer assigns an approximate value type to every local,
// walking RValues bottom-up once the function has been structured. It never
// feeds back into the AST's own shape (ast.AssignTarget.Type is populated as
// a side effect) or blocks structuring on failure: inference is best-effort
// and optional, per spec.
package typeinfer

// Kind is a primitive member of the lattice.
type Kind int

const (
	KindNil Kind = iota
	KindBoolean
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "?"
	}
}

// Type is the closed sum of lattice members: Primitive, Table, Union, or
// Any. It mirrors the same interface-over-exhaustive-methods shape
// internal/ast uses for its own closed sum types, rather than a type switch
// over a tag field.
type Type interface {
	// Widen returns the least upper bound of t and other.
	Widen(other Type) Type
	String() string
}

// Primitive is one of the four scalar kinds.
type Primitive struct{ Kind Kind }

func (p Primitive) Widen(other Type) Type {
	if o, ok := other.(Primitive); ok && o.Kind == p.Kind {
		return p
	}
	if _, ok := other.(Any); ok {
		return other
	}
	return unionOf(p, other)
}

func (p Primitive) String() string { return p.Kind.String() }

// Table approximates a table value: Indexer is the inferred element type for
// numeric array-style access, Fields is the inferred type per known string
// key. Either may be nil when nothing has been observed yet.
type Table struct {
	Indexer Type
	Fields  map[string]Type
}

func (t Table) Widen(other Type) Type {
	o, ok := other.(Table)
	if !ok {
		if _, any := other.(Any); any {
			return other
		}
		return unionOf(t, other)
	}
	merged := Table{Fields: make(map[string]Type, len(t.Fields)+len(o.Fields))}
	switch {
	case t.Indexer == nil:
		merged.Indexer = o.Indexer
	case o.Indexer == nil:
		merged.Indexer = t.Indexer
	default:
		merged.Indexer = t.Indexer.Widen(o.Indexer)
	}
	for k, v := range t.Fields {
		merged.Fields[k] = v
	}
	for k, v := range o.Fields {
		if existing, ok := merged.Fields[k]; ok {
			merged.Fields[k] = existing.Widen(v)
		} else {
			merged.Fields[k] = v
		}
	}
	return merged
}

func (t Table) String() string { return "table" }

// Union is a set of distinct possibilities, used once two incompatible
// members have been widened together. Membership is by String() identity.
type Union struct {
	Members []Type
}

func unionOf(a, b Type) Type {
	return Union{Members: []Type{a, b}}.normalize()
}

func (u Union) Widen(other Type) Type {
	if _, ok := other.(Any); ok {
		return other
	}
	return Union{Members: append(append([]Type{}, u.Members...), other)}.normalize()
}

// normalize deduplicates members by String() and collapses a single-member
// union back into that member.
func (u Union) normalize() Type {
	seen := make(map[string]Type)
	order := make([]string, 0, len(u.Members))
	for _, m := range u.Members {
		if inner, ok := m.(Union); ok {
			for _, im := range inner.Members {
				if _, dup := seen[im.String()]; !dup {
					seen[im.String()] = im
					order = append(order, im.String())
				}
			}
			continue
		}
		if _, dup := seen[m.String()]; !dup {
			seen[m.String()] = m
			order = append(order, m.String())
		}
	}
	if len(order) == 1 {
		return seen[order[0]]
	}
	members := make([]Type, len(order))
	for i, k := range order {
		members[i] = seen[k]
	}
	return Union{Members: members}
}

func (u Union) String() string {
	s := ""
	for i, m := range u.Members {
		if i > 0 {
			s += "|"
		}
		s += m.String()
	}
	return s
}

// Any is the top of the lattice: inference gave up, or the value's origin
// (an upvalue, a global, a call result) is opaque by construction.
type Any struct{}

func (Any) Widen(Type) Type { return Any{} }
func (Any) String() string  { return "any" }
