package bytecode

import (
	"encoding/json"
	"fmt"
)

// jsonValue is the wire shape for a constant-pool entry: a "kind"
// discriminator plus whichever payload field applies.
type jsonValue struct {
	Kind string  `json:"kind"`
	Bool bool    `json:"bool,omitempty"`
	Num  float64 `json:"num,omitempty"`
	Str  string  `json:"str,omitempty"`
}

// MarshalJSON implements json.Marshaler for Value.
func (v Value) MarshalJSON() ([]byte, error) {
	jv := jsonValue{Bool: v.Bool, Num: v.Num, Str: v.Str}
	switch v.Kind {
	case KindNil:
		jv.Kind = "nil"
	case KindBoolean:
		jv.Kind = "boolean"
	case KindNumber:
		jv.Kind = "number"
	case KindString:
		jv.Kind = "string"
	default:
		return nil, fmt.Errorf("bytecode: invalid constant kind %d", v.Kind)
	}
	return json.Marshal(jv)
}

// UnmarshalJSON implements json.Unmarshaler for Value.
func (v *Value) UnmarshalJSON(data []byte) error {
	var jv jsonValue
	if err := json.Unmarshal(data, &jv); err != nil {
		return err
	}
	switch jv.Kind {
	case "nil", "":
		*v = Value{Kind: KindNil}
	case "boolean":
		*v = Value{Kind: KindBoolean, Bool: jv.Bool}
	case "number":
		*v = Value{Kind: KindNumber, Num: jv.Num}
	case "string":
		*v = Value{Kind: KindString, Str: jv.Str}
	default:
		return fmt.Errorf("bytecode: unknown constant kind %q", jv.Kind)
	}
	return nil
}

// ParseFunction decodes a single compiled function record from JSON. It is
// the concrete realization of the producer boundary named in the external
// interfaces: the real binary-chunk parser is out of scope, so tests and the
// CLI both feed the lifter through this shim.
func ParseFunction(data []byte) (*Function, error) {
	var fn Function
	if err := json.Unmarshal(data, &fn); err != nil {
		return nil, fmt.Errorf("bytecode: decode function: %w", err)
	}
	if fn.MaxStackSize < fn.NumParameters {
		return nil, fmt.Errorf("bytecode: maxStackSize %d smaller than numParameters %d", fn.MaxStackSize, fn.NumParameters)
	}
	return &fn, nil
}
