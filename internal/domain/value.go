package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Value is the result of evaluating one expression: a scalar for the
// Strings, Algebra and Boolean domains, a set for the Sets domain.
type Value struct {
	IsSet bool
	Int   int64
	Set   IntSet
}

func ScalarValue(n int64) Value { return Value{Int: n} }

func SetValue(s IntSet) Value {
	if s == nil {
		s = IntSet{}
	}
	return Value{IsSet: true, Set: s}
}

// Equal compares two values of the same variant. Values of different
// variants are never equal.
func (v Value) Equal(o Value) bool {
	if v.IsSet != o.IsSet {
		return false
	}
	if v.IsSet {
		return v.Set.Equal(o.Set)
	}
	return v.Int == o.Int
}

func (v Value) String() string {
	if v.IsSet {
		return v.Set.String()
	}
	return strconv.FormatInt(v.Int, 10)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsSet {
		return json.Marshal(v.Set)
	}
	return json.Marshal(v.Int)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var s IntSet
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = SetValue(s)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = ScalarValue(n)
	return nil
}

func (v Value) MarshalYAML() (any, error) {
	if v.IsSet {
		return v.Set.Sorted(), nil
	}
	return v.Int, nil
}
