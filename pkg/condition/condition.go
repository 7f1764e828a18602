// Package condition implements the predicate DSL used by event
// triggers. An expression is a mapping from variable name to a
// comparison; all comparisons must hold for the expression to match.
// Expressions are validated when unmarshaled, so a malformed seed row
// surfaces at load time instead of during the round scan.
package condition

import (
	"encoding/json"
	"fmt"
)

// Comparison operators supported by trigger conditions.
const (
	OpLess         = "<"
	OpLessEqual    = "<="
	OpGreater      = ">"
	OpGreaterEqual = ">="
	OpEqual        = "=="
	OpNotEqual     = "!="
)

// Comparison is a single predicate against one variable.
type Comparison struct {
	Operator string `json:"operator"`
	Value    int    `json:"value"`
}

// Holds evaluates the comparison against an observed value.
func (c Comparison) Holds(observed int) bool {
	switch c.Operator {
	case OpLess:
		return observed < c.Value
	case OpLessEqual:
		return observed <= c.Value
	case OpGreater:
		return observed > c.Value
	case OpGreaterEqual:
		return observed >= c.Value
	case OpEqual:
		return observed == c.Value
	case OpNotEqual:
		return observed != c.Value
	}
	return false
}

func validOperator(op string) bool {
	switch op {
	case OpLess, OpLessEqual, OpGreater, OpGreaterEqual, OpEqual, OpNotEqual:
		return true
	}
	return false
}

// Expr is a conjunction of comparisons keyed by variable name.
// An empty (or nil) expression is vacuously true.
type Expr map[string]Comparison

// UnmarshalJSON validates operators as the expression is decoded.
func (e *Expr) UnmarshalJSON(data []byte) error {
	var raw map[string]Comparison
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for name, cmp := range raw {
		if !validOperator(cmp.Operator) {
			return fmt.Errorf("condition %q: unknown operator %q", name, cmp.Operator)
		}
	}
	*e = raw
	return nil
}

// RegionalExpr scopes an expression to map regions. When RegionID is
// set only that region is checked; otherwise every region is a
// candidate and the caller decides how to fan out.
type RegionalExpr struct {
	RegionID   string
	Conditions Expr
}

// IsEmpty reports whether the expression constrains nothing.
func (re *RegionalExpr) IsEmpty() bool {
	return re == nil || (re.RegionID == "" && len(re.Conditions) == 0)
}

// UnmarshalJSON decodes the wire shape: a flat JSON object where
// "regionId" is a reserved key and every other key is a comparison.
func (re *RegionalExpr) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := RegionalExpr{Conditions: make(Expr)}
	for name, val := range raw {
		if name == "regionId" {
			if err := json.Unmarshal(val, &out.RegionID); err != nil {
				return fmt.Errorf("regionId: %w", err)
			}
			continue
		}
		var cmp Comparison
		if err := json.Unmarshal(val, &cmp); err != nil {
			return fmt.Errorf("regional condition %q: %w", name, err)
		}
		if !validOperator(cmp.Operator) {
			return fmt.Errorf("regional condition %q: unknown operator %q", name, cmp.Operator)
		}
		out.Conditions[name] = cmp
	}

	*re = out
	return nil
}

// MarshalJSON writes the flat wire shape back out.
func (re RegionalExpr) MarshalJSON() ([]byte, error) {
	raw := make(map[string]interface{}, len(re.Conditions)+1)
	if re.RegionID != "" {
		raw["regionId"] = re.RegionID
	}
	for name, cmp := range re.Conditions {
		raw[name] = cmp
	}
	return json.Marshal(raw)
}
