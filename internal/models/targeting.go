package models

// Logical operators joining consecutive targeting rules.
const (
	LogicalAnd = "and"
	LogicalOr  = "or"
)

// TargetingSchema lists the fields of one delivery rule. Rules have no
// identifier of their own; a banner or channel carries them as an ordered list.
var TargetingSchema = NewSchema("targeting", "",
	Field{"logical", TypeString},
	Field{"type", TypeString},
	Field{"comparison", TypeString},
	Field{"data", TypeString},
)

// Targeting is one delivery-limitation rule, e.g. type "Geo:Country",
// comparison "=~", data "US,CA".
type Targeting struct {
	Record
}

// NewTargeting returns an empty rule.
func NewTargeting() *Targeting {
	return &Targeting{Record: newRecord(TargetingSchema)}
}

// TargetingFromArray hydrates one rule per wire map, preserving order.
func TargetingFromArray(wire []map[string]any) ([]*Targeting, error) {
	rules := make([]*Targeting, 0, len(wire))
	for _, m := range wire {
		t := NewTargeting()
		if err := t.ReadDataFromArray(m); err != nil {
			return nil, err
		}
		rules = append(rules, t)
	}
	return rules, nil
}
