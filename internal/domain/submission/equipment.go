package submission

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

const itemSeparator = ", "

// EquipmentItem is one requested kind of equipment. Quantity is always >= 1.
type EquipmentItem struct {
	Kind     string `json:"kind"`
	Quantity int    `json:"quantity"`
}

// Equipment is stored as a human readable description, e.g. "Tent x2, Chair x10".
type Equipment []EquipmentItem

// Selection is raw form input for one checked item.
type Selection struct {
	Kind     string
	Quantity string
}

// NormalizeQuantity collapses malformed, missing or non-positive input to 1.
func NormalizeQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// NewEquipment keeps selection order, drops blank kinds and merges repeats.
func NewEquipment(selected []Selection) Equipment {
	out := make(Equipment, 0, len(selected))
	seen := make(map[string]struct{}, len(selected))
	for _, sel := range selected {
		kind := strings.TrimSpace(sel.Kind)
		if kind == "" {
			continue
		}
		// a checkbox posted twice is still one line item
		if _, ok := seen[kind]; ok {
			continue
		}
		seen[kind] = struct{}{}
		out = append(out, EquipmentItem{Kind: kind, Quantity: NormalizeQuantity(sel.Quantity)})
	}
	return out
}

func (e Equipment) String() string {
	parts := make([]string, 0, len(e))
	for _, it := range e {
		parts = append(parts, fmt.Sprintf("%s x%d", it.Kind, it.Quantity))
	}
	return strings.Join(parts, itemSeparator)
}

// ParseEquipment reads a stored description. Entries written before quantities
// existed ("Tent, Chair") come back with quantity 1.
func ParseEquipment(desc string) Equipment {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return Equipment{}
	}
	var out Equipment
	for _, part := range strings.Split(desc, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kind, qty := part, 1
		if i := strings.LastIndex(part, " x"); i > 0 {
			if n, err := strconv.Atoi(part[i+2:]); err == nil && n > 0 {
				kind, qty = strings.TrimSpace(part[:i]), n
			}
		}
		out = append(out, EquipmentItem{Kind: kind, Quantity: qty})
	}
	return out
}

func (e Equipment) Value() (driver.Value, error) { return e.String(), nil }

func (e *Equipment) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*e = Equipment{}
	case string:
		*e = ParseEquipment(v)
	case []byte:
		*e = ParseEquipment(string(v))
	default:
		return fmt.Errorf("equipment: unsupported scan type %T", src)
	}
	return nil
}
