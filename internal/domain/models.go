package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category identifies the variant of a clinical record entry.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryProcedure
	CategoryMedication
	CategoryEncounter
	CategoryImmunization
	CategoryCondition
	CategoryAllergy
)

//nolint:gochecknoglobals // Read-only lookup tables
var (
	categoryNames = map[Category]string{
		CategoryProcedure:    "Procedure",
		CategoryMedication:   "Medication",
		CategoryEncounter:    "Encounter",
		CategoryImmunization: "Immunization",
		CategoryCondition:    "Condition",
		CategoryAllergy:      "Allergy",
	}

	categoriesByName = func() map[string]Category {
		byName := make(map[string]Category, len(categoryNames))
		for category, name := range categoryNames {
			byName[strings.ToLower(name)] = category
		}
		return byName
	}()
)

// String returns the category name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether c is one of the known entry variants.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// PricingCategory returns the category whose cost table prices c.
// Conditions and allergies have no table of their own and are priced as
// immunizations; callers are expected to price only immunizations among them.
func (c Category) PricingCategory() Category {
	switch c {
	case CategoryProcedure, CategoryMedication, CategoryEncounter:
		return c
	default:
		return CategoryImmunization
	}
}

// ParseCategory resolves a category name, case-insensitively.
func ParseCategory(name string) (Category, error) {
	if category, ok := categoriesByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return category, nil
	}
	return CategoryUnknown, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	category, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = category
	return nil
}

// Code is a coded concept attached to an entry.
type Code struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code"`
	Display string `json:"display,omitempty"`
}

// Entry is a clinical record entry to be priced.
type Entry struct {
	Category Category `json:"type"`
	Codes    []Code   `json:"codes"`
}

// FirstCode returns the entry's primary code.
func (e Entry) FirstCode() (Code, bool) {
	if len(e.Codes) == 0 {
		return Code{}, false
	}
	return e.Codes[0], true
}

// Quote is the outcome of pricing a single entry.
type Quote struct {
	Category  Category        `json:"type"`
	PricedAs  Category        `json:"priced_as"`
	Code      string          `json:"code"`
	Cost      decimal.Decimal `json:"cost"`
	Currency  string          `json:"currency"`
	Defaulted bool            `json:"defaulted"`
}
