package domain

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Defaults holds the fallback cost of each priced category.
type Defaults struct {
	Procedure    decimal.Decimal
	Medication   decimal.Decimal
	Encounter    decimal.Decimal
	Immunization decimal.Decimal
}

// Validate rejects negative defaults.
func (d Defaults) Validate() error {
	for category, cost := range map[Category]decimal.Decimal{
		CategoryProcedure:    d.Procedure,
		CategoryMedication:   d.Medication,
		CategoryEncounter:    d.Encounter,
		CategoryImmunization: d.Immunization,
	} {
		if cost.IsNegative() {
			return fmt.Errorf("default %s cost is negative: %s", category, cost)
		}
	}
	return nil
}

// TableSources names the resource holding each category's cost table.
type TableSources struct {
	Procedures    string
	Medications   string
	Encounters    string
	Immunizations string
}

// CostTables holds the four cost tables and their defaults.
type CostTables struct {
	procedures    *CostTable
	medications   *CostTable
	encounters    *CostTable
	immunizations *CostTable
	defaults      Defaults
}

// NewCostTables assembles already built tables. A nil table behaves as empty.
func NewCostTables(procedures, medications, encounters, immunizations *CostTable, defaults Defaults) *CostTables {
	return &CostTables{
		procedures:    procedures,
		medications:   medications,
		encounters:    encounters,
		immunizations: immunizations,
		defaults:      defaults,
	}
}

// LoadCostTables reads all four tables. Any failure aborts the load and no
// tables are returned.
func LoadCostTables(
	ctx context.Context,
	reader ResourceReader,
	sources TableSources,
	defaults Defaults,
) (*CostTables, error) {
	if err := defaults.Validate(); err != nil {
		return nil, err
	}

	procedures, err := LoadCostTable(ctx, reader, sources.Procedures)
	if err != nil {
		return nil, err
	}

	medications, err := LoadCostTable(ctx, reader, sources.Medications)
	if err != nil {
		return nil, err
	}

	encounters, err := LoadCostTable(ctx, reader, sources.Encounters)
	if err != nil {
		return nil, err
	}

	immunizations, err := LoadCostTable(ctx, reader, sources.Immunizations)
	if err != nil {
		return nil, err
	}

	return NewCostTables(procedures, medications, encounters, immunizations, defaults), nil
}

// Table returns the table and default that price the given category.
func (t *CostTables) Table(category Category) (*CostTable, decimal.Decimal) {
	switch category.PricingCategory() {
	case CategoryProcedure:
		return t.procedures, t.defaults.Procedure
	case CategoryMedication:
		return t.medications, t.defaults.Medication
	case CategoryEncounter:
		return t.encounters, t.defaults.Encounter
	default:
		return t.immunizations, t.defaults.Immunization
	}
}

// Defaults returns the configured fallback costs.
func (t *CostTables) Defaults() Defaults {
	return t.defaults
}

// Summary reports table sizes, keyed by category name.
func (t *CostTables) Summary() map[string]interface{} {
	return map[string]interface{}{
		CategoryProcedure.String():    t.procedures.Len(),
		CategoryMedication.String():   t.medications.Len(),
		CategoryEncounter.String():    t.encounters.Len(),
		CategoryImmunization.String(): t.immunizations.Len(),
	}
}
