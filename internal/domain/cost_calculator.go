package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// CurrencyUSD is the currency of every cost.
const CurrencyUSD = "USD"

// CostService prices entries against immutable cost tables.
type CostService struct {
	tables *CostTables
}

// NewCostService creates a new cost service (DI constructor).
func NewCostService(tables *CostTables) *CostService {
	return &CostService{
		tables: tables,
	}
}

// CalculateCost returns the cost of the entry in USD: the cost recorded for
// its first code, or the default of its category when the code is not listed.
//
// isFacility is accepted for callers that distinguish facility pricing; the
// tables carry a single cost per code, so it has no effect.
func (s *CostService) CalculateCost(entry Entry, isFacility bool) (decimal.Decimal, error) {
	quote, err := s.Quote(entry, isFacility)
	if err != nil {
		return decimal.Zero, err
	}
	return quote.Cost, nil
}

// Quote prices the entry and reports whether the default cost was applied.
func (s *CostService) Quote(entry Entry, _ bool) (Quote, error) {
	if s.tables == nil {
		return Quote{}, errors.New("cost tables not loaded")
	}

	if !entry.Category.Valid() {
		return Quote{}, fmt.Errorf("%w: %d", ErrUnknownCategory, int(entry.Category))
	}

	code, ok := entry.FirstCode()
	if !ok {
		return Quote{}, fmt.Errorf("%w: %s entry", ErrNoCodes, entry.Category)
	}

	table, defaultCost := s.tables.Table(entry.Category)

	quote := Quote{
		Category:  entry.Category,
		PricedAs:  entry.Category.PricingCategory(),
		Code:      code.Code,
		Cost:      defaultCost,
		Currency:  CurrencyUSD,
		Defaulted: true,
	}

	if cost, found := table.Lookup(code.Code); found {
		quote.Cost = cost
		quote.Defaulted = false
	}

	return quote, nil
}

// Tables returns the tables backing the service.
func (s *CostService) Tables() *CostTables {
	return s.tables
}
