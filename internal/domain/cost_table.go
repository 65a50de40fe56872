package domain

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/davidbz/medcost/internal/observability"
	"github.com/davidbz/medcost/internal/tabular"
)

// Cost table columns. Any further column (COMMENTS) is ignored.
const (
	codeColumn = "CODE"
	costColumn = "COST"
)

// CostTable maps billing codes to costs in USD. It is never modified after
// construction and is safe for concurrent reads.
type CostTable struct {
	costs map[string]decimal.Decimal
}

// NewCostTable creates a table holding a copy of costs.
func NewCostTable(costs map[string]decimal.Decimal) *CostTable {
	copied := make(map[string]decimal.Decimal, len(costs))
	for code, cost := range costs {
		copied[code] = cost
	}
	return &CostTable{
		costs: copied,
	}
}

// Lookup returns the cost recorded for code.
func (t *CostTable) Lookup(code string) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Zero, false
	}
	cost, ok := t.costs[code]
	return cost, ok
}

// Len returns the number of codes in the table.
func (t *CostTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.costs)
}

// ParseCostTable builds a table from CSV text with CODE and COST columns.
// A code listed twice keeps its last cost. A non-numeric COST fails the
// whole table.
func ParseCostTable(text string) (*CostTable, error) {
	table, err := tabular.Parse(text)
	if err != nil {
		return nil, err
	}

	if err := table.Require(codeColumn, costColumn); err != nil {
		return nil, err
	}

	costs := make(map[string]decimal.Decimal, len(table.Records))
	for i, record := range table.Records {
		code := record.Get(codeColumn)
		cost, parseErr := decimal.NewFromString(record.Get(costColumn))
		if parseErr != nil {
			return nil, fmt.Errorf("record %d (code %q): invalid cost %q: %w",
				i+1, code, record.Get(costColumn), parseErr)
		}
		costs[code] = cost
	}

	return &CostTable{
		costs: costs,
	}, nil
}

// LoadCostTable reads and parses the named resource.
func LoadCostTable(ctx context.Context, reader ResourceReader, resource string) (*CostTable, error) {
	text, err := reader.ReadResource(resource)
	if err != nil {
		return nil, &LoadError{Resource: resource, Err: err}
	}

	table, err := ParseCostTable(text)
	if err != nil {
		return nil, &LoadError{Resource: resource, Err: err}
	}

	observability.FromContext(ctx).Debug("cost table loaded",
		observability.String("resource", resource),
		observability.Int("codes", table.Len()),
	)

	return table, nil
}
