package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// CostCalculator prices clinical record entries.
type CostCalculator interface {
	// CalculateCost returns the cost of the entry in USD.
	CalculateCost(entry Entry, isFacility bool) (decimal.Decimal, error)

	// Quote prices the entry and reports whether the category default was used.
	Quote(entry Entry, isFacility bool) (Quote, error)
}

// ResourceReader reads resource text by logical path.
type ResourceReader interface {
	ReadResource(name string) (string, error)
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}
