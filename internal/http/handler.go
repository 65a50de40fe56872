package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/davidbz/medcost/internal/domain"
	"github.com/davidbz/medcost/internal/observability"
)

const maxRequestBytes = 1 << 20

// CostRequest is the body of a pricing request.
type CostRequest struct {
	Type       string        `json:"type"`
	Codes      []domain.Code `json:"codes"`
	IsFacility bool          `json:"is_facility"`
}

// Handler handles HTTP requests.
type Handler struct {
	calculator domain.CostCalculator
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(calculator domain.CostCalculator) *Handler {
	return &Handler{
		calculator: calculator,
	}
}

// HandleCost prices a single clinical entry.
func (h *Handler) HandleCost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CostRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	category, err := domain.ParseCategory(req.Type)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx = observability.WithCategory(ctx, category.String())
	entry := domain.Entry{Category: category, Codes: req.Codes}
	if code, ok := entry.FirstCode(); ok {
		ctx = observability.WithCode(ctx, code.Code)
	}

	logger := observability.FromContext(ctx)

	quote, err := h.calculator.Quote(entry, req.IsFacility)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrNoCodes) || errors.Is(err, domain.ErrUnknownCategory) {
			status = http.StatusBadRequest
		}
		logger.Warn("cost calculation failed", observability.Error(err))
		http.Error(w, err.Error(), status)
		return
	}

	logger.Info("cost calculated",
		observability.Stringer("cost", quote.Cost),
		observability.Stringer("priced_as", quote.PricedAs),
		observability.Bool("defaulted", quote.Defaulted),
		observability.Bool("is_facility", req.IsFacility),
	)

	w.Header().Set("Content-Type", "application/json")
	if encodeErr := json.NewEncoder(w).Encode(quote); encodeErr != nil {
		logger.Error("failed to encode response", observability.Error(encodeErr))
	}
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}
