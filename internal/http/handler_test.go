package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/medcost/internal/config"
	"github.com/davidbz/medcost/internal/domain"
	httpapi "github.com/davidbz/medcost/internal/http"
	"github.com/davidbz/medcost/internal/http/middleware"
	"github.com/davidbz/medcost/internal/resources"
)

type mockCalculator struct {
	mock.Mock
}

func (m *mockCalculator) CalculateCost(entry domain.Entry, isFacility bool) (decimal.Decimal, error) {
	args := m.Called(entry, isFacility)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockCalculator) Quote(entry domain.Entry, isFacility bool) (domain.Quote, error) {
	args := m.Called(entry, isFacility)
	return args.Get(0).(domain.Quote), args.Error(1)
}

func postCost(t *testing.T, handler http.Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/costs", bytes.NewReader(payload)))
	return w
}

func TestHandleCost_PassesEntryToCalculator(t *testing.T) {
	calculator := &mockCalculator{}
	handler := httpapi.NewHandler(calculator)

	expected := domain.Entry{
		Category: domain.CategoryMedication,
		Codes:    []domain.Code{{System: "RxNorm", Code: "313782"}},
	}
	calculator.On("Quote", expected, true).Return(domain.Quote{
		Category: domain.CategoryMedication,
		PricedAs: domain.CategoryMedication,
		Code:     "313782",
		Cost:     decimal.RequireFromString("8.53"),
		Currency: domain.CurrencyUSD,
	}, nil).Once()

	w := postCost(t, http.HandlerFunc(handler.HandleCost), map[string]interface{}{
		"type":        "medication",
		"codes":       []map[string]string{{"system": "RxNorm", "code": "313782"}},
		"is_facility": true,
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var quote domain.Quote
	require.NoError(t, json.NewDecoder(w.Body).Decode(&quote))
	require.Equal(t, "313782", quote.Code)
	require.True(t, decimal.RequireFromString("8.53").Equal(quote.Cost))
	calculator.AssertExpectations(t)
}

func TestHandleCost_CalculatorErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "missing codes is a bad request",
			err:            domain.ErrNoCodes,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unexpected failure is an internal error",
			err:            errors.New("cost tables not loaded"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calculator := &mockCalculator{}
			calculator.On("Quote", mock.Anything, false).Return(domain.Quote{}, tt.err).Once()

			w := postCost(t, http.HandlerFunc(httpapi.NewHandler(calculator).HandleCost), map[string]interface{}{
				"type":  "Procedure",
				"codes": []map[string]string{{"code": "99213"}},
			})

			require.Equal(t, tt.expectedStatus, w.Code)
			calculator.AssertExpectations(t)
		})
	}
}

func TestHandleCost_RequestValidation(t *testing.T) {
	calculator := &mockCalculator{}
	handler := httpapi.NewHandler(calculator)

	t.Run("rejects non-POST", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.HandleCost(w, httptest.NewRequest(http.MethodGet, "/v1/costs", nil))

		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.HandleCost(w, httptest.NewRequest(http.MethodPost, "/v1/costs", bytes.NewReader([]byte("{"))))

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects unknown entry type", func(t *testing.T) {
		w := postCost(t, http.HandlerFunc(handler.HandleCost), map[string]interface{}{
			"type":  "Observation",
			"codes": []map[string]string{{"code": "8302-2"}},
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	calculator.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything)
}

func TestServer_Routes(t *testing.T) {
	tables, err := domain.LoadCostTables(
		context.Background(),
		resources.Bundled(),
		domain.TableSources{
			Procedures:    resources.ProceduresPath,
			Medications:   resources.MedicationsPath,
			Encounters:    resources.EncountersPath,
			Immunizations: resources.ImmunizationsPath,
		},
		domain.Defaults{
			Procedure:    decimal.RequireFromString("75.00"),
			Medication:   decimal.RequireFromString("10.00"),
			Encounter:    decimal.RequireFromString("100.00"),
			Immunization: decimal.RequireFromString("25.00"),
		},
	)
	require.NoError(t, err)

	server := httpapi.NewServer(
		&config.ServerConfig{Port: 0},
		httpapi.NewHandler(domain.NewCostService(tables)),
		middleware.BuildMiddlewareChain(&config.CORSConfig{AllowedOrigins: []string{"*"}}),
	)
	routes := server.Routes()

	t.Run("listed procedure", func(t *testing.T) {
		w := postCost(t, routes, map[string]interface{}{
			"type":  "Procedure",
			"codes": []map[string]string{{"code": "99213"}},
		})

		require.Equal(t, http.StatusOK, w.Code)
		require.NotEmpty(t, w.Header().Get("X-Request-Id"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		require.Equal(t, "125.5", body["cost"])
		require.Equal(t, "Procedure", body["type"])
		require.Equal(t, "USD", body["currency"])
		require.Equal(t, false, body["defaulted"])
	})

	t.Run("allergy falls back to immunization default", func(t *testing.T) {
		w := postCost(t, routes, map[string]interface{}{
			"type":        "Allergy",
			"codes":       []map[string]string{{"code": "XYZ"}},
			"is_facility": true,
		})

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		require.Equal(t, "25", body["cost"])
		require.Equal(t, "Immunization", body["priced_as"])
		require.Equal(t, true, body["defaulted"])
	})

	t.Run("entry without codes", func(t *testing.T) {
		w := postCost(t, routes, map[string]interface{}{
			"type":  "Encounter",
			"codes": []map[string]string{},
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		routes.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
	})
}
