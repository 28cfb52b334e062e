package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

type failingTotals struct{}

func (failingTotals) GetDashboardTotals(context.Context) (repository.DashboardTotals, error) {
	return repository.DashboardTotals{}, errors.New("db caída: dial tcp 10.0.0.7:5432")
}

func TestErrorInterno_NoExponeElDetalle(t *testing.T) {
	store := memory.NewStore()
	ledgerUC := ledger.NewUseCase(store, store.Inventories(), store.Transactions())
	var logs bytes.Buffer

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:      ledgerUC,
		DashboardUC: analytics.NewDashboardUseCase(failingTotals{}, ledgerUC, nil, nil),
		JWTSecret:   testJWTSecret,
		Log:         logger.FromZerolog(zerolog.New(&logs)),
	})
	api := &ledgerAPI{app: app}

	resp, raw := api.do(t, http.MethodGet, "/api/dashboard", "viewer", nil)

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Equal(t, "error interno del servidor", body.Message)
	assert.NotContains(t, string(raw), "10.0.0.7")

	// El detalle queda en el log del servidor.
	assert.Contains(t, logs.String(), "db caída")
	assert.Contains(t, logs.String(), "/api/dashboard")
}

func TestRechazoPorTipo_IncluyeTiposPermitidos(t *testing.T) {
	api := newLedgerAPI(t)

	resp, raw := api.do(t, http.MethodPost, "/api/transactions", "employee", api.movement(5, "IN", "SALE"))

	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "INVALID_TYPE_FOR_MOVEMENT", body.Code)
	assert.Equal(t, []string{"PURCHASE", "RETURN"}, body.AllowedTypes)

	// Un rechazo por stock no sugiere tipos.
	resp, raw = api.do(t, http.MethodPost, "/api/transactions", "employee", api.movement(5, "OUT", "SALE"))
	require.Equal(t, http.StatusConflict, resp.StatusCode, string(raw))
	body = dto.ErrorResponse{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Empty(t, body.AllowedTypes)
}
