package http

import (
	"net/http"
	"testing"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/contractor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractorHandler_List(t *testing.T) {
	srv := newTestServer(t, false)

	rec := srv.do(t, http.MethodGet, "/api/v1/contractors", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []contractor.ContractorResponse
	decodeEnvelope(t, rec, &list)
	require.Len(t, list, 6)
	assert.Equal(t, "Asphodel Vallejo Rangel", list[0].Name)

	rec = srv.do(t, http.MethodGet, "/api/v1/contractors?active_only=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContractorHandler_GetByID(t *testing.T) {
	srv := newTestServer(t, false)

	rec := srv.do(t, http.MethodGet, "/api/v1/contractors/contractor-006", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var c contractor.ContractorResponse
	decodeEnvelope(t, rec, &c)
	assert.Equal(t, "Luis Lopez", c.Name)
	assert.Equal(t, "2024-03-10", c.DateAdded)
	require.Len(t, c.Buildings, 1)
	assert.Equal(t, "85", c.Buildings[0].PayPerVisit.String())

	rec = srv.do(t, http.MethodGet, "/api/v1/contractors/contractor-404", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContractorHandler_CreateUpdateDeactivate(t *testing.T) {
	srv := newTestServer(t, false)

	rec := srv.do(t, http.MethodPost, "/api/v1/contractors", map[string]any{
		"name":         "",
		"payment_info": map[string]any{"method": "Barter"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeEnvelope(t, rec, nil)
	assert.Equal(t, "is required", env.Error.Details["name"])
	assert.Equal(t, contractor.ErrInvalidPaymentMethod.Error(), env.Error.Details["payment_info.method"])

	rec = srv.do(t, http.MethodPost, "/api/v1/contractors", map[string]any{
		"name":         "Rosa Diaz",
		"address":      map[string]any{"street": "100 Main St", "city": "Kent", "state": "WA", "zip_code": "98032"},
		"payment_info": map[string]any{"method": "Check"},
		"buildings":    []map[string]any{{"building_name": "Kent Depot", "pay_per_visit": "70", "is_active": true}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created contractor.ContractorResponse
	decodeEnvelope(t, rec, &created)
	require.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)

	rec = srv.do(t, http.MethodPut, "/api/v1/contractors/"+created.ID, map[string]any{"name": "Rosa Díaz"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated contractor.ContractorResponse
	decodeEnvelope(t, rec, &updated)
	assert.Equal(t, "Rosa Díaz", updated.Name)
	assert.Equal(t, "Kent", updated.Address.City)

	rec = srv.do(t, http.MethodDelete, "/api/v1/contractors/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/contractors", nil)
	var active []contractor.ContractorResponse
	decodeEnvelope(t, rec, &active)
	assert.Len(t, active, 6)

	rec = srv.do(t, http.MethodGet, "/api/v1/contractors?active_only=false", nil)
	var all []contractor.ContractorResponse
	decodeEnvelope(t, rec, &all)
	assert.Len(t, all, 7)
}

func TestContractorHandler_Update_NotFound(t *testing.T) {
	srv := newTestServer(t, false)

	rec := srv.do(t, http.MethodPut, "/api/v1/contractors/contractor-404", map[string]any{"name": "Nobody"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/v1/contractors/contractor-404", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
