package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
	"github.com/Robson2726/Facilitta-sub000/internal/error/code"
	"github.com/Robson2726/Facilitta-sub000/internal/test/testenv"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, env *testenv.Env, method, path string, body interface{}, token string) (int, envelope) {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)

	var env2 envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env2), w.Body.String())
	return w.Code, env2
}

func decode(t *testing.T, raw json.RawMessage, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, dest), string(raw))
}

func TestGatewayStatus(t *testing.T) {
	env := testenv.NewT(t)

	status, res := call(t, env, http.MethodGet, "/api/status", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, res.Success)

	var data map[string]interface{}
	decode(t, res.Data, &data)
	assert.Equal(t, "online", data["servidor"])
	assert.Equal(t, true, data["database"])
}

func TestGatewayIntakeAndDelivery(t *testing.T) {
	env := testenv.NewT(t)
	porter, err := env.CreateUser("joao", "Joao Lima", models.AccessLevelPorter)
	require.NoError(t, err)

	status, res := call(t, env, http.MethodPost, "/api/encomendas", map[string]interface{}{
		"morador":          "Ana Souza",
		"bloco":            "B",
		"apartamento":      "34",
		"porteiro_id":      porter.ID,
		"observacoes":      "Caixa média",
		"data_recebimento": "10/05/2024",
		"hora_recebimento": "14:30",
	}, "")
	require.Equal(t, http.StatusCreated, status, res.Message)
	var created struct {
		ID            uint `json:"id"`
		MoradorID     uint `json:"morador_id"`
		MoradorCriado bool `json:"morador_criado"`
	}
	decode(t, res.Data, &created)
	assert.True(t, created.MoradorCriado)

	// same name again reuses the resident
	status, res = call(t, env, http.MethodPost, "/api/encomendas", map[string]interface{}{
		"morador":  "ana souza",
		"porteiro": "Joao Lima",
	}, "")
	require.Equal(t, http.StatusCreated, status, res.Message)
	var second struct {
		MoradorID     uint `json:"morador_id"`
		MoradorCriado bool `json:"morador_criado"`
	}
	decode(t, res.Data, &second)
	assert.False(t, second.MoradorCriado)
	assert.Equal(t, created.MoradorID, second.MoradorID)

	status, res = call(t, env, http.MethodGet, "/api/encomendas", nil, "")
	require.Equal(t, http.StatusOK, status)
	var pending []map[string]interface{}
	decode(t, res.Data, &pending)
	require.Len(t, pending, 2)
	for _, p := range pending {
		assert.Equal(t, "pending", p["status"])
		assert.Equal(t, "Ana Souza", p["morador"])
	}

	path := "/api/encomendas/" + strconv.FormatUint(uint64(created.ID), 10) + "/entregar"
	status, res = call(t, env, http.MethodPut, path, map[string]interface{}{
		"porteiro_id":  porter.ID,
		"retirado_por": "Ana Souza",
		"data_entrega": "10/05/2024",
		"hora_entrega": "18:05",
	}, "")
	require.Equal(t, http.StatusOK, status, res.Message)
	assert.True(t, res.Success)

	status, res = call(t, env, http.MethodPut, path, map[string]interface{}{
		"porteiro_id":  porter.ID,
		"retirado_por": "Outra Pessoa",
	}, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, res.Success)
	assert.Equal(t, code.ErrPackageAlreadyDelivered, res.Code)
	assert.Equal(t, "Encomenda já foi entregue", res.Message)

	status, res = call(t, env, http.MethodGet, "/api/encomendas", nil, "")
	require.Equal(t, http.StatusOK, status)
	decode(t, res.Data, &pending)
	assert.Len(t, pending, 1)
}

func TestGatewayDeliveryFailures(t *testing.T) {
	env := testenv.NewT(t)
	porter, err := env.CreateUser("joao", "Joao Lima", models.AccessLevelPorter)
	require.NoError(t, err)
	admin, err := env.CreateUser("admin", "Admin", models.AccessLevelAdmin)
	require.NoError(t, err)
	resident, err := env.CreateResident("Ana Souza")
	require.NoError(t, err)
	id, err := env.ReceivePackage(resident.ID, porter.ID)
	require.NoError(t, err)
	path := "/api/encomendas/" + strconv.FormatUint(uint64(id), 10) + "/entregar"

	status, res := call(t, env, http.MethodPut, "/api/encomendas/9999/entregar", map[string]interface{}{"porteiro_id": porter.ID, "retirado_por": "Ana"}, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, code.ErrPackageNotFound, res.Code)

	status, _ = call(t, env, http.MethodPut, path, map[string]interface{}{"porteiro_id": porter.ID}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, res = call(t, env, http.MethodPut, path, map[string]interface{}{"porteiro_id": admin.ID, "retirado_por": "Ana"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, code.ErrPorterNotEligible, res.Code)

	status, res = call(t, env, http.MethodPut, path, map[string]interface{}{"porteiro_id": porter.ID, "retirado_por": "Ana", "data_entrega": "31/02/2024"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, code.ErrInvalidDate, res.Code)

	status, _ = call(t, env, http.MethodPut, "/api/encomendas/abc/entregar", map[string]interface{}{"porteiro_id": porter.ID, "retirado_por": "Ana"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGatewayIntakeValidation(t *testing.T) {
	env := testenv.NewT(t)
	porter, err := env.CreateUser("joao", "Joao Lima", models.AccessLevelPorter)
	require.NoError(t, err)

	status, _ := call(t, env, http.MethodPost, "/api/encomendas", map[string]interface{}{"porteiro_id": porter.ID}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, res := call(t, env, http.MethodPost, "/api/encomendas", map[string]interface{}{"morador": "Ana", "porteiro": "ninguem"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, code.ErrPorterNotEligible, res.Code)

	status, _ = call(t, env, http.MethodPost, "/api/encomendas", map[string]interface{}{"morador": "Ana", "porteiro_id": porter.ID, "quantidade": -1}, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGatewayUsersFilter(t *testing.T) {
	env := testenv.NewT(t)
	_, err := env.CreateUser("joao", "Joao Lima", models.AccessLevelPorter)
	require.NoError(t, err)
	_, err = env.CreateUser("admin", "Admin", models.AccessLevelAdmin)
	require.NoError(t, err)

	status, res := call(t, env, http.MethodGet, "/api/usuarios?nivel=porteiro&status=ativo", nil, "")
	require.Equal(t, http.StatusOK, status)
	var users []map[string]interface{}
	decode(t, res.Data, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "porteiro", users[0]["nivel"])
	assert.Equal(t, "ativo", users[0]["status"])
	assert.NotContains(t, users[0], "senha")

	status, _ = call(t, env, http.MethodGet, "/api/usuarios?nivel=sindico", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGatewayResidentsAndSuggestions(t *testing.T) {
	env := testenv.NewT(t)
	porter, err := env.CreateUser("joao", "Joao Lima", models.AccessLevelPorter)
	require.NoError(t, err)
	ana, err := env.CreateResident("Ana Souza")
	require.NoError(t, err)
	mariana, err := env.CreateResident("Mariana Alves")
	require.NoError(t, err)
	_, err = env.CreateResident("Bruno Costa")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = env.ReceivePackage(mariana.ID, porter.ID)
		require.NoError(t, err)
	}

	status, res := call(t, env, http.MethodGet, "/api/moradores", nil, "")
	require.Equal(t, http.StatusOK, status)
	var residents []map[string]interface{}
	decode(t, res.Data, &residents)
	assert.Len(t, residents, 3)

	status, res = call(t, env, http.MethodGet, "/api/moradores?q=ana", nil, "")
	require.Equal(t, http.StatusOK, status)
	decode(t, res.Data, &residents)
	assert.Len(t, residents, 2)

	status, res = call(t, env, http.MethodGet, "/api/moradores/sugestoes?q=ana", nil, "")
	require.Equal(t, http.StatusOK, status)
	var suggestions []struct {
		ID    uint  `json:"id"`
		Total int64 `json:"total_encomendas"`
	}
	decode(t, res.Data, &suggestions)
	require.Len(t, suggestions, 2)
	assert.Equal(t, mariana.ID, suggestions[0].ID)
	assert.Equal(t, int64(2), suggestions[0].Total)
	assert.Equal(t, ana.ID, suggestions[1].ID)
}

func TestGatewayReadFailureKeepsEmptyList(t *testing.T) {
	env := testenv.NewT(t)
	sqlDB, err := env.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	status, res := call(t, env, http.MethodGet, "/api/encomendas", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.False(t, res.Success)
	assert.Equal(t, code.ErrDatabase, res.Code)
	assert.JSONEq(t, `[]`, string(res.Data))

	status, res = call(t, env, http.MethodGet, "/api/status", nil, "")
	assert.Equal(t, http.StatusOK, status)
	var data map[string]interface{}
	decode(t, res.Data, &data)
	assert.Equal(t, false, data["database"])
}

func TestPairingEndpoints(t *testing.T) {
	env := testenv.NewT(t)

	status, res := call(t, env, http.MethodGet, "/api/pareamento", nil, "")
	require.Equal(t, http.StatusOK, status)
	var pairing map[string]interface{}
	decode(t, res.Data, &pairing)
	assert.Equal(t, "192.168.0.15", pairing["ip"])
	assert.Equal(t, float64(3000), pairing["porta"])
	assert.Equal(t, "192.168.0.15:3000", pairing["conteudo"])
	assert.NotEmpty(t, pairing["qrcode_png"])

	req := httptest.NewRequest(http.MethodGet, "/api/pareamento/qrcode.png", nil)
	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	env := testenv.NewT(t)

	status, res := call(t, env, http.MethodGet, "/api/nao-existe", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, res.Success)
	assert.Equal(t, code.ErrRecordNotFound, res.Code)
	assert.Equal(t, "Rota não encontrada", res.Message)
}
