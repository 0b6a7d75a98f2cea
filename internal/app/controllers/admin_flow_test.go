package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Robson2726/Facilitta-sub000/internal/error/code"
	"github.com/Robson2726/Facilitta-sub000/internal/test/testenv"
)

func TestFirstRunSetupAndLogin(t *testing.T) {
	env := testenv.NewT(t)

	status, res := call(t, env, http.MethodGet, "/api/setup/status", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"configuracao_pendente":true}`, string(res.Data))

	status, res = call(t, env, http.MethodPost, "/api/setup/admin", map[string]interface{}{
		"login": "admin", "nome": "Administrador", "senha": "segredo123",
	}, "")
	require.Equal(t, http.StatusCreated, status, res.Message)

	status, res = call(t, env, http.MethodPost, "/api/setup/admin", map[string]interface{}{
		"login": "intruso", "nome": "Intruso", "senha": "segredo123",
	}, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, code.ErrBootstrapClosed, res.Code)

	status, res = call(t, env, http.MethodGet, "/api/setup/status", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"configuracao_pendente":false}`, string(res.Data))

	status, res = call(t, env, http.MethodPost, "/api/auth/login", map[string]interface{}{"login": "admin", "senha": "errada"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, code.ErrUserPasswordIncorrect, res.Code)

	status, res = call(t, env, http.MethodPost, "/api/auth/login", map[string]interface{}{"login": "admin", "senha": "segredo123"}, "")
	require.Equal(t, http.StatusOK, status, res.Message)
	var login struct {
		Token string `json:"token"`
		Nivel string `json:"nivel"`
	}
	decode(t, res.Data, &login)
	assert.Equal(t, "admin", login.Nivel)

	status, _ = call(t, env, http.MethodGet, "/api/admin/usuarios", nil, login.Token)
	assert.Equal(t, http.StatusOK, status)
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	env := testenv.NewT(t)
	porter, err := env.CreateUser("joao", "Joao Lima", "porter")
	require.NoError(t, err)
	token, err := env.Token(porter)
	require.NoError(t, err)

	status, _ := call(t, env, http.MethodGet, "/api/admin/encomendas", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, env, http.MethodGet, "/api/admin/encomendas", nil, token)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAdminBatchDeliveryAndHistory(t *testing.T) {
	env := testenv.NewT(t)
	admin, err := env.CreateUser("admin", "Admin", "admin")
	require.NoError(t, err)
	porter, err := env.CreateUser("joao", "Joao Lima", "porter")
	require.NoError(t, err)
	token, err := env.Token(admin)
	require.NoError(t, err)
	resident, err := env.CreateResident("Ana Souza")
	require.NoError(t, err)

	status, res := call(t, env, http.MethodPost, "/api/admin/encomendas", map[string]interface{}{
		"morador_id": resident.ID, "porteiro_id": porter.ID, "quantidade": 2,
	}, token)
	require.Equal(t, http.StatusCreated, status, res.Message)
	var created struct {
		ID uint `json:"id"`
	}
	decode(t, res.Data, &created)

	second, err := env.ReceivePackage(resident.ID, porter.ID)
	require.NoError(t, err)

	status, res = call(t, env, http.MethodPost, "/api/admin/encomendas/entregar-lote", map[string]interface{}{
		"ids": []uint{}, "porteiro_id": porter.ID, "retirado_por": "Ana",
	}, token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, code.ErrEmptySelection, res.Code)

	status, res = call(t, env, http.MethodPost, "/api/admin/encomendas/entregar-lote", map[string]interface{}{
		"ids":          []uint{created.ID, 9999, second},
		"porteiro_id":  porter.ID,
		"retirado_por": "Ana Souza",
		"data_entrega": "10/05/2024",
		"hora_entrega": "18:05",
	}, token)
	require.Equal(t, http.StatusOK, status, res.Message)
	assert.Equal(t, "2 encomenda(s) entregue(s), 1 falha(s)", res.Message)
	var report struct {
		LoteID    string `json:"lote_id"`
		Entregues []uint `json:"entregues"`
		Falhas    []struct {
			ID     uint   `json:"id"`
			Motivo string `json:"motivo"`
		} `json:"falhas"`
	}
	decode(t, res.Data, &report)
	assert.NotEmpty(t, report.LoteID)
	assert.Equal(t, []uint{created.ID, second}, report.Entregues)
	require.Len(t, report.Falhas, 1)
	assert.Equal(t, uint(9999), report.Falhas[0].ID)
	assert.Equal(t, "not_found", report.Falhas[0].Motivo)

	status, res = call(t, env, http.MethodGet, "/api/admin/encomendas/entregues?de=10/05/2024&ate=10/05/2024", nil, token)
	require.Equal(t, http.StatusOK, status)
	var history []map[string]interface{}
	decode(t, res.Data, &history)
	require.Len(t, history, 2)
	assert.Equal(t, "delivered", history[0]["status"])
	assert.Equal(t, "Ana Souza", history[0]["retirado_por"])

	status, res = call(t, env, http.MethodGet, "/api/admin/encomendas/entregues?de=11/05/2024", nil, token)
	require.Equal(t, http.StatusOK, status)
	decode(t, res.Data, &history)
	assert.Empty(t, history)

	status, res = call(t, env, http.MethodDelete, fmt.Sprintf("/api/admin/moradores/%d", resident.ID), nil, token)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, code.ErrResidentInUse, res.Code)

	status, res = call(t, env, http.MethodDelete, fmt.Sprintf("/api/admin/usuarios/%d", porter.ID), nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"desativado":true}`, string(res.Data))

	status, res = call(t, env, http.MethodDelete, fmt.Sprintf("/api/admin/usuarios/%d", admin.ID), nil, token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, code.ErrUserSelfModification, res.Code)
}

func TestAdminBatchRejectsIneligiblePorter(t *testing.T) {
	env := testenv.NewT(t)
	admin, err := env.CreateUser("admin", "Admin", "admin")
	require.NoError(t, err)
	porter, err := env.CreateUser("joao", "Joao Lima", "porter")
	require.NoError(t, err)
	token, err := env.Token(admin)
	require.NoError(t, err)
	resident, err := env.CreateResident("Ana Souza")
	require.NoError(t, err)
	id, err := env.ReceivePackage(resident.ID, porter.ID)
	require.NoError(t, err)

	for _, deliveredBy := range []uint{admin.ID, 9999} {
		status, res := call(t, env, http.MethodPost, "/api/admin/encomendas/entregar-lote", map[string]interface{}{
			"ids": []uint{id}, "porteiro_id": deliveredBy, "retirado_por": "Ana Souza",
		}, token)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, code.ErrPorterNotEligible, res.Code)
	}

	status, res := call(t, env, http.MethodGet, "/api/encomendas", nil, "")
	require.Equal(t, http.StatusOK, status)
	var pending []map[string]interface{}
	decode(t, res.Data, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, "pending", pending[0]["status"])
}

func TestAdminResidentCRUD(t *testing.T) {
	env := testenv.NewT(t)
	admin, err := env.CreateUser("admin", "Admin", "admin")
	require.NoError(t, err)
	token, err := env.Token(admin)
	require.NoError(t, err)

	status, _ := call(t, env, http.MethodPost, "/api/admin/moradores", map[string]interface{}{"nome": "Sem Rua"}, token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, res := call(t, env, http.MethodPost, "/api/admin/moradores", map[string]interface{}{
		"nome": "Ana Souza", "rua": "Rua das Flores", "numero": "120", "apartamento": "34",
	}, token)
	require.Equal(t, http.StatusCreated, status, res.Message)
	var resident struct {
		ID uint `json:"id"`
	}
	decode(t, res.Data, &resident)

	// the gateway listing sees the new resident immediately
	status, res = call(t, env, http.MethodGet, "/api/moradores", nil, "")
	require.Equal(t, http.StatusOK, status)
	var listed []map[string]interface{}
	decode(t, res.Data, &listed)
	require.Len(t, listed, 1)

	status, res = call(t, env, http.MethodPut, fmt.Sprintf("/api/admin/moradores/%d", resident.ID), map[string]interface{}{
		"nome": "Ana Souza Lima", "rua": "Rua das Flores", "numero": "120",
	}, token)
	require.Equal(t, http.StatusOK, status, res.Message)

	status, res = call(t, env, http.MethodGet, "/api/moradores", nil, "")
	require.Equal(t, http.StatusOK, status)
	decode(t, res.Data, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Ana Souza Lima", listed[0]["nome"])

	status, _ = call(t, env, http.MethodDelete, fmt.Sprintf("/api/admin/moradores/%d", resident.ID), nil, token)
	assert.Equal(t, http.StatusOK, status)

	status, res = call(t, env, http.MethodGet, fmt.Sprintf("/api/admin/moradores/%d", resident.ID), nil, token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, code.ErrResidentNotFound, res.Code)
}
