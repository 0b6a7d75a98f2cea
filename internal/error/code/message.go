package code

// codeMessageMap holds the user-facing message for each code
var codeMessageMap = map[int]string{
	// General
	ErrSuccess:          "Sucesso",
	ErrUnknown:          "Erro desconhecido",
	ErrBind:             "Parâmetros da requisição inválidos",
	ErrValidation:       "Dados obrigatórios ausentes ou inválidos",
	ErrTokenInvalid:     "Token de autenticação inválido",
	ErrTooManyRequests:  "Muitas requisições, tente novamente em instantes",
	ErrForbidden:        "Permissão insuficiente",
	ErrInvalidDate:      "Data ou hora em formato inválido (use dd/mm/aaaa e HH:MM)",
	ErrInvalidReference: "Morador inexistente ou porteiro inativo",

	// User
	ErrUserNotFound:          "Usuário não encontrado",
	ErrUserAlreadyExist:      "Login já está em uso",
	ErrUserPasswordIncorrect: "Usuário ou senha inválidos",
	ErrUserSelfModification:  "Não é possível desativar ou excluir o próprio usuário",
	ErrBootstrapClosed:       "Configuração inicial já realizada",
	ErrPorterNotEligible:     "Porteiro não encontrado ou inativo",

	// Resident
	ErrResidentNotFound: "Morador não encontrado",
	ErrResidentInUse:    "Morador possui encomendas e não pode ser excluído",

	// Package
	ErrPackageNotFound:         "Encomenda não encontrada",
	ErrPackageAlreadyDelivered: "Encomenda já foi entregue",
	ErrEmptySelection:          "Nenhuma encomenda selecionada",

	// Database
	ErrDatabase:       "Banco de dados indisponível",
	ErrRecordNotFound: "Registro não encontrado",

	// Pairing
	ErrPairingUnavailable: "Endereço de rede local não encontrado",
}

// codeStatusMap maps each code to its HTTP status
var codeStatusMap = map[int]int{
	// General
	ErrSuccess:          StatusOK,
	ErrUnknown:          StatusInternalServerError,
	ErrBind:             StatusBadRequest,
	ErrValidation:       StatusBadRequest,
	ErrTokenInvalid:     StatusUnauthorized,
	ErrTooManyRequests:  StatusTooManyRequests,
	ErrForbidden:        StatusForbidden,
	ErrInvalidDate:      StatusBadRequest,
	ErrInvalidReference: StatusBadRequest,

	// User
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusConflict,
	ErrUserPasswordIncorrect: StatusUnauthorized,
	ErrUserSelfModification:  StatusBadRequest,
	ErrBootstrapClosed:       StatusConflict,
	ErrPorterNotEligible:     StatusBadRequest,

	// Resident
	ErrResidentNotFound: StatusNotFound,
	ErrResidentInUse:    StatusConflict,

	// Package
	ErrPackageNotFound:         StatusNotFound,
	ErrPackageAlreadyDelivered: StatusConflict,
	ErrEmptySelection:          StatusBadRequest,

	// Database
	ErrDatabase:       StatusServiceUnavailable,
	ErrRecordNotFound: StatusNotFound,

	// Pairing
	ErrPairingUnavailable: StatusServiceUnavailable,
}

// GetMessage returns the message for a code
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Erro desconhecido"
}

// GetStatus returns the HTTP status for a code
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
