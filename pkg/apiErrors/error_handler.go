package apiErrors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Códigos de erro expostos pela API de auditoria
const (
	// Erros de autenticação
	ErrInvalidToken          = "AUTH_001" // Token inválido
	ErrExpiredToken          = "AUTH_002" // Token expirado
	ErrInsufficientPrivilege = "AUTH_003" // Privilégios insuficientes
	ErrAuthorizationRequired = "AUTH_004" // Credencial OAuth2 ausente para o serviço externo

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrUnknownService      = "VAL_004" // Serviço de auditoria desconhecido

	// Erros do servidor e de integrações
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrSheetWrite        = "SRV_004" // Falha ao persistir tabela
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrAuthorizationRequired: http.StatusUnauthorized,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrUnknownService:        http.StatusBadRequest,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrSheetWrite:            http.StatusBadGateway,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// Error permite que o APIError transite como erro comum pelas camadas
// de negócio até a borda HTTP.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// New cria um APIError com o código informado.
func New(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// Newf cria um APIError com mensagem formatada.
func Newf(code, format string, args ...any) *APIError {
	return &APIError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WriteAPIError escreve um APIError já construído, resolvendo o status
// pelo código.
func WriteAPIError(w http.ResponseWriter, err *APIError) {
	WriteError(w, err.Code, err.Message, err.Details)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
