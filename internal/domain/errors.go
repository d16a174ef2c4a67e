package domain

import (
	"errors"
	"fmt"
)

// SyncErrorKind classifica as falhas do núcleo de sincronização.
type SyncErrorKind string

const (
	// ErrKindAuth indica credencial ausente ou inválida; fatal para o serviço.
	ErrKindAuth SyncErrorKind = "AUTH"
	// ErrKindTransport indica falha de rede ou rate-limit após esgotar retries.
	ErrKindTransport SyncErrorKind = "TRANSPORT"
	// ErrKindMalformed indica resposta HTML/JSON inválido; sem retry, pois
	// sinaliza API desabilitada ou permissão errada, não carga transitória.
	ErrKindMalformed SyncErrorKind = "MALFORMED"
	// ErrKindValidation indica entrada de usuário rejeitada na borda.
	ErrKindValidation SyncErrorKind = "VALIDATION"
)

// SyncError carrega o tipo da falha junto do contexto estruturado, em vez
// de reduzir tudo a texto no ponto da captura.
type SyncError struct {
	Kind    SyncErrorKind
	Service Service
	Message string
	Err     error
}

func (e *SyncError) Error() string {
	msg := e.Message
	if e.Service != "" {
		msg = fmt.Sprintf("%s: %s", e.Service, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError cria um erro tipado do núcleo de sincronização.
func NewSyncError(kind SyncErrorKind, service Service, message string, err error) *SyncError {
	return &SyncError{Kind: kind, Service: service, Message: message, Err: err}
}

// ErrorKind extrai o tipo de um erro, ou vazio se não for um SyncError.
func ErrorKind(err error) SyncErrorKind {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// IsAuthError informa se o erro (em qualquer nível de encadeamento) é de
// autorização, para anexar a dica de remediação na borda.
func IsAuthError(err error) bool {
	return ErrorKind(err) == ErrKindAuth
}
