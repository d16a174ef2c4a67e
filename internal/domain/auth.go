package domain

import "github.com/golang-jwt/jwt/v5"

// Perfis de acesso da API. Administradores disparam auditorias e
// limpezas; supervisores consultam status e diagnósticos.
const (
	RoleAdmin      = 1
	RoleSupervisor = 2
	RoleViewer     = 3
)

// Claims é o conteúdo do token JWT aceito pela API. O UserID identifica
// o dono das configurações de auditoria no armazenamento de settings.
type Claims struct {
	UserID     string `json:"uid"`
	UserName   string `json:"name,omitempty"`
	UserRoleID int    `json:"role"`
	jwt.RegisteredClaims
}
