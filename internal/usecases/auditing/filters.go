package auditing

import (
	"regexp"
	"strings"

	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/pkg/apiErrors"
	"github.com/addocu/stack-audit-api/pkg/log"
)

var (
	ga4PropertyIDPattern = regexp.MustCompile(`^\d+$`)
	gtmContainerPattern  = regexp.MustCompile(`(?i)^(GTM-[A-Z0-9]+|\d+)$`)
)

// ValidateFilters rejeita entradas de filtro malformadas na borda, antes
// de qualquer efeito parcial. IDs de propriedade GA4 são numéricos.
// Entradas de contêiner GTM que não são o ID público (GTM-XXXXXX) nem o
// numérico são descartadas silenciosamente, nunca fatais.
func ValidateFilters(filters *domain.AuditFilters) error {
	if filters == nil {
		return nil
	}

	for _, id := range filters.GA4Properties {
		if !ga4PropertyIDPattern.MatchString(strings.TrimSpace(id)) {
			return apiErrors.Newf(apiErrors.ErrInvalidFormat,
				"filtro de propriedades GA4 inválido: %q não é um ID numérico", id)
		}
	}

	filters.GTMContainers = sanitizeContainerFilters(filters.GTMContainers)

	for _, term := range filters.GTMWorkspaces {
		if strings.TrimSpace(term) == "" {
			return apiErrors.New(apiErrors.ErrInvalidFormat,
				"filtro de workspaces GTM inválido: termo vazio")
		}
	}

	return nil
}

// sanitizeContainerFilters mantém somente as entradas que parecem um ID
// de contêiner. As demais são descartadas com aviso e a auditoria segue
// com as sobreviventes.
func sanitizeContainerFilters(entries []string) []string {
	if len(entries) == 0 {
		return entries
	}

	kept := make([]string, 0, len(entries))
	for _, id := range entries {
		if !gtmContainerPattern.MatchString(strings.TrimSpace(id)) {
			log.L.WithField("filter", id).
				Warn("Filtro de contêiner GTM descartado: não é um ID público (GTM-XXXXXX) nem numérico")
			continue
		}
		kept = append(kept, id)
	}

	return kept
}

// mergeFilters sobrepõe os filtros da requisição aos configurados pelo
// usuário, campo a campo. Campo vazio na requisição mantém o configurado.
func mergeFilters(configured domain.AuditFilters, requested *domain.AuditFilters) *domain.AuditFilters {
	merged := configured

	if requested != nil {
		if len(requested.GA4Properties) > 0 {
			merged.GA4Properties = requested.GA4Properties
		}
		if len(requested.GTMContainers) > 0 {
			merged.GTMContainers = requested.GTMContainers
		}
		if len(requested.GTMWorkspaces) > 0 {
			merged.GTMWorkspaces = requested.GTMWorkspaces
		}
	}

	return &merged
}
