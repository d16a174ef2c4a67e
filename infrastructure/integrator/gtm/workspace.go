package gtm

import (
	"strings"

	gtmdomain "github.com/addocu/stack-audit-api/infrastructure/integrator/gtm/domain"
)

// selectWorkspaces aplica a regra de seleção de workspaces de um
// contêiner. Sem filtro, exatamente um workspace é escolhido: o que
// contém "default" no nome, ou o primeiro disponível. Com filtro, são
// escolhidos os workspaces cujo nome casa (substring bidirecional, sem
// diferenciar maiúsculas) com algum termo, caindo na regra padrão
// quando nada casa.
func selectWorkspaces(workspaces []gtmdomain.Workspace, filter []string) []gtmdomain.Workspace {
	if len(workspaces) == 0 {
		return nil
	}

	if len(filter) == 0 {
		return []gtmdomain.Workspace{defaultWorkspace(workspaces)}
	}

	selected := make([]gtmdomain.Workspace, 0, len(workspaces))
	for _, ws := range workspaces {
		if matchesAnyTerm(ws.Name, filter) {
			selected = append(selected, ws)
		}
	}

	if len(selected) == 0 {
		return []gtmdomain.Workspace{defaultWorkspace(workspaces)}
	}

	return selected
}

func defaultWorkspace(workspaces []gtmdomain.Workspace) gtmdomain.Workspace {
	for _, ws := range workspaces {
		if strings.Contains(strings.ToLower(ws.Name), "default") {
			return ws
		}
	}
	return workspaces[0]
}

// matchesAnyTerm faz o casamento bidirecional por substring, sem
// diferenciar maiúsculas de minúsculas.
func matchesAnyTerm(name string, terms []string) bool {
	lowerName := strings.ToLower(name)
	for _, term := range terms {
		lowerTerm := strings.ToLower(strings.TrimSpace(term))
		if lowerTerm == "" {
			continue
		}
		if strings.Contains(lowerName, lowerTerm) || strings.Contains(lowerTerm, lowerName) {
			return true
		}
	}
	return false
}

// filterContainers aplica o filtro de contêineres, casando pelo público
// (GTM-XXX) ou pelo identificador numérico. Filtro vazio mantém todos.
func filterContainers(containers []gtmdomain.Container, filter []string) []gtmdomain.Container {
	if len(filter) == 0 {
		return containers
	}

	allowed := make(map[string]bool, len(filter))
	for _, id := range filter {
		allowed[strings.ToUpper(strings.TrimSpace(id))] = true
	}

	selected := make([]gtmdomain.Container, 0, len(containers))
	for _, container := range containers {
		if allowed[strings.ToUpper(container.PublicID)] || allowed[container.ContainerID] {
			selected = append(selected, container)
		}
	}

	return selected
}
