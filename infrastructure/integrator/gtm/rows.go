package gtm

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	gtmdomain "github.com/addocu/stack-audit-api/infrastructure/integrator/gtm/domain"
	"github.com/addocu/stack-audit-api/pkg/utils"
)

var (
	tagsHeaders = []string{
		"Container Name", "Container ID", "Workspace", "Tag Name", "Tag ID", "Tag Type", "Status",
		"Firing Triggers", "Blocking Triggers", "Firing Count", "Blocking Count",
		"Key Parameters", "Priority", "Firing Option", "Last Modified", "Tag URL", "Notes", "Observações",
	}
	variablesHeaders = []string{
		"Container Name", "Container ID", "Workspace", "Variable Name", "Variable ID", "Variable Type",
		"Key Parameters", "Format Value", "Disabling Triggers", "Enabling Triggers", "Last Modified",
		"Notes", "Observações",
	}
	triggersHeaders = []string{
		"Container Name", "Container ID", "Workspace", "Trigger Name", "Trigger ID", "Trigger Type",
		"Filters Summary", "Wait for Tags", "Check Validation", "Wait Timeout", "Event Names",
		"Last Modified", "Notes", "Observações",
	}
)

func tagRow(tag gtmdomain.Tag, container gtmdomain.Container, workspace gtmdomain.Workspace) []string {
	status := "Ativo"
	if tag.Paused {
		status = "Pausado"
	}

	firing := "Sem triggers"
	if len(tag.FiringTriggerID) > 0 {
		firing = strings.Join(tag.FiringTriggerID, ", ")
	}

	blocking := "N/A"
	if len(tag.BlockingTriggerID) > 0 {
		blocking = strings.Join(tag.BlockingTriggerID, ", ")
	}

	tagURL := "N/A"
	if tag.LiveOnly {
		tagURL = "Live Only"
	}

	observations := make([]string, 0, 3)
	if tag.Paused {
		observations = append(observations, "Tag pausada")
	}
	if len(tag.FiringTriggerID) == 0 {
		observations = append(observations, "Sem triggers de disparo")
	}
	if len(tag.BlockingTriggerID) > 0 {
		observations = append(observations, "Tem triggers de bloqueio")
	}

	return []string{
		utils.FallbackCell(container.Name, "N/A"),
		utils.FallbackCell(container.ContainerID, "N/A"),
		utils.FallbackCell(workspace.Name, "N/A"),
		utils.FallbackCell(tag.Name, "N/A"),
		utils.FallbackCell(tag.TagID, "N/A"),
		utils.FallbackCell(tag.Type, "N/A"),
		status,
		firing,
		blocking,
		utils.IntCell(len(tag.FiringTriggerID)),
		utils.IntCell(len(tag.BlockingTriggerID)),
		keyParameters(tag.Parameter),
		utils.FallbackCell(tag.Priority.StringValue(), "N/A"),
		utils.FallbackCell(tag.TagFiringOption, "N/A"),
		fingerprintCell(tag.Fingerprint),
		tagURL,
		utils.FallbackCell(tag.Notes, "N/A"),
		observationsCell(observations),
	}
}

func variableRow(variable gtmdomain.Variable, container gtmdomain.Container, workspace gtmdomain.Workspace) []string {
	enabling := "N/A"
	if len(variable.EnablingTriggerID) > 0 {
		enabling = strings.Join(variable.EnablingTriggerID, ", ")
	}

	disabling := "N/A"
	if len(variable.DisablingTriggerID) > 0 {
		disabling = strings.Join(variable.DisablingTriggerID, ", ")
	}

	formatValue := "N/A"
	if variable.FormatValue != nil && variable.FormatValue.CaseConversionType != "" {
		formatValue = variable.FormatValue.CaseConversionType
	}

	observations := make([]string, 0, 2)
	if len(variable.EnablingTriggerID) > 0 {
		observations = append(observations, "Variável condicional")
	}
	switch variable.Type {
	case "jsm":
		observations = append(observations, "JavaScript personalizado")
	case "c":
		observations = append(observations, "Constante")
	}

	return []string{
		utils.FallbackCell(container.Name, "N/A"),
		utils.FallbackCell(container.ContainerID, "N/A"),
		utils.FallbackCell(workspace.Name, "N/A"),
		utils.FallbackCell(variable.Name, "N/A"),
		utils.FallbackCell(variable.VariableID, "N/A"),
		utils.FallbackCell(variable.Type, "N/A"),
		keyParameters(variable.Parameter),
		formatValue,
		disabling,
		enabling,
		fingerprintCell(variable.Fingerprint),
		utils.FallbackCell(variable.Notes, "N/A"),
		observationsCell(observations),
	}
}

func triggerRow(trigger gtmdomain.Trigger, container gtmdomain.Container, workspace gtmdomain.Workspace) []string {
	observations := make([]string, 0, 3)
	switch trigger.Type {
	case "customEvent":
		observations = append(observations, "Evento personalizado")
	case "pageview":
		observations = append(observations, "Visualização de página")
	}
	if trigger.WaitForTags.BoolValue() {
		observations = append(observations, "Espera outros tags")
	}
	if len(trigger.Filter) == 0 {
		observations = append(observations, "Sem filtros - dispara sempre")
	}

	return []string{
		utils.FallbackCell(container.Name, "N/A"),
		utils.FallbackCell(container.ContainerID, "N/A"),
		utils.FallbackCell(workspace.Name, "N/A"),
		utils.FallbackCell(trigger.Name, "N/A"),
		utils.FallbackCell(trigger.TriggerID, "N/A"),
		utils.FallbackCell(trigger.Type, "N/A"),
		filtersSummary(trigger.Filter),
		utils.BoolCell(trigger.WaitForTags.BoolValue()),
		utils.BoolCell(trigger.CheckValidation.BoolValue()),
		utils.FallbackCell(trigger.WaitForTagsTimeout.StringValue(), "N/A"),
		utils.FallbackCell(trigger.EventName.StringValue(), "N/A"),
		fingerprintCell(trigger.Fingerprint),
		utils.FallbackCell(trigger.Notes, "N/A"),
		observationsCell(observations),
	}
}

// keyParameters resume até três parâmetros no formato "chave=valor".
func keyParameters(parameters []gtmdomain.Parameter) string {
	if len(parameters) == 0 {
		return "N/A"
	}

	limit := len(parameters)
	if limit > 3 {
		limit = 3
	}

	parts := make([]string, 0, limit)
	for _, p := range parameters[:limit] {
		parts = append(parts, fmt.Sprintf("%s=%s", p.Key, p.Value))
	}

	return strings.Join(parts, "; ")
}

// filtersSummary monta o resumo de cada cláusula de filtro como
// "arg0 tipo arg1", unindo as cláusulas com " & ".
func filtersSummary(filters []gtmdomain.Filter) string {
	if len(filters) == 0 {
		return "Sem filtros"
	}

	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		comparison := utils.FallbackCell(f.Type, "N/A")
		parts = append(parts, fmt.Sprintf("%s %s %s", f.Arg("arg0"), comparison, f.Arg("arg1")))
	}

	return strings.Join(parts, " & ")
}

func observationsCell(observations []string) string {
	if len(observations) == 0 {
		return "N/A"
	}
	return strings.Join(observations, "; ")
}

// fingerprintCell converte o fingerprint da API (epoch em milissegundos)
// para o formato de data das planilhas.
func fingerprintCell(fingerprint string) string {
	if fingerprint == "" {
		return "N/A"
	}

	millis, err := strconv.ParseInt(fingerprint, 10, 64)
	if err != nil {
		return fingerprint
	}

	return utils.FormatTime(time.UnixMilli(millis))
}
