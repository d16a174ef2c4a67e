package ga4

import (
	"fmt"
	"strings"

	ga4domain "github.com/addocu/stack-audit-api/infrastructure/integrator/ga4/domain"
	"github.com/addocu/stack-audit-api/pkg/utils"
)

// Cabeçalhos das tabelas geradas pela auditoria de GA4. Toda linha
// produzida pelos mapeadores tem exatamente a largura do cabeçalho.
var (
	accountsHeaders = []string{
		"Account Name", "Account ID", "Account Path", "Region Code",
		"Created Time", "Update Time", "Observações",
	}
	propertiesHeaders = []string{
		"Property Name", "Property ID", "Property Path", "Account Name", "Account Path",
		"Currency Code", "Time Zone", "Created Time", "Update Time", "Industry Category",
		"Service Level", "Analytics URL", "Streams URL", "Parent", "Delete Time",
		"Data Retention", "Reset User Data", "Observações",
	}
	dimensionsHeaders = []string{
		"Property Name", "Property ID", "Display Name", "Parameter Name", "Scope",
		"Description", "Disallow Ads Personalization", "Archive Time", "Property Created",
		"Property Updated", "Observações",
	}
	metricsHeaders = []string{
		"Property Name", "Property ID", "Display Name", "Parameter Name", "Measurement Unit",
		"Scope", "Description", "Archive Time", "Property Created", "Property Updated",
		"Observações",
	}
	streamsHeaders = []string{
		"Property Name", "Property ID", "Stream Name", "Stream Type", "Stream ID",
		"Measurement ID / Package / Bundle", "Default URI", "Stream Created",
		"Stream Updated", "Property Created", "Property Updated", "Observações",
	}
)

func accountRow(account ga4domain.Account) []string {
	return []string{
		utils.FallbackCell(account.DisplayName, "Sem nome"),
		utils.LastPathSegment(account.Name),
		account.Name,
		utils.FallbackCell(account.RegionCode, "N/A"),
		utils.FormatDate(account.CreateTime),
		utils.FormatDate(account.UpdateTime),
		fmt.Sprintf("Excluída: %s", utils.BoolCell(account.Deleted)),
	}
}

func propertyRow(item ga4domain.PropertyWithAccount) []string {
	property := item.Property
	account := item.Account
	propertyID := property.ID()

	retention := "N/A"
	resetUserData := false
	if property.DataRetentionSettings != nil {
		if property.DataRetentionSettings.EventDataRetention != "" {
			retention = property.DataRetentionSettings.EventDataRetention
		}
		resetUserData = property.DataRetentionSettings.ResetUserDataOnNewActivity
	}

	serviceLevel := utils.FallbackCell(property.ServiceLevel, "STANDARD")
	parent := property.Parent
	if parent == "" {
		parent = account.Name
	}

	return []string{
		utils.FallbackCell(property.DisplayName, "Sem nome"),
		propertyID,
		property.Name,
		account.DisplayName,
		account.Name,
		utils.FallbackCell(property.CurrencyCode, "N/A"),
		utils.FallbackCell(property.TimeZone, "N/A"),
		utils.FormatDate(property.CreateTime),
		utils.FormatDate(property.UpdateTime),
		utils.FallbackCell(property.IndustryCategory, "N/A"),
		serviceLevel,
		fmt.Sprintf("https://analytics.google.com/analytics/web/#/p%s", propertyID),
		fmt.Sprintf("https://analytics.google.com/analytics/web/#/a%sp%s/admin/streams",
			utils.LastPathSegment(account.Name), propertyID),
		parent,
		utils.FormatDateOrEmpty(property.DeleteTime),
		retention,
		utils.BoolCell(resetUserData),
		fmt.Sprintf("Conta: %s | Nível: %s", account.DisplayName, serviceLevel),
	}
}

func dimensionRow(dimension ga4domain.CustomDimension, property ga4domain.Property) []string {
	return []string{
		property.DisplayName,
		property.ID(),
		dimension.DisplayName,
		dimension.ParameterName,
		dimension.Scope,
		dimension.Description,
		utils.BoolCell(dimension.DisallowAdsPersonalization),
		archivedCell(dimension.Archived()),
		utils.FormatDate(property.CreateTime),
		utils.FormatDate(property.UpdateTime),
		fmt.Sprintf("%s | %s", dimension.Scope, archivedCell(dimension.Archived())),
	}
}

func metricRow(metric ga4domain.CustomMetric, property ga4domain.Property) []string {
	return []string{
		property.DisplayName,
		property.ID(),
		metric.DisplayName,
		metric.ParameterName,
		metric.MeasurementUnit,
		metric.Scope,
		metric.Description,
		archivedCell(metric.Archived()),
		utils.FormatDate(property.CreateTime),
		utils.FormatDate(property.UpdateTime),
		fmt.Sprintf("%s | %s", metric.MeasurementUnit, archivedCell(metric.Archived())),
	}
}

func streamRow(stream ga4domain.DataStream, property ga4domain.Property) []string {
	return []string{
		property.DisplayName,
		property.ID(),
		stream.DisplayName,
		stream.Type,
		stream.ID(),
		stream.MeasurementKey(),
		stream.DefaultURI(),
		utils.FormatDate(stream.CreateTime),
		utils.FormatDate(stream.UpdateTime),
		utils.FormatDate(property.CreateTime),
		utils.FormatDate(property.UpdateTime),
		fmt.Sprintf("Tipo: %s | Criado: %s", stream.Type, utils.FormatDate(stream.CreateTime)),
	}
}

func archivedCell(archived bool) string {
	if archived {
		return "Arquivada"
	}
	return "Ativa"
}

// filterProperties aplica o filtro de IDs de propriedade. Filtro vazio
// mantém todas as propriedades descobertas.
func filterProperties(items []ga4domain.PropertyWithAccount, filter []string) []ga4domain.PropertyWithAccount {
	if len(filter) == 0 {
		return items
	}

	allowed := make(map[string]bool, len(filter))
	for _, id := range filter {
		allowed[strings.TrimSpace(id)] = true
	}

	selected := make([]ga4domain.PropertyWithAccount, 0, len(items))
	for _, item := range items {
		if allowed[item.Property.ID()] {
			selected = append(selected, item)
		}
	}

	return selected
}
