package storage

// Nomes das tabelas geradas pela auditoria.
const (
	TableGA4Accounts         = "GA4_ACCOUNTS"
	TableGA4Properties       = "GA4_PROPERTIES"
	TableGA4CustomDimensions = "GA4_CUSTOM_DIMENSIONS"
	TableGA4CustomMetrics    = "GA4_CUSTOM_METRICS"
	TableGA4DataStreams      = "GA4_DATA_STREAMS"
	TableGTMTags             = "GTM_TAGS"
	TableGTMVariables        = "GTM_VARIABLES"
	TableGTMTriggers         = "GTM_TRIGGERS"
	TableLookerStudio        = "LOOKER_STUDIO"
	TableDiagnostic          = "DIAGNOSTIC"
	TableDashboard           = "DASHBOARD"
	TableLogs                = "LOGS"
)

// TableStore abstrai o destino tabular dos snapshots de auditoria.
// A implementação padrão grava em planilhas Google, e a versão em
// memória atende aos testes.
type TableStore interface {
	// WriteTable grava a tabela completa. Com clearFirst a tabela é
	// limpa antes da escrita, garantindo snapshots idempotentes.
	WriteTable(name string, headers []string, rows [][]string, clearFirst bool) error

	// AppendRows acrescenta linhas ao final da tabela, criando-a com o
	// cabeçalho informado caso ainda não exista.
	AppendRows(name string, headers []string, rows [][]string) error

	// ReadTable retorna cabeçalho e linhas de dados da tabela.
	ReadTable(name string) ([]string, [][]string, error)

	// RecordCount retorna o número de linhas de dados (sem o cabeçalho).
	RecordCount(name string) (int, error)
}

// NormalizeRows garante que cada linha tenha exatamente a largura do
// cabeçalho. Linhas curtas são completadas com células vazias e linhas
// longas são truncadas.
func NormalizeRows(headers []string, rows [][]string) [][]string {
	width := len(headers)
	normalized := make([][]string, 0, len(rows))

	for _, row := range rows {
		if len(row) == width {
			normalized = append(normalized, row)
			continue
		}

		fixed := make([]string, width)
		copy(fixed, row)
		normalized = append(normalized, fixed)
	}

	return normalized
}
