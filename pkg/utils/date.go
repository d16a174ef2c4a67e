package utils

import "time"

// Formato de exibição usado nas planilhas (dd/mm/aaaa hh:mm:ss).
const sheetDateLayout = "02/01/2006 15:04:05"

// FormatDate converte um timestamp RFC3339 das APIs do Google para o
// formato de exibição das planilhas. Entrada vazia vira "N/A"; entrada que
// não parseia é devolvida como veio, para não esconder o valor original.
func FormatDate(raw string) string {
	if raw == "" {
		return "N/A"
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		if t, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			return raw
		}
	}
	return t.Local().Format(sheetDateLayout)
}

// FormatDateOrEmpty é como FormatDate, mas campos ausentes viram string
// vazia (usado em colunas opcionais como Delete Time).
func FormatDateOrEmpty(raw string) string {
	if raw == "" {
		return ""
	}
	return FormatDate(raw)
}

// ParseSheetTime faz o caminho inverso de FormatTime, interpretando um
// timestamp no formato de exibição das planilhas.
func ParseSheetTime(raw string) (time.Time, error) {
	return time.ParseInLocation(sheetDateLayout, raw, time.Local)
}

// FormatTime formata um time.Time no formato de exibição das planilhas.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format(sheetDateLayout)
}
