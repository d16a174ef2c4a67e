package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// SplitCSV quebra uma lista separada por vírgulas, descartando entradas
// vazias e espaços ao redor.
func SplitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LastPathSegment extrai o último segmento de um resource name da API
// (ex.: "properties/123" -> "123").
func LastPathSegment(name string) string {
	if name == "" {
		return ""
	}
	parts := strings.Split(name, "/")
	return parts[len(parts)-1]
}

// Truncate corta textos longos para caber em células e logs.
func Truncate(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	if maxLength <= 3 {
		return text[:maxLength]
	}
	return text[:maxLength-3] + "..."
}

// FallbackCell devolve o valor ou o fallback quando vazio.
func FallbackCell(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// BoolCell converte um booleano para o texto exibido nas planilhas.
func BoolCell(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}

// JSONCell serializa um valor para texto JSON de célula; falha vira "[]".
func JSONCell(v interface{}) string {
	if v == nil {
		return "[]"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}

var apiKeyPattern = regexp.MustCompile(`([?&])key=([^&]*)`)

// SanitizeURL oculta chaves de API e limita o tamanho de URLs em logs.
func SanitizeURL(url string) string {
	sanitized := apiKeyPattern.ReplaceAllString(url, "${1}key=***")
	if len(sanitized) > 120 {
		return sanitized[:120] + "..."
	}
	return sanitized
}

// IntCell formata um inteiro para célula.
func IntCell(v int) string {
	return fmt.Sprintf("%d", v)
}
