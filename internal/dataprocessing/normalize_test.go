package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "trims whitespace", input: "  Nome  ", expected: "nome"},
		{name: "lowercases", input: "STATUS", expected: "status"},
		{name: "spaces to underscores", input: "Sub Setor", expected: "sub_setor"},
		{name: "strips diacritics", input: "Função", expected: "funcao"},
		{name: "accented date column", input: "Admissão", expected: "admissao"},
		{name: "cedilla and tilde", input: "PREVISÃO FÉRIAS 2025", expected: "previsao_ferias_2025"},
		{name: "keeps punctuation", input: "Data de Nasc.", expected: "data_de_nasc."},
		{name: "keeps parentheses", input: "Filho(s)", expected: "filho(s)"},
		{name: "empty", input: "", expected: ""},
		{name: "non-latin passes through", input: "部門", expected: "部門"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeHeader(tt.input))
		})
	}
}

func TestNormalizeHeaderIdempotent(t *testing.T) {
	inputs := []string{
		"  Nome  ", "Função", "Sub Setor", "PREVISÃO FÉRIAS 2025",
		"Data de Nasc.", "nível escolaridade", "already_normal", "",
	}
	for _, in := range inputs {
		once := NormalizeHeader(in)
		assert.Equal(t, once, NormalizeHeader(once), "normalize must be idempotent for %q", in)
	}
}

func TestNormalizeHeadersPreservesOrder(t *testing.T) {
	got := NormalizeHeaders([]string{"Nome", "Função", "Custo"})
	assert.Equal(t, []string{"nome", "funcao", "custo"}, got)
}

func TestNormalizeSheetName(t *testing.T) {
	assert.Equal(t, "ferias", normalizeSheetName(" Férias "))
	assert.Equal(t, "todos", normalizeSheetName("TODOS"))
	assert.Equal(t, "desligados", normalizeSheetName("Desligados"))
}
