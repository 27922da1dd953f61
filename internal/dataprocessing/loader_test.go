package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpulse/pkg/contracts/domain"
)

func TestLoadWorkbook(t *testing.T) {
	buf := buildWorkbook(t, []sheetFixture{
		{name: "TODOS", rows: [][]interface{}{
			{"Nome", "Status", "Empresa"},
			{"Ana", "ACTIVE", "X"},
			{"Beto", "TERMINATED", "Y"},
		}},
		{name: "Férias", rows: [][]interface{}{
			{"Nome", "Previsão Férias 2025", "Limite"},
			{"Ana", "março", "2025-06-30"},
		}},
		{name: "DESLIGADOS", rows: [][]interface{}{
			{"Nome", "Data Desligamento"},
			{"Beto", "2024-11-01"},
		}},
	})

	set, err := LoadWorkbook(buf, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"nome", "status", "empresa"}, set.Roster.Headers)
	assert.Len(t, set.Roster.Rows, 2)
	assert.Equal(t, []string{"nome", "previsao_ferias_2025", "limite"}, set.Vacations.Headers)
	assert.Equal(t, []string{"nome", "data_desligamento"}, set.Terminations.Headers)
	assert.Empty(t, set.Warnings)
}

func TestLoadWorkbookSheetNameTolerance(t *testing.T) {
	// Accent and case variations on sheet names must still resolve.
	buf := buildWorkbook(t, []sheetFixture{
		{name: "todos ", rows: [][]interface{}{{"Nome"}, {"Ana"}}},
		{name: "FERIAS", rows: [][]interface{}{{"Nome", "Previsão Férias 2025"}, {"Ana", "maio"}}},
	})

	set, err := LoadWorkbook(buf, nil)
	require.NoError(t, err)
	assert.Len(t, set.Roster.Rows, 1)
	assert.Len(t, set.Vacations.Rows, 1)
}

func TestLoadWorkbookMissingTerminationsWarns(t *testing.T) {
	buf := buildWorkbook(t, []sheetFixture{
		{name: "TODOS", rows: [][]interface{}{{"Nome"}, {"Ana"}}},
		{name: "Férias", rows: [][]interface{}{{"Nome", "Previsão Férias 2025"}, {"Ana", "março"}}},
	})

	set, err := LoadWorkbook(buf, nil)
	require.NoError(t, err)

	assert.True(t, set.Terminations.Empty())
	require.Len(t, set.Warnings, 1)
	assert.Equal(t, domain.WarnMissingSheet, set.Warnings[0].Code)
	assert.Equal(t, SheetTerminations, set.Warnings[0].Sheet)
}

func TestLoadWorkbookMissingRosterFails(t *testing.T) {
	buf := buildWorkbook(t, []sheetFixture{
		{name: "Férias", rows: [][]interface{}{{"Nome"}, {"Ana"}}},
	})

	_, err := LoadWorkbook(buf, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TODOS")
}

func TestLoadWorkbookMissingVacationsFails(t *testing.T) {
	buf := buildWorkbook(t, []sheetFixture{
		{name: "TODOS", rows: [][]interface{}{{"Nome"}, {"Ana"}}},
	})

	_, err := LoadWorkbook(buf, nil)
	require.Error(t, err)
}

func TestLoadWorkbookNotASpreadsheet(t *testing.T) {
	_, err := LoadWorkbook(bytesReader("definitely not xlsx"), nil)
	require.Error(t, err)
}

func TestSheetColumnHelpers(t *testing.T) {
	s := Sheet{
		Headers: []string{"nome", "previsao_ferias_2025", "limite"},
		Rows:    [][]string{{" Ana ", "março"}},
	}

	assert.Equal(t, 0, s.Column("nome"))
	assert.Equal(t, -1, s.Column("ald"))
	assert.Equal(t, 1, s.ColumnPrefix("previsao_ferias"))
	assert.Equal(t, "Ana", s.Value(s.Rows[0], 0))
	// Short row: the limite cell is simply absent.
	assert.Equal(t, "", s.Value(s.Rows[0], 2))
	assert.False(t, s.Empty())
}
