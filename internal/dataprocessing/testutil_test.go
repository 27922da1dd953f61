package dataprocessing

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// sheetFixture is one worksheet of a test workbook, rows given as cell
// text including the header row.
type sheetFixture struct {
	name string
	rows [][]interface{}
}

// buildWorkbook assembles an xlsx workbook in memory for loader and
// pipeline tests.
func buildWorkbook(t *testing.T, sheets []sheetFixture) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet.name))
		} else {
			_, err := f.NewSheet(sheet.name)
			require.NoError(t, err)
		}
		for r, row := range sheet.rows {
			cell := fmt.Sprintf("A%d", r+1)
			require.NoError(t, f.SetSheetRow(sheet.name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func bytesReader(s string) *strings.Reader {
	return strings.NewReader(s)
}

// rosterHeader is the roster header row shared by pipeline tests.
var rosterHeader = []interface{}{
	"ALD", "Nome", "Status", "Empresa", "Setor", "Sub Setor", "Função", "Custo",
	"Admissão", "Data de Nasc.", "Idade", "Sexo", "Raça", "Nível Escolaridade",
	"Filho(s)", "Quantos", "CPF", "RG",
}
