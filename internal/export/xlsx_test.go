package export

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportXLSX_Sheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solution.xlsx")
	result := buildTestResult(t)

	require.NoError(t, ExportXLSX(path, result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSolution, SheetCoverage, SheetSummary}, f.GetSheetList())

	grid, err := f.GetRows(SheetSolution)
	require.NoError(t, err)
	require.Len(t, grid, 3)
	assert.Equal(t, []string{"B", "A", "B"}, grid[0])

	coverage, err := f.GetRows(SheetCoverage)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y", "Target"}, coverage[0])
	assert.Len(t, coverage, len(result.Coverage)+1)

	solved, err := f.GetCellValue(SheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, "TRUE", solved)

	name, err := f.GetCellValue(SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "showstopper_4", name)
}

func TestExportXLSX_UnsolvedResult(t *testing.T) {
	err := ExportXLSX(filepath.Join(t.TempDir(), "x.xlsx"), buildUnsolvedResult())
	assert.True(t, errors.Is(err, ErrUnsolved))
}
