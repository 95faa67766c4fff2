package datastore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook builds an XLSX fixture. sheets maps sheet name to a
// cell grid whose first row is the header.
func writeWorkbook(t *testing.T, sheets map[string][][]any, order []string) string {
	t.Helper()
	f := excelize.NewFile()
	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for rowIdx, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func loginFixture(t *testing.T) string {
	t.Helper()
	return writeWorkbook(t, map[string][][]any{
		"Login": {
			{"case_id", "username", "password", "expected_result"},
			{"TC-LOGIN-001", "admin", "password", "Success"},
			{"TC-LOGIN-002", "admin", "wrongpassword", "Error: Invalid credentials"},
			{"TC-LOGIN-003", "nobody", "password", "Error: Invalid credentials"},
		},
		"Users": {
			{"username", "display_name", "active", "quota"},
			{"admin", "Administrator", true, 42.5},
			{"guest", "Guest", false, 0},
		},
	}, []string{"Login", "Users"})
}

func TestLoadAndGetSheet(t *testing.T) {
	store := New()
	require.NoError(t, store.Load(loginFixture(t)))
	assert.True(t, store.Loaded())

	names, err := store.Sheets()
	require.NoError(t, err)
	assert.Equal(t, []string{"Login", "Users"}, names)

	rows, err := store.GetSheet("Login")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Source order is preserved.
	assert.Equal(t, "TC-LOGIN-001", rows[0].String("case_id"))
	assert.Equal(t, "TC-LOGIN-002", rows[1].String("case_id"))
	assert.Equal(t, "TC-LOGIN-003", rows[2].String("case_id"))
	assert.Equal(t, "wrongpassword", rows[1].String("password"))
}

func TestLoadTypedCells(t *testing.T) {
	store := New()
	require.NoError(t, store.Load(loginFixture(t)))

	rows, err := store.GetSheet("Users")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	active, ok := rows[0].Bool("active")
	require.True(t, ok)
	assert.True(t, active)

	quota, ok := rows[0].Float("quota")
	require.True(t, ok)
	assert.Equal(t, 42.5, quota)

	// Typed cells still render as strings on demand.
	assert.Equal(t, "true", rows[0].String("active"))
	assert.Equal(t, "42.5", rows[0].String("quota"))
}

func TestReadBeforeLoadFails(t *testing.T) {
	store := New()

	_, err := store.GetSheet("Login")
	assert.ErrorIs(t, err, ErrNotLoaded)

	_, _, err = store.GetRow("Login", "case_id", "TC-LOGIN-001")
	assert.ErrorIs(t, err, ErrNotLoaded)

	_, err = store.Sheets()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestLoadMissingFile(t *testing.T) {
	store := New()
	err := store.Load(filepath.Join(t.TempDir(), "absent.xlsx"))

	var loadErr *DataLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.False(t, store.Loaded(), "failed first load must leave the store unloaded")
}

func TestLoadFailureLeavesCacheUntouched(t *testing.T) {
	store := New()
	require.NoError(t, store.Load(loginFixture(t)))

	err := store.Load(filepath.Join(t.TempDir(), "absent.xlsx"))
	var loadErr *DataLoadError
	require.ErrorAs(t, err, &loadErr)

	// The previous cache stays queryable.
	rows, err := store.GetSheet("Login")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestLoadUnparseableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("this is not a workbook"), 0o644))

	store := New()
	var loadErr *DataLoadError
	require.ErrorAs(t, store.Load(path), &loadErr)
}

func TestGetSheetAbsentName(t *testing.T) {
	store := New()
	require.NoError(t, store.Load(loginFixture(t)))

	// Absent sheet is empty-with-warning, not an error.
	rows, err := store.GetSheet("DoesNotExist")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetRow(t *testing.T) {
	store := New()
	require.NoError(t, store.Load(loginFixture(t)))

	row, found, err := store.GetRow("Login", "case_id", "TC-LOGIN-002")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "admin", row.String("username"))
	assert.Equal(t, "Error: Invalid credentials", row.String("expected_result"))

	// Row miss is a silent not-found.
	_, found, err = store.GetRow("Login", "case_id", "TC-LOGIN-999")
	require.NoError(t, err)
	assert.False(t, found)

	// Sheet miss is also not-found, with the warning handled by GetSheet.
	_, found, err = store.GetRow("Nope", "case_id", "TC-LOGIN-001")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetRowFirstMatchWins(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Dup": {
			{"key", "value"},
			{"a", "first"},
			{"a", "second"},
			{"b", "other"},
		},
	}, []string{"Dup"})

	store := New()
	require.NoError(t, store.Load(path))

	// Deterministic across repeated calls: always the first in source order.
	for i := 0; i < 5; i++ {
		row, found, err := store.GetRow("Dup", "key", "a")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "first", row.String("value"))
	}
}

func TestGetRowTrimsLookupValue(t *testing.T) {
	store := New()
	require.NoError(t, store.Load(loginFixture(t)))

	_, found, err := store.GetRow("Login", "case_id", "  TC-LOGIN-001  ")
	require.NoError(t, err)
	assert.True(t, found)

	// Comparison stays case-sensitive.
	_, found, err = store.GetRow("Login", "case_id", "tc-login-001")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEmptyRowsSkipped(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Sparse": {
			{"col_a", "col_b"},
			{"1", "x"},
			{"", ""},
			{"2", "y"},
		},
	}, []string{"Sparse"})

	store := New()
	require.NoError(t, store.Load(path))

	rows, err := store.GetSheet("Sparse")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "y", rows[1].String("col_b"))
}

func TestShortRowLeavesColumnsAbsent(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Short": {
			{"col_a", "col_b", "col_c"},
			{"only-a"},
		},
	}, []string{"Short"})

	store := New()
	require.NoError(t, store.Load(path))

	rows, err := store.GetSheet("Short")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Has("col_a"))
	assert.False(t, rows[0].Has("col_b"), "missing cells are absent, not defaulted")
	assert.Equal(t, "", rows[0].String("col_b"))
}
