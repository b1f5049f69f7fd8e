package sheetdb

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cofoodie/pkg/database"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	gdb, err := database.Open("sqlite", filepath.Join(t.TempDir(), "sheet.db"))
	require.NoError(t, err)

	db, err := Open(gdb)
	require.NoError(t, err)
	return db
}

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func TestAppendKeepsPositionOrder(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Append(SheetOrders, raw(`{"id":"a"}`), []string{"2024-01-01"}))
	require.NoError(t, db.Append(SheetOrders, raw(`{"id":"b"}`), nil))
	require.NoError(t, db.Append(SheetOrders, raw(`{"id":"c"}`), nil))

	rows, err := db.Rows(SheetOrders)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.JSONEq(t, `{"id":"a"}`, string(rows[0]))
	assert.JSONEq(t, `{"id":"c"}`, string(rows[2]))
}

func TestReplaceClearsThenWrites(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Append(SheetEmployees, raw(`{"id":"old"}`), nil))
	require.NoError(t, db.Replace(SheetEmployees,
		[]json.RawMessage{raw(`{"id":"1"}`), raw(`{"id":"2"}`)},
		[][]string{{"王小明"}, {"李美華"}},
	))

	rows, err := db.Rows(SheetEmployees)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.JSONEq(t, `{"id":"1"}`, string(rows[0]))
}

func TestReplaceWithEmptyListEmptiesSheet(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Append(SheetMenus, raw(`{"id":"m1"}`), nil))
	require.NoError(t, db.Replace(SheetMenus, nil, nil))

	rows, err := db.Rows(SheetMenus)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSheetsAreIsolated(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Append(SheetOrders, raw(`{"id":"o1"}`), nil))
	require.NoError(t, db.Append(SheetAdmins, raw(`{"id":"sysop"}`), nil))
	require.NoError(t, db.Replace(SheetOrders, nil, nil))

	admins, err := db.Rows(SheetAdmins)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}

func TestRowsSkipsUnparseablePayloads(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Append(SheetOrders, raw(`{"id":"good"}`), nil))
	// Simulate a hand-mangled cell.
	require.NoError(t, db.gdb.Create(&Row{Sheet: SheetOrders, Position: 2, Payload: `{broken`}).Error)

	rows, err := db.Rows(SheetOrders)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.JSONEq(t, `{"id":"good"}`, string(rows[0]))
}

func TestConfigRoundTrip(t *testing.T) {
	db := newTestDB(t)

	cfg, err := db.Config()
	require.NoError(t, err)
	assert.Empty(t, cfg)

	require.NoError(t, db.SetConfig(map[string]any{"frontendPassword": "24664941"}))
	cfg, err = db.Config()
	require.NoError(t, err)
	assert.Equal(t, "24664941", cfg["frontendPassword"])

	// SetConfig replaces the whole map.
	require.NoError(t, db.SetConfig(map[string]any{"theme": "dark"}))
	cfg, err = db.Config()
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg["theme"])
	assert.NotContains(t, cfg, "frontendPassword")
}
