package sheet

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cofoodie/internal/sheet/sheetdb"
	"cofoodie/pkg/database"
	"cofoodie/pkg/lock"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	gdb, err := database.Open("sqlite", filepath.Join(t.TempDir(), "sheet.db"))
	require.NoError(t, err)

	db, err := sheetdb.Open(gdb)
	require.NoError(t, err)
	return NewHandler(db, lock.Global())
}

func dispatch(t *testing.T, h *Handler, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Dispatch(rec, req)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec.Code, payload
}

func action(name string, data any) string {
	b, _ := json.Marshal(map[string]any{"action": name, "data": data})
	return string(b)
}

func TestUnknownActionYieldsContractError(t *testing.T) {
	h := newTestHandler(t)

	code, payload := dispatch(t, h, action("DROP_EVERYTHING", nil))
	assert.Equal(t, http.StatusOK, code, "handler failures answer 200 with an error payload")
	assert.Equal(t, "error", payload["status"])
	assert.Equal(t, "Unknown Action: DROP_EVERYTHING", payload["message"])
}

func TestBadBodyYieldsErrorPayloadNotCrash(t *testing.T) {
	h := newTestHandler(t)

	code, payload := dispatch(t, h, `{"action": `)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "error", payload["status"])
}

func TestSaveOrderThenGetAllData(t *testing.T) {
	h := newTestHandler(t)

	order := map[string]any{
		"id": "1704067200000", "employeeName": "王小明",
		"items":       []map[string]any{{"id": "opt_1", "name": "排骨飯", "note": "", "price": 100}},
		"totalAmount": 100, "timestamp": 1704067200000, "status": "PENDING",
		"dateStr": "2024-01-01", "categoryLabel": "訂餐",
	}

	_, payload := dispatch(t, h, action("SAVE_ORDER", order))
	assert.Equal(t, true, payload["success"])

	_, all := dispatch(t, h, action("GET_ALL_DATA", nil))
	orders, ok := all["orders"].([]any)
	require.True(t, ok)
	require.Len(t, orders, 1)

	got := orders[0].(map[string]any)
	assert.Equal(t, "王小明", got["employeeName"])
	assert.Equal(t, "訂餐", got["categoryLabel"])

	// Empty collections are present as empty arrays, not missing keys.
	employees, ok := all["employees"].([]any)
	require.True(t, ok)
	assert.Empty(t, employees)
	assert.NotNil(t, all["config"])
}

func TestReplaceCollectionPreservesOrder(t *testing.T) {
	h := newTestHandler(t)

	roster := []map[string]any{
		{"id": "9", "name": "張志豪"},
		{"id": "2", "name": "李美華"},
		{"id": "5", "name": "王小明"},
	}
	_, payload := dispatch(t, h, action("UPDATE_ALL_EMPLOYEES", roster))
	assert.Equal(t, true, payload["success"])

	_, all := dispatch(t, h, action("GET_ALL_DATA", nil))
	employees := all["employees"].([]any)
	require.Len(t, employees, 3)
	assert.Equal(t, "9", employees[0].(map[string]any)["id"])
	assert.Equal(t, "5", employees[2].(map[string]any)["id"])
}

func TestUpdateConfigRoundTrip(t *testing.T) {
	h := newTestHandler(t)

	_, payload := dispatch(t, h, action("UPDATE_CONFIG", map[string]any{"frontendPassword": "snack"}))
	assert.Equal(t, true, payload["success"])

	_, all := dispatch(t, h, action("GET_ALL_DATA", nil))
	cfg := all["config"].(map[string]any)
	assert.Equal(t, "snack", cfg["frontendPassword"])
}

func TestConcurrentAppendsAllLand(t *testing.T) {
	h := newTestHandler(t)

	const n = 10
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			body := action("SAVE_ORDER", map[string]any{
				"id": fmt.Sprintf("o%d", i), "employeeName": "王小明",
				"totalAmount": 100, "status": "PENDING", "dateStr": "2024-01-01",
			})
			req := httptest.NewRequest(http.MethodPost, "/api", strings.NewReader(body))
			rec := httptest.NewRecorder()
			h.Dispatch(rec, req)
		}(i)
	}
	wg.Wait()

	_, all := dispatch(t, h, action("GET_ALL_DATA", nil))
	orders := all["orders"].([]any)
	assert.Len(t, orders, n, "the global lock must serialize appends without losing any")
}

func TestHealthBanner(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Active")
}
