// Package sheet implements the action endpoint the remote store backend
// talks to. One POST route multiplexes the whole protocol; a single global
// lock serializes every request for its full duration, so each action's
// read-modify-write is atomic with respect to every other request across
// all collections, coarse on purpose.
//
// Failure surface is part of the contract: handler-side problems answer
// HTTP 200 carrying {"status":"error","message":…}. Clients detect failure
// by payload shape, not status code.
package sheet

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cofoodie/internal/sheet/sheetdb"
	"cofoodie/pkg/lock"
	"cofoodie/pkg/logger"
	"cofoodie/pkg/metrics"
)

// lockWait bounds how long a request queues behind the global lock.
const lockWait = 10 * time.Second

// request is the uniform action envelope.
type request struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type Handler struct {
	db     *sheetdb.DB
	locker lock.Locker
}

func NewHandler(db *sheetdb.DB, locker lock.Locker) *Handler {
	return &Handler{db: db, locker: locker}
}

// Health answers the liveness banner, mirroring the original doGet.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "Cofoodie Sheet Backend is Active.")
}

// Dispatch handles one action request end to end under the global lock.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("sheet: bad request body", "error", err)
		writeError(w, fmt.Sprintf("bad request: %v", err))
		return
	}

	start := time.Now()
	outcome := "error"
	defer metrics.ObserveAction(req.Action, &outcome, start)

	lockStart := time.Now()
	release, ok := h.locker.TryLock(r.Context(), lockWait)
	metrics.LockWait.Observe(time.Since(lockStart).Seconds())
	if !ok {
		log.Warn("sheet: lock wait exceeded", "action", req.Action)
		writeError(w, "could not acquire lock")
		return
	}
	defer release()

	result, err := h.handle(req)
	if err != nil {
		log.Warn("sheet: action failed", "action", req.Action, "error", err)
		writeError(w, err.Error())
		return
	}

	outcome = "ok"
	log.Debug("sheet: action handled", "action", req.Action)
	writeJSON(w, result)
}

// handle routes one action. Every mutation replaces a whole sheet except
// SAVE_ORDER, the single append primitive.
func (h *Handler) handle(req request) (any, error) {
	switch req.Action {
	case "GET_ALL_DATA":
		return h.allData()
	case "SAVE_ORDER":
		return h.appendRow(sheetdb.SheetOrders, req.Data)
	case "UPDATE_ALL_ORDERS":
		return h.replaceSheet(sheetdb.SheetOrders, req.Data)
	case "UPDATE_ALL_MENUS":
		return h.replaceSheet(sheetdb.SheetMenus, req.Data)
	case "UPDATE_ALL_EMPLOYEES":
		return h.replaceSheet(sheetdb.SheetEmployees, req.Data)
	case "UPDATE_ALL_ANNOUNCEMENTS":
		return h.replaceSheet(sheetdb.SheetAnnouncements, req.Data)
	case "UPDATE_ALL_ADMINS":
		return h.replaceSheet(sheetdb.SheetAdmins, req.Data)
	case "UPDATE_CONFIG":
		return h.updateConfig(req.Data)
	default:
		return nil, fmt.Errorf("Unknown Action: %s", req.Action)
	}
}

func (h *Handler) allData() (any, error) {
	out := map[string]any{}
	for sheetName, key := range map[string]string{
		sheetdb.SheetOrders:        "orders",
		sheetdb.SheetMenus:         "menus",
		sheetdb.SheetEmployees:     "employees",
		sheetdb.SheetAnnouncements: "announcements",
		sheetdb.SheetAdmins:        "admins",
	} {
		rows, err := h.db.Rows(sheetName)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []json.RawMessage{}
		}
		out[key] = rows
	}

	cfg, err := h.db.Config()
	if err != nil {
		return nil, err
	}
	out["config"] = cfg
	return out, nil
}

func (h *Handler) appendRow(sheetName string, data json.RawMessage) (any, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, fmt.Errorf("missing row data for %s", sheetName)
	}
	if err := h.db.Append(sheetName, data, readableColumns(sheetName, data)); err != nil {
		return nil, err
	}
	return successPayload(), nil
}

func (h *Handler) replaceSheet(sheetName string, data json.RawMessage) (any, error) {
	var payloads []json.RawMessage
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &payloads); err != nil {
			return nil, fmt.Errorf("bad list for %s: %v", sheetName, err)
		}
	}

	readables := make([][]string, len(payloads))
	for i, p := range payloads {
		readables[i] = readableColumns(sheetName, p)
	}

	if err := h.db.Replace(sheetName, payloads, readables); err != nil {
		return nil, err
	}
	return successPayload(), nil
}

func (h *Handler) updateConfig(data json.RawMessage) (any, error) {
	var cfg map[string]any
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("bad config payload: %v", err)
		}
	}
	if cfg == nil {
		cfg = map[string]any{}
	}
	if err := h.db.SetConfig(cfg); err != nil {
		return nil, err
	}
	return successPayload(), nil
}

func successPayload() map[string]any {
	return map[string]any{"success": true}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError emits the contract's error payload. Status stays 200: clients
// of the hosted original never saw HTTP errors for handler-side failures.
func writeError(w http.ResponseWriter, message string) {
	writeJSON(w, map[string]string{"status": "error", "message": message})
}
