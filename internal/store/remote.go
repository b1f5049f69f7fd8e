package store

import (
	"context"
	"encoding/json"
	"time"

	"cofoodie/internal/models"
	"cofoodie/pkg/httpkit"
	"cofoodie/pkg/logger"
)

// Wire actions understood by the sheet endpoint. The set is exhaustive; an
// unknown action comes back as {"status":"error","message":"Unknown Action: …"}.
const (
	actionGetAllData             = "GET_ALL_DATA"
	actionSaveOrder              = "SAVE_ORDER"
	actionUpdateAllOrders        = "UPDATE_ALL_ORDERS"
	actionUpdateAllMenus         = "UPDATE_ALL_MENUS"
	actionUpdateAllEmployees     = "UPDATE_ALL_EMPLOYEES"
	actionUpdateAllAnnouncements = "UPDATE_ALL_ANNOUNCEMENTS"
	actionUpdateAllAdmins        = "UPDATE_ALL_ADMINS"
	actionUpdateConfig           = "UPDATE_CONFIG"
)

// actionRequest is the uniform body of every endpoint call.
type actionRequest struct {
	Action string `json:"action"`
	Data   any    `json:"data"`
}

// actionError is the endpoint's structured failure payload. The endpoint
// answers HTTP 200 for these, so the shape, not the status code, is what
// signals failure.
type actionError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// remoteBackend speaks the single-endpoint action protocol. Every failure
// (transport, non-2xx, bad JSON, or an error-shaped payload) degrades to
// "no data": reads yield nil, writes are dropped with a warning. The façade
// never sees an error from this backend; a dead endpoint is
// indistinguishable from an empty database, which is the accepted contract.
type remoteBackend struct {
	url     string
	timeout time.Duration
}

func newRemoteBackend(url string) *remoteBackend {
	return &remoteBackend{url: url, timeout: 15 * time.Second}
}

// call posts one action and returns the raw response body, or nil on any
// failure. No retries: the façade contract is a single attempt per call.
func (b *remoteBackend) call(ctx context.Context, action string, data any) []byte {
	resp, err := httpkit.Post(b.url).
		WithContext(ctx).
		Timeout(b.timeout).
		Body(actionRequest{Action: action, Data: data}).
		Send()
	if err != nil {
		logger.Warn("store: remote call failed", "action", action, "error", err)
		return nil
	}
	if !resp.OK() {
		logger.Warn("store: remote call rejected", "action", action, "status", resp.StatusCode)
		return nil
	}

	var apiErr actionError
	if json.Unmarshal(resp.Raw, &apiErr) == nil && apiErr.Status == "error" {
		logger.Warn("store: endpoint error", "action", action, "message", apiErr.Message)
		return nil
	}
	return resp.Raw
}

// fetchAll issues GET_ALL_DATA and decodes the snapshot. ok is false on any
// failure; the caller turns that into empty collections.
func (b *remoteBackend) fetchAll(ctx context.Context) (snap models.Snapshot, ok bool) {
	raw := b.call(ctx, actionGetAllData, nil)
	if raw == nil {
		return models.Snapshot{}, false
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		logger.Warn("store: bad snapshot payload", "error", err)
		return models.Snapshot{}, false
	}
	return snap, true
}

// write issues a mutation action and swallows the outcome. The endpoint is
// write-through: there is nothing useful in a success payload, and failures
// are by contract silent at this layer.
func (b *remoteBackend) write(ctx context.Context, action string, data any) error {
	b.call(ctx, action, data)
	return nil
}

func (b *remoteBackend) Orders(ctx context.Context) ([]models.Order, error) {
	snap, _ := b.fetchAll(ctx)
	return snap.Orders, nil
}

func (b *remoteBackend) ReplaceOrders(ctx context.Context, orders []models.Order) error {
	return b.write(ctx, actionUpdateAllOrders, orders)
}

func (b *remoteBackend) AppendOrder(ctx context.Context, order models.Order) error {
	return b.write(ctx, actionSaveOrder, order)
}

func (b *remoteBackend) Menus(ctx context.Context) ([]models.MenuCategory, error) {
	snap, _ := b.fetchAll(ctx)
	return snap.Menus, nil
}

func (b *remoteBackend) ReplaceMenus(ctx context.Context, menus []models.MenuCategory) error {
	return b.write(ctx, actionUpdateAllMenus, menus)
}

func (b *remoteBackend) Employees(ctx context.Context) ([]models.Employee, error) {
	snap, _ := b.fetchAll(ctx)
	return snap.Employees, nil
}

func (b *remoteBackend) ReplaceEmployees(ctx context.Context, employees []models.Employee) error {
	return b.write(ctx, actionUpdateAllEmployees, employees)
}

func (b *remoteBackend) Announcements(ctx context.Context) ([]models.Announcement, error) {
	snap, _ := b.fetchAll(ctx)
	return snap.Announcements, nil
}

func (b *remoteBackend) ReplaceAnnouncements(ctx context.Context, announcements []models.Announcement) error {
	return b.write(ctx, actionUpdateAllAnnouncements, announcements)
}

func (b *remoteBackend) Admins(ctx context.Context) ([]models.AdminAccount, error) {
	snap, _ := b.fetchAll(ctx)
	return snap.Admins, nil
}

func (b *remoteBackend) ReplaceAdmins(ctx context.Context, admins []models.AdminAccount) error {
	return b.write(ctx, actionUpdateAllAdmins, admins)
}

func (b *remoteBackend) Config(ctx context.Context) (map[string]any, error) {
	snap, _ := b.fetchAll(ctx)
	if snap.Config == nil {
		return map[string]any{}, nil
	}
	return snap.Config, nil
}

func (b *remoteBackend) ReplaceConfig(ctx context.Context, cfg map[string]any) error {
	return b.write(ctx, actionUpdateConfig, cfg)
}

func (b *remoteBackend) Ping(ctx context.Context) bool {
	_, ok := b.fetchAll(ctx)
	return ok
}
