package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"cofoodie/internal/models"
)

// localBackend keeps every collection as one JSON file in the fileKV.
// Collections that were never written come back as their seed defaults; the
// admin collection additionally persists its seed on first read so the sysop
// account exists on disk before any login attempt.
type localBackend struct {
	kv *fileKV
}

func newLocalBackend(kv *fileKV) *localBackend {
	return &localBackend{kv: kv}
}

// loadCollection unmarshals the collection under key into out. Returns false
// when the key has never been written (caller substitutes its seed).
func (b *localBackend) loadCollection(key string, out any) (bool, error) {
	data, err := b.kv.get(key)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return true, nil
}

func (b *localBackend) saveCollection(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	return b.kv.put(key, data)
}

func (b *localBackend) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	ok, err := b.loadCollection(keyOrders, &orders)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Order{}, nil // orders have no seed
	}
	return orders, nil
}

func (b *localBackend) ReplaceOrders(ctx context.Context, orders []models.Order) error {
	return b.saveCollection(keyOrders, orders)
}

func (b *localBackend) AppendOrder(ctx context.Context, order models.Order) error {
	orders, err := b.Orders(ctx)
	if err != nil {
		return err
	}
	return b.ReplaceOrders(ctx, append(orders, order))
}

func (b *localBackend) Menus(ctx context.Context) ([]models.MenuCategory, error) {
	var menus []models.MenuCategory
	ok, err := b.loadCollection(keyMenus, &menus)
	if err != nil {
		return nil, err
	}
	if !ok {
		return seedMenus(), nil
	}
	return menus, nil
}

func (b *localBackend) ReplaceMenus(ctx context.Context, menus []models.MenuCategory) error {
	return b.saveCollection(keyMenus, menus)
}

func (b *localBackend) Employees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	ok, err := b.loadCollection(keyEmployees, &employees)
	if err != nil {
		return nil, err
	}
	if !ok {
		return seedEmployees(), nil
	}
	return employees, nil
}

func (b *localBackend) ReplaceEmployees(ctx context.Context, employees []models.Employee) error {
	return b.saveCollection(keyEmployees, employees)
}

func (b *localBackend) Announcements(ctx context.Context) ([]models.Announcement, error) {
	var announcements []models.Announcement
	ok, err := b.loadCollection(keyAnnouncements, &announcements)
	if err != nil {
		return nil, err
	}
	if !ok {
		return seedAnnouncements(), nil
	}
	return announcements, nil
}

func (b *localBackend) ReplaceAnnouncements(ctx context.Context, announcements []models.Announcement) error {
	return b.saveCollection(keyAnnouncements, announcements)
}

func (b *localBackend) Admins(ctx context.Context) ([]models.AdminAccount, error) {
	var admins []models.AdminAccount
	ok, err := b.loadCollection(keyAdminAccounts, &admins)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Persist the seed so the sysop account survives a later
		// ReplaceAdmins that starts from a read of this collection.
		seeded := seedAdmins()
		if err := b.saveCollection(keyAdminAccounts, seeded); err != nil {
			return nil, err
		}
		return seeded, nil
	}
	return admins, nil
}

func (b *localBackend) ReplaceAdmins(ctx context.Context, admins []models.AdminAccount) error {
	return b.saveCollection(keyAdminAccounts, admins)
}

func (b *localBackend) Config(ctx context.Context) (map[string]any, error) {
	// The local layout predates the config map: the frontend password sits
	// in its own key as a bare string.
	data, err := b.kv.get(keyFrontendPassword)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{models.ConfigKeyFrontendPassword: string(data)}, nil
}

func (b *localBackend) ReplaceConfig(ctx context.Context, cfg map[string]any) error {
	pwd, _ := cfg[models.ConfigKeyFrontendPassword].(string)
	if pwd == "" {
		return b.kv.delete(keyFrontendPassword)
	}
	return b.kv.put(keyFrontendPassword, []byte(pwd))
}

func (b *localBackend) Ping(ctx context.Context) bool {
	return true
}
