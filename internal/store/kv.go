package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Keys of the device-local key-value store. One file per collection, plus
// the session and admin-settings keys that stay local even in remote mode.
const (
	keyOrders           = "orders"
	keyMenus            = "menus"
	keyEmployees        = "employees"
	keyAnnouncements    = "announcements"
	keyAdminAccounts    = "admin_accounts"
	keyAdminSettings    = "admin_settings"
	keyFrontendPassword = "frontend_password"
	keySession          = "session"
)

// fileKV is a flat file-per-key store rooted at one directory. It is the Go
// stand-in for browser local storage: synchronous, whole-value reads and
// writes, no locking.
type fileKV struct {
	root string
}

func newFileKV(root string) *fileKV {
	if !filepath.IsAbs(root) {
		cwd, _ := os.Getwd()
		root = filepath.Join(cwd, root)
	}
	return &fileKV{root: root}
}

func (kv *fileKV) path(key string) string {
	return filepath.Join(kv.root, key+".json")
}

// get returns the stored bytes for key, or os.ErrNotExist when the key has
// never been written.
func (kv *fileKV) get(key string) ([]byte, error) {
	data, err := os.ReadFile(kv.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return data, nil
}

// put overwrites the full value under key, creating the root as needed.
func (kv *fileKV) put(key string, data []byte) error {
	if err := os.MkdirAll(kv.root, 0o755); err != nil {
		return fmt.Errorf("store: mkdir %s: %w", kv.root, err)
	}
	if err := os.WriteFile(kv.path(key), data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// delete removes key. Absent keys are not an error.
func (kv *fileKV) delete(key string) error {
	err := os.Remove(kv.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}
	return nil
}
