// Package store is the persistence façade the whole application goes
// through. It exposes entity-oriented CRUD for orders, menus, employees,
// announcements, admin accounts and shared config, and picks one of two
// interchangeable backends ONCE at startup:
//
//   - local  — one JSON file per collection under STORE_ROOT (dev/fallback)
//   - remote — the sheet endpoint's JSON action protocol (production),
//     selected by the presence of SHEET_API_URL
//
// Reads never fail: any backend trouble degrades to an empty collection.
// Every update and delete is read-whole-collection, mutate, write-whole-
// collection: a single-record edit transfers the full collection, in
// exchange for never leaving a partially written one. There is no client
// coordination between concurrent writers; the last full write wins.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cofoodie/config"
	"cofoodie/internal/models"
	"cofoodie/pkg/logger"
)

// ErrDuplicateUsername is returned by AddAdminAccount when the username is
// taken. It is the only validation error the façade raises.
var ErrDuplicateUsername = errors.New("store: username already exists")

// backend is the storage strategy. Both implementations share whole-
// collection semantics; AppendOrder is the single row-append primitive.
type backend interface {
	Orders(ctx context.Context) ([]models.Order, error)
	ReplaceOrders(ctx context.Context, orders []models.Order) error
	AppendOrder(ctx context.Context, order models.Order) error

	Menus(ctx context.Context) ([]models.MenuCategory, error)
	ReplaceMenus(ctx context.Context, menus []models.MenuCategory) error

	Employees(ctx context.Context) ([]models.Employee, error)
	ReplaceEmployees(ctx context.Context, employees []models.Employee) error

	Announcements(ctx context.Context) ([]models.Announcement, error)
	ReplaceAnnouncements(ctx context.Context, announcements []models.Announcement) error

	Admins(ctx context.Context) ([]models.AdminAccount, error)
	ReplaceAdmins(ctx context.Context, admins []models.AdminAccount) error

	Config(ctx context.Context) (map[string]any, error)
	ReplaceConfig(ctx context.Context, cfg map[string]any) error

	Ping(ctx context.Context) bool
}

// Store is the façade. Construct one per process with Open and hand it to
// the composition root; it is not a package-level singleton.
type Store struct {
	backend backend
	kv      *fileKV // device-local state: session, admin settings
	remote  bool
}

// Open builds the store, choosing the backend from configuration.
func Open() (*Store, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	kv := newFileKV(config.StoreRoot())
	if url := config.SheetAPIURL(); url != "" {
		return &Store{backend: newRemoteBackend(url), kv: kv, remote: true}, nil
	}
	return &Store{backend: newLocalBackend(kv), kv: kv}, nil
}

// Remote reports whether the store talks to the sheet endpoint.
func (s *Store) Remote() bool { return s.remote }

// CheckConnection reports whether the backend answers. In remote mode a
// full snapshot fetch must succeed; the local backend always answers.
func (s *Store) CheckConnection(ctx context.Context) bool {
	return s.backend.Ping(ctx)
}

// ── Orders ───────────────────────────────────────────────────────────────

func (s *Store) Orders(ctx context.Context) []models.Order {
	orders, err := s.backend.Orders(ctx)
	if err != nil {
		logger.Warn("store: load orders", "error", err)
		return []models.Order{}
	}
	return orders
}

// SaveOrder appends one order. The caller supplies the id and the computed
// total; the store never allocates ids or re-derives amounts.
func (s *Store) SaveOrder(ctx context.Context, order models.Order) error {
	return s.backend.AppendOrder(ctx, order)
}

// UpdateOrderStatus sets the status of one order. Unknown ids are a no-op.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	orders := s.Orders(ctx)
	for i := range orders {
		if orders[i].ID == orderID {
			orders[i].Status = status
			return s.backend.ReplaceOrders(ctx, orders)
		}
	}
	return nil
}

// ToggleOrderPayment flips the paid flag of one order. Unknown ids are a
// no-op; toggling twice restores the original flag.
func (s *Store) ToggleOrderPayment(ctx context.Context, orderID string) error {
	orders := s.Orders(ctx)
	for i := range orders {
		if orders[i].ID == orderID {
			orders[i].IsPaid = !orders[i].IsPaid
			return s.backend.ReplaceOrders(ctx, orders)
		}
	}
	return nil
}

// DeleteOrdersByContext removes every order matching BOTH the calendar day
// and the category label. Used when a menu is retracted: that day's window
// closes and its orders go with it.
func (s *Store) DeleteOrdersByContext(ctx context.Context, dateStr, categoryLabel string) error {
	orders := s.Orders(ctx)
	kept := orders[:0]
	for _, o := range orders {
		if !(o.DateStr == dateStr && o.CategoryLabel == categoryLabel) {
			kept = append(kept, o)
		}
	}
	return s.backend.ReplaceOrders(ctx, kept)
}

// ── Menu categories ──────────────────────────────────────────────────────

func (s *Store) MenuCategories(ctx context.Context) []models.MenuCategory {
	menus, err := s.backend.Menus(ctx)
	if err != nil {
		logger.Warn("store: load menus", "error", err)
		return []models.MenuCategory{}
	}
	return menus
}

func (s *Store) ReplaceMenuCategories(ctx context.Context, menus []models.MenuCategory) error {
	return s.backend.ReplaceMenus(ctx, menus)
}

// AddMenuCategory appends a new category with a timestamp-derived id.
func (s *Store) AddMenuCategory(ctx context.Context, label string, cfg models.MenuConfig) error {
	menus := s.MenuCategories(ctx)
	menus = append(menus, models.MenuCategory{
		ID:     fmt.Sprintf("MENU_%d", time.Now().UnixMilli()),
		Label:  label,
		Config: cfg,
	})
	return s.backend.ReplaceMenus(ctx, menus)
}

// UpdateMenuCategory replaces the label and config of one category.
// Unknown ids are a no-op.
func (s *Store) UpdateMenuCategory(ctx context.Context, id, label string, cfg models.MenuConfig) error {
	menus := s.MenuCategories(ctx)
	for i := range menus {
		if menus[i].ID == id {
			menus[i].Label = label
			menus[i].Config = cfg
			return s.backend.ReplaceMenus(ctx, menus)
		}
	}
	return nil
}

func (s *Store) DeleteMenuCategory(ctx context.Context, id string) error {
	menus := s.MenuCategories(ctx)
	kept := menus[:0]
	for _, m := range menus {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	return s.backend.ReplaceMenus(ctx, kept)
}

// RetractMenuCategory deletes a category and cascades to the orders placed
// against it (same date and label). Unknown ids are a no-op.
func (s *Store) RetractMenuCategory(ctx context.Context, id string) error {
	for _, m := range s.MenuCategories(ctx) {
		if m.ID == id {
			if err := s.DeleteOrdersByContext(ctx, m.Config.Date, m.Label); err != nil {
				return err
			}
			return s.DeleteMenuCategory(ctx, id)
		}
	}
	return nil
}

// ── Employees ────────────────────────────────────────────────────────────
// Array order is the roster's manual sort order, so replace operations
// persist the order exactly as given.

func (s *Store) Employees(ctx context.Context) []models.Employee {
	employees, err := s.backend.Employees(ctx)
	if err != nil {
		logger.Warn("store: load employees", "error", err)
		return []models.Employee{}
	}
	return employees
}

func (s *Store) ReplaceEmployees(ctx context.Context, employees []models.Employee) error {
	return s.backend.ReplaceEmployees(ctx, employees)
}

func (s *Store) AddEmployee(ctx context.Context, emp models.Employee) error {
	return s.backend.ReplaceEmployees(ctx, append(s.Employees(ctx), emp))
}

func (s *Store) UpdateEmployee(ctx context.Context, emp models.Employee) error {
	employees := s.Employees(ctx)
	for i := range employees {
		if employees[i].ID == emp.ID {
			employees[i] = emp
			return s.backend.ReplaceEmployees(ctx, employees)
		}
	}
	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	employees := s.Employees(ctx)
	kept := employees[:0]
	for _, e := range employees {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return s.backend.ReplaceEmployees(ctx, kept)
}

// ── Announcements ────────────────────────────────────────────────────────

func (s *Store) Announcements(ctx context.Context) []models.Announcement {
	announcements, err := s.backend.Announcements(ctx)
	if err != nil {
		logger.Warn("store: load announcements", "error", err)
		return []models.Announcement{}
	}
	return announcements
}

func (s *Store) ReplaceAnnouncements(ctx context.Context, announcements []models.Announcement) error {
	return s.backend.ReplaceAnnouncements(ctx, announcements)
}

// ── Admin accounts ───────────────────────────────────────────────────────

func (s *Store) AdminAccounts(ctx context.Context) []models.AdminAccount {
	admins, err := s.backend.Admins(ctx)
	if err != nil {
		logger.Warn("store: load admins", "error", err)
		return []models.AdminAccount{}
	}
	return admins
}

func (s *Store) ReplaceAdminAccounts(ctx context.Context, admins []models.AdminAccount) error {
	return s.backend.ReplaceAdmins(ctx, admins)
}

// AddAdminAccount appends an account, rejecting duplicate usernames. On
// rejection the stored collection is untouched.
func (s *Store) AddAdminAccount(ctx context.Context, account models.AdminAccount) error {
	admins := s.AdminAccounts(ctx)
	for _, a := range admins {
		if a.Username == account.Username {
			return fmt.Errorf("%w: %s", ErrDuplicateUsername, account.Username)
		}
	}
	return s.backend.ReplaceAdmins(ctx, append(admins, account))
}

func (s *Store) UpdateAdminAccount(ctx context.Context, account models.AdminAccount) error {
	admins := s.AdminAccounts(ctx)
	for i := range admins {
		if admins[i].ID == account.ID {
			admins[i] = account
			return s.backend.ReplaceAdmins(ctx, admins)
		}
	}
	return nil
}

func (s *Store) DeleteAdminAccount(ctx context.Context, id string) error {
	admins := s.AdminAccounts(ctx)
	kept := admins[:0]
	for _, a := range admins {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	return s.backend.ReplaceAdmins(ctx, kept)
}

// VerifyAdmin returns the account matching both credentials, or nil. The
// comparison is plaintext; so is the stored password.
func (s *Store) VerifyAdmin(ctx context.Context, username, password string) *models.AdminAccount {
	for _, a := range s.AdminAccounts(ctx) {
		if a.Username == username && a.Password == password {
			account := a
			return &account
		}
	}
	return nil
}

// AdminByID returns the account with the given id, or nil.
func (s *Store) AdminByID(ctx context.Context, id string) *models.AdminAccount {
	for _, a := range s.AdminAccounts(ctx) {
		if a.ID == id {
			account := a
			return &account
		}
	}
	return nil
}

// ── Shared config ────────────────────────────────────────────────────────

// FrontendPassword returns the shared UI gate, falling back to the default
// when unset or when the backend is unreachable.
func (s *Store) FrontendPassword(ctx context.Context) string {
	cfg, err := s.backend.Config(ctx)
	if err != nil {
		logger.Warn("store: load config", "error", err)
		return defaultFrontendPassword
	}
	if pwd, _ := cfg[models.ConfigKeyFrontendPassword].(string); pwd != "" {
		return pwd
	}
	return defaultFrontendPassword
}

// SetFrontendPassword merges the password into the current config map and
// writes the whole map back, preserving unrelated keys.
func (s *Store) SetFrontendPassword(ctx context.Context, password string) error {
	cfg, err := s.backend.Config(ctx)
	if err != nil {
		logger.Warn("store: load config", "error", err)
		cfg = map[string]any{}
	}
	if cfg == nil {
		cfg = map[string]any{}
	}
	cfg[models.ConfigKeyFrontendPassword] = password
	return s.backend.ReplaceConfig(ctx, cfg)
}
