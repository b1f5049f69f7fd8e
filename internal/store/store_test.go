package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cofoodie/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	kv := newFileKV(t.TempDir())
	return &Store{backend: newLocalBackend(kv), kv: kv}
}

func sampleOrder(id, dateStr, label string) models.Order {
	return models.Order{
		ID:           id,
		EmployeeName: "王小明",
		Items: []models.OrderItem{
			{ID: "opt_1", Name: "排骨飯", Note: "不要辣", Price: 100},
		},
		TotalAmount:   100,
		Timestamp:     1704067200000,
		Status:        models.OrderPending,
		DateStr:       dateStr,
		CategoryLabel: label,
	}
}

func TestFreshStoreServesSeeds(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.Empty(t, s.Orders(ctx))
	assert.Len(t, s.MenuCategories(ctx), 3)
	assert.Len(t, s.Employees(ctx), 4)
	assert.Len(t, s.Announcements(ctx), 2)

	admins := s.AdminAccounts(ctx)
	require.Len(t, admins, 1)
	assert.Equal(t, "sysop", admins[0].Username)
	assert.True(t, admins[0].IsSuperAdmin)
}

func TestSaveOrderRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	order := sampleOrder("1704067200000", "2024-01-01", "訂餐")
	require.NoError(t, s.SaveOrder(ctx, order))

	orders := s.Orders(ctx)
	require.Len(t, orders, 1)
	assert.Equal(t, order, orders[0])
}

func TestUpdateOrderStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveOrder(ctx, sampleOrder("o1", "2024-01-01", "訂餐")))
	require.NoError(t, s.UpdateOrderStatus(ctx, "o1", models.OrderConfirmed))
	assert.Equal(t, models.OrderConfirmed, s.Orders(ctx)[0].Status)

	// Unknown id must not disturb the collection.
	require.NoError(t, s.UpdateOrderStatus(ctx, "ghost", models.OrderCancelled))
	orders := s.Orders(ctx)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderConfirmed, orders[0].Status)
}

func TestToggleOrderPaymentTwiceRestores(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveOrder(ctx, sampleOrder("o1", "2024-01-01", "訂餐")))

	require.NoError(t, s.ToggleOrderPayment(ctx, "o1"))
	assert.True(t, s.Orders(ctx)[0].IsPaid)

	require.NoError(t, s.ToggleOrderPayment(ctx, "o1"))
	assert.False(t, s.Orders(ctx)[0].IsPaid)
}

func TestDeleteOrdersByContextMatchesBothFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveOrder(ctx, sampleOrder("o1", "2024-01-01", "訂餐")))
	require.NoError(t, s.SaveOrder(ctx, sampleOrder("o2", "2024-01-01", "訂飲料")))
	require.NoError(t, s.SaveOrder(ctx, sampleOrder("o3", "2024-01-02", "訂餐")))

	require.NoError(t, s.DeleteOrdersByContext(ctx, "2024-01-01", "訂餐"))

	orders := s.Orders(ctx)
	require.Len(t, orders, 2)
	assert.Equal(t, "o2", orders[0].ID)
	assert.Equal(t, "o3", orders[1].ID)
}

func TestEmployeeOrderIsPersistedAsGiven(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	roster := []models.Employee{
		{ID: "9", Name: "張志豪"},
		{ID: "2", Name: "李美華"},
		{ID: "5", Name: "王小明"},
	}
	require.NoError(t, s.ReplaceEmployees(ctx, roster))
	assert.Equal(t, roster, s.Employees(ctx))

	require.NoError(t, s.AddEmployee(ctx, models.Employee{ID: "7", Name: "陳大文"}))
	got := s.Employees(ctx)
	require.Len(t, got, 4)
	assert.Equal(t, "7", got[3].ID)
}

func TestDeleteAbsentIDIsNoOp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceEmployees(ctx, []models.Employee{{ID: "1", Name: "王小明"}}))
	before := s.Employees(ctx)

	require.NoError(t, s.DeleteEmployee(ctx, "no-such-id"))
	assert.Equal(t, before, s.Employees(ctx))
}

func TestAddAdminAccountRejectsDuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before := s.AdminAccounts(ctx)
	err := s.AddAdminAccount(ctx, models.AdminAccount{
		ID: "x", Username: "sysop", Password: "pw", Name: "冒名者",
	})
	require.ErrorIs(t, err, ErrDuplicateUsername)
	assert.Equal(t, before, s.AdminAccounts(ctx))

	require.NoError(t, s.AddAdminAccount(ctx, models.AdminAccount{
		ID: "helper", Username: "helper", Password: "pw", Name: "助理",
	}))
	assert.Len(t, s.AdminAccounts(ctx), 2)
}

func TestVerifyAdmin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	admin := s.VerifyAdmin(ctx, "sysop", "Admin@123")
	require.NotNil(t, admin)
	assert.Equal(t, "sysop", admin.ID)

	assert.Nil(t, s.VerifyAdmin(ctx, "sysop", "wrong"))
	assert.Nil(t, s.VerifyAdmin(ctx, "nobody", "Admin@123"))
}

func TestAdminByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NotNil(t, s.AdminByID(ctx, "sysop"))
	assert.Nil(t, s.AdminByID(ctx, "ghost"))
}

func TestMenuCategoryLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceMenuCategories(ctx, nil))
	require.NoError(t, s.AddMenuCategory(ctx, "下午茶", models.MenuConfig{
		ShopName: "五桐號 - 台北通化店",
		Date:     "2024-01-05",
	}))

	menus := s.MenuCategories(ctx)
	require.Len(t, menus, 1)
	assert.Contains(t, menus[0].ID, "MENU_")

	require.NoError(t, s.UpdateMenuCategory(ctx, menus[0].ID, "下午茶加開", menus[0].Config))
	assert.Equal(t, "下午茶加開", s.MenuCategories(ctx)[0].Label)

	require.NoError(t, s.DeleteMenuCategory(ctx, menus[0].ID))
	assert.Empty(t, s.MenuCategories(ctx))
}

func TestRetractMenuCategoryCascadesToOrders(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceMenuCategories(ctx, []models.MenuCategory{
		{ID: "m1", Label: "訂餐", Config: models.MenuConfig{Date: "2024-01-01"}},
		{ID: "m2", Label: "訂飲料", Config: models.MenuConfig{Date: "2024-01-01"}},
	}))
	require.NoError(t, s.SaveOrder(ctx, sampleOrder("o1", "2024-01-01", "訂餐")))
	require.NoError(t, s.SaveOrder(ctx, sampleOrder("o2", "2024-01-01", "訂飲料")))

	require.NoError(t, s.RetractMenuCategory(ctx, "m1"))

	menus := s.MenuCategories(ctx)
	require.Len(t, menus, 1)
	assert.Equal(t, "m2", menus[0].ID)

	orders := s.Orders(ctx)
	require.Len(t, orders, 1)
	assert.Equal(t, "o2", orders[0].ID)
}

func TestFrontendPassword(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.Equal(t, defaultFrontendPassword, s.FrontendPassword(ctx))

	require.NoError(t, s.SetFrontendPassword(ctx, "lunch-time"))
	assert.Equal(t, "lunch-time", s.FrontendPassword(ctx))
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)

	assert.Nil(t, s.Session())

	require.NoError(t, s.SetSession(models.RoleAdmin, "sysop"))
	sess := s.Session()
	require.NotNil(t, sess)
	assert.Equal(t, models.RoleAdmin, sess.Role)
	assert.Equal(t, "sysop", sess.AdminID)

	require.NoError(t, s.ClearSession())
	assert.Nil(t, s.Session())
}

func TestBindingDefaultsAndRoundTrip(t *testing.T) {
	s := newTestStore(t)

	binding := s.Binding()
	assert.False(t, binding.Bound)
	assert.Equal(t, "PERSONAL", binding.AccountType)

	require.NoError(t, s.SetBinding(models.RemoteBinding{
		Bound: true, AccountName: "office@example.com", AccountType: "WORKSPACE",
	}))
	binding = s.Binding()
	assert.True(t, binding.Bound)
	assert.Equal(t, "office@example.com", binding.AccountName)
}

func TestCheckConnectionLocalAlwaysTrue(t *testing.T) {
	s := newTestStore(t)
	assert.True(t, s.CheckConnection(context.Background()))
}
