package store

import (
	"time"

	"cofoodie/internal/models"
)

// defaultFrontendPassword gates the ordering UI until an admin changes it.
const defaultFrontendPassword = "24664941"

// Seed data returned by the local backend for keys that were never written,
// so a fresh checkout is usable without any provisioning step. Constructors
// return fresh slices: callers mutate what they get back.

func seedEmployees() []models.Employee {
	return []models.Employee{
		{ID: "1", Name: "王小明"},
		{ID: "2", Name: "李美華"},
		{ID: "3", Name: "陳大文"},
		{ID: "4", Name: "張志豪"},
	}
}

func seedAnnouncements() []models.Announcement {
	return []models.Announcement{
		{ID: "1", Content: "今日下午茶請在 14:00 前完成下單！", IsActive: true},
		{ID: "2", Content: "本週五團購項目：知名網紅蛋糕。", IsActive: true},
	}
}

func seedMenus() []models.MenuCategory {
	today := time.Now().Format("2006-01-02")
	return []models.MenuCategory{
		{
			ID:    "FOOD",
			Label: "訂餐",
			Config: models.MenuConfig{
				ImageURL: "https://picsum.photos/800/600?random=1",
				ShopName: "阿嬤古早味排骨飯",
				Date:     today,
			},
		},
		{
			ID:    "DRINKS",
			Label: "訂飲料",
			Config: models.MenuConfig{
				ImageURL: "https://picsum.photos/800/600?random=2",
				ShopName: "五桐號 - 台北通化店",
				Date:     today,
			},
		},
		{
			ID:    "GROUP_BUY",
			Label: "揪團購",
			Config: models.MenuConfig{
				ImageURL: "https://picsum.photos/800/600?random=3",
				ShopName: "諾貝爾奶凍捲",
				Date:     today,
			},
		},
	}
}

func seedAdmins() []models.AdminAccount {
	return []models.AdminAccount{
		{
			ID:           "sysop",
			Username:     "sysop",
			Password:     "Admin@123",
			Name:         "超級管理員",
			IsSuperAdmin: true,
		},
	}
}
