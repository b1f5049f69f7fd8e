package models

// MenuOption is one pre-priced choice on a menu (e.g. 排骨飯 $100).
type MenuOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Price int    `json:"price"`
}

// MenuConfig carries the per-day details of a menu category.
type MenuConfig struct {
	ImageURL   string       `json:"imageUrl"`
	ShopName   string       `json:"shopName"`
	Date       string       `json:"date"`                 // YYYY-MM-DD
	CutoffTime string       `json:"cutoffTime,omitempty"` // HH:mm
	Options    []MenuOption `json:"options,omitempty"`
}

// MenuCategory is one orderable tab: a label (訂餐, 訂飲料, 揪團購, …) plus
// that day's config. Label+date identifies one ordering window; deleting the
// category closes it.
type MenuCategory struct {
	ID     string     `json:"id"`
	Label  string     `json:"label"`
	Config MenuConfig `json:"config"`
}
