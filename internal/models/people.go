package models

// Employee is a roster entry. Collection order is the manual sort order and
// is persisted as array order, not as a field.
type Employee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Announcement is a banner message. Array order is display priority.
type Announcement struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	IsActive bool   `json:"isActive"`
}
