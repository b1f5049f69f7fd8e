package models

// OrderStatus is the lifecycle state of an order. Status is the only field
// (besides IsPaid) an admin mutates after creation.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// OrderItem is one line of an order.
type OrderItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Note  string `json:"note"`
	Price int    `json:"price"`
}

// Order is a single employee submission against one day's menu.
// Items and TotalAmount are immutable after creation; TotalAmount is
// caller-computed and never re-derived here.
type Order struct {
	ID            string      `json:"id"`
	EmployeeName  string      `json:"employeeName"`
	Items         []OrderItem `json:"items"`
	TotalAmount   int         `json:"totalAmount"`
	Timestamp     int64       `json:"timestamp"`
	Status        OrderStatus `json:"status"`
	DateStr       string      `json:"dateStr"` // YYYY-MM-DD, the bucketing key
	CategoryLabel string      `json:"categoryLabel,omitempty"`
	IsPaid        bool        `json:"isPaid,omitempty"`
}
