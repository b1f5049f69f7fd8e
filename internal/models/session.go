package models

// Role tags who is signed in on this device.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Session is the device-local login state. It never travels to the remote
// backend.
type Session struct {
	Role    Role   `json:"role"`
	AdminID string `json:"adminId,omitempty"`
}

// RemoteBinding records whether this install is bound to a cloud backend.
// In remote mode the binding is implied by configuration and reported as a
// fixed record.
type RemoteBinding struct {
	Bound       bool   `json:"isBound"`
	AccountName string `json:"accountName"`
	AccountType string `json:"accountType"` // "PERSONAL" | "WORKSPACE"
}
