package models

// AdminAccount is a management login. Username is unique across the
// collection; the seed sysop account is the only super admin. Passwords are
// stored and compared in the clear, exactly as the deployed system does.
type AdminAccount struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
}
