package models

// Snapshot is the full dataset returned by the GET_ALL_DATA action. The
// remote backend always fetches all six members even when the caller wants
// one collection; that is the endpoint's only read primitive.
type Snapshot struct {
	Orders        []Order        `json:"orders"`
	Menus         []MenuCategory `json:"menus"`
	Employees     []Employee     `json:"employees"`
	Announcements []Announcement `json:"announcements"`
	Admins        []AdminAccount `json:"admins"`
	Config        map[string]any `json:"config"`
}

// ConfigKeyFrontendPassword is the shared password gating the ordering UI,
// the only config key the system currently reads.
const ConfigKeyFrontendPassword = "frontendPassword"
