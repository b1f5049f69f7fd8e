package store

import (
	"encoding/json"
	"errors"
	"os"

	"cofoodie/internal/models"
	"cofoodie/pkg/logger"
)

// Session state and the remote-binding record live on the device even when
// the store runs against the sheet endpoint. Logging in on one machine must
// not log anyone in anywhere else.

// SetSession records who is signed in on this device. adminID is kept only
// for admin sessions.
func (s *Store) SetSession(role models.Role, adminID string) error {
	sess := models.Session{Role: role}
	if role == models.RoleAdmin {
		sess.AdminID = adminID
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.kv.put(keySession, data)
}

// Session returns the current device session, or nil when signed out.
func (s *Store) Session() *models.Session {
	data, err := s.kv.get(keySession)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		logger.Warn("store: load session", "error", err)
		return nil
	}
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		logger.Warn("store: decode session", "error", err)
		return nil
	}
	return &sess
}

// ClearSession signs this device out.
func (s *Store) ClearSession() error {
	return s.kv.delete(keySession)
}

// Binding reports whether the install is bound to a cloud backend. Remote
// mode implies a binding, so it reports a fixed record instead of reading
// the local one.
func (s *Store) Binding() models.RemoteBinding {
	if s.remote {
		return models.RemoteBinding{Bound: true, AccountName: "Cloud Mode", AccountType: "WORKSPACE"}
	}

	data, err := s.kv.get(keyAdminSettings)
	if err != nil {
		return models.RemoteBinding{AccountType: "PERSONAL"}
	}
	var binding models.RemoteBinding
	if err := json.Unmarshal(data, &binding); err != nil {
		logger.Warn("store: decode admin settings", "error", err)
		return models.RemoteBinding{AccountType: "PERSONAL"}
	}
	return binding
}

// SetBinding stores the binding record locally.
func (s *Store) SetBinding(binding models.RemoteBinding) error {
	data, err := json.Marshal(binding)
	if err != nil {
		return err
	}
	return s.kv.put(keyAdminSettings, data)
}
