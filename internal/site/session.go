package site

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/israil64/laptop-galaxy/internal/models"
)

// Session persists the logged-in user's public profile on disk, the
// equivalent of the browser's local storage: valid until explicitly cleared,
// no expiry, no refresh.
type Session struct {
	path string
}

func NewSession(path string) Session {
	return Session{path: path}
}

// Save stores the profile after a successful login.
func (s Session) Save(u models.PublicUser) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Load returns the stored profile, or nil when logged out (missing or
// unreadable file).
func (s Session) Load() *models.PublicUser {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var u models.PublicUser
	if err := json.Unmarshal(data, &u); err != nil {
		return nil
	}
	return &u
}

// Clear logs out by removing the stored profile; clearing an absent session
// is a no-op.
func (s Session) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Authenticated mirrors the guest-versus-logged-in UI boolean: it is simply
// the presence of a stored profile.
func (s Session) Authenticated() bool {
	return s.Load() != nil
}
