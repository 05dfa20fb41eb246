package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const defaultHomeDir = "/var/lib/arena-mcp"

// HomeDir resolves the server home directory from ARENA_MCP_HOME or default.
func HomeDir() string {
	if v := os.Getenv("ARENA_MCP_HOME"); v != "" {
		return v
	}
	return defaultHomeDir
}

// Credentials holds the Arena account used for remote logins. WorkspaceID is
// optional; when zero the remote picks the account's default workspace.
type Credentials struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	WorkspaceID int64  `json:"workspaceId,omitempty"`
}

// Complete reports whether the credentials are usable for a login.
func (c Credentials) Complete() bool {
	return c.Email != "" && c.Password != ""
}

// Load returns credentials and their source: "env", "state", or "missing".
// The environment wins when it carries a full email/password pair; otherwise
// the persisted state file is consulted.
func Load(home string) (Credentials, string, error) {
	if home == "" {
		home = HomeDir()
	}

	email := os.Getenv("ARENA_EMAIL")
	password := os.Getenv("ARENA_PASSWORD")
	if email != "" && password != "" {
		c := Credentials{Email: email, Password: password}
		if raw := os.Getenv("ARENA_WORKSPACE_ID"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return Credentials{}, "", fmt.Errorf("parse ARENA_WORKSPACE_ID: %w", err)
			}
			c.WorkspaceID = id
		}
		return c, "env", nil
	}

	path := pathFor(home)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Credentials{}, "missing", nil
		}
		return Credentials{}, "", err
	}

	var c Credentials
	if err := json.Unmarshal(raw, &c); err != nil {
		return Credentials{}, "", err
	}

	if c.Complete() {
		return c, "state", nil
	}
	return Credentials{}, "missing", nil
}

// Put writes the credentials atomically with 0600 permissions.
func Put(home string, c Credentials) error {
	if !c.Complete() {
		return fmt.Errorf("credentials incomplete: email and password required")
	}
	if home == "" {
		home = HomeDir()
	}

	dir := filepath.Join(home, "state")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	path := pathFor(home)
	tmp := path + ".tmp"

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	enc, err := json.Marshal(c)
	if err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}

	if _, err := f.Write(enc); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	// best-effort fsync on directory
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	return nil
}

// Delete removes the stored credentials.
func Delete(home string) error {
	if home == "" {
		home = HomeDir()
	}
	path := pathFor(home)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func pathFor(home string) string {
	return filepath.Join(home, "state", "credentials.json")
}
