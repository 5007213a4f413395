package client

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DecodedUser is what the client reads out of the token payload for UI
// gating. The signature is NOT verified here: the token never authorizes
// anything client-side, the server re-checks it on every request.
type DecodedUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session holds the bearer token and the decoded user, persisted to a JSON
// file so it survives restarts. It replaces ambient global state: callers
// construct one and pass it where needed.
type Session struct {
	Token string      `json:"token"`
	User  DecodedUser `json:"user"`

	path string
}

func NewSession(stateDir string) *Session {
	return &Session{path: filepath.Join(stateDir, "session.json")}
}

func LoadSession(stateDir string) (*Session, error) {
	s := NewSession(stateDir)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}

func (s *Session) Save() error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *Session) Clear() error {
	s.Token = ""
	s.User = DecodedUser{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Session) IsAuthenticated() bool {
	return s.Token != ""
}

func (s *Session) HasRole(role string) bool {
	return strings.EqualFold(s.User.Role, role)
}

func (s *Session) IsAdmin() bool {
	return s.HasRole("admin")
}

// SetToken stores the token and caches the decoded identity.
func (s *Session) SetToken(token string) error {
	user, err := DecodeToken(token)
	if err != nil {
		return err
	}
	s.Token = token
	s.User = *user
	return nil
}

// DecodeToken reads the payload of a JWT without verifying the signature.
func DecodeToken(token string) (*DecodedUser, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("malformed token")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("decode token payload: %w", err)
	}

	var claims struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("decode token payload: %w", err)
	}

	id, err := strconv.ParseUint(claims.Sub, 10, 64)
	if err != nil {
		return nil, errors.New("malformed subject claim")
	}

	return &DecodedUser{ID: uint(id), Email: claims.Email, Role: claims.Role}, nil
}
