package auth

import (
	"context"
	"os"
	"sync"

	"github.com/fivetwenty-io/replicate-client/internal/constants"
)

// TokenManager supplies the bearer token attached to API requests. Replicate
// uses long-lived static API tokens, so there is no refresh flow; the
// interface exists so the transport does not care where the token comes from.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	SetToken(token string)
}

// StaticTokenManager holds a fixed token.
type StaticTokenManager struct {
	mu    sync.RWMutex
	token string
}

// NewStaticTokenManager creates a token manager around a fixed token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the stored token. An empty token is not an error: the
// request is sent unauthenticated and the remote service answers with 401.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token, nil
}

// SetToken replaces the stored token.
func (m *StaticTokenManager) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
}

// FromEnvironment creates a token manager seeded from REPLICATE_API_TOKEN.
func FromEnvironment() *StaticTokenManager {
	return NewStaticTokenManager(os.Getenv(constants.EnvAPIToken))
}
