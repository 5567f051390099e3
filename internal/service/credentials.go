package service

import "sync"

// CredentialHolder keeps a session-scoped API key in memory. No local
// validation: validity is only discovered by a failed downstream call.
// Never persisted, so every session starts empty and falls back to the
// process-level key when one is configured.
type CredentialHolder struct {
	mu         sync.Mutex
	sessionKey string
	fallback   string
	authFailed bool
}

// NewCredentialHolder creates a holder with an optional process-level fallback key
func NewCredentialHolder(fallback string) *CredentialHolder {
	return &CredentialHolder{fallback: fallback}
}

// Set stores a new session key and clears any recorded auth failure
func (h *CredentialHolder) Set(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessionKey = key
	h.authFailed = false
}

// Resolve returns the key to use: the session key wins, the configured
// fallback applies transparently otherwise. Empty means no credential.
func (h *CredentialHolder) Resolve() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessionKey != "" {
		return h.sessionKey
	}
	return h.fallback
}

// MarkAuthFailure records that the current credential was rejected downstream
func (h *CredentialHolder) MarkAuthFailure() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.authFailed = true
}

// AuthFailed reports whether the last downstream call rejected the credential
func (h *CredentialHolder) AuthFailed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.authFailed
}
