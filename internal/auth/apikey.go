// Package auth provides a simple API key authentication
package auth

// APIKeyAuth validates requests against a fixed set of keys. An empty
// key set disables authentication entirely (local development).
type APIKeyAuth struct {
	validKeys map[string]struct{}
}

// NewAPIKeyAuth creates the authenticator for the given keys.
func NewAPIKeyAuth(keys []string) *APIKeyAuth {
	validKeys := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if key != "" {
			validKeys[key] = struct{}{}
		}
	}

	return &APIKeyAuth{validKeys: validKeys}
}

// Enabled reports whether any keys are configured.
func (a *APIKeyAuth) Enabled() bool {
	return len(a.validKeys) > 0
}

// IsValidKey checks if a key is valid
func (a *APIKeyAuth) IsValidKey(key string) bool {
	_, valid := a.validKeys[key]
	return valid
}
