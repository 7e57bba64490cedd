package security

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

var keyFormat = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)

// sensitiveFields are blanked or dropped wherever external data is
// logged or stored.
var sensitiveFields = []string{"api_key", "secret", "token", "password", "auth", "signature"}

// SecretStore hands out configured secrets by name. Format checks run
// once per key name and are cached; a key changing underneath at runtime
// is not re-validated, which trades a small window for cheap repeated
// access.
type SecretStore struct {
	mu        sync.Mutex
	values    map[string]string
	validated map[string]bool
}

func NewSecretStore(values map[string]string) *SecretStore {
	return &SecretStore{values: values, validated: map[string]bool{}}
}

// SecureKey returns the named secret, failing with a configuration
// error if it is absent or malformed on first use.
func (s *SecretStore) SecureKey(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[name]
	if !ok || v == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}
	if s.validated[name] {
		return v, nil
	}
	if len(v) < 20 || len(v) > 200 || !keyFormat.MatchString(v) {
		return "", fmt.Errorf("invalid %s format", name)
	}
	s.validated[name] = true
	return v, nil
}

// RequiredKeys fails with a single error enumerating every missing key
// name. Intended as a startup check in production.
func (s *SecretStore) RequiredKeys(names ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var missing []string
	for _, n := range names {
		if s.values[n] == "" {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// MaskString reveals only the first and last four characters. Short
// values are fully masked.
func MaskString(v string) string {
	if len(v) > 8 {
		return v[:4] + "****" + v[len(v)-4:]
	}
	return "****"
}

// MaskSensitiveData blanks sensitive keys in a map copy for safe
// logging. Not used for stored audit payloads — the audit logger has
// its own redaction.
func MaskSensitiveData(data map[string]any) map[string]any {
	masked := make(map[string]any, len(data))
	for k, v := range data {
		masked[k] = v
	}
	for _, f := range sensitiveFields {
		if _, ok := masked[f]; ok {
			masked[f] = "****"
		}
	}
	return masked
}
