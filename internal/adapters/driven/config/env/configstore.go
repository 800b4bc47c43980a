// Package env overlays environment variables on another configuration store.
//
// Every key can be set as SAPBATCH_<KEY> with dots turned into underscores
// and letters upper-cased, so "storage.backend" reads SAPBATCH_STORAGE_BACKEND.
// A few keys also honour the names set by the Azure Functions host.
package env

import (
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/sapbatch/internal/core/ports/driven"
)

// Prefix is prepended to every derived variable name.
const Prefix = "SAPBATCH_"

// Aliases maps config keys to host-provided variables. The prefixed
// variable wins when both are set.
var Aliases = map[string]string{
	"storage.azure.connection_string": "AZURE_STORAGE_CONNECTION_STRING",
	"server.port":                     "FUNCTIONS_CUSTOMHANDLER_PORT",
}

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore reads environment variables first and falls back to the
// wrapped store. Writes always go to the wrapped store.
type ConfigStore struct {
	base   driven.ConfigStore
	lookup func(string) (string, bool)
}

// Option configures the store.
type Option func(*ConfigStore)

// WithLookup replaces os.LookupEnv.
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(s *ConfigStore) {
		s.lookup = lookup
	}
}

// NewConfigStore overlays the environment on base.
func NewConfigStore(base driven.ConfigStore, opts ...Option) *ConfigStore {
	s := &ConfigStore{base: base, lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// VarName returns the prefixed variable name for key.
func VarName(key string) string {
	return Prefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

func (s *ConfigStore) env(key string) (string, bool) {
	if v, ok := s.lookup(VarName(key)); ok {
		return v, true
	}
	if alias, ok := Aliases[key]; ok {
		if v, ok := s.lookup(alias); ok {
			return v, true
		}
	}
	return "", false
}

// Get returns the environment value as a string, or the wrapped value.
func (s *ConfigStore) Get(key string) (any, bool) {
	if v, ok := s.env(key); ok {
		return v, true
	}
	return s.base.Get(key)
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	if v, ok := s.env(key); ok {
		return v
	}
	return s.base.GetString(key)
}

// GetInt retrieves an integer configuration value. An unparseable
// environment value is ignored in favour of the wrapped store; Get still
// returns the raw string so validation can report it.
func (s *ConfigStore) GetInt(key string) int {
	if v, ok := s.env(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return s.base.GetInt(key)
}

// GetFloat retrieves a float configuration value. Unparseable environment
// values fall back to the wrapped store.
func (s *ConfigStore) GetFloat(key string) float64 {
	if v, ok := s.env(key); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return s.base.GetFloat(key)
}

// GetBool retrieves a boolean configuration value. Accepts the forms
// understood by strconv.ParseBool; anything else falls back to the
// wrapped store.
func (s *ConfigStore) GetBool(key string) bool {
	if v, ok := s.env(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return s.base.GetBool(key)
}

// Set stores the value in the wrapped store.
func (s *ConfigStore) Set(key string, value any) error {
	return s.base.Set(key, value)
}

// Save persists the wrapped store.
func (s *ConfigStore) Save() error {
	return s.base.Save()
}

// Load reloads the wrapped store.
func (s *ConfigStore) Load() error {
	return s.base.Load()
}

// Path returns the wrapped store's path.
func (s *ConfigStore) Path() string {
	return s.base.Path()
}
