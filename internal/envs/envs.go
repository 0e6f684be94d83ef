package envs

import (
	"fmt"
	"sort"
	"strings"
)

// Configuration key conventions. The default profile uses the bare keys;
// named profiles insert an uppercased environment name between the prefix
// and the suffix, e.g. N8N_PROD_URL / N8N_PROD_API_KEY.
const (
	keyPrefix    = "N8N_"
	urlSuffix    = "_URL"
	apiKeySuffix = "_API_KEY"

	defaultURLKey    = "N8N_URL"
	defaultAPIKeyKey = "N8N_API_KEY"

	// defaultEnvKey names an environment to use when no -e flag is given,
	// letting CI jobs pick a target without changing command lines.
	defaultEnvKey = "N8N_ENV"
)

// Profile is a resolved target environment: base URL plus API key.
// A Profile returned by Resolve always has both fields populated.
type Profile struct {
	// Name is the uppercased environment name, empty for the default profile.
	Name string

	// BaseURL is the server base URL, without trailing slash.
	BaseURL string

	// APIKey is the API key sent on every request.
	APIKey string
}

// partial holds possibly-incomplete credentials while the environment is
// being enumerated.
type partial struct {
	url    string
	apiKey string
}

// Config holds every environment profile found in the process configuration.
// It is built once at startup and passed to the resolver; resolution never
// reads ambient process state.
type Config struct {
	profiles   map[string]partial
	defaultEnv string
}

// Load enumerates key-value pairs (in the os.Environ "KEY=value" form) into
// a Config. Unrelated keys are ignored. Incomplete profiles are kept so that
// Resolve can name exactly which keys are missing.
func Load(environ []string) *Config {
	c := &Config{profiles: make(map[string]partial)}

	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" {
			continue
		}

		switch key {
		case defaultURLKey:
			p := c.profiles[""]
			p.url = value
			c.profiles[""] = p
			continue
		case defaultAPIKeyKey:
			p := c.profiles[""]
			p.apiKey = value
			c.profiles[""] = p
			continue
		case defaultEnvKey:
			c.defaultEnv = strings.ToUpper(strings.TrimSpace(value))
			continue
		}

		if !strings.HasPrefix(key, keyPrefix) {
			continue
		}
		rest := strings.TrimPrefix(key, keyPrefix)

		switch {
		case strings.HasSuffix(rest, apiKeySuffix):
			name := strings.TrimSuffix(rest, apiKeySuffix)
			if name == "" {
				continue
			}
			p := c.profiles[name]
			p.apiKey = value
			c.profiles[name] = p
		case strings.HasSuffix(rest, urlSuffix):
			name := strings.TrimSuffix(rest, urlSuffix)
			if name == "" {
				continue
			}
			p := c.profiles[name]
			p.url = value
			c.profiles[name] = p
		}
	}

	return c
}

// Resolve returns the Profile for the given environment name, or the default
// profile when name is empty. Names are case-insensitive.
//
// When name is empty and N8N_ENV is set, the named environment it selects
// becomes the resolution target. The selection is strict: if that
// environment is incomplete the error names its keys rather than silently
// using the bare default keys.
//
// Returns a *MissingCredentialsError naming the absent configuration keys if
// either the URL or the API key (or both) is not configured. There is no
// fallback chaining: a named environment never falls back to the default.
func (c *Config) Resolve(name string) (Profile, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if upper == "" && c.defaultEnv != "" {
		upper = c.defaultEnv
	}

	p, ok := c.profiles[upper]
	if !ok {
		return Profile{}, &MissingCredentialsError{
			Environment: upper,
			MissingKeys: []string{urlKeyFor(upper), apiKeyKeyFor(upper)},
		}
	}

	var missing []string
	if p.url == "" {
		missing = append(missing, urlKeyFor(upper))
	}
	if p.apiKey == "" {
		missing = append(missing, apiKeyKeyFor(upper))
	}
	if len(missing) > 0 {
		return Profile{}, &MissingCredentialsError{Environment: upper, MissingKeys: missing}
	}

	return Profile{
		Name:    upper,
		BaseURL: strings.TrimRight(p.url, "/"),
		APIKey:  p.apiKey,
	}, nil
}

// Names returns the sorted names of all configured named profiles.
// The default profile is not included; use HasDefault to check for it.
func (c *Config) Names() []string {
	var names []string
	for name := range c.profiles {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// HasDefault reports whether a complete default profile is configured.
func (c *Config) HasDefault() bool {
	p, ok := c.profiles[""]
	return ok && p.url != "" && p.apiKey != ""
}

// DefaultOverride returns the uppercased environment name selected by
// N8N_ENV, or empty when no override is set.
func (c *Config) DefaultOverride() string {
	return c.defaultEnv
}

// IsComplete reports whether the named profile has both keys configured.
func (c *Config) IsComplete(name string) bool {
	_, err := c.Resolve(name)
	return err == nil
}

func urlKeyFor(name string) string {
	if name == "" {
		return defaultURLKey
	}
	return keyPrefix + name + urlSuffix
}

func apiKeyKeyFor(name string) string {
	if name == "" {
		return defaultAPIKeyKey
	}
	return keyPrefix + name + apiKeySuffix
}

// MissingCredentialsError reports which configuration keys are absent for an
// environment. MissingKeys always names at least one key.
type MissingCredentialsError struct {
	// Environment is the uppercased environment name, empty for default.
	Environment string

	// MissingKeys lists the configuration keys that were not set.
	MissingKeys []string
}

func (e *MissingCredentialsError) Error() string {
	env := e.Environment
	if env == "" {
		env = "default"
	}
	return fmt.Sprintf("missing credentials for environment %s: %s not set",
		env, strings.Join(e.MissingKeys, ", "))
}
