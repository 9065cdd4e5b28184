// Package config reads and writes the user's key=value settings file and
// resolves environment variable fallbacks.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/alnah/go-profilestamp/internal/logger"
)

// Config keys.
const (
	KeyTenantID          = "tenant-id"
	KeyClientID          = "client-id"
	KeyUser              = "user"
	KeySelectionMarker   = "selection-marker"
	KeySignatureTemplate = "signature-template"
	KeyLogMode           = "log-mode"
)

// Environment variable fallbacks.
const (
	EnvTenantID          = "PROFILESTAMP_TENANT_ID"
	EnvClientID          = "PROFILESTAMP_CLIENT_ID"
	EnvUser              = "PROFILESTAMP_USER"
	EnvSelectionMarker   = "PROFILESTAMP_SELECTION_MARKER"
	EnvSignatureTemplate = "PROFILESTAMP_SIGNATURE_TEMPLATE"
	EnvLogMode           = "PROFILESTAMP_LOG_MODE"

	// EnvClientSecret is never persisted to the config file.
	EnvClientSecret = "PROFILESTAMP_CLIENT_SECRET"
)

// Log modes.
const (
	LogModeDev  = logger.ModeDev
	LogModeProd = logger.ModeProd
)

// Keys lists the supported settings in display order.
var Keys = []string{
	KeyTenantID,
	KeyClientID,
	KeyUser,
	KeySelectionMarker,
	KeySignatureTemplate,
	KeyLogMode,
}

var envByKey = map[string]string{
	KeyTenantID:          EnvTenantID,
	KeyClientID:          EnvClientID,
	KeyUser:              EnvUser,
	KeySelectionMarker:   EnvSelectionMarker,
	KeySignatureTemplate: EnvSignatureTemplate,
	KeyLogMode:           EnvLogMode,
}

// EnvVar returns the environment variable that backs key, or "".
func EnvVar(key string) string {
	return envByKey[key]
}

// IsKnownKey reports whether key is a supported setting.
func IsKnownKey(key string) bool {
	return slices.Contains(Keys, key)
}

// Config holds user configuration loaded from ~/.config/go-profilestamp/config.
type Config struct {
	TenantID          string
	ClientID          string
	User              string
	SelectionMarker   string
	SignatureTemplate string
	LogMode           string
}

func (c *Config) set(key, value string) {
	switch key {
	case KeyTenantID:
		c.TenantID = value
	case KeyClientID:
		c.ClientID = value
	case KeyUser:
		c.User = value
	case KeySelectionMarker:
		c.SelectionMarker = value
	case KeySignatureTemplate:
		c.SignatureTemplate = value
	case KeyLogMode:
		c.LogMode = value
	}
}

// dir returns the configuration directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/go-profilestamp.
func dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "go-profilestamp"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "go-profilestamp"), nil
}

// path returns the full path to the config file.
func path() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config"), nil
}

// Load reads the configuration file and environment variables.
// Precedence: config file values, then environment variable fallbacks.
// Returns an empty Config if the file doesn't exist (not an error).
func Load() (Config, error) {
	return LoadWith(os.Getenv)
}

// LoadWith is Load with an injectable environment lookup.
func LoadWith(getenv func(string) string) (Config, error) {
	var cfg Config

	p, err := path()
	if err != nil {
		return cfg, err
	}

	data, err := parseFile(p)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	for _, key := range Keys {
		value := data[key]
		if value == "" {
			value = getenv(envByKey[key])
		}
		cfg.set(key, value)
	}

	return cfg, nil
}

// parseFile reads a key=value config file.
// Format: one key=value per line, # comments, empty lines ignored.
func parseFile(p string) (map[string]string, error) {
	f, err := os.Open(p) // #nosec G304 -- config path is constructed from home dir
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid syntax at line %d: %q", lineNum, line)
		}
		data[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return data, nil
}

// validKey rejects keys that would corrupt the key=value format.
func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, "=\n\r#") || strings.TrimSpace(key) != key {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Save writes a single key=value to the config file.
// Creates the config directory and file if they don't exist.
// Preserves existing key=value pairs but discards comments.
func Save(key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if strings.ContainsAny(value, "\n\r") {
		return fmt.Errorf("%w: value for %s spans lines", ErrInvalidValue, key)
	}

	p, err := path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	existing, err := parseFile(p)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("read existing config: %w", err)
		}
		existing = make(map[string]string)
	}
	existing[key] = value

	return writeFile(p, existing)
}

// writeFile writes the config map to a file, keys sorted.
func writeFile(p string, data map[string]string) error {
	// #nosec G302 G304 -- config file with standard permissions, path from home dir
	f, err := os.OpenFile(p, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := fmt.Fprintf(f, "%s=%s\n", key, data[key]); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	return nil
}

// Get reads a single value from the config file.
// Returns empty string if the key doesn't exist.
func Get(key string) (string, error) {
	p, err := path()
	if err != nil {
		return "", err
	}

	data, err := parseFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	return data[key], nil
}

// List returns all config values as a map.
func List() (map[string]string, error) {
	p, err := path()
	if err != nil {
		return nil, err
	}

	data, err := parseFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}

	return data, nil
}

// Validate checks value for key before it is saved and returns the value
// to store: paths are expanded, log modes lowercased.
func Validate(key, value string) (string, error) {
	if !IsKnownKey(key) {
		return "", fmt.Errorf("%w %q (valid keys: %v)", ErrUnknownKey, key, Keys)
	}

	switch key {
	case KeySelectionMarker:
		if strings.TrimSpace(value) == "" {
			return "", fmt.Errorf("%w: selection-marker cannot be empty", ErrInvalidValue)
		}
	case KeySignatureTemplate:
		expanded := ExpandPath(value)
		info, err := os.Stat(expanded)
		if err != nil {
			return "", fmt.Errorf("%w: signature-template: %v", ErrInvalidValue, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%w: signature-template is a directory: %s", ErrInvalidValue, expanded)
		}
		return expanded, nil
	case KeyLogMode:
		mode := strings.ToLower(strings.TrimSpace(value))
		if mode != LogModeDev && mode != LogModeProd {
			return "", fmt.Errorf("%w: log-mode must be %s or %s", ErrInvalidValue, LogModeDev, LogModeProd)
		}
		return mode, nil
	}

	return value, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
