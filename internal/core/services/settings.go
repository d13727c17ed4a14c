package services

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyProgramPath      = "program.path"
	keyListingClause    = "listing.clause"
	keyListingSwitches  = "listing.switches"
	keyExecTerminator   = "listing.exec_terminator"
	keySearchFlags      = "search.flags"
	keySearchSize       = "search.size"
	keyGraceMS          = "session.grace_ms"
	keyLogVerbose       = "log.verbose"
	keyHistoryEnabled   = "history.enabled"
	keyHistoryLimit     = "history.limit"
	keyHistoryKeep      = "history.keep"
	keyRefreshPerSecond = "ui.refresh_per_second"
)

type settingKind int

const (
	kindString settingKind = iota
	kindStringSlice
	kindInt
	kindBool
)

// settingKeys lists every configurable key in display order.
var settingKeys = []struct {
	key  string
	kind settingKind
}{
	{keyProgramPath, kindString},
	{keyListingClause, kindString},
	{keyListingSwitches, kindString},
	{keyExecTerminator, kindString},
	{keySearchFlags, kindStringSlice},
	{keySearchSize, kindString},
	{keyGraceMS, kindInt},
	{keyLogVerbose, kindBool},
	{keyHistoryEnabled, kindBool},
	{keyHistoryLimit, kindInt},
	{keyHistoryKeep, kindInt},
	{keyRefreshPerSecond, kindInt},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	goos        string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		goos:        runtime.GOOS,
	}
}

// Get retrieves current application settings. Keys that are not set take
// their platform default.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := s.GetDefaults()
	switches := s.getString(keyListingSwitches, defaults.Listing.Switches)
	graceMS := s.getInt(keyGraceMS, int(defaults.Session.GracePeriod/time.Millisecond))

	settings := &domain.AppSettings{
		Program: s.getString(keyProgramPath, defaults.Program),
		Listing: domain.ListingSettings{
			Clause:         s.getString(keyListingClause, domain.DefaultListingClause(s.goos, switches)),
			Switches:       switches,
			ExecTerminator: s.getString(keyExecTerminator, defaults.Listing.ExecTerminator),
		},
		Search: domain.SearchDefaults{
			Flags: s.getStringSlice(keySearchFlags, defaults.Search.Flags),
			Size:  s.getString(keySearchSize, defaults.Search.Size),
		},
		Session: domain.SessionSettings{
			GracePeriod: time.Duration(graceMS) * time.Millisecond,
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, defaults.History.Enabled),
			Limit:   s.getInt(keyHistoryLimit, defaults.History.Limit),
			Keep:    s.getInt(keyHistoryKeep, defaults.History.Keep),
		},
		UI: domain.UISettings{
			RefreshPerSecond: s.getInt(keyRefreshPerSecond, defaults.UI.RefreshPerSecond),
		},
		Verbose: s.getBool(keyLogVerbose, defaults.Verbose),
	}

	if settings.Program == "" {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrInvalidInput, keyProgramPath)
	}
	return settings, nil
}

// Set validates value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := lookupSetting(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch kind {
	case kindString:
		if key == keyProgramPath && strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
		parsed = value
	case kindStringSlice:
		parsed = splitList(value)
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		if key == keyRefreshPerSecond && n == 0 {
			return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every configurable key in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	for i, k := range settingKeys {
		keys[i] = k.key
	}
	return keys
}

// Value returns the effective value of key rendered as text.
func (s *SettingsService) Value(key string) (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}
	switch key {
	case keyProgramPath:
		return settings.Program, nil
	case keyListingClause:
		return settings.Listing.Clause, nil
	case keyListingSwitches:
		return settings.Listing.Switches, nil
	case keyExecTerminator:
		return settings.Listing.ExecTerminator, nil
	case keySearchFlags:
		return strings.Join(settings.Search.Flags, " "), nil
	case keySearchSize:
		return settings.Search.Size, nil
	case keyGraceMS:
		return strconv.FormatInt(settings.Session.GracePeriod.Milliseconds(), 10), nil
	case keyLogVerbose:
		return strconv.FormatBool(settings.Verbose), nil
	case keyHistoryEnabled:
		return strconv.FormatBool(settings.History.Enabled), nil
	case keyHistoryLimit:
		return strconv.Itoa(settings.History.Limit), nil
	case keyHistoryKeep:
		return strconv.Itoa(settings.History.Keep), nil
	case keyRefreshPerSecond:
		return strconv.Itoa(settings.UI.RefreshPerSecond), nil
	default:
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings(s.goos)
}

func lookupSetting(key string) (settingKind, bool) {
	for _, k := range settingKeys {
		if k.key == key {
			return k.kind, true
		}
	}
	return 0, false
}

// splitList parses a flag list separated by spaces or commas.
func splitList(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return append([]string(nil), defaultVal...)
	}
	values := s.configStore.GetStringSlice(key)
	if values == nil {
		return []string{}
	}
	return values
}
