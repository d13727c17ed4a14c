package domain

import "strings"

// SearchState holds the parameters of the last search so it can be re-run
// identically or with one parameter flipped. A session owns exactly one.
type SearchState struct {
	// Directories are absolute, existing directories with a trailing separator.
	Directories []string `json:"directories"`

	// ExtraArgs are passed to the finder verbatim, unquoted.
	ExtraArgs string `json:"extra_args"`

	// SizeFilter is rendered as --size <value> when non-blank.
	SizeFilter string `json:"size_filter"`

	// ToggleFlags is an ordered set of switches such as -r.
	ToggleFlags []string `json:"toggle_flags"`
}

// Toggle removes flag if present, otherwise appends it.
// Applying Toggle twice with the same flag restores the original set.
func (s *SearchState) Toggle(flag string) {
	if flag == "" {
		return
	}
	if !s.HasFlag(flag) {
		s.ToggleFlags = append(s.ToggleFlags, flag)
		return
	}
	kept := make([]string, 0, len(s.ToggleFlags))
	for _, f := range s.ToggleFlags {
		if f != flag {
			kept = append(kept, f)
		}
	}
	s.ToggleFlags = kept
}

// HasFlag reports whether flag is currently toggled on.
func (s *SearchState) HasFlag(flag string) bool {
	for _, f := range s.ToggleFlags {
		if f == flag {
			return true
		}
	}
	return false
}

// SetSize replaces the size filter. An empty value disables it.
func (s *SearchState) SetSize(value string) {
	s.SizeFilter = value
}

// Build renders the flag portion of the finder invocation: the toggle
// flags joined by single spaces followed by --size <value> when set.
// Duplicate flags are emitted once.
func (s *SearchState) Build() string {
	parts := make([]string, 0, len(s.ToggleFlags)+2)
	seen := make(map[string]struct{}, len(s.ToggleFlags))
	for _, f := range s.ToggleFlags {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		parts = append(parts, f)
	}
	if size := strings.TrimSpace(s.SizeFilter); size != "" {
		parts = append(parts, "--size", size)
	}
	return strings.Join(parts, " ")
}

// Clone returns a deep copy that can be mutated independently.
func (s *SearchState) Clone() *SearchState {
	c := *s
	c.Directories = append([]string(nil), s.Directories...)
	c.ToggleFlags = append([]string(nil), s.ToggleFlags...)
	return &c
}
