package domain

import (
	"strconv"
	"strings"
)

// Settings is the per-invocation settings bag handed over by the host.
type Settings struct {
	APIKey       string `json:"api_key" yaml:"api_key"`
	Results      string `json:"results" yaml:"results"`
	UseCanonical bool   `json:"use_canonical" yaml:"use_canonical"`
	DebugMode    bool   `json:"debug_mode" yaml:"debug_mode"`
	WordlistLoc  string `json:"wordlist_loc" yaml:"wordlist_loc"`
}

// Limit parses Results as an integer result limit.
func (s Settings) Limit() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s.Results))
	if err != nil || n <= 0 {
		return 0, &InvalidSettingError{Key: "results", Value: s.Results}
	}
	return n, nil
}

// Overrides is the settings bag a host sends with an invocation.
// Empty strings and nil booleans keep the configured value.
type Overrides struct {
	APIKey       string `json:"api_key,omitempty"`
	Results      string `json:"results,omitempty"`
	UseCanonical *bool  `json:"use_canonical,omitempty"`
	DebugMode    *bool  `json:"debug_mode,omitempty"`
	WordlistLoc  string `json:"wordlist_loc,omitempty"`
}

// Merge returns s with every field set in o applied.
func (s Settings) Merge(o Overrides) Settings {
	out := s
	if o.APIKey != "" {
		out.APIKey = o.APIKey
	}
	if o.Results != "" {
		out.Results = o.Results
	}
	if o.WordlistLoc != "" {
		out.WordlistLoc = o.WordlistLoc
	}
	if o.UseCanonical != nil {
		out.UseCanonical = *o.UseCanonical
	}
	if o.DebugMode != nil {
		out.DebugMode = *o.DebugMode
	}
	return out
}

// Fingerprint identifies the settings that change dictionary payloads.
func (s Settings) Fingerprint() string {
	return s.APIKey + "\x00" + strings.TrimSpace(s.Results) + "\x00" + strconv.FormatBool(s.UseCanonical)
}
