package jsonrpc

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/wordex/internal/domain"
	"github.com/kailas-cloud/wordex/internal/domain/option"
)

// Methods understood by the handler.
const (
	MethodQuery       = "query"
	MethodContextMenu = "context_menu"
)

// Request is a launcher JSON-RPC request.
type Request struct {
	Method     string            `json:"method"`
	Parameters []json.RawMessage `json:"parameters"`
	// Keyword is the action keyword the launcher invoked the plugin with.
	Keyword string `json:"keyword,omitempty"`
	// RawSettings holds the launcher settings bag. Values may be strings, bools or numbers.
	RawSettings map[string]any `json:"settings,omitempty"`
}

// Response is a launcher JSON-RPC response.
type Response struct {
	Result []option.Wire `json:"result"`
}

// Decode parses a request.
func Decode(data []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	if req.Method == "" {
		return Request{}, fmt.Errorf("decode request: missing method")
	}
	return req, nil
}

// Settings converts the launcher settings bag. Missing or unparsable
// booleans are left unset.
func (r Request) Settings() domain.Overrides {
	return domain.Overrides{
		APIKey:       stringValue(r.RawSettings["api_key"]),
		Results:      stringValue(r.RawSettings["results"]),
		UseCanonical: boolValue(r.RawSettings["use_canonical"]),
		DebugMode:    boolValue(r.RawSettings["debug_mode"]),
		WordlistLoc:  stringValue(r.RawSettings["wordlist_loc"]),
	}
}

// ActionKeyword returns the keyword for rewritten queries: the request's
// keyword, then the action_keyword setting. Empty means the configured one.
func (r Request) ActionKeyword() string {
	if r.Keyword != "" {
		return r.Keyword
	}
	return stringValue(r.RawSettings["action_keyword"])
}

// StringParam returns parameter i as a string.
func (r Request) StringParam(i int) (string, error) {
	if i >= len(r.Parameters) {
		return "", fmt.Errorf("missing parameter %d", i)
	}
	var s string
	if err := json.Unmarshal(r.Parameters[i], &s); err != nil {
		return "", fmt.Errorf("parameter %d: %w", i, err)
	}
	return s, nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func boolValue(v any) *bool {
	switch t := v.(type) {
	case bool:
		return &t
	case string:
		b, err := strconv.ParseBool(t)
		if err != nil {
			return nil
		}
		return &b
	default:
		return nil
	}
}
