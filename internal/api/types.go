package api

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/4liaghaie/sait/internal/query"
	"github.com/4liaghaie/sait/internal/store"
)

// LoginRequest is the body of POST /admin/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries a fresh bearer token; ExpiresIn is in seconds.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// BundleInput is an optional per-language pair inside a JSON body.
type BundleInput struct {
	EN *string `json:"en"`
	TR *string `json:"tr"`
}

func (b *BundleInput) en() store.Optional[string] {
	if b == nil || b.EN == nil {
		return store.Unset[string]()
	}
	return store.Some(*b.EN)
}

func (b *BundleInput) tr() store.Optional[string] {
	if b == nil || b.TR == nil {
		return store.Unset[string]()
	}
	return store.Some(*b.TR)
}

// AboutRequest accepts either {"translations":{"en","tr"}} or a bare
// {"en","tr"}.
type AboutRequest struct {
	Translations *BundleInput `json:"translations"`
	BundleInput
}

// text returns the pair to store. Missing languages become empty strings.
func (a AboutRequest) text() (en, tr string) {
	b := &a.BundleInput
	if a.Translations != nil {
		b = a.Translations
	}
	return b.en().Get(""), b.tr().Get("")
}

// CategoryRequest is the JSON body for category create and patch. Position
// and IsActive are loosely typed: numbers, numeric strings and the usual
// boolean spellings are accepted.
type CategoryRequest struct {
	Title       *BundleInput    `json:"title"`
	Description *BundleInput    `json:"description"`
	Position    json.RawMessage `json:"position"`
	IsActive    json.RawMessage `json:"is_active"`
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

func (c CategoryRequest) position() store.Optional[int] {
	if !present(c.Position) {
		return store.Unset[int]()
	}
	return store.Some(parseNumber(looseString(c.Position), 0))
}

func (c CategoryRequest) isActive() store.Optional[bool] {
	if !present(c.IsActive) {
		return store.Unset[bool]()
	}
	var v any
	if err := json.Unmarshal(c.IsActive, &v); err != nil {
		return store.Some(false)
	}
	return store.Some(query.ParseBool(v))
}

// looseString renders a raw JSON scalar as the string a form would carry.
func looseString(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(t)
	}
}
