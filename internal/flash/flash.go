// Package flash stores one-time notices in a cookie so they survive the redirect after a form submission
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

// CookieName is the name of the cookie holding the notice
const CookieName = "fyyur_flash"

// Kind defines how a notice is presented
type Kind string

// Kinds of notices
const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice is a message shown once on the next rendered page
type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Success creates a success notice
func Success(message string) *Notice {
	return &Notice{Kind: KindSuccess, Message: message}
}

// Error creates an error notice
func Error(message string) *Notice {
	return &Notice{Kind: KindError, Message: message}
}

// Write stores the notice in a cookie for the next page render. Empty or unknown notices are ignored
func Write(w http.ResponseWriter, r *http.Request, notice *Notice) {
	if notice == nil {
		return
	}
	n, ok := normalize(*notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   r != nil && r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the notice stored inside the request without touching the cookie
func Read(r *http.Request) (*Notice, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, false
	}
	n, ok := decode(cookie.Value)
	if !ok {
		return nil, false
	}
	return &n, true
}

// Clear expires the notice cookie
func Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   r != nil && r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func decode(raw string) (Notice, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Notice{}, false
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Notice{}, false
	}
	var n Notice
	if err := json.Unmarshal(data, &n); err != nil {
		return Notice{}, false
	}
	return normalize(n)
}

func normalize(n Notice) (Notice, bool) {
	n.Message = strings.TrimSpace(n.Message)
	if n.Message == "" {
		return Notice{}, false
	}
	n.Kind = Kind(strings.ToLower(strings.TrimSpace(string(n.Kind))))
	switch n.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
		return n, true
	default:
		return Notice{}, false
	}
}
