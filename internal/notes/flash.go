package notes

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// One-shot status messages carried across the POST-redirect-GET cycle in
// a cookie. Read and cleared on the next index render.

const flashCookie = "flash"

const (
	flashSuccess = "success"
	flashError   = "error"
)

func setFlash(w http.ResponseWriter, kind, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString([]byte(kind + "|" + msg)),
		Path:     "/",
		HttpOnly: true,
	})
}

func popFlash(w http.ResponseWriter, r *http.Request) (kind, msg string) {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return "", ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	raw, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return "", ""
	}
	kind, msg, ok := strings.Cut(string(raw), "|")
	if !ok {
		return "", ""
	}
	return kind, msg
}
