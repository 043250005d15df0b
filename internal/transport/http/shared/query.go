package shared

import (
	"net/http"
	"strconv"
	"strings"
)

// QueryBool reads a boolean query parameter. A missing value yields fallback;
// a malformed one is reported to v.
func QueryBool(r *http.Request, v *Validator, name string, fallback bool) bool {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		v.Add(name, "must be true or false")
		return fallback
	}
	return parsed
}

func QueryInt(r *http.Request, v *Validator, name string, fallback, lo, hi int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < lo || parsed > hi {
		v.Add(name, "must be a whole number between "+strconv.Itoa(lo)+" and "+strconv.Itoa(hi))
		return fallback
	}
	return parsed
}
