package request

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Int reads an optional integer query parameter. A missing parameter is 0.
func Int(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}

	return v, nil
}

// IntList reads a comma separated list of integers, e.g. pids=1,2,3.
func IntList(r *http.Request, name string) ([]int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s", name)
		}
		out = append(out, v)
	}

	return out, nil
}

func Bool(r *http.Request, name string) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(name))) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
