package llm

import (
	neturl "net/url"
	"strings"
)

// rewritePath trims raw and applies fix to its URL path. Values that are not absolute URLs only
// go through fix when fixBare is set.
func rewritePath(raw string, fixBare bool, fix func(path string) string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := neturl.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		if fixBare {
			return fix(base)
		}
		return base
	}
	u.Path = fix(strings.TrimRight(u.Path, "/"))
	return strings.TrimRight(u.String(), "/")
}

// normalizeOpenAIBaseURL makes sure an SDK base URL ends in /v1.
func normalizeOpenAIBaseURL(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return rewritePath(raw, false, func(path string) string {
		if strings.HasSuffix(path, "/v1") {
			return path
		}
		return path + "/v1"
	})
}

// normalizeCompatibleEndpoint strips a trailing /v1 since the client appends the full route itself.
func normalizeCompatibleEndpoint(raw, fallback string) string {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	return rewritePath(raw, true, func(path string) string {
		return strings.TrimSuffix(path, "/v1")
	})
}
