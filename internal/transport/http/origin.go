package http

import (
	"net/http"
	"net/url"
	"strings"
)

// originURL builds an absolute URL for target on the request's own origin.
// Forwarded headers are only honored when the gateway sits behind a trusted proxy.
func originURL(r *http.Request, target string, trustForwarded bool) string {
	host := requestHost(r, trustForwarded)
	if host == "" {
		return target
	}
	u := url.URL{Scheme: requestScheme(r, trustForwarded), Host: host, Path: target}
	return u.String()
}

func requestScheme(r *http.Request, trustForwarded bool) string {
	if trustForwarded {
		proto := strings.ToLower(strings.TrimSpace(firstValue(r.Header.Get("X-Forwarded-Proto"))))
		if proto == "http" || proto == "https" {
			return proto
		}
	}
	if r.URL != nil {
		if scheme := strings.ToLower(r.URL.Scheme); scheme == "http" || scheme == "https" {
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func requestHost(r *http.Request, trustForwarded bool) string {
	if trustForwarded {
		if host := strings.TrimSpace(firstValue(r.Header.Get("X-Forwarded-Host"))); host != "" {
			return host
		}
	}
	if r.Host != "" {
		return r.Host
	}
	if r.URL != nil {
		return r.URL.Host
	}
	return ""
}

func isHTTPS(r *http.Request, trustForwarded bool) bool {
	return requestScheme(r, trustForwarded) == "https"
}

// firstValue returns the left-most entry of a comma separated header.
func firstValue(v string) string {
	first, _, _ := strings.Cut(v, ",")
	return first
}
