package geo

import (
	"net/http"
	"strings"
)

// CountryHeaders lists proxy-supplied country headers in priority order:
// edge proxy, hosting platform, then a generic code header.
var CountryHeaders = []string{
	"Cf-Ipcountry",
	"X-Vercel-Ip-Country",
	"X-Country-Code",
}

// placeholderCodes are values proxies send when they could not resolve a
// country (XX) or saw Tor traffic (T1).
var placeholderCodes = map[string]struct{}{
	"XX": {},
	"T1": {},
}

// HeadersFromRequest copies the country headers present on h, keyed by
// canonical header name.
func HeadersFromRequest(h http.Header) map[string]string {
	out := make(map[string]string, len(CountryHeaders))
	for _, name := range CountryHeaders {
		if v := strings.TrimSpace(h.Get(name)); v != "" {
			out[name] = v
		}
	}
	return out
}

// CountryFromHeaders returns the first usable country code in priority order.
func CountryFromHeaders(headers map[string]string) string {
	for _, name := range CountryHeaders {
		v := strings.TrimSpace(headers[name])
		if v == "" {
			continue
		}
		if _, placeholder := placeholderCodes[strings.ToUpper(v)]; placeholder {
			continue
		}
		return v
	}
	return ""
}
