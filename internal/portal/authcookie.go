package portal

import (
	"net/http"
	"sort"
	"strings"
)

const AuthCookieName = ".ASPXAUTH"

// ParseAuthCookie extracts the auth token from a raw, CRLF separated
// request header. The last header line mentioning the cookie wins and
// within it the last segment mentioning it. An empty value is no token.
func ParseAuthCookie(rawHeader string) (string, bool) {
	line := ""
	for _, l := range strings.Split(rawHeader, "\r\n") {
		if strings.Contains(l, AuthCookieName) {
			line = l
		}
	}
	if line == "" {
		return "", false
	}

	segment := ""
	for _, s := range strings.Split(line, ";") {
		if strings.Contains(s, AuthCookieName) {
			segment = s
		}
	}

	idx := strings.Index(segment, AuthCookieName+"=")
	if idx < 0 {
		return "", false
	}
	value := strings.TrimSpace(segment[idx+len(AuthCookieName)+1:])
	if value == "" {
		return "", false
	}
	return value, true
}

// RawRequestHeader renders the request line and headers of req the way
// they go on the wire, minus the body.
func RawRequestHeader(req *http.Request) string {
	if req == nil || req.URL == nil {
		return ""
	}

	var out strings.Builder
	proto := req.Proto
	if proto == "" {
		proto = "HTTP/1.1"
	}
	out.WriteString(req.Method + " " + req.URL.RequestURI() + " " + proto + "\r\n")

	host := req.Host
	if host == "" {
		host = req.URL.Host
	}
	out.WriteString("Host: " + host + "\r\n")

	keys := make([]string, 0, len(req.Header))
	for k := range req.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range req.Header[k] {
			out.WriteString(k + ": " + v + "\r\n")
		}
	}
	out.WriteString("\r\n")
	return out.String()
}
