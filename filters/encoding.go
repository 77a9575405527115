// Package filters compiles the compact filter/sort token strings used by the
// list views into typed filter structs and gorm query clauses. Encoding and decoding
// are exact inverses: Decode(Encode(f)) == f for every supported filter.
package filters

import "strings"

// placeholder marks an omitted filter inside the ordered token list. It is
// trimmed away when the final string is assembled.
const placeholder = "%"

// joinTokens assembles the ordered token list into the wire string, dropping
// placeholder tokens. An all-empty list yields "", the home/no-filter route.
func joinTokens(tokens []string) string {
	s := strings.Join(tokens, "&")
	if strings.HasPrefix(s, placeholder+"&") {
		s = s[2:]
	}
	s = strings.TrimSuffix(s, "&")
	s = strings.ReplaceAll(s, placeholder+"&", "")
	s = strings.TrimSuffix(s, "&"+placeholder)
	s = strings.ReplaceAll(s, "/", "-")
	if s == placeholder {
		return ""
	}
	return s
}

// splitTokens breaks a wire string into key=value pairs. "" and the bare
// placeholder both mean "no filters".
func splitTokens(s string) map[string]string {
	out := map[string]string{}
	if s == "" || s == placeholder {
		return out
	}
	for _, item := range strings.Split(s, "&") {
		key, value, found := strings.Cut(item, "=")
		if found && key != "" {
			out[key] = value
		}
	}
	return out
}
