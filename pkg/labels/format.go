package labels

import "regexp"

// androidVerb matches `%1$s`, `%2$d`, `%1$-5d`, `%3$.2f` style positional
// verbs.
var androidVerb = regexp.MustCompile(`%(\d+)\$([-+# 0]*)(\d*(?:\.\d+)?)([a-zA-Z])`)

// NormalizeFormat rewrites Android/Java positional verbs into Go's explicit
// argument index notation. Messages that already use Go verbs are returned
// unchanged.
//
// The Java `s` conversion formats any argument, so it maps to Go's `v`.
func NormalizeFormat(message string) string {
	return androidVerb.ReplaceAllStringFunc(message, func(verb string) string {
		m := androidVerb.FindStringSubmatch(verb)
		conv := m[4]
		if conv == "s" {
			conv = "v"
		}
		return "%" + m[2] + m[3] + "[" + m[1] + "]" + conv
	})
}

// HasVerb reports whether message contains at least one formatting verb.
// Escaped `%%` sequences do not count.
func HasVerb(message string) bool {
	for i := 0; i < len(message); i++ {
		if message[i] != '%' {
			continue
		}
		if i+1 < len(message) && message[i+1] == '%' {
			i++
			continue
		}
		return true
	}
	return false
}
