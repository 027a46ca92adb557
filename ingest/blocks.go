package ingest

import "strings"

// balancedBlock returns the text between the brace at open and its
// matching close brace, exclusive. It tracks string literals so braces
// inside quotes do not unbalance the scan. Returns false when the block
// never closes.
func balancedBlock(s string, open int) (body string, end int, ok bool) {
	if open >= len(s) || s[open] != '{' {
		return "", 0, false
	}
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[open+1 : i], i, true
			}
		}
	}
	return "", 0, false
}

// topLevelEntries splits an object-literal body into its top-level
// `key: value` entries, keeping nested braces, brackets and parens
// together. Best effort: an entry the splitter cannot shape as key/value
// is dropped.
func topLevelEntries(body string) [][2]string {
	var entries [][2]string
	depth := 0
	var quote byte
	start := 0
	flush := func(end int) {
		raw := strings.TrimSpace(body[start:end])
		start = end + 1
		if raw == "" {
			return
		}
		colon := -1
		d := 0
		var q byte
		for i := 0; i < len(raw); i++ {
			c := raw[i]
			if q != 0 {
				if c == '\\' {
					i++
				} else if c == q {
					q = 0
				}
				continue
			}
			switch c {
			case '\'', '"', '`':
				q = c
			case '{', '[', '(':
				d++
			case '}', ']', ')':
				d--
			case ':':
				if d == 0 {
					colon = i
				}
			}
			if colon >= 0 {
				break
			}
		}
		if colon < 0 {
			return
		}
		key := strings.Trim(strings.TrimSpace(raw[:colon]), `'"`)
		val := strings.TrimSpace(raw[colon+1:])
		if key != "" && val != "" {
			entries = append(entries, [2]string{key, val})
		}
	}
	for i := 0; i < len(body); i++ {
		c := body[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		case ',':
			if depth == 0 {
				flush(i)
			}
		}
	}
	flush(len(body))
	return entries
}
