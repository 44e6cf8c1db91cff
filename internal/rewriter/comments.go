package rewriter

// stripComments blanks line comments ("\* ... " to end of line) and
// block comments ("(* ... *)", not nested) in place, leaving every
// other byte — crucially, every newline — untouched. This keeps line
// and column numbers identical between the original and stripped text,
// satisfying §4.3's "per-line erasure" requirement for multi-line
// block comments without needing a separate offset map.
func stripComments(src string) string {
	out := []byte(src)
	n := len(out)
	i := 0
	for i < n {
		switch {
		case out[i] == '\\' && i+1 < n && out[i+1] == '*':
			for i < n && out[i] != '\n' {
				out[i] = ' '
				i++
			}
		case out[i] == '"':
			// skip string literals verbatim so `\*` or `(*` inside a
			// quoted string is not mistaken for a comment marker.
			out[i] = '"'
			i++
			for i < n && out[i] != '"' {
				if out[i] == '\\' && i+1 < n {
					i += 2
					continue
				}
				i++
			}
			if i < n {
				i++
			}
		case out[i] == '(' && i+1 < n && out[i+1] == '*':
			out[i] = ' '
			out[i+1] = ' '
			i += 2
			for i+1 < n && !(out[i] == '*' && out[i+1] == ')') {
				if out[i] != '\n' {
					out[i] = ' '
				}
				i++
			}
			if i+1 < n {
				out[i] = ' '
				out[i+1] = ' '
				i += 2
			}
		default:
			i++
		}
	}
	return string(out)
}
