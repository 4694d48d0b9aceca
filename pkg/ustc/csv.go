package ustc

import "strings"

// splitRow tokenizes one comma separated line. Fields may be wrapped in
// double quotes, a doubled quote inside a quoted field stands for one literal
// quote and commas inside quoted fields do not split. Rows never span lines
// in the crawler export, an unterminated quote simply runs to the end of the
// line.
func splitRow(line string) []string {
	fields := []string{}
	sb := &strings.Builder{}
	inQuotes := false
	for pos := 0; pos < len(line); pos++ {
		char := line[pos]
		if inQuotes {
			if char == '"' {
				if pos+1 < len(line) && line[pos+1] == '"' {
					sb.WriteByte('"')
					pos++
					continue
				}
				inQuotes = false
				continue
			}
			sb.WriteByte(char)
			continue
		}
		switch char {
		case '"':
			inQuotes = true
		case ',':
			fields = append(fields, sb.String())
			sb.Reset()
		default:
			sb.WriteByte(char)
		}
	}
	fields = append(fields, sb.String())
	return fields
}

// splitLines breaks raw input into its non blank lines, tolerating CRLF
// endings.
func splitLines(raw string) []string {
	lines := []string{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
