package utak

import "strings"

// Row: one data line of the export, keyed by lower-cased header names.
type Row map[string]string

// ParseDiagnostics: what the parser saw and what it threw away. Malformed
// rows are dropped rather than surfaced as errors so a single bad line cannot
// block a whole import, but the count is kept so nothing vanishes silently.
type ParseDiagnostics struct {
	TotalLines  int `json:"total_lines"`  // non-blank lines including the header
	DataRows    int `json:"data_rows"`    // rows that made it into the result
	DroppedRows int `json:"dropped_rows"` // column-count mismatches
}

// ParseCSV converts the raw text of a Utak export into ordered Row records.
// The first non-blank line is the header; header cells are unquoted and
// lower-cased to become keys. Data lines are split with a quote-aware scanner
// so commas inside quoted fields survive. Lines whose field count does not
// match the header are dropped and counted. Never fails.
func ParseCSV(text string) ([]Row, ParseDiagnostics) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	diag := ParseDiagnostics{TotalLines: len(lines)}
	if len(lines) < 2 {
		return nil, diag
	}

	headerFields := splitCSVLine(lines[0])
	headers := make([]string, len(headerFields))
	for i, h := range headerFields {
		headers[i] = strings.ToLower(strings.Trim(h, `"`))
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitCSVLine(line)
		if len(fields) != len(headers) {
			diag.DroppedRows++
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			row[h] = fields[i]
		}
		rows = append(rows, row)
	}

	diag.DataRows = len(rows)
	return rows, diag
}

// splitCSVLine splits one line on commas, except inside double-quoted fields.
// Quote characters toggle the in-quotes state and are not emitted; fields are
// trimmed of surrounding whitespace.
func splitCSVLine(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(field.String()))
	return fields
}
