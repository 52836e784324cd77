package models

// Row is one spreadsheet row keyed by header column name. All values are the
// raw strings read from the sheet.
type Row map[string]string

// Get returns the value for a column, or "" when the column is absent.
func (r Row) Get(name string) string {
	return r[name]
}

// Table is a point-in-time snapshot of one sheet: the header row in sheet
// order and the data rows beneath it.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// HasColumn reports whether the header row contains the named column.
func (t Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// HasColumns reports whether every named column is present.
func (t Table) HasColumns(names ...string) bool {
	return len(t.MissingColumns(names...)) == 0
}

// MissingColumns returns the subset of names absent from the header row,
// preserving the order asked for.
func (t Table) MissingColumns(names ...string) []string {
	present := make(map[string]struct{}, len(t.Headers))
	for _, h := range t.Headers {
		present[h] = struct{}{}
	}

	var missing []string
	for _, name := range names {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
