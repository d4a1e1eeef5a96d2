package user

// Record is one row of the users table keyed by column name. The table's
// columns are owned by the database schema, so no fields are declared here.
type Record map[string]any

// NewRecord builds a Record from scanned column values, converting raw byte
// slices to strings so they encode as text rather than base64.
func NewRecord(row map[string]any) Record {
	rec := make(Record, len(row))
	for col, val := range row {
		if b, ok := val.([]byte); ok {
			rec[col] = string(b)
			continue
		}
		rec[col] = val
	}
	return rec
}

// Columns returns the column names present in the record.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r))
	for col := range r {
		cols = append(cols, col)
	}
	return cols
}
