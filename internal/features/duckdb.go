package features

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// LoadDuckDB reads a feature table through an in-memory DuckDB connection.
// Parquet files are read with read_parquet, everything else with
// read_csv_auto (delimiter and gzip are sniffed by DuckDB; the quote is
// pinned to '"' so labels like 3'UTR survive). Every cell is returned as
// text; SQL NULL becomes "NA".
func LoadDuckDB(path string) (*Table, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(duckDBQuery(path))
	if err != nil {
		return nil, fmt.Errorf("query feature table: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("feature table columns: %w", err)
	}
	t, err := NewTable(cols...)
	if err != nil {
		return nil, err
	}

	vals := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	cells := make([]string, len(cols))

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan feature row: %w", err)
		}
		for i, v := range vals {
			if v.Valid {
				cells[i] = v.String
			} else {
				cells[i] = "NA"
			}
		}
		if err := t.AddRow(cells...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("feature table rows: %w", err)
	}

	return t, nil
}

// duckDBQuery builds the table-function query for path. CSV columns are read
// as VARCHAR; Parquet values are converted to text on scan.
func duckDBQuery(path string) string {
	quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"

	fn := fmt.Sprintf(`read_csv_auto(%s, header=true, quote='"', all_varchar=true)`, quoted)
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		fn = fmt.Sprintf("read_parquet(%s)", quoted)
	}
	return "SELECT * FROM " + fn
}
