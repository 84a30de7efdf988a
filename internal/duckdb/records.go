package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-ann/internal/ann"
)

// Row is a stored record with the variant it belongs to.
type Row struct {
	Chrom  string
	Pos    int64
	Ref    string
	Alt    string
	Record ann.Record
}

// EffectCount is the number of stored records with a given effect term.
type EffectCount struct {
	Effect string
	Impact string
	Count  int64
}

// WriteRecords batch-inserts rows into DuckDB using the Appender API.
func (s *Store) WriteRecords(rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	fields := ann.Fields()
	values := make([]driver.Value, 4+len(fields))
	for _, r := range rows {
		values[0], values[1], values[2], values[3] = r.Chrom, r.Pos, r.Ref, r.Alt
		for i, f := range fields {
			if v, ok := r.Record.Get(f); ok {
				values[4+i] = v
			} else {
				values[4+i] = nil
			}
		}
		if err := appender.AppendRow(values...); err != nil {
			return fmt.Errorf("append record: %w", err)
		}
	}

	return appender.Flush()
}

// Clear removes all stored records.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM " + table)
	return err
}

// Count returns the number of stored records.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT count(*) FROM " + table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// SearchByGene returns stored records whose gene_name or gene_id equals gene,
// in insertion order.
func (s *Store) SearchByGene(gene string) ([]Row, error) {
	rows, err := s.db.Query(selectRows()+` WHERE gene_name=? OR gene_id=?`, gene, gene)
	if err != nil {
		return nil, fmt.Errorf("query by gene: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// SearchByVariant returns stored records for one variant.
func (s *Store) SearchByVariant(chrom string, pos int64, ref, alt string) ([]Row, error) {
	rows, err := s.db.Query(selectRows()+` WHERE chrom=? AND pos=? AND ref=? AND alt=?`,
		chrom, pos, ref, alt)
	if err != nil {
		return nil, fmt.Errorf("query variant: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// EffectCounts aggregates stored records by effect and impact, most
// frequent first.
func (s *Store) EffectCounts() ([]EffectCount, error) {
	rows, err := s.db.Query(`SELECT coalesce(effect, ''), coalesce(impact, ''), count(*) AS n
		FROM ` + table + `
		GROUP BY 1, 2
		ORDER BY n DESC, 1, 2`)
	if err != nil {
		return nil, fmt.Errorf("query effect counts: %w", err)
	}
	defer rows.Close()

	var counts []EffectCount
	for rows.Next() {
		var c EffectCount
		if err := rows.Scan(&c.Effect, &c.Impact, &c.Count); err != nil {
			return nil, fmt.Errorf("scan effect count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate effect counts: %w", err)
	}
	return counts, nil
}

func selectRows() string {
	return "SELECT chrom, pos, ref, alt, " + strings.Join(fieldColumns(), ", ") +
		" FROM " + table
}

// scanRows scans rows into Row slices; NULL columns become absent fields.
func scanRows(rows *sql.Rows) ([]Row, error) {
	fields := ann.Fields()
	var out []Row
	for rows.Next() {
		var r Row
		vals := make([]sql.NullString, len(fields))
		dest := []any{&r.Chrom, &r.Pos, &r.Ref, &r.Alt}
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		r.Record = make(ann.Record, len(fields))
		for i, f := range fields {
			if vals[i].Valid {
				r.Record[f] = vals[i].String
			}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}
