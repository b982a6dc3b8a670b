package dictsource

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	_ "github.com/lib/pq"

	symspell "kosymspell/pkg"
)

const (
	DefaultUnigramQuery = `SELECT term, count FROM kosymspell_unigrams`
	DefaultBigramQuery  = `SELECT term1, term2, count FROM kosymspell_bigrams`
)

// OpenPostgres connects to a PostgreSQL database and checks the connection.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// PostgresSource streams dictionary rows from SQL queries.
type PostgresSource struct {
	DB *sql.DB
	// UnigramQuery selects (term, count) rows.
	UnigramQuery string
	// BigramQuery selects (term1, term2, count) rows. Empty disables bigrams.
	BigramQuery string
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{DB: db, UnigramQuery: DefaultUnigramQuery, BigramQuery: DefaultBigramQuery}
}

var _ Source = (*PostgresSource)(nil)

func (ps *PostgresSource) Unigrams(ctx context.Context) (RowReadCloser, error) {
	rows, err := ps.DB.QueryContext(ctx, ps.UnigramQuery)
	if err != nil {
		return nil, fmt.Errorf("querying unigrams: %w", err)
	}
	return &sqlRowReader{rows: rows}, nil
}

func (ps *PostgresSource) Bigrams(ctx context.Context) (BigramReadCloser, error) {
	if ps.BigramQuery == "" {
		return nil, nil
	}
	rows, err := ps.DB.QueryContext(ctx, ps.BigramQuery)
	if err != nil {
		return nil, fmt.Errorf("querying bigrams: %w", err)
	}
	return &sqlBigramReader{rows: rows}, nil
}

// rowScanner is the part of *sql.Rows the readers use.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type sqlRowReader struct {
	rows rowScanner
	line int
}

func (r *sqlRowReader) Next() (string, int64, error) {
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return "", 0, err
		}
		return "", 0, io.EOF
	}
	r.line++
	var term sql.NullString
	var count sql.NullInt64
	if err := r.rows.Scan(&term, &count); err != nil {
		return "", 0, fmt.Errorf("%w: row %d: %v", symspell.ErrMalformedRow, r.line, err)
	}
	if !term.Valid || !count.Valid {
		return "", 0, fmt.Errorf("%w: row %d has NULL columns", symspell.ErrMalformedRow, r.line)
	}
	return term.String, count.Int64, nil
}

func (r *sqlRowReader) Close() error { return r.rows.Close() }

type sqlBigramReader struct {
	rows rowScanner
	line int
}

func (r *sqlBigramReader) Next() (string, string, int64, error) {
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return "", "", 0, err
		}
		return "", "", 0, io.EOF
	}
	r.line++
	var term1, term2 sql.NullString
	var count sql.NullInt64
	if err := r.rows.Scan(&term1, &term2, &count); err != nil {
		return "", "", 0, fmt.Errorf("%w: row %d: %v", symspell.ErrMalformedRow, r.line, err)
	}
	if !term1.Valid || !term2.Valid || !count.Valid {
		return "", "", 0, fmt.Errorf("%w: row %d has NULL columns", symspell.ErrMalformedRow, r.line)
	}
	return term1.String, term2.String, count.Int64, nil
}

func (r *sqlBigramReader) Close() error { return r.rows.Close() }
