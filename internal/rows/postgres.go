package rows

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads rows from an ops-database table instead of an
// exported CSV. The table needs (product_name, token_symbol, address,
// coingecko_id) columns; symbol and coingecko_id may be NULL.
type PostgresSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSource connects to Postgres and verifies the connection.
func NewPostgresSource(ctx context.Context, dsn, table string) (*PostgresSource, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresSource{pool: pool, table: table}, nil
}

// Rows loads the whole table ordered by primary key, so re-runs see the
// same sequence.
func (s *PostgresSource) Rows(ctx context.Context) ([]Row, error) {
	query := fmt.Sprintf(
		`SELECT product_name, COALESCE(token_symbol, ''), address, COALESCE(coingecko_id, '')
		 FROM %s ORDER BY id`,
		pgx.Identifier{s.table}.Sanitize(),
	)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	var out []Row
	line := 0
	for rows.Next() {
		line++
		row := Row{Line: line}
		if err := rows.Scan(&row.Name, &row.Symbol, &row.Address, &row.CoingeckoID); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", line, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.table, err)
	}
	return out, nil
}

// Close releases the connection pool.
func (s *PostgresSource) Close() {
	s.pool.Close()
}
