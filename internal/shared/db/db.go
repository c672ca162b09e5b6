package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// ErrNotConfigured indica DSN vazio para um banco opcional
var ErrNotConfigured = errors.New("postgres dsn not configured")

// OpenPostgres cria o pool sem conectar; a primeira conexão sai na primeira query
func OpenPostgres(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, ErrNotConfigured
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// ConnectPostgres abre o pool e valida com ping
func ConnectPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := OpenPostgres(dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// WithConn abre uma conexão de vida curta, executa fn e fecha em qualquer saída.
// Usado para bancos secundários que não devem manter pool aberto.
func WithConn(ctx context.Context, dsn string, fn func(*sql.DB) error) (err error) {
	db, err := ConnectPostgres(ctx, dsn)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close postgres: %w", cerr)
		}
	}()
	return fn(db)
}
