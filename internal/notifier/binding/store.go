package binding

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/radieske/betai-backend/internal/shared/db"
)

// Store lê os chat_ids vinculados no banco de bindings (separado do banco principal).
// Cada leitura abre e fecha a própria conexão.
type Store struct {
	DSN string
}

func NewStore(dsn string) *Store { return &Store{DSN: dsn} }

// ChatIDs retorna os chats vinculados, sem duplicatas, na ordem do banco.
// DSN vazio retorna db.ErrNotConfigured.
func (s *Store) ChatIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := db.WithConn(ctx, s.DSN, func(conn *sql.DB) error {
		var qerr error
		ids, qerr = queryChatIDs(ctx, conn)
		return qerr
	})
	if err != nil {
		return nil, fmt.Errorf("read chat bindings: %w", err)
	}
	return ids, nil
}

func queryChatIDs(ctx context.Context, conn *sql.DB) ([]int64, error) {
	const q = `
		SELECT chat_id
		FROM telegram_bindings
		WHERE chat_id IS NOT NULL
	`
	rows, err := conn.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dedupe(out), nil
}

// dedupe remove chat_ids repetidos mantendo a primeira ocorrência
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
