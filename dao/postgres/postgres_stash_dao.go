package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"buildings-server/dao"
)

const findArtifactSQL = `
SELECT content FROM stash_artifacts
WHERE account = $1 AND project = $2 AND kind = $3 AND path = $4`

const saveArtifactSQL = `
INSERT INTO stash_artifacts (account, project, kind, path, content)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (account, project, kind, path)
DO UPDATE SET content = EXCLUDED.content, created_at = now()`

// PostgresStashDAO keeps stashed artifacts in the stash_artifacts table.
type PostgresStashDAO struct {
	db *sqlx.DB
}

func NewPostgresStashDAO(db *sqlx.DB) *PostgresStashDAO {
	return &PostgresStashDAO{db: db}
}

func (d *PostgresStashDAO) Find(ctx context.Context, account, project, kind, path string) ([]byte, error) {
	var content []byte
	err := d.db.GetContext(ctx, &content, findArtifactSQL, account, project, kind, path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dao.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("[PostgresStashDAO] failed to find %s: %w", path, err)
	}
	return content, nil
}

func (d *PostgresStashDAO) Save(ctx context.Context, account, project, kind, path string, content []byte) error {
	if _, err := d.db.ExecContext(ctx, saveArtifactSQL, account, project, kind, path, content); err != nil {
		return fmt.Errorf("[PostgresStashDAO] failed to save %s: %w", path, err)
	}
	return nil
}
