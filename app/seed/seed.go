package seed

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"

	"go.uber.org/zap"
)

// Run executes every *.sql file in dir in lexical order. Each file runs in
// its own transaction; the first failing file stops the run.
func Run(ctx context.Context, db *sql.DB, dir fs.FS, log *zap.Logger) error {
	files, err := fs.Glob(dir, "*.sql")
	if err != nil {
		return fmt.Errorf("failed to list sql files: %w", err)
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := fs.ReadFile(dir, name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err := execFile(ctx, db, string(content)); err != nil {
			return fmt.Errorf("failed to execute %s: %w", name, err)
		}
		log.Info("executed sql file", zap.String("file", name))
	}

	log.Info("seed finished", zap.Int("files", len(files)))
	return nil
}

func execFile(ctx context.Context, db *sql.DB, query string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
