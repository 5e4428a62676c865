package course

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/nao1215/courses/pkg/migration"
	_ "modernc.org/sqlite"
)

// migrations はcoursesテーブルのスキーマ定義。
//
//go:embed migrations/*.sql
var migrations embed.FS

// busyTimeoutPragma は書き込みロック待ちの上限を全コネクションに設定するDSNパラメータ。
const busyTimeoutPragma = "_pragma=busy_timeout(5000)"

// Open はSQLiteデータベースを開き、スキーマを適用する。
// テーブルが既に存在する場合は何もしない。
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path + "?" + busyTimeoutPragma
	if strings.Contains(path, "?") {
		dsn = path + "&" + busyTimeoutPragma
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("データベースへの疎通確認に失敗: %w", err)
	}

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// initSchema はマイグレーションを適用する。
func initSchema(ctx context.Context, db *sql.DB) error {
	if _, err := migration.Run(ctx, db, migrations, "migrations"); err != nil {
		return fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}
	return nil
}
