package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nao1215/courses/pkg/apperr"
)

// Repository はコースの永続化を担う。
//
// 存在しないIDに対する操作はエラーではなく、FindByIDの found=false、
// Update/Deleteの false で表す。ストレージの障害のみを apperr.KindStorage として返す。
type Repository interface {
	// Create はコースを挿入し、採番されたIDを返す。course.IDは無視される。
	Create(ctx context.Context, course Course) (int64, error)
	// FindAll は全コースをストアの返す順序で返す。
	FindAll(ctx context.Context) ([]Course, error)
	// FindByID はIDに一致するコースを返す。
	FindByID(ctx context.Context, id int64) (Course, bool, error)
	// Update はID以外の全フィールドを上書きし、ちょうど1行が更新されたかを返す。
	Update(ctx context.Context, course Course) (bool, error)
	// Delete はコースを削除し、ちょうど1行が削除されたかを返す。
	Delete(ctx context.Context, id int64) (bool, error)
}

// SQLiteRepository はSQLiteをバックエンドとするRepositoryの実装。
// 全操作を起動時に準備したプリペアドステートメントで実行する。
type SQLiteRepository struct {
	insertStmt     *sql.Stmt
	selectAllStmt  *sql.Stmt
	selectByIDStmt *sql.Stmt
	updateStmt     *sql.Stmt
	deleteStmt     *sql.Stmt
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository はステートメントを準備してリポジトリを生成する。
// coursesテーブルが作成済みであること。
func NewSQLiteRepository(ctx context.Context, db *sql.DB) (*SQLiteRepository, error) {
	r := &SQLiteRepository{}
	stmts := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&r.insertStmt, `INSERT INTO courses (title, description, duration, instructor) VALUES (?, ?, ?, ?)`},
		{&r.selectAllStmt, `SELECT id, title, description, duration, instructor FROM courses`},
		{&r.selectByIDStmt, `SELECT id, title, description, duration, instructor FROM courses WHERE id = ?`},
		{&r.updateStmt, `UPDATE courses SET title = ?, description = ?, duration = ?, instructor = ? WHERE id = ?`},
		{&r.deleteStmt, `DELETE FROM courses WHERE id = ?`},
	}
	for _, s := range stmts {
		stmt, err := db.PrepareContext(ctx, s.query)
		if err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("ステートメントの準備に失敗: %w", err)
		}
		*s.dst = stmt
	}
	return r, nil
}

// Close は準備済みのステートメントを解放する。
func (r *SQLiteRepository) Close() error {
	var errs []error
	for _, stmt := range []*sql.Stmt{r.insertStmt, r.selectAllStmt, r.selectByIDStmt, r.updateStmt, r.deleteStmt} {
		if stmt != nil {
			errs = append(errs, stmt.Close())
		}
	}
	return errors.Join(errs...)
}

// Create はコースを挿入し、採番されたIDを返す。
func (r *SQLiteRepository) Create(ctx context.Context, course Course) (int64, error) {
	res, err := r.insertStmt.ExecContext(ctx, course.Title, nullString(course.Description), course.Duration, course.Instructor)
	if err != nil {
		return 0, apperr.Storage(fmt.Errorf("コースの作成に失敗: %w", err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperr.Storage(fmt.Errorf("採番IDの取得に失敗: %w", err))
	}
	return id, nil
}

// FindAll は全コースを返す。0件の場合は空のスライスを返す。
func (r *SQLiteRepository) FindAll(ctx context.Context) ([]Course, error) {
	rows, err := r.selectAllStmt.QueryContext(ctx)
	if err != nil {
		return nil, apperr.Storage(fmt.Errorf("コース一覧の取得に失敗: %w", err))
	}
	defer func() { _ = rows.Close() }()

	courses := make([]Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, apperr.Storage(fmt.Errorf("コース行の読み取りに失敗: %w", err))
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(fmt.Errorf("コース一覧の走査に失敗: %w", err))
	}
	return courses, nil
}

// FindByID はIDに一致するコースを返す。存在しない場合は found=false を返す。
func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (Course, bool, error) {
	course, err := scanCourse(r.selectByIDStmt.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Course{}, false, nil
	}
	if err != nil {
		return Course{}, false, apperr.Storage(fmt.Errorf("コースの取得に失敗: id=%d: %w", id, err))
	}
	return course, true, nil
}

// Update はコースを上書きする。
// SQLiteは値が変わらない更新も1行として数えるため、false は「IDが存在しない」を意味する。
func (r *SQLiteRepository) Update(ctx context.Context, course Course) (bool, error) {
	res, err := r.updateStmt.ExecContext(ctx, course.Title, nullString(course.Description), course.Duration, course.Instructor, course.ID)
	if err != nil {
		return false, apperr.Storage(fmt.Errorf("コースの更新に失敗: id=%d: %w", course.ID, err))
	}
	return exactlyOne(res)
}

// Delete はコースを削除する。
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.deleteStmt.ExecContext(ctx, id)
	if err != nil {
		return false, apperr.Storage(fmt.Errorf("コースの削除に失敗: id=%d: %w", id, err))
	}
	return exactlyOne(res)
}

// rowScanner は *sql.Row と *sql.Rows の共通インターフェース。
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCourse は1行をCourseに変換する。
func scanCourse(row rowScanner) (Course, error) {
	var (
		course      Course
		description sql.NullString
	)
	if err := row.Scan(&course.ID, &course.Title, &description, &course.Duration, &course.Instructor); err != nil {
		return Course{}, err
	}
	if description.Valid {
		course.Description = &description.String
	}
	return course, nil
}

// exactlyOne は影響行数が1かどうかを返す。
func exactlyOne(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperr.Storage(fmt.Errorf("影響行数の取得に失敗: %w", err))
	}
	return n == 1, nil
}

// nullString は未指定の説明をNULLとして保存するための変換。
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
