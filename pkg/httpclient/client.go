package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/nao1215/courses/pkg/apperr"
)

// Client はコースAPIのHTTPクライアント。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// baseURL は接続先のベースURL（例: "http://localhost:3000/api"）。
	baseURL string
}

// Course はAPIが返すコース。
type Course struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Duration    int64   `json:"duration"`
	Instructor  string  `json:"instructor"`
}

// CourseInput はコースの作成・更新で送信するフィールド。
type CourseInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Duration    int64   `json:"duration"`
	Instructor  string  `json:"instructor"`
}

// ResponseError は2xx以外のレスポンス。
type ResponseError struct {
	// StatusCode はHTTPステータスコード。
	StatusCode int
	// Message はエラーレスポンスのmessage。
	Message string `json:"message"`
	// Violations は検証エラーの一覧。
	Violations []apperr.Violation `json:"errors"`
}

// Error は error インターフェースを実装する。
func (e *ResponseError) Error() string {
	if len(e.Violations) > 0 {
		return fmt.Sprintf("HTTPエラー: status=%d, violations=%d", e.StatusCode, len(e.Violations))
	}
	return fmt.Sprintf("HTTPエラー: status=%d, message=%s", e.StatusCode, e.Message)
}

// New は新しいクライアントを生成する。
func New(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

// Login は認証情報を送信してトークンを取得する。
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/login", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// CreateCourse はコースを作成し、割り当てられたIDを含むコースを返す。
func (c *Client) CreateCourse(ctx context.Context, in CourseInput) (Course, error) {
	var course Course
	err := c.doJSON(ctx, http.MethodPost, "/courses", in, &course)
	return course, err
}

// ListCourses は全コースを返す。
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	err := c.doJSON(ctx, http.MethodGet, "/courses", nil, &courses)
	return courses, err
}

// GetCourse は指定IDのコースを返す。
func (c *Client) GetCourse(ctx context.Context, id int64) (Course, error) {
	var course Course
	err := c.doJSON(ctx, http.MethodGet, coursePath(id), nil, &course)
	return course, err
}

// UpdateCourse は指定IDのコースを置き換える。
func (c *Client) UpdateCourse(ctx context.Context, id int64, in CourseInput) (Course, error) {
	var course Course
	err := c.doJSON(ctx, http.MethodPut, coursePath(id), in, &course)
	return course, err
}

// DeleteCourse は指定IDのコースを削除する。
func (c *Client) DeleteCourse(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, coursePath(id), nil, nil)
}

func coursePath(id int64) string {
	return "/courses/" + strconv.FormatInt(id, 10)
}

// doJSON はJSON形式のHTTPリクエストを実行する共通処理。
func (c *Client) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("リクエストボディのシリアライズに失敗: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// コンテキストのトークンをBearerとして送る
	if token, ok := ctx.Value(contextKeyToken).(string); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの送信に失敗: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respErr := &ResponseError{StatusCode: resp.StatusCode}
		respBody, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(respBody, respErr); err != nil {
			respErr.Message = string(respBody)
		}
		return respErr
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("レスポンスボディのデシリアライズに失敗: %w", err)
		}
	}
	return nil
}

// contextKey はコンテキストキーの型。
type contextKey string

// contextKeyToken はコンテキストにトークンを格納するためのキー。
const contextKeyToken contextKey = "token"

// WithToken はコンテキストにトークンを設定する。
// 以降のリクエストはAuthorizationヘッダーにこのトークンを付与する。
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextKeyToken, token)
}
