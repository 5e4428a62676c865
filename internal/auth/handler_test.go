package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/courses/pkg/middleware"
	"github.com/nao1215/courses/pkg/pipeline"
	"github.com/nao1215/courses/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupLoginRouter はログインエンドポイントのみを持つルーターを構築する。
func setupLoginRouter(t *testing.T, secret string) *gin.Engine {
	t.Helper()

	creds, err := NewStaticCredentials(DefaultUsername, DefaultPassword)
	if err != nil {
		t.Fatalf("NewStaticCredentials()でエラーが発生: %v", err)
	}
	svc := NewService(creds, middleware.TokenConfig{Secret: secret, Expiration: time.Hour})
	h := NewHandler(svc, validation.New())

	router := gin.New()
	router.POST("/login", pipeline.Run(h.Login))
	return router
}

// TestHandler_Login はログインエンドポイントを検証する。
func TestHandler_Login(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		secret      string
		body        string
		wantStatus  int
		wantMessage string
		wantPaths   []string
	}{
		{
			name:       "正しい認証情報でトークンを返すこと",
			secret:     testSecret,
			body:       `{"username":"admin","password":"password"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:        "誤ったパスワードは401",
			secret:      testSecret,
			body:        `{"username":"admin","password":"wrong"}`,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid credentials",
		},
		{
			name:        "誤ったユーザー名は401",
			secret:      testSecret,
			body:        `{"username":"guest","password":"password"}`,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid credentials",
		},
		{
			name:        "シークレット未設定で正しい認証情報は500",
			secret:      "",
			body:        `{"username":"admin","password":"password"}`,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "JWT secret not configured",
		},
		{
			name:        "シークレット未設定で誤った認証情報は401",
			secret:      "",
			body:        `{"username":"admin","password":"wrong"}`,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid credentials",
		},
		{
			name:       "空のボディは両フィールドの必須違反",
			secret:     testSecret,
			body:       "",
			wantStatus: http.StatusBadRequest,
			wantPaths:  []string{"username", "password"},
		},
		{
			name:       "文字列でないパスワードは型違反",
			secret:     testSecret,
			body:       `{"username":"admin","password":123}`,
			wantStatus: http.StatusBadRequest,
			wantPaths:  []string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := setupLoginRouter(t, tt.secret)
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("ステータスコード = %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}

			var body struct {
				Token   string `json:"token"`
				Message string `json:"message"`
				Errors  []struct {
					Path     string `json:"path"`
					Location string `json:"location"`
				} `json:"errors"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("レスポンスボディのパースに失敗: %v", err)
			}

			if tt.wantStatus == http.StatusOK && body.Token == "" {
				t.Error("トークンが返されていない")
			}
			if tt.wantStatus != http.StatusOK && body.Token != "" {
				t.Error("失敗時にトークンが返された")
			}
			if tt.wantMessage != "" && body.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", body.Message, tt.wantMessage)
			}
			if tt.wantPaths != nil {
				if len(body.Errors) != len(tt.wantPaths) {
					t.Fatalf("違反件数 = %d, want %d", len(body.Errors), len(tt.wantPaths))
				}
				for i, p := range tt.wantPaths {
					if body.Errors[i].Path != p || body.Errors[i].Location != "body" {
						t.Errorf("errors[%d] = %+v, want body.%s", i, body.Errors[i], p)
					}
				}
			}
		})
	}
}
