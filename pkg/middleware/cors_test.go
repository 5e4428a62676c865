package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// TestCORS はCORSミドルウェアを検証する。
func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		allowed       []string
		method        string
		origin        string
		wantStatus    int
		wantOrigin    string
		wantReachable bool
	}{
		{
			name:          "許可されたオリジンにCORSヘッダーが設定されること",
			allowed:       []string{"http://localhost:3000", "https://example.com"},
			method:        http.MethodGet,
			origin:        "http://localhost:3000",
			wantStatus:    http.StatusOK,
			wantOrigin:    "http://localhost:3000",
			wantReachable: true,
		},
		{
			name:          "許可リストの2番目のオリジンでも設定されること",
			allowed:       []string{"http://localhost:3000", "https://example.com"},
			method:        http.MethodGet,
			origin:        "https://example.com",
			wantStatus:    http.StatusOK,
			wantOrigin:    "https://example.com",
			wantReachable: true,
		},
		{
			name:          "許可されていないオリジンには設定されないこと",
			allowed:       []string{"http://localhost:3000"},
			method:        http.MethodGet,
			origin:        "https://evil.com",
			wantStatus:    http.StatusOK,
			wantReachable: true,
		},
		{
			name:          "ワイルドカード指定では任意のオリジンに設定されること",
			allowed:       []string{"*"},
			method:        http.MethodGet,
			origin:        "https://anywhere.example",
			wantStatus:    http.StatusOK,
			wantOrigin:    "https://anywhere.example",
			wantReachable: true,
		},
		{
			name:          "ワイルドカード指定でもOriginヘッダーが無ければ設定されないこと",
			allowed:       []string{"*"},
			method:        http.MethodGet,
			wantStatus:    http.StatusOK,
			wantReachable: true,
		},
		{
			name:          "空のオリジンリストでは設定されないこと",
			allowed:       nil,
			method:        http.MethodGet,
			origin:        "http://localhost:3000",
			wantStatus:    http.StatusOK,
			wantReachable: true,
		},
		{
			name:       "OPTIONSリクエストは204で中断されること",
			allowed:    []string{"http://localhost:3000"},
			method:     http.MethodOptions,
			origin:     "http://localhost:3000",
			wantStatus: http.StatusNoContent,
			wantOrigin: "http://localhost:3000",
		},
		{
			name:       "許可されていないオリジンのOPTIONSも204で中断されること",
			allowed:    []string{"http://localhost:3000"},
			method:     http.MethodOptions,
			origin:     "https://evil.com",
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reached := false
			router := gin.New()
			router.Use(CORS(tt.allowed))
			router.Handle(tt.method, "/test", func(c *gin.Context) {
				reached = true
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("ステータスコード = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if tt.wantOrigin != "" {
				if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, PUT, DELETE, OPTIONS" {
					t.Errorf("Access-Control-Allow-Methods = %q", got)
				}
				if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Authorization, Content-Type" {
					t.Errorf("Access-Control-Allow-Headers = %q", got)
				}
			}
			if reached != tt.wantReachable {
				t.Errorf("ハンドラーの実行 = %v, want %v", reached, tt.wantReachable)
			}
		})
	}
}
