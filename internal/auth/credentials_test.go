package auth

import (
	"strings"
	"testing"
)

// TestStaticCredentials_Verify は固定ユーザーの照合を検証する。
func TestStaticCredentials_Verify(t *testing.T) {
	t.Parallel()

	creds, err := NewStaticCredentials(DefaultUsername, DefaultPassword)
	if err != nil {
		t.Fatalf("NewStaticCredentials()でエラーが発生: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{name: "両方一致", username: "admin", password: "password", want: true},
		{name: "パスワード不一致", username: "admin", password: "wrong", want: false},
		{name: "ユーザー名不一致", username: "root", password: "password", want: false},
		{name: "大文字小文字は区別すること", username: "Admin", password: "password", want: false},
		{name: "前後の空白は区別すること", username: "admin ", password: "password", want: false},
		{name: "空の認証情報", username: "", password: "", want: false},
		{name: "72バイトを超えるパスワードは一致しない", username: "admin", password: "password" + strings.Repeat("x", 72), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := creds.Verify(t.Context(), tt.username, tt.password)
			if err != nil {
				t.Fatalf("Verify()でエラーが発生: %v", err)
			}
			if got != tt.want {
				t.Errorf("Verify(%q, %q) = %v, want %v", tt.username, tt.password, got, tt.want)
			}
		})
	}
}
