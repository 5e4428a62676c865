// Package config は環境変数からサービスの設定を読み込む。
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/courses/pkg/middleware"
)

// defaultExpiration はJWT_EXPIRATION_TIMEが未設定の場合のトークン有効期間。
const defaultExpiration = time.Hour

// ErrInvalidExpiration はJWT_EXPIRATION_TIMEが解釈できないことを表す。
var ErrInvalidExpiration = errors.New("JWT_EXPIRATION_TIMEが不正です")

// Config はコースサービスの設定。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// DatabasePath はSQLiteデータベースファイルのパス。
	DatabasePath string
	// Token はトークンの署名設定。Secretが空の場合は未設定として扱う。
	Token middleware.TokenConfig
	// AllowedOrigins はCORSで許可するオリジン。
	AllowedOrigins []string
}

// Load は環境変数から設定を読み込む。
// JWT_SECRETにはデフォルト値を設けない。未設定のまま起動した場合、
// ログインと全コースAPIは設定エラーを返す。
func Load() (Config, error) {
	expiration, err := ParseExpiration(getEnvOr("JWT_EXPIRATION_TIME", ""))
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:         getEnvOr("PORT", "3000"),
		DatabasePath: getEnvOr("DATABASE_PATH", "courses.db"),
		Token: middleware.TokenConfig{
			Secret:     os.Getenv("JWT_SECRET"),
			Expiration: expiration,
		},
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}, nil
}

// ParseExpiration はトークン有効期間の文字列を解釈する。
// Goのduration形式（"90m"）、整数秒（"3600"）、日数（"7d"）を受け付ける。
// 空文字列の場合はデフォルト値を返す。
func ParseExpiration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultExpiration, nil
	}

	var d time.Duration
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		d = time.Duration(secs) * time.Second
	} else if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.ParseInt(days, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidExpiration, s)
		}
		d = time.Duration(n) * 24 * time.Hour
	} else {
		d, err = time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidExpiration, s)
		}
	}

	if d <= 0 {
		return 0, fmt.Errorf("%w: 正の値を指定してください: %q", ErrInvalidExpiration, s)
	}
	return d, nil
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// splitList はカンマ区切りの文字列を空要素を除いて分割する。
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
