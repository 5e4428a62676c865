package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nao1215/courses/pkg/apperr"
	"github.com/nao1215/courses/pkg/pipeline"
)

// TokenConfig はトークンの署名と検証に使用する設定。
// プロセス起動時に一度だけ構築し、以降は読み取り専用で共有する。
type TokenConfig struct {
	// Secret はHS256署名用の秘密鍵。空の場合は未設定として扱う。
	Secret string
	// Expiration はトークンの有効期間。
	Expiration time.Duration
}

// Identity は認証済みの呼び出し元を表す。
// トークンのsubjectクレームにJSONとして格納される。
type Identity struct {
	// Username はトークンを発行したユーザー名。
	Username string `json:"username"`
}

// contextKeyIdentity はGinコンテキストに認証済みIdentityを格納するキー。
const contextKeyIdentity = "identity"

// bearerPrefix はAuthorizationヘッダーのスキーム。
const bearerPrefix = "Bearer "

// errEmptySubject はsubjectクレームが空であることを表す。
var errEmptySubject = errors.New("subjectクレームが空です")

// IssueToken はユーザー名をsubjectに持つ署名済みトークンを生成する。
// シークレットが未設定の場合は署名前に apperr.KindConfiguration を返す。
func IssueToken(cfg TokenConfig, username string, now time.Time) (string, error) {
	if cfg.Secret == "" {
		return "", apperr.Configuration()
	}

	subject, err := json.Marshal(Identity{Username: username})
	if err != nil {
		return "", fmt.Errorf("subjectのシリアライズに失敗: %w", err)
	}

	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   string(subject),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.Expiration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("JWTトークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// Authenticate はBearerトークンを検証するパイプラインステージを返す。
// 検証に成功した場合、コンテキストに Identity を設定する。
//
// 判定の順序は次の通り。
//  1. ヘッダーが無いか "Bearer " で始まらない場合は KindMissingCredential
//  2. シークレットが未設定の場合は KindConfiguration
//  3. 署名・構造・有効期限・subjectの検証に失敗した場合は KindInvalidToken
func Authenticate(cfg TokenConfig) pipeline.Stage {
	return func(c *gin.Context) error {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), bearerPrefix)
		if !found {
			return apperr.MissingCredential()
		}

		if cfg.Secret == "" {
			return apperr.Configuration()
		}

		identity, err := verifyToken(cfg.Secret, tokenString)
		if err != nil {
			return apperr.InvalidToken(err)
		}

		c.Set(contextKeyIdentity, identity)
		return nil
	}
}

// verifyToken はトークンの署名と有効期限を検証し、subjectからIdentityを復元する。
func verifyToken(secret, tokenString string) (Identity, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("JWTの検証に失敗: %w", err)
	}

	if claims.Subject == "" {
		return Identity{}, errEmptySubject
	}

	var identity Identity
	if err := json.Unmarshal([]byte(claims.Subject), &identity); err != nil {
		return Identity{}, fmt.Errorf("subjectのデコードに失敗: %w", err)
	}
	return identity, nil
}

// GetIdentity はGinコンテキストから認証済みIdentityを取得する。
// Authenticateステージが事前に成功している必要がある。
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}
