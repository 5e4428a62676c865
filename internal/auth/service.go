// Package auth はログインフローを提供する。
//
// 認証情報を CredentialProvider で照合し、一致した場合のみ
// middleware.IssueToken でトークンを発行する。コースのリポジトリには触れない。
package auth

import (
	"context"
	"time"

	"github.com/nao1215/courses/pkg/apperr"
	"github.com/nao1215/courses/pkg/middleware"
)

// 固定ユーザーの認証情報。
const (
	DefaultUsername = "admin"
	DefaultPassword = "password"
)

// Service はログイン処理を行う。
type Service struct {
	// credentials は認証情報の照合先。
	credentials CredentialProvider
	// token はトークンの署名設定。
	token middleware.TokenConfig
	// now は現在時刻を返す。テストで差し替える。
	now func() time.Time
}

// NewService は新しいログインサービスを生成する。
func NewService(credentials CredentialProvider, token middleware.TokenConfig) *Service {
	return &Service{
		credentials: credentials,
		token:       token,
		now:         time.Now,
	}
}

// Login は認証情報を照合し、一致した場合にトークンを返す。
// 不一致の場合は apperr.KindAuthentication、シークレット未設定の場合は
// apperr.KindConfiguration を返す。照合は必ずトークン発行より先に行う。
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	ok, err := s.credentials.Verify(ctx, username, password)
	if err != nil {
		return "", apperr.Storage(err)
	}
	if !ok {
		return "", apperr.Authentication()
	}

	return middleware.IssueToken(s.token, username, s.now())
}
