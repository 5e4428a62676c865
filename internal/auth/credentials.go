package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes はbcryptが扱えるパスワードの最大バイト数。
// これを超える入力は切り詰められて比較されるため、一致とはみなさない。
const maxPasswordBytes = 72

// CredentialProvider はユーザー名とパスワードの組を照合する。
// 将来複数ユーザーに対応する場合も、この実装を差し替えるだけで済む。
type CredentialProvider interface {
	// Verify は認証情報が一致する場合に true を返す。
	// 不一致はエラーではなく false で表す。
	Verify(ctx context.Context, username, password string) (bool, error)
}

// StaticCredentials はプロセス全体で唯一の固定ユーザーを保持する。
type StaticCredentials struct {
	// username は固定ユーザー名。
	username string
	// passwordHash はパスワードのbcryptハッシュ。
	passwordHash []byte
}

var _ CredentialProvider = (*StaticCredentials)(nil)

// NewStaticCredentials は固定ユーザーの認証情報を生成する。
func NewStaticCredentials(username, password string) (*StaticCredentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
	}
	return &StaticCredentials{
		username:     username,
		passwordHash: hash,
	}, nil
}

// Verify はユーザー名とパスワードの両方が完全一致するかを判定する。
// どちらが一致しなかったかは返さない。
func (s *StaticCredentials) Verify(_ context.Context, username, password string) (bool, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	if len(password) > maxPasswordBytes {
		return false, nil
	}
	passwordOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	return usernameOK && passwordOK, nil
}
