// Package apperr はリクエスト処理パイプラインの各ステージが返すエラー種別を定義する。
//
// 各ステージは例外ではなく *Error を返し、パイプラインの実行器が
// Kind に応じてHTTPステータスとレスポンスボディへ変換する。
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind はエラーの種別。
type Kind int

const (
	// KindMissingCredential はBearerトークンが送信されていないことを表す。
	KindMissingCredential Kind = iota + 1
	// KindInvalidToken はトークンの署名・構造・有効期限の検証に失敗したことを表す。
	KindInvalidToken
	// KindConfiguration はJWTシークレットが設定されていないことを表す。
	KindConfiguration
	// KindAuthentication はログイン時の認証情報の不一致を表す。
	KindAuthentication
	// KindValidation は入力値の検証違反を表す。
	KindValidation
	// KindNotFound はリソースが存在しないことを表す。
	KindNotFound
	// KindStorage はストレージエンジンの障害を表す。
	KindStorage
)

// String はログ出力用の種別名を返す。
func (k Kind) String() string {
	switch k {
	case KindMissingCredential:
		return "MissingCredential"
	case KindInvalidToken:
		return "InvalidToken"
	case KindConfiguration:
		return "Configuration"
	case KindAuthentication:
		return "Authentication"
	case KindValidation:
		return "Validation"
	case KindNotFound:
		return "NotFound"
	case KindStorage:
		return "Storage"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// クライアントに返すメッセージ。
const (
	MessageTokenNotSent        = "Token not sent."
	MessageInvalidToken        = "Invalid token."
	MessageSecretNotConfigured = "JWT secret not configured"
	MessageInvalidCredentials  = "Invalid credentials"
	MessageCourseNotFound      = "Course not found"
	MessageInternal            = "Internal server error"
)

// Violation は1件の入力検証違反。
type Violation struct {
	// Type は違反の種類。常に "field"。
	Type string `json:"type"`
	// Value は違反した入力値。
	Value any `json:"value,omitempty"`
	// Msg は違反内容。
	Msg string `json:"msg"`
	// Path は違反したフィールド名。
	Path string `json:"path"`
	// Location は入力の位置（body, params, query）。
	Location string `json:"location"`
}

// Error はパイプラインのステージが返すエラー。
type Error struct {
	// Kind はエラーの種別。
	Kind Kind
	// Message はクライアントに返す短いメッセージ。
	Message string
	// Violations は検証違反の一覧。KindValidation の場合のみ設定される。
	Violations []Violation
	// Err は診断用の原因。クライアントには返さない。
	Err error
}

// Error は error インターフェースを実装する。
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap は原因エラーを返す。
func (e *Error) Unwrap() error {
	return e.Err
}

// Status は種別に対応するHTTPステータスコードを返す。
func (e *Error) Status() int {
	switch e.Kind {
	case KindMissingCredential, KindAuthentication:
		return http.StatusUnauthorized
	case KindInvalidToken:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Body はクライアントに返すJSONボディを返す。
func (e *Error) Body() map[string]any {
	if e.Kind == KindValidation {
		violations := e.Violations
		if violations == nil {
			violations = []Violation{}
		}
		return map[string]any{"errors": violations}
	}
	return map[string]any{"message": e.Message}
}

// MissingCredential はトークン未送信エラーを生成する。
func MissingCredential() *Error {
	return &Error{Kind: KindMissingCredential, Message: MessageTokenNotSent}
}

// InvalidToken はトークン検証エラーを生成する。causeは診断用に保持される。
func InvalidToken(cause error) *Error {
	return &Error{Kind: KindInvalidToken, Message: MessageInvalidToken, Err: cause}
}

// Configuration はシークレット未設定エラーを生成する。
func Configuration() *Error {
	return &Error{Kind: KindConfiguration, Message: MessageSecretNotConfigured}
}

// Authentication は認証情報不一致エラーを生成する。
func Authentication() *Error {
	return &Error{Kind: KindAuthentication, Message: MessageInvalidCredentials}
}

// Validation は検証違反エラーを生成する。
func Validation(violations []Violation) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Violations: violations}
}

// NotFound はリソース不在エラーを生成する。
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Storage はストレージ障害エラーを生成する。
func Storage(cause error) *Error {
	return &Error{Kind: KindStorage, Message: MessageInternal, Err: cause}
}

// From は任意のエラーを *Error に変換する。
// *Error を含まないエラーはストレージ障害として扱う。
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Storage(err)
}

// Is はエラーが指定した種別の *Error を含むかどうかを返す。
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
