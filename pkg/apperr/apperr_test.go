package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

// TestError_Status は種別とHTTPステータスの対応を検証する。
func TestError_Status(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk I/O error")
	tests := []struct {
		name        string
		err         *Error
		wantStatus  int
		wantMessage string
	}{
		{"トークン未送信", MissingCredential(), http.StatusUnauthorized, "Token not sent."},
		{"トークン不正", InvalidToken(cause), http.StatusForbidden, "Invalid token."},
		{"シークレット未設定", Configuration(), http.StatusInternalServerError, "JWT secret not configured"},
		{"認証情報不一致", Authentication(), http.StatusUnauthorized, "Invalid credentials"},
		{"リソース不在", NotFound(MessageCourseNotFound), http.StatusNotFound, "Course not found"},
		{"ストレージ障害", Storage(cause), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Status(); got != tt.wantStatus {
				t.Errorf("Status() = %d, want %d", got, tt.wantStatus)
			}
			body := tt.err.Body()
			if body["message"] != tt.wantMessage {
				t.Errorf("Body()[message] = %v, want %q", body["message"], tt.wantMessage)
			}
			if _, ok := body["errors"]; ok {
				t.Error("Body()にerrorsが含まれている")
			}
		})
	}
}

// TestValidation は検証エラーのボディを検証する。
func TestValidation(t *testing.T) {
	t.Parallel()

	t.Run("違反の一覧がerrorsとして返ること", func(t *testing.T) {
		t.Parallel()

		violations := []Violation{
			{Type: "field", Msg: "title is required", Path: "title", Location: "body"},
			{Type: "field", Msg: "duration is required", Path: "duration", Location: "body"},
		}
		err := Validation(violations)

		if err.Status() != http.StatusBadRequest {
			t.Errorf("Status() = %d, want %d", err.Status(), http.StatusBadRequest)
		}
		got, ok := err.Body()["errors"].([]Violation)
		if !ok {
			t.Fatalf("Body()[errors]の型が不正: %T", err.Body()["errors"])
		}
		if len(got) != 2 {
			t.Errorf("len(errors) = %d, want 2", len(got))
		}
		if _, ok := err.Body()["message"]; ok {
			t.Error("検証エラーのBody()にmessageが含まれている")
		}
	})

	t.Run("nilの一覧は空配列になること", func(t *testing.T) {
		t.Parallel()

		got, _ := Validation(nil).Body()["errors"].([]Violation)
		if got == nil {
			t.Error("errorsがnil")
		}
	})
}

// TestFrom はエラーの変換を検証する。
func TestFrom(t *testing.T) {
	t.Parallel()

	t.Run("ラップされた*Errorを取り出すこと", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("context: %w", NotFound(MessageCourseNotFound))
		if got := From(wrapped); got.Kind != KindNotFound {
			t.Errorf("From().Kind = %v, want %v", got.Kind, KindNotFound)
		}
		if !Is(wrapped, KindNotFound) {
			t.Error("Is(KindNotFound) = false")
		}
	})

	t.Run("*Errorでないエラーはストレージ障害として扱うこと", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("boom")
		got := From(cause)
		if got.Kind != KindStorage {
			t.Errorf("From().Kind = %v, want %v", got.Kind, KindStorage)
		}
		if !errors.Is(got, cause) {
			t.Error("原因エラーが保持されていない")
		}
		if got.Message == cause.Error() {
			t.Error("原因の詳細がメッセージに漏れている")
		}
	})
}

// TestKind_String は種別名を検証する。
func TestKind_String(t *testing.T) {
	t.Parallel()

	if got := KindInvalidToken.String(); got != "InvalidToken" {
		t.Errorf("String() = %q, want %q", got, "InvalidToken")
	}
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Errorf("String() = %q, want %q", got, "Kind(99)")
	}
}
