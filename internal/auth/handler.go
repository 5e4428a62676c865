package auth

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/courses/pkg/apperr"
	"github.com/nao1215/courses/pkg/validation"
)

// loginRequest はログインリクエストのJSON構造。
type loginRequest struct {
	// Username はユーザー名。
	Username *string `json:"username" validate:"required"`
	// Password はパスワード。
	Password *string `json:"password" validate:"required"`
}

// loginResponse はログイン成功時のJSONレスポンス構造。
type loginResponse struct {
	// Token は署名済みトークン。
	Token string `json:"token"`
}

// Handler はログインエンドポイントのパイプラインステージを提供する。
type Handler struct {
	service   *Service
	validator *validation.Validator
}

// NewHandler は新しいログインハンドラを生成する。
func NewHandler(service *Service, validator *validation.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

// Login はPOST /loginを処理するステージ。
func (h *Handler) Login(c *gin.Context) error {
	body, err := c.GetRawData()
	if err != nil {
		return apperr.Storage(fmt.Errorf("リクエストボディの読み込みに失敗: %w", err))
	}

	var req loginRequest
	if violations := h.validator.BindJSON(validation.LocationBody, body, &req); len(violations) > 0 {
		return apperr.Validation(violations)
	}

	token, err := h.service.Login(c.Request.Context(), *req.Username, *req.Password)
	if err != nil {
		return err
	}

	c.JSON(http.StatusOK, loginResponse{Token: token})
	return nil
}
