package course

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/courses/pkg/apperr"
)

// Controller はCRUDの各操作をリポジトリ呼び出しとレスポンスに対応付ける。
// 入力は検証ステージで解釈済みの値をコンテキストから受け取る。
type Controller struct {
	repo Repository
}

// NewController は新しいコントローラを生成する。
func NewController(repo Repository) *Controller {
	return &Controller{repo: repo}
}

// Create はコースを作成し、採番されたIDを含むコースを201で返す。
func (ctl *Controller) Create(c *gin.Context) error {
	course := courseInput(c)
	id, err := ctl.repo.Create(c.Request.Context(), course)
	if err != nil {
		return err
	}
	course.ID = id

	c.JSON(http.StatusCreated, course)
	return nil
}

// List は全コースを返す。0件の場合は空配列を返す。
func (ctl *Controller) List(c *gin.Context) error {
	courses, err := ctl.repo.FindAll(c.Request.Context())
	if err != nil {
		return err
	}

	c.JSON(http.StatusOK, courses)
	return nil
}

// Get はIDに一致するコースを返す。
func (ctl *Controller) Get(c *gin.Context) error {
	course, found, err := ctl.repo.FindByID(c.Request.Context(), courseID(c))
	if err != nil {
		return err
	}
	if !found {
		return apperr.NotFound(apperr.MessageCourseNotFound)
	}

	c.JSON(http.StatusOK, course)
	return nil
}

// Update はコースを上書きし、送信された内容をそのまま返す。
// 更新後の行は再取得しない。
func (ctl *Controller) Update(c *gin.Context) error {
	course := courseInput(c)
	course.ID = courseID(c)

	updated, err := ctl.repo.Update(c.Request.Context(), course)
	if err != nil {
		return err
	}
	if !updated {
		return apperr.NotFound(apperr.MessageCourseNotFound)
	}

	c.JSON(http.StatusOK, course)
	return nil
}

// Delete はコースを削除し、204を返す。
func (ctl *Controller) Delete(c *gin.Context) error {
	deleted, err := ctl.repo.Delete(c.Request.Context(), courseID(c))
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound(apperr.MessageCourseNotFound)
	}

	c.Status(http.StatusNoContent)
	return nil
}
