package course

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/courses/pkg/apperr"
	"github.com/nao1215/courses/pkg/validation"
)

// 検証済みの値をGinコンテキストに格納するキー。
const (
	contextKeyCourseID    = "course_id"
	contextKeyCourseInput = "course_input"
)

// courseRequest はコース作成・更新リクエストのJSON構造。
type courseRequest struct {
	// Title はコース名。
	Title *string `json:"title" validate:"required,min=1"`
	// Description はコースの説明。
	Description *string `json:"description"`
	// Duration は所要時間（分）。
	Duration *int64 `json:"duration" validate:"required,gt=0"`
	// Instructor は講師名。
	Instructor *string `json:"instructor" validate:"required,min=1"`
}

// courseQuery は一覧取得で受け付けるクエリパラメータ。
// 絞り込み・並び替え・ページングは予約のみで、値は使用しない。
type courseQuery struct {
	Filter string `form:"filter"`
	Sort   string `form:"sort"`
	Page   string `form:"page" validate:"omitempty,number"`
}

// courseParams はパスパラメータ。
type courseParams struct {
	ID string `uri:"id" validate:"required,number"`
}

// toCourse は検証済みのリクエストからIDを除くフィールドを持つCourseを生成する。
func (r courseRequest) toCourse() Course {
	return Course{
		Title:       *r.Title,
		Description: r.Description,
		Duration:    *r.Duration,
		Instructor:  *r.Instructor,
	}
}

// requestRules はエンドポイントごとに組み合わせる検証ルール。
type requestRules struct {
	validator *validation.Validator
}

// body はリクエストボディをコースとして検証する。
func (r requestRules) body(c *gin.Context) []apperr.Violation {
	raw, err := c.GetRawData()
	if err != nil {
		return []apperr.Violation{{
			Type:     "field",
			Msg:      "request body could not be read",
			Location: validation.LocationBody,
		}}
	}

	var req courseRequest
	if violations := r.validator.BindJSON(validation.LocationBody, raw, &req); len(violations) > 0 {
		return violations
	}
	c.Set(contextKeyCourseInput, req.toCourse())
	return nil
}

// id はパスパラメータのidが整数であることを検証する。
func (r requestRules) id(c *gin.Context) []apperr.Violation {
	params := courseParams{ID: c.Param("id")}
	if violations := r.validator.Struct(validation.LocationParams, params); len(violations) > 0 {
		return violations
	}

	id, err := strconv.ParseInt(params.ID, 10, 64)
	if err != nil {
		return []apperr.Violation{{
			Type:     "field",
			Value:    params.ID,
			Msg:      fmt.Sprintf("id must be an integer between 0 and %d", int64(math.MaxInt64)),
			Path:     "id",
			Location: validation.LocationParams,
		}}
	}
	c.Set(contextKeyCourseID, id)
	return nil
}

// query は一覧取得のクエリパラメータを検証する。
func (r requestRules) query(c *gin.Context) []apperr.Violation {
	q := courseQuery{
		Filter: c.Query("filter"),
		Sort:   c.Query("sort"),
		Page:   c.Query("page"),
	}
	return r.validator.Struct(validation.LocationQuery, q)
}

// courseInput は検証済みのコース入力を取得する。
func courseInput(c *gin.Context) Course {
	return c.MustGet(contextKeyCourseInput).(Course)
}

// courseID は検証済みのパスパラメータidを取得する。
func courseID(c *gin.Context) int64 {
	return c.MustGet(contextKeyCourseID).(int64)
}
