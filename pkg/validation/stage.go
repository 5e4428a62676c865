package validation

import (
	"github.com/gin-gonic/gin"
	"github.com/nao1215/courses/pkg/apperr"
	"github.com/nao1215/courses/pkg/pipeline"
)

// Rule はリクエストの一部（ボディ、パスパラメータ、クエリ）を検証する。
// 検証に成功した場合、解釈済みの値をGinコンテキストに設定してよい。
type Rule func(c *gin.Context) []apperr.Violation

// Stage はエンドポイントごとに宣言したルールをすべて評価するステージを返す。
// 1件でも違反があれば全違反をまとめた apperr.KindValidation を返し、
// 後続のステージは実行されない。
func Stage(rules ...Rule) pipeline.Stage {
	return func(c *gin.Context) error {
		var violations []apperr.Violation
		for _, rule := range rules {
			violations = append(violations, rule(c)...)
		}
		if len(violations) > 0 {
			return apperr.Validation(violations)
		}
		return nil
	}
}
