// Package pipeline はリクエスト処理を順序付きのステージ列として組み立てる。
//
// 各ステージは成功時に nil を返し、失敗時に *apperr.Error を返す。
// Run は最初に失敗したステージで処理を打ち切り、そのエラーをレスポンスに変換する。
// 後続のステージは一切実行されない。
package pipeline

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/courses/pkg/apperr"
)

// Stage はパイプラインの1ステージ。
// 認証、入力検証、ビジネスロジックのいずれか1つの責務を持つ。
type Stage func(c *gin.Context) error

// Run はステージを順番に実行するGinハンドラを返す。
func Run(stages ...Stage) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, stage := range stages {
			if err := stage(c); err != nil {
				Abort(c, err)
				return
			}
		}
	}
}

// Abort はエラーをレスポンスに変換してリクエストを中断する。
// 原因エラーはログにのみ出力し、クライアントには返さない。
func Abort(c *gin.Context, err error) {
	appErr := apperr.From(err)
	if appErr.Err != nil {
		log.Printf("[%s] %s %s: %v", appErr.Kind, c.Request.Method, c.Request.URL.Path, appErr.Err)
	}
	c.AbortWithStatusJSON(appErr.Status(), appErr.Body())
}
