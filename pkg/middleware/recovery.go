package middleware

import (
	"log"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/courses/pkg/apperr"
)

// Recovery はパニックからの回復を行うGinミドルウェアを返す。
// パニック値とスタックトレースはログにのみ出力し、クライアントには
// ストレージ障害と同じ500レスポンスを返す。
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[PANIC] %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, r, debug.Stack())
				appErr := apperr.Storage(nil)
				c.AbortWithStatusJSON(appErr.Status(), appErr.Body())
			}
		}()
		c.Next()
	}
}
