// Package middleware はコースAPIで使用する認証とHTTP共通処理を提供する。
//
// トークンの発行（IssueToken）と検証（Authenticate）、パニックリカバリ、
// CORS設定を含む。Authenticate はパイプラインのステージとして
// 入力検証やコントローラより前に実行される。
package middleware
