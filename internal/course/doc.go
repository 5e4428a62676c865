// Package course はコースリソースのCRUD APIを提供する。
//
// リクエストは 認証 → 入力検証 → コントローラ → リポジトリ の順に
// pipeline.Run で処理され、いずれかのステージが失敗した時点で打ち切られる。
// 永続化には単一ファイルのSQLiteを使用する。
package course
