// Package httpclient はコースAPIを呼び出すクライアントを提供する。
//
// ログインで得たトークンをコンテキストに載せて各コースAPIを呼び出す。
// 2xx以外のレスポンスは *ResponseError として返す。
package httpclient
