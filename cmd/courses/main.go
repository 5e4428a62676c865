// コースサービスのエントリポイント。
// 固定ユーザーでのログインによるトークン発行と、
// トークンで保護されたコースのCRUD APIを提供する。
package main

import (
	"context"
	"log"

	"github.com/nao1215/courses/internal/config"
	"github.com/nao1215/courses/internal/course"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}
	if cfg.Token.Secret == "" {
		log.Printf("JWT_SECRETが未設定です。ログインとコースAPIは500を返します")
	}

	server, err := course.NewServer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("コースサーバーの初期化に失敗: %v", err)
	}

	log.Printf("コースサービスを起動します: :%s", cfg.Port)
	err = server.Run()
	_ = server.Close()
	if err != nil {
		log.Fatalf("コースサービスの起動に失敗: %v", err)
	}
}
