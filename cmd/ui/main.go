package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"newsresearch/internal/config"
	"newsresearch/internal/ui"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	r := gin.Default()
	ui.NewHandler(ui.NewClient(cfg.APIURL)).Register(r)

	slog.Info("starting research ui", "addr", cfg.UIAddr, "api_url", cfg.APIURL)

	err = r.Run(cfg.UIAddr)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
