package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-ingestion-api/internal/app"
	"github.com/vfg2006/ads-ingestion-api/internal/config"
	"github.com/vfg2006/ads-ingestion-api/pkg/log"
)

func main() {
	// .env é procurado a partir do diretório do binário
	_, file, _, _ := runtime.Caller(0)
	os.Chdir(path.Dir(file))

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.Build(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar a aplicação")
	}
	defer application.Close()

	if err := application.Server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
