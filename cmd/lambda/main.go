package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-ingestion-api/internal/api/gateway"
	"github.com/vfg2006/ads-ingestion-api/internal/app"
	"github.com/vfg2006/ads-ingestion-api/internal/config"
	"github.com/vfg2006/ads-ingestion-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)

	// a conexão vive enquanto o ambiente de execução estiver quente
	application, err := app.Build(context.Background(), cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar a aplicação")
	}
	defer application.Close()

	lambda.Start(gateway.NewHandler(application.Server.Handler()))
}
