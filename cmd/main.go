package main

import (
	"github.com/PepsTwist/app-nutricionista/config"
	"github.com/PepsTwist/app-nutricionista/logger"
	"github.com/PepsTwist/app-nutricionista/routes"

	"go.uber.org/zap"
)

func main() {
	logger.Init()
	defer logger.Sync()

	config.Init()
	config.InitDB()

	r := routes.SetupRouter()
	logger.Info("listening", zap.String("port", config.Port()))
	if err := r.Run(":" + config.Port()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
