package main

import (
	"arbscanner/internal/app"

	"github.com/sirupsen/logrus"
)

// @title Arbitrage Scanner API
// @version 1.0
// @description Read access to cross-exchange arbitrage results.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("arbscanner stopped")
	}
}
