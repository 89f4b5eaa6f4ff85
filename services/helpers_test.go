package services

import (
	"car_configurator_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
)

func testLogger() *gecho.Logger {
	return gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.ParseLogLevel("error"))))
}

func testConfig() *structs.Config {
	return &structs.Config{
		Server: &structs.ServerConfig{AppName: "Car Configurator", Environment: "test", PublicURL: "http://localhost:5173"},
		Auth: &structs.AuthConfig{
			AccessTokenSecret: "test-secret",
			AccessTokenExpiry: time.Hour,
			Issuer:            "car-configurator",
			BlacklistTTL:      time.Hour,
		},
		Email:  &structs.EmailConfig{},
		Quotes: &structs.QuotesConfig{},
	}
}
