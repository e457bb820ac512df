package bootstrap

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger picks the zap preset from APP_ENV. Anything other than
// "production" gets the development console encoder.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
