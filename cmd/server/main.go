package main

import (
	"os"

	_ "werkshift/docs"
)

// @title           Werkshift API
// @version         1.0
// @description     Shift posting, werker onboarding and invite/apply matching.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
