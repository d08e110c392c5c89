package main

import (
	"github.com/quicktech/studentportal/internal/pkg/logger"
	"github.com/quicktech/studentportal/internal/server"
)

// @title           Quick Tech Student Portal API
// @version         1.0
// @description     Student portal backend: accounts, profiles, exam results, semester enrollment, lectures, announcements and a printable student ID card.

// @contact.name   Quick Tech Institute
// @contact.email  support@quicktech.example

// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT access token.
func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Server terminated with error")
	}
}
