package main

import (
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/peerwallet/peerwallet/cmd/httpserver"
	"github.com/peerwallet/peerwallet/internal/middleware"
	"github.com/peerwallet/peerwallet/pkg/configpkg"
	"github.com/peerwallet/peerwallet/pkg/dbpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	server, err := httpserver.New(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	runErr := server.Engine.Run(config.ServerAddress)

	if err := server.Close(); err != nil {
		logger.Error().Err(err).Msg("cannot close server resources")
	}

	if runErr != nil {
		logger.Fatal().Err(runErr).Msg("cannot start server")
	}
}
