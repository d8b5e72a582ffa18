package main

import (
	"fmt"
	"os"

	"github.com/ricci/insurance-api/internal/auth"
	"github.com/ricci/insurance-api/internal/config"
	"github.com/ricci/insurance-api/internal/db"
	"github.com/ricci/insurance-api/internal/excel"
	httphandler "github.com/ricci/insurance-api/internal/http"
	"github.com/ricci/insurance-api/internal/http/middleware"
	"github.com/ricci/insurance-api/internal/logger"
	"github.com/ricci/insurance-api/internal/pdf"
	"github.com/ricci/insurance-api/internal/repository"
	"github.com/ricci/insurance-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	clientRepo := repository.NewClientRepository(database)
	contractRepo := repository.NewContractRepository(database)
	txManager := repository.NewTxManager(database)

	contractService := service.NewContractService(contractRepo)
	clientService := service.NewClientService(clientRepo, contractService, txManager)
	exportService := service.NewExportService(clientService, contractService, excel.NewGenerator(), pdf.NewGenerator())

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	authMiddleware := middleware.Auth(tokenParser)

	clientHandler := httphandler.NewClientHandler(clientService, exportService, cfg.API.DefaultPageSize, log)
	contractHandler := httphandler.NewContractHandler(contractService, clientService, cfg.API.DefaultPageSize, log)
	router := httphandler.NewRouter(clientHandler, contractHandler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting insurance api")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
