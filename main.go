package main

import (
	"context"

	"github.com/Aashish23092/expense-insights/client"
	"github.com/Aashish23092/expense-insights/client/llm"
	"github.com/Aashish23092/expense-insights/config"
	"github.com/Aashish23092/expense-insights/handler"
	"github.com/Aashish23092/expense-insights/repository"
	"github.com/Aashish23092/expense-insights/service"
	"github.com/Aashish23092/expense-insights/utils"
	"github.com/Aashish23092/expense-insights/utils/invoice"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.LogLevel, cfg.Env)

	// Invoice history: postgres when configured, the CSV file otherwise
	var history repository.InvoiceRepository
	if cfg.DatabaseURL != "" {
		repo, err := repository.NewGormInvoiceRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to invoice database")
		}
		history = repo
	} else {
		repo, err := repository.NewCSVInvoiceRepository(cfg.InvoiceCSVPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.InvoiceCSVPath).Msg("Failed to load invoice history")
		}
		history = repo
	}
	employees := repository.NewExcelEmployeeRepository(cfg.EmployeeXLSXPath)

	// Recognition and summaries use the base keyword table, expense logging
	// the extended one. A configured table replaces both.
	categories, expenseCategories := invoice.DefaultCategoryTable(), invoice.ExtendedCategoryTable()
	if cfg.CategoryConfigPath != "" {
		table, err := invoice.LoadCategoryTable(cfg.CategoryConfigPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.CategoryConfigPath).Msg("Using built-in category tables")
		} else {
			categories, expenseCategories = table, table
		}
	}
	engine := invoice.NewEngine(categories)
	expenseEngine := invoice.NewEngine(expenseCategories)

	classifier, err := service.NewDocumentClassifier(cfg.ClassifierModelPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load document classifier")
	}

	provider := llm.NewLLMProvider(cfg.LLMProvider, cfg.LLMModel, cfg.GeminiAPIKey, cfg.OpenAIAPIKey)
	log.Info().Str("provider", provider.GetProviderName()).Msg("LLM provider configured")

	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)

	var archiver service.Archiver
	if cfg.Archive.Enabled() {
		r2, err := client.NewR2Archiver(context.Background(), cfg.Archive)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialise invoice archive")
		}
		archiver = r2
		log.Info().Str("bucket", cfg.Archive.Bucket).Msg("Invoice archiving enabled")
	}

	summaries := service.NewSummaryStore(cfg.SummaryTTL)

	// Initialize service layer
	invoiceService := service.NewInvoiceService(engine, expenseEngine, classifier, summaries, service.NewLLMQuestionAnswerer(provider), history)
	scanService := service.NewScanService(engine, tesseractClient, service.NewPDFProcessor(), archiver)
	expenseService := service.NewExpenseService(history, provider)
	forecastService := service.NewForecastService(history)
	employeeService := service.NewEmployeeService(employees)
	chatService := service.NewChatService(employees, history, provider)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReloadSchedule, func() {
		if n := summaries.Sweep(); n > 0 {
			log.Debug().Int("sessions", n).Msg("Expired summary sessions removed")
		}
		if r, ok := history.(repository.Reloader); ok {
			if err := r.Reload(); err != nil {
				log.Error().Err(err).Msg("Failed to reload invoice history")
			}
		}
	}); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.ReloadSchedule).Msg("Invalid reload schedule")
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := handler.NewRouter(handler.Handlers{
		Invoice:  handler.NewInvoiceHandler(invoiceService, scanService, cfg.MaxFileSize),
		Expense:  handler.NewExpenseHandler(expenseService),
		Forecast: handler.NewForecastHandler(forecastService),
		Employee: handler.NewEmployeeHandler(employeeService),
		Chat:     handler.NewChatHandler(chatService),
	}, cfg.CORSOrigins, 32<<20)

	log.Info().Str("port", cfg.ServerPort).Msg("Starting Expense Insights service")
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
