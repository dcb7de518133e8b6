package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/zimhr/payroll-backend-go/internal/config"
	appHTTP "github.com/zimhr/payroll-backend-go/internal/handler/http"
	"github.com/zimhr/payroll-backend-go/internal/pkg/database"
	"github.com/zimhr/payroll-backend-go/internal/repository/postgresql"
	currencyService "github.com/zimhr/payroll-backend-go/internal/service/currency"
	payslipService "github.com/zimhr/payroll-backend-go/internal/service/payslip"
	periodService "github.com/zimhr/payroll-backend-go/internal/service/period"
	taxService "github.com/zimhr/payroll-backend-go/internal/service/tax"
	transactionService "github.com/zimhr/payroll-backend-go/internal/service/transaction"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	if cfg.Engine.AutoMigrate {
		if err := database.MigrateUp(dsn); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	engineLog := logrus.New()
	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		engineLog.SetLevel(level)
	}

	periodRepo := postgresql.NewPeriodRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	transactionRepo := postgresql.NewTransactionRepository(db)
	currencyRepo := postgresql.NewCurrencyRepository(db)
	taxRepo := postgresql.NewTaxRepository(db)
	txManager := postgresql.NewTxManager(db)

	resolver := currencyService.NewResolver(currencyRepo)
	tablesLoader := taxService.NewLoader(taxRepo)
	aggregator := transactionService.NewAggregator()
	builder := payslipService.NewBuilder(aggregator)
	snapshots := periodService.NewSnapshotLoader(employeeRepo, transactionRepo, payslipRepo, resolver, tablesLoader)

	periodSvc := periodService.NewPeriodService(
		periodRepo,
		employeeRepo,
		payslipRepo,
		snapshots,
		builder,
		txManager,
		cfg.Engine.PayrunWorkers,
		engineLog,
	)
	payslipSvc := payslipService.NewPayslipService(payslipRepo)
	currencySvc := currencyService.NewCurrencyService(currencyRepo)
	taxSvc := taxService.NewTaxService(taxRepo)
	transactionSvc := transactionService.NewTransactionService(transactionRepo)

	periodHandler := appHTTP.NewPeriodHandler(periodSvc)
	payslipHandler := appHTTP.NewPayslipHandler(payslipSvc)
	currencyHandler := appHTTP.NewCurrencyHandler(currencySvc)
	taxHandler := appHTTP.NewTaxHandler(taxSvc)
	transactionHandler := appHTTP.NewTransactionHandler(transactionSvc)

	router := appHTTP.NewRouter(cfg, periodHandler, payslipHandler, currencyHandler, taxHandler, transactionHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Starting server on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error:", err)
	}
}
