package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/zimhr/payroll-backend-go/internal/config"
)

func NewRouter(
	cfg *config.Config,
	periodHandler PeriodHandler,
	payslipHandler PayslipHandler,
	currencyHandler CurrencyHandler,
	taxHandler TaxHandler,
	transactionHandler TransactionHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "zimhr-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/payrolls", func(r chi.Router) {
			r.Post("/", periodHandler.CreatePayroll)
			r.Get("/", periodHandler.ListPayrolls)

			r.Route("/{payrollID}/periods", func(r chi.Router) {
				r.Post("/", periodHandler.CreateAccountingPeriod)
				r.Get("/", periodHandler.ListAccountingPeriods)
			})
		})

		r.Route("/periods/{periodID}/centers/{costCenterID}", func(r chi.Router) {
			r.Get("/status", periodHandler.GetStatus)
			r.Post("/run", periodHandler.RunPeriod)
			r.Post("/refresh", periodHandler.RefreshPeriod)
			r.Post("/close", periodHandler.ClosePeriod)

			r.Get("/payslips", payslipHandler.ListByPeriodCenter)
		})

		r.Route("/payslips/{payslipID}", func(r chi.Router) {
			r.Get("/", payslipHandler.GetPayslip)
			r.Post("/distribute", payslipHandler.Distribute)
		})

		r.Route("/cost-centers/{costCenterID}/splits", func(r chi.Router) {
			r.Post("/", currencyHandler.CreateSplit)
			r.Get("/", currencyHandler.ListSplits)
		})
		r.Delete("/splits/{splitID}", currencyHandler.DeactivateSplit)

		r.Route("/exchange-rates", func(r chi.Router) {
			r.Post("/", currencyHandler.CreateRate)
			r.Get("/", currencyHandler.ListRates)
		})

		r.Route("/tax", func(r chi.Router) {
			r.Route("/tables", func(r chi.Router) {
				r.Put("/", taxHandler.ReplaceTaxTable)
				r.Get("/", taxHandler.GetTaxTable)
			})
			r.Route("/nec-grades", func(r chi.Router) {
				r.Post("/", taxHandler.CreateNecGrade)
				r.Get("/", taxHandler.ListNecGrades)
			})
			r.Post("/credits", taxHandler.CreateTaxCredit)
			r.Post("/vehicle-benefit-bands", taxHandler.CreateVehicleBenefitBand)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Route("/codes", func(r chi.Router) {
				r.Post("/", transactionHandler.CreateCode)
				r.Get("/", transactionHandler.ListCodes)
			})
			r.Route("/defaults", func(r chi.Router) {
				r.Post("/", transactionHandler.CreateDefaultTransaction)
				r.Get("/", transactionHandler.ListDefaultTransactions)
				r.Delete("/{transactionID}", transactionHandler.DeleteDefaultTransaction)
			})
			r.Route("/customs", func(r chi.Router) {
				r.Post("/", transactionHandler.CreateCustomTransaction)
				r.Get("/", transactionHandler.ListCustomTransactions)
				r.Delete("/{transactionID}", transactionHandler.DeleteCustomTransaction)
			})
		})
	})

	return r
}
