package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartleadhq/smart-leads/internal/infra/crm"
	"github.com/smartleadhq/smart-leads/internal/infra/database"
	"github.com/smartleadhq/smart-leads/internal/infra/http/handlers"
	"github.com/smartleadhq/smart-leads/internal/infra/http/middleware"
	"github.com/smartleadhq/smart-leads/internal/infra/integration/nationalize"
	"github.com/smartleadhq/smart-leads/internal/infra/mail"
	"github.com/smartleadhq/smart-leads/internal/infra/queue"
	"github.com/smartleadhq/smart-leads/internal/infra/worker"
	"github.com/smartleadhq/smart-leads/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		panic(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repository
	leadRepo := database.NewLeadRepository(db)

	// 2. Gateways and adapters
	oracle := nationalize.NewClient(os.Getenv("NATIONALIZE_URL"))
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	sink := crm.NewSink(producer)
	mailSender := mail.NewSender(
		os.Getenv("MAIL_HOST"), envOrInt("MAIL_PORT", 587),
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		envOr("MAIL_FROM", "no-reply@smartlead.io"),
		envOr("SALES_TEAM_EMAIL", "sales@smartlead.io"),
	)

	// 3. Notification worker (consumes the sync queue, emails the sales team)
	queueWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go queueWorker.Start(queue.QueueName)

	// 4. UseCases
	enrichUC := usecase.NewEnrichLeadsUseCase(leadRepo, oracle)
	syncUC := usecase.NewSyncLeadsUseCase(leadRepo, sink)

	// 5. Periodic sync trigger (same usecase instance as the cron endpoint)
	if os.Getenv("DISABLE_SYNC_TIMER") != "true" {
		interval := time.Duration(envOrInt("SYNC_INTERVAL_MINUTES", 5)) * time.Minute
		syncWorker := worker.NewSyncWorker(syncUC, interval)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go syncWorker.Start(ctx)
	}

	// 6. Handlers
	leadHandler := handlers.NewLeadHandler(enrichUC, leadRepo)
	syncHandler := handlers.NewSyncHandler(syncUC, os.Getenv("CRON_SECRET"))
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{envOr("FRONTEND_URL", "*")},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/", handleIndex)
	r.Get("/api/health", healthHandler.Handle)
	r.Route("/api/leads", func(r chi.Router) {
		r.Post("/process", leadHandler.ProcessLeads)
		r.Get("/", leadHandler.ListLeads)
		r.Get("/{id}", leadHandler.GetLead)
	})
	r.Post("/api/cron/sync", syncHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Printf("🚀 Smart Lead API running on port %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
