package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	billingPkg "fitdesk/internal/adapters/billing"
	emailPkg "fitdesk/internal/adapters/email"
	web "fitdesk/internal/adapters/http"
	"fitdesk/internal/adapters/http/perf"
	"fitdesk/internal/adapters/storage"
	accountStore "fitdesk/internal/adapters/storage/account"
	costStore "fitdesk/internal/adapters/storage/cost"
	customerStore "fitdesk/internal/adapters/storage/customer"
	employeeStore "fitdesk/internal/adapters/storage/employee"
	noticeStore "fitdesk/internal/adapters/storage/notice"
	paymentStore "fitdesk/internal/adapters/storage/payment"
	serviceStore "fitdesk/internal/adapters/storage/service"
	sessionStore "fitdesk/internal/adapters/storage/session"
	"fitdesk/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is a dev convenience; production relies on real env vars.
	if os.Getenv("FITDESK_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file loaded: %v", err)
		}
	}

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("FITDESK_DB", "fitdesk.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	svcStore := serviceStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:  acctStore,
		CustomerStore: customerStore.NewSQLiteStore(timedDB),
		EmployeeStore: employeeStore.NewSQLiteStore(timedDB),
		ServiceStore:  svcStore,
		SessionStore:  sessionStore.NewSQLiteStore(timedDB),
		PaymentStore:  paymentStore.NewSQLiteStore(timedDB),
		CostStore:     costStore.NewSQLiteStore(timedDB),
		NoticeStore:   noticeStore.NewSQLiteStore(timedDB),
	}

	// Seed default admin account if no accounts exist
	adminEmail := envOrDefault("FITDESK_ADMIN_EMAIL", "admin@fitdesk.local")
	adminPassword := envOrDefault("FITDESK_ADMIN_PASSWORD", "change me please")
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), adminEmail, adminPassword,
		orchestrators.AdminSeedDeps{AccountStore: acctStore}); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Seed the default service catalogue
	if err := orchestrators.ExecuteSeedServices(context.Background(),
		orchestrators.ServiceSeedDeps{ServiceStore: svcStore}); err != nil {
		log.Fatalf("failed to seed services: %v", err)
	}

	// Seed synthetic data for development only
	if os.Getenv("FITDESK_ENV") != "production" {
		synDeps := orchestrators.SyntheticSeedDeps{
			CustomerStore: stores.CustomerStore,
			EmployeeStore: stores.EmployeeStore,
			ServiceStore:  stores.ServiceStore,
			SessionStore:  stores.SessionStore,
			PaymentStore:  stores.PaymentStore,
			CostStore:     stores.CostStore,
		}
		if err := orchestrators.ExecuteSeedSynthetic(context.Background(), synDeps, time.Now()); err != nil {
			log.Fatalf("failed to seed synthetic data: %v", err)
		}
		log.Println("Synthetic seed data loaded (dev mode)")
	}

	// Configure email sender
	resendKey := os.Getenv("FITDESK_RESEND_KEY")
	emailFrom := envOrDefault("FITDESK_EMAIL_FROM", "FitDesk <noreply@fitdesk.example.com>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if os.Getenv("FITDESK_ENV") == "production" {
			log.Println("WARNING: FITDESK_RESEND_KEY is not set, email delivery is disabled in production")
		} else {
			log.Println("Email sender configured (noop, set FITDESK_RESEND_KEY for real delivery)")
		}
	}

	// Configure card payments
	stripeKey := os.Getenv("FITDESK_STRIPE_KEY")
	if stripeKey != "" {
		web.SetCharger(billingPkg.NewStripeCharger(stripeKey))
		log.Println("Card payments configured (Stripe)")
	} else {
		web.SetCharger(billingPkg.NewNoopCharger())
		if os.Getenv("FITDESK_ENV") == "production" {
			log.Println("WARNING: FITDESK_STRIPE_KEY is not set, card capture is disabled in production")
		} else {
			log.Println("Card payments configured (noop, set FITDESK_STRIPE_KEY for real capture)")
		}
	}

	// Create HTTP handler with middleware (pass collector for timing + dashboard)
	mux := web.NewMux("static", stores, collector)

	addr := envOrDefault("FITDESK_ADDR", ":8080")
	log.Printf("FitDesk %s starting on %s (env=%s)", version, addr, envOrDefault("FITDESK_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
