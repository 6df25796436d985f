package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"fitdesk/internal/adapters/billing"
	"fitdesk/internal/adapters/email"
	"fitdesk/internal/adapters/http/middleware"
	"fitdesk/internal/adapters/http/perf"
	accountStore "fitdesk/internal/adapters/storage/account"
	costStore "fitdesk/internal/adapters/storage/cost"
	customerStore "fitdesk/internal/adapters/storage/customer"
	employeeStore "fitdesk/internal/adapters/storage/employee"
	noticeStore "fitdesk/internal/adapters/storage/notice"
	paymentStore "fitdesk/internal/adapters/storage/payment"
	serviceStore "fitdesk/internal/adapters/storage/service"
	sessionStore "fitdesk/internal/adapters/storage/session"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore  accountStore.Store
	CustomerStore customerStore.Store
	EmployeeStore employeeStore.Store
	ServiceStore  serviceStore.Store
	SessionStore  sessionStore.Store
	PaymentStore  paymentStore.Store
	CostStore     costStore.Store
	NoticeStore   noticeStore.Store
}

// loadCSRFKey reads the CSRF secret from FITDESK_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("FITDESK_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("FITDESK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("FITDESK_ENV") == "production" {
		log.Fatal("FITDESK_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set FITDESK_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Global card charger instance (set by SetCharger)
var cardCharger billing.Charger

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// SetCharger sets the global card payment charger for the application.
func SetCharger(charger billing.Charger) {
	cardCharger = charger
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("FITDESK_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
