package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bookmylastwishes/portal/internal/app"
	"github.com/bookmylastwishes/portal/internal/handler"
	"github.com/bookmylastwishes/portal/internal/metrics"
	"github.com/bookmylastwishes/portal/internal/middleware"
)

// rateWindow is the sliding window for the general per-IP request limit.
// RATE_LIMIT_RPM requests are allowed per window.
const rateWindow = time.Minute

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.MFAService, app.MigrationService)
	pledge := handler.NewPledgeHandler(app.PatronService, app.Cfg)
	patron := handler.NewPatronHandler(app.PatronService, app.Storage, app.Cfg)
	wish := handler.NewWishHandler(app.WishService)
	nominee := handler.NewNomineeHandler(app.NomineeService)
	letter := handler.NewLetterHandler(app.LetterService)
	document := handler.NewDocumentHandler(app.DocumentService, app.Cfg)
	billing := handler.NewBillingHandler(app.BillingService)
	account := handler.NewAccountHandler(app.AccountService, app.AuthService)
	content := handler.NewContentHandler(app.ContentService, app.EmailService)
	support := handler.NewSupportHandler(app.SupportService)
	admin := handler.NewAdminHandler(app.PatronService, app.SupportService)

	r := chi.NewRouter()

	// Global middleware - executed in order (top to bottom)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Config(app.Cfg))
	r.Use(middleware.Metrics(app.Metrics))
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(app.Cfg.RateLimitRPM, rateWindow)))
	r.Use(middleware.AuthMiddleware(app.AuthService, app.UserRepository, app.SessionRepository))

	// Health and metrics
	r.Get("/healthz", handler.Health(app.DB))
	r.Method(http.MethodGet, "/metrics", metrics.Handler(app.Registry))

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Auth - Authentication flow (rate limited)
	rateLimitAuth := middleware.RateLimitAuth()

	r.Group(func(r chi.Router) {
		r.Use(rateLimitAuth)
		r.Post("/api/auth/signup", auth.Signup)
		r.Post("/api/auth/login", auth.Login)
		r.Post("/api/auth/forgot-password", auth.ForgotPassword)
		r.Post("/api/auth/reset-password", auth.ResetPassword)
	})

	// Pledge form, open to anonymous visitors
	r.Post("/api/pledge", pledge.Submit)

	// Marketing site content
	r.Get("/api/content", content.Sections)
	r.Get("/api/content/{slug}", content.Section)
	r.Post("/api/newsletter", content.SubscribeNewsletter)

	// Contact form
	r.Post("/api/support", support.Submit)

	// Plan catalog is public, pricing is shown before sign up
	r.Get("/api/plans", billing.Plans)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		// Auth session management
		r.Post("/api/auth/logout", auth.Logout)
		r.Post("/api/auth/logout-others", auth.LogoutOthers)
		r.Post("/api/auth/change-password", auth.ChangePassword)
		r.Get("/api/auth/me", auth.Me)
		r.Post("/api/auth/mfa/enroll", auth.EnrollMFA)
		r.Post("/api/auth/mfa/confirm", auth.ConfirmMFA)
		r.Post("/api/auth/mfa/disable", auth.DisableMFA)

		// Pledge profile
		r.Get("/api/profile", patron.Profile)
		r.Put("/api/profile", patron.UpdateProfile)
		r.Post("/api/profile/avatar", patron.UploadAvatar)
		r.Delete("/api/profile/avatar", patron.RemoveAvatar)
		r.Post("/api/profile/memories", patron.AddMemory)
		r.Delete("/api/profile/memories", patron.RemoveMemory)

		// Wishes
		r.Post("/api/wishes", wish.Create)
		r.Get("/api/wishes", wish.List)
		r.Put("/api/wishes/{id}", wish.Update)
		r.Delete("/api/wishes/{id}", wish.Delete)

		// Nominees
		r.Post("/api/nominees", nominee.Create)
		r.Get("/api/nominees", nominee.List)
		r.Put("/api/nominees/{id}", nominee.Update)
		r.Delete("/api/nominees/{id}", nominee.Delete)

		// Letters
		r.Post("/api/letters", letter.Create)
		r.Get("/api/letters", letter.List)
		r.Put("/api/letters/{id}", letter.Update)
		r.Delete("/api/letters/{id}", letter.Delete)

		// Document vault
		r.Post("/api/documents", document.Upload)
		r.Get("/api/documents", document.List)
		r.Get("/api/documents/{id}/download", document.DownloadURL)
		r.Delete("/api/documents/{id}", document.Delete)

		// Billing
		r.Get("/api/billing/plan", billing.CurrentPlan)
		r.Post("/api/billing/orders", billing.CreateOrder)
		r.Post("/api/billing/verify", billing.VerifyPayment)
		r.Get("/api/billing/history", billing.History)

		// Account
		r.Delete("/api/account", account.Delete)
	})

	// ============================================================================
	// ADMIN ROUTES
	// ============================================================================

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)

		r.Get("/api/admin/patrons/recent", admin.RecentPatrons)
		r.Get("/api/admin/tickets", admin.OpenTickets)
		r.Post("/api/admin/tickets/{id}/close", admin.CloseTicket)
	})

	return r
}
