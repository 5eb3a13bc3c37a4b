package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ameedanxari/menumaker-backend/api/controllers"
	"github.com/ameedanxari/menumaker-backend/api/middleware"
	"github.com/ameedanxari/menumaker-backend/internal/cart"
	checkoutsvc "github.com/ameedanxari/menumaker-backend/internal/checkout"
	"github.com/ameedanxari/menumaker-backend/internal/coupons"
	"github.com/ameedanxari/menumaker-backend/internal/orders"
	"github.com/ameedanxari/menumaker-backend/internal/payments"
	"github.com/ameedanxari/menumaker-backend/internal/referrals"
	"github.com/ameedanxari/menumaker-backend/pkg/config"
	"github.com/ameedanxari/menumaker-backend/pkg/db"
	"github.com/ameedanxari/menumaker-backend/pkg/logger"
	"github.com/ameedanxari/menumaker-backend/pkg/metrics"
	"github.com/ameedanxari/menumaker-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   redis.Pinger
	Metrics *metrics.DomainMetrics

	Gatherer prometheus.Gatherer

	CartRepo        cart.Repository
	CouponService   coupons.Service
	OrdersService   orders.Service
	PaymentsService payments.Service
	ReferralsRepo   referrals.Repository
	CheckoutService checkoutsvc.Service

	// ReferralRewardCents is the credit granted per applied referral code.
	ReferralRewardCents int
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(d.Logger),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger, d.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(d.Config))
		r.Get("/ready", controllers.HealthReady(d.Config, d.Logger, d.DB, d.Redis))
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(d.CartRepo, d.Logger))
			r.Get("/total", controllers.CartTotal(d.CartRepo, d.Logger))
			r.Put("/items", controllers.CartAdd(d.CartRepo, d.Logger))
			r.Patch("/items", controllers.CartUpdateQuantity(d.CartRepo, d.Logger))
			r.Delete("/items/{dishId}", controllers.CartRemove(d.CartRepo, d.Logger))
			r.Delete("/", controllers.CartClear(d.CartRepo, d.Logger))
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Get("/", controllers.CouponList(d.CouponService, d.Logger))
			r.Post("/", controllers.CouponCreate(d.CouponService, d.Logger))
			r.Delete("/{couponId}", controllers.CouponDelete(d.CouponService, d.Logger))
			r.Post("/validate", controllers.CouponValidate(d.CouponService, d.Logger))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(d.OrdersService, d.Logger))
			r.Get("/{orderId}", controllers.OrderDetail(d.OrdersService, d.Logger))
			r.Patch("/{orderId}/status", controllers.OrderUpdateStatus(d.OrdersService, d.Logger))
		})

		r.Route("/referrals", func(r chi.Router) {
			r.Get("/account", controllers.ReferralAccount(d.ReferralsRepo, d.ReferralRewardCents, d.Logger))
			r.Post("/apply", controllers.ReferralApply(d.ReferralsRepo, d.ReferralRewardCents, d.Logger))
			r.Get("/history", controllers.ReferralHistory(d.ReferralsRepo, d.ReferralRewardCents, d.Logger))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/processors", controllers.ProcessorList(d.PaymentsService, d.Logger))
			r.Post("/processors/connect", controllers.ProcessorConnect(d.PaymentsService, d.Logger))
			r.Get("/payouts", controllers.PayoutList(d.PaymentsService, d.Logger))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/quote", controllers.CheckoutQuote(d.CheckoutService, d.Logger))
			r.Post("/", controllers.CheckoutPlace(d.CheckoutService, d.Logger))
		})
	})

	return r
}
