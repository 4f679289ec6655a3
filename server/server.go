package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orders-api/config"
	"orders-api/middleware"
	"orders-api/repositories"
	"orders-api/routes"
	"orders-api/services"
	"orders-api/telemetry"
	"orders-api/utils"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "orders-api"

// App is a fully wired router together with the resources it holds.
type App struct {
	Router *gin.Engine
	close  []func()
}

func (a *App) Close() {
	for i := len(a.close) - 1; i >= 0; i-- {
		a.close[i]()
	}
}

// Build opens the configured store and Redis, then wires services and
// routes on a fresh engine.
func Build(cfg *config.Config) (*App, error) {
	store, err := repositories.Open(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{close: []func(){store.Close}}

	var limiter middleware.Limiter = middleware.NewMemoryLimiter(cfg.LoginRatePerMinute, cfg.LoginRateBurst)
	if redisClient := config.ConnectRedis(cfg); redisClient != nil {
		limiter = middleware.NewRedisLimiter(redisClient, cfg.LoginRatePerMinute)
		app.close = append(app.close, func() { config.CloseRedis(redisClient) })
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)
	app.Router = NewRouter(cfg, routes.Dependencies{
		AuthService:  services.NewAuthService(store.Users, tokens),
		UserService:  services.NewUserService(store.Users),
		OrderService: services.NewOrderService(store.Orders),
		LoginLimiter: limiter,
	})
	return app, nil
}

// NewRouter trusts X-Forwarded-For only from cfg.TrustedProxies; with none
// configured ClientIP is the socket peer.
func NewRouter(cfg *config.Config, deps routes.Dependencies) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Printf("invalid TRUSTED_PROXIES %v: %v, trusting none", cfg.TrustedProxies, err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery())
	if !cfg.IsProduction() {
		router.Use(gin.Logger())
	}
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORSMiddleware(cfg.OriginURL))

	routes.SetupRoutes(router, deps)
	return router
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
func Run(cfg *config.Config) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	shutdownTelemetry := telemetry.Setup(serviceName)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	app, err := Build(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(app.Router, serviceName),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s", srv.Addr)
		log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	log.Println("Server stopped")
	return nil
}
