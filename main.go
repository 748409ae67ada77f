package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"backend/internal/cart"
	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
)

func main() {
	config.Load()
	setupLogger()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}

	db := client.Database(config.AppEnv.DBName)
	log.Info().Str("db", db.Name()).Msg("mongodb connected")

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Warn().Err(err).Msg("product index warning")
	}
	if err := database.EnsureOptionIndexes(db); err != nil {
		log.Warn().Err(err).Msg("option index warning")
	}
	if err := database.EnsureCustomerIndexes(db); err != nil {
		log.Warn().Err(err).Msg("customer index warning")
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Warn().Err(err).Msg("order index warning")
	}
	if err := database.EnsureRefreshTokenIndexes(db); err != nil {
		log.Warn().Err(err).Msg("refresh token index warning")
	}

	handlers.SetUploadRoot(config.AppEnv.UploadDir)

	rules := cart.DefaultRules()
	rules.DeliveryFeeCents = config.AppEnv.DeliveryFeeCents

	jwtSecret := config.AppEnv.JWTSecret
	accessTTL := config.AppEnv.AccessTokenTTL
	refreshTTL := config.AppEnv.RefreshTokenTTL

	r := gin.Default()
	r.Static("/public", "./public")

	loginLimit := middleware.RateLimit(rate.Every(2*time.Second), 5)

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/:id", handlers.GetProduct(db))
	r.GET("/options", handlers.GetOptions(db))
	r.GET("/store/status", handlers.GetStoreStatus(db))
	r.POST("/cart/quote", handlers.Quote(db, jwtSecret, rules))
	r.POST("/orders", handlers.CreateOrder(db, jwtSecret, config.AppEnv.WhatsAppNumber, rules))
	r.GET("/orders", middleware.CustomerAuth(jwtSecret), handlers.GetOrders(db))

	r.POST("/auth/register", handlers.Register(db, jwtSecret, accessTTL, refreshTTL))
	r.POST("/auth/login", loginLimit, handlers.Login(db, jwtSecret, accessTTL, refreshTTL))
	r.POST("/auth/refresh", handlers.Refresh(db, jwtSecret, accessTTL, refreshTTL))
	r.POST("/auth/logout", handlers.Logout(db))
	r.GET("/auth/me", middleware.CustomerAuth(jwtSecret), handlers.GetMe(db))

	user := r.Group("/user")
	user.Use(middleware.CustomerAuth(jwtSecret))
	{
		user.PUT("/profile", handlers.UpdateProfile(db))
		user.GET("/points", handlers.GetPoints(db))
	}

	r.POST("/admin/login", loginLimit, handlers.AdminLogin(jwtSecret, config.AppEnv.AdminPassword, accessTTL))
	r.POST("/admin/logout", handlers.AdminLogout())

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(jwtSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/products", handlers.GetAllProducts(db))
		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))
		admin.POST("/products/:id/image", handlers.UploadProductImage(db))

		admin.GET("/options", handlers.GetAllOptions(db))
		admin.POST("/options", handlers.CreateOption(db))
		admin.PUT("/options/:id", handlers.UpdateOption(db))
		admin.PATCH("/options/:id/toggle", handlers.ToggleOption(db))
		admin.DELETE("/options/:id", handlers.DeleteOption(db))

		admin.GET("/orders", handlers.GetAdminOrders(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))

		admin.POST("/store/status", handlers.SetStoreStatus(db))
	}

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogger() {
	level, err := zerolog.ParseLevel(config.AppEnv.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if config.AppEnv.PrettyLog {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
