// /cmd/api/main.go
package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"

	"github.com/copiiworld/memory-box/internal/config"
	"github.com/copiiworld/memory-box/internal/database"
	"github.com/copiiworld/memory-box/internal/handler"
	"github.com/copiiworld/memory-box/internal/middleware"
	"github.com/copiiworld/memory-box/internal/notify"
	"github.com/copiiworld/memory-box/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando só o ambiente.")
	}

	cfg := config.Load()

	database.ConnectDB()
	database.SeedAdmin()
	database.SeedStock()
	database.SeedSettings()

	ordersHub := notify.NewHub("orders")
	stockHub := notify.NewHub("stock")

	authHandler := &handler.AuthHandler{JWTSecret: cfg.JWTSecret}
	orderHandler := &handler.OrderHandler{
		Cfg:       cfg,
		OrdersHub: ordersHub,
		StockHub:  stockHub,
		Webhooks:  service.NewWebhookClient(),
		Sessions:  sessions.NewCookieStore([]byte(cfg.SessionKey)),
	}
	stockHandler := &handler.StockHandler{StockHub: stockHub}
	purchaseHandler := &handler.PurchaseHandler{StockHub: stockHub}
	settingsHandler := &handler.SettingsHandler{}
	variantHandler := &handler.VariantHandler{}
	statsHandler := &handler.StatsHandler{}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	// Recortes e QR codes gerados ficam acessíveis direto do disco.
	router.Static("/media", cfg.MediaDir)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})
		api.POST("/auth/login", authHandler.Login)

		// Fluxo público do cliente.
		api.POST("/orders", orderHandler.CreateOrder)
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.POST("/orders/:id/send", orderHandler.SendOrder)
		api.POST("/orders/:id/images", orderHandler.SubmitImages)
		api.GET("/orders/:id/images", orderHandler.ListImages)

		api.GET("/settings/prices", settingsHandler.GetPrices)
		api.GET("/settings/variants/public", variantHandler.ListPublicVariants)
		api.GET("/settings/background-media", settingsHandler.ListBackgroundMedia)

		// Painel admin, atrás do JWT.
		admin := api.Group("/")
		admin.Use(middleware.JWTProtected(cfg.JWTSecret))
		{
			admin.GET("/orders", orderHandler.ListOrders)
			admin.PATCH("/orders/:id", orderHandler.UpdateOrder)
			admin.DELETE("/orders/:id", orderHandler.DeleteOrder)

			admin.GET("/stock", stockHandler.ListStock)
			admin.PATCH("/stock/:id", stockHandler.SetStock)
			admin.POST("/stock/add", stockHandler.AddStock)
			admin.GET("/packaging", stockHandler.ListPackaging)
			admin.PATCH("/packaging/:id", stockHandler.UpdatePackaging)

			admin.GET("/purchases", purchaseHandler.ListPurchases)
			admin.POST("/purchases", purchaseHandler.CreatePurchase)
			admin.PATCH("/purchases/:id", purchaseHandler.UpdatePurchase)
			admin.DELETE("/purchases/:id", purchaseHandler.DeletePurchase)

			admin.GET("/estadisticas", statsHandler.GetStats)

			admin.PATCH("/settings/prices", settingsHandler.UpdatePrices)
			admin.GET("/settings/costs", settingsHandler.GetCosts)
			admin.PATCH("/settings/costs", settingsHandler.UpdateCosts)

			admin.POST("/settings/background-media", settingsHandler.CreateBackgroundMedia)
			admin.DELETE("/settings/background-media/:id", settingsHandler.DeleteBackgroundMedia)

			admin.GET("/settings/variants", variantHandler.ListVariants)
			admin.POST("/settings/variants", variantHandler.CreateVariant)
			admin.PATCH("/settings/variants/:id", variantHandler.UpdateVariant)
			admin.DELETE("/settings/variants/:id", variantHandler.DeleteVariant)
			admin.POST("/settings/variants/:id/images", variantHandler.AddVariantImage)
			admin.DELETE("/settings/variants/:id/images/:imageId", variantHandler.DeleteVariantImage)
		}
	}

	// Notificações do painel (sem auth: só avisam "recarregue").
	router.GET("/ws/orders", ordersHub.Handler())
	router.GET("/ws/stock", stockHub.Handler())

	log.Printf("Servidor rodando na porta %s", cfg.Port)
	router.Run(":" + cfg.Port)
}
