package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"tantawan/internal/config"
	"tantawan/internal/database"
	"tantawan/internal/handlers"
	"tantawan/internal/middleware"
	"tantawan/internal/notify"
	"tantawan/internal/orders"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			log.Println("mongo disconnect:", err)
		}
	}()

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}
	if err := database.EnsureMenuIndexes(db); err != nil {
		log.Printf("⚠️ menu index warning: %v", err)
	}
	if err := database.EnsureNewsletterIndexes(db); err != nil {
		log.Printf("⚠️ newsletter index warning: %v", err)
	}

	var mailer notify.Mailer
	if config.AppEnv.SMTPUsername != "" && config.AppEnv.SMTPPassword != "" {
		mailer = notify.NewSMTPMailer(
			config.AppEnv.SMTPHost,
			config.AppEnv.SMTPPort,
			config.AppEnv.SMTPUsername,
			config.AppEnv.SMTPPassword,
		)
	} else {
		log.Println("[NOTIFY] [WARN] SMTP credentials not configured, notifications will be skipped")
	}

	dispatcher := notify.NewDispatcher(
		mailer,
		config.AppEnv.RestaurantEmail,
		config.AppEnv.PrinterEmail,
		config.AppEnv.NotifyTimeout,
	)

	store := orders.NewMongoStore(db)
	orderService := orders.NewService(store, dispatcher)

	r := gin.Default()
	r.Use(middleware.CORS(config.AppEnv.CORSOrigins))

	r.GET("/", handlers.Root())
	r.GET("/health", handlers.Health())

	r.GET("/menu", handlers.GetMenu(db))
	r.GET("/menu/item/:id", handlers.GetMenuItem(db))
	r.GET("/menu/:category", handlers.GetMenuByCategory(db))

	r.POST("/orders", handlers.CreateOrder(orderService))
	r.GET("/orders", handlers.GetOrders(orderService))
	r.GET("/orders/number/:number", handlers.GetOrderByNumber(orderService))
	r.GET("/orders/customer/:phone", handlers.GetCustomerOrders(orderService))
	r.GET("/orders/:id", handlers.GetOrder(orderService))
	r.PUT("/orders/:id/status", handlers.UpdateOrderStatus(orderService))

	r.POST("/newsletter/subscribe", handlers.SubscribeNewsletter(db))
	r.DELETE("/newsletter/subscribe/:email", handlers.UnsubscribeNewsletter(db))
	r.GET("/newsletter/subscriptions/count", handlers.NewsletterSubscriptionCount(db))

	r.POST("/admin/login", handlers.AdminLogin(
		config.AppEnv.AdminEmail,
		config.AppEnv.AdminPasswordHash,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
	))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/orders", handlers.AdminListOrders(orderService))
		admin.GET("/orders/pending", handlers.AdminPendingOrders(orderService))
		admin.GET("/orders/today", handlers.AdminTodayOrders(orderService))
		admin.GET("/orders/search", handlers.AdminSearchOrders(orderService))
		admin.GET("/orders/stats", handlers.AdminOrderStats(orderService))
		admin.PUT("/orders/:id/status", handlers.AdminForceOrderStatus(orderService))
		admin.DELETE("/orders/:id", handlers.AdminDeleteOrder(orderService))

		admin.POST("/menu", handlers.CreateMenuItem(db))
		admin.GET("/newsletter/subscriptions", handlers.ListNewsletterSubscriptions(db))
	}

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}
