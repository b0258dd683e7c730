package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"turbo-admin/internal/config"
	"turbo-admin/internal/email"
	"turbo-admin/internal/media"
	"turbo-admin/internal/service"
	"turbo-admin/internal/settings"
	"turbo-admin/internal/store"
	"turbo-admin/internal/transport/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

var startTime time.Time

func main() {
	startTime = time.Now()
	cfg := config.Load()
	store.InitDB(cfg)
	db := store.GetDB()

	cache := settings.NewTTLCache()
	gateway := settings.NewGateway(db, cache)
	log.Println("✅ [SETTINGS] Configuration gateway initialized")

	staging, err := media.NewStaging(cfg.UploadDir)
	if err != nil {
		log.Fatalf("❌ [MEDIA] Failed to create staging dir: %v", err)
	}
	syncer := media.NewSyncer(gateway, media.NewClient(), staging)
	log.Printf("✅ [MEDIA] Staging at %s, sync ready", cfg.UploadDir)

	mailer := email.NewClient()

	blogService := service.NewBlogService(db, syncer)
	accountService := service.NewAccountService(db, syncer)
	newsletterService := service.NewNewsletterService(db, gateway, mailer, cfg.PublicURL)
	handler := http.NewHandler(blogService, accountService, newsletterService, gateway, staging, syncer)
	log.Println("✅ [SERVICE] Services & Handler initialized")

	app := fiber.New(fiber.Config{
		AppName:      "turbo-admin",
		ErrorHandler: customErrorHandler,
		BodyLimit:    25 * 1024 * 1024, // image uploads
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With,X-User-ID,X-User-Roles,X-Service-Token,Cache-Control",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${ua}\n",
	}))

	// 1. Admin routes (via Gateway + admin role)
	admin := app.Group("/admin", gatewayAuth(), adminRoleAuth())

	admin.Get("/settings/:kind", handler.GetSettings)
	admin.Put("/settings/:kind", handler.UpdateSettings)
	admin.Get("/settings/editor/init", handler.GetEditorInit)
	admin.Post("/settings/email/test", handler.SendTestEmail)

	admin.Get("/posts", handler.ListPosts)
	admin.Get("/posts/:id", handler.GetPost)
	admin.Post("/posts", handler.CreatePost)
	admin.Put("/posts/:id", handler.UpdatePost)
	admin.Delete("/posts/:id", handler.DeletePost)
	admin.Post("/posts/:id/publish", handler.PublishPost)
	admin.Post("/posts/:id/featured-image", handler.UploadFeaturedImage)
	admin.Post("/posts/:id/gallery", handler.UploadGalleryImage)

	admin.Get("/categories", handler.ListCategories)
	admin.Post("/categories", handler.SaveCategory)
	admin.Delete("/categories/:id", handler.DeleteCategory)
	admin.Get("/tags", handler.ListTags)
	admin.Post("/tags", handler.SaveTag)
	admin.Delete("/tags/:id", handler.DeleteTag)

	admin.Get("/users", handler.ListUsers)
	admin.Get("/users/:id", handler.GetUser)
	admin.Post("/users", handler.CreateUser)
	admin.Put("/users/:id", handler.UpdateUser)
	admin.Delete("/users/:id", handler.DeleteUser)
	admin.Post("/users/:id/profile-picture", handler.UploadProfilePicture)

	admin.Get("/subscribers", handler.ListSubscribers)
	admin.Get("/newsletters", handler.ListNewsletters)
	admin.Post("/newsletters", handler.SaveNewsletter)
	admin.Delete("/newsletters/:id", handler.DeleteNewsletter)
	admin.Post("/newsletters/:id/send", handler.SendNewsletter)
	log.Println("✅ [ROUTES] Registered admin routes: /admin/*")

	// 2. Public newsletter routes (no auth, linked from emails)
	public := app.Group("/v1/newsletter")
	public.Post("/subscribe", handler.Subscribe)
	public.Get("/confirm", handler.ConfirmSubscription)
	public.Get("/unsubscribe", handler.Unsubscribe)
	public.Post("/unsubscribe", handler.Unsubscribe)
	log.Println("✅ [ROUTES] Registered public routes: /v1/newsletter/*")

	// 3. Service-to-service routes
	svc := app.Group("/svc/v1", serviceAuth(cfg))
	svc.Get("/settings/editor/init", handler.GetEditorInit)
	log.Println("✅ [ROUTES] Registered service routes: /svc/v1/*")

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		uptime := time.Since(startTime).Round(time.Second)
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "turbo-admin",
			"uptime":    uptime.String(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	log.Println("✅ [ROUTES] Registered /health")

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("🛑 [SHUTDOWN] Graceful shutdown initiated...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ [SHUTDOWN] Error: %v", err)
		}
	}()

	log.Printf("🚀 turbo-admin starting...")
	log.Printf("   🔗 Listening on port: %s", cfg.ServerPort)
	log.Printf("   🌐 CORS allowed origins: %s", cfg.AllowedOrigins)
	log.Printf("   📦 Upload staging dir: %s", cfg.UploadDir)
	log.Println("✅ Server ready.")

	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("❌ [STARTUP] Server failed to start: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var errMsg string
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		errMsg = e.Message
	} else {
		errMsg = err.Error()
	}
	log.Printf("🔥 [ERROR] [%d] %s %s → %v | IP=%s | UA=%s",
		code,
		c.Method(),
		c.Path(),
		errMsg,
		c.IP(),
		c.Get("User-Agent"),
	)
	return c.Status(code).JSON(fiber.Map{
		"error":      "something went wrong",
		"request_id": c.Get("X-Request-ID"),
	})
}

func serviceAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("X-Service-Token")
		if token == "" {
			authHeader := c.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if token != cfg.ServiceExpectedToken {
			log.Printf("[SERVICE-AUTH] ❌ REJECTED | IP=%s | Path=%s", c.IP(), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized: invalid or missing service token",
			})
		}
		return c.Next()
	}
}

func gatewayAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			log.Printf("[GATEWAY-AUTH] ❌ REJECTED | IP=%s | Path=%s", c.IP(), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized: missing user context from Gateway",
			})
		}
		return c.Next()
	}
}

func adminRoleAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRolesHeader := c.Get("X-User-Roles")
		if userRolesHeader == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: missing user roles from Gateway",
			})
		}
		for _, role := range strings.Split(userRolesHeader, ",") {
			if strings.ToLower(strings.TrimSpace(role)) == "admin" {
				return c.Next()
			}
		}
		log.Printf("[ADMIN-AUTH] ❌ REJECTED (no admin) | Roles=%q | Path=%s",
			userRolesHeader, c.Path())
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden: admin role required",
		})
	}
}
