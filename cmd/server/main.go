package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"

	config "github.com/brandsync/api/configs"
	"github.com/brandsync/api/internal/api/handlers"
	"github.com/brandsync/api/internal/api/middleware"
	job "github.com/brandsync/api/internal/jobs"
	"github.com/brandsync/api/internal/queue"
	"github.com/brandsync/api/internal/repository"
	"github.com/brandsync/api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	contentPostRepo := repository.NewContentPostRepository(db)
	retailPartnerRepo := repository.NewRetailPartnerRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)
	postAssignmentRepo := repository.NewPostAssignmentRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	publishHistoryRepo := repository.NewPublishHistoryRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	r2Service := service.NewR2Service(*cfg)
	contentService := service.NewContentService(db, contentPostRepo, mediaAssetRepo, r2Service)
	targetingService := service.NewTargetingService(retailPartnerRepo)
	assignmentService := service.NewAssignmentService(contentPostRepo, postAssignmentRepo, settingsRepo, targetingService)
	partnerService := service.NewPartnerService(retailPartnerRepo)
	inviteService := service.NewInviteService(inviteRepo, retailPartnerRepo)
	platformService := service.NewPlatformService(*cfg, retailPartnerRepo, socialAccountRepo)
	facebookService := service.NewFacebookService(*cfg, retailPartnerRepo, socialAccountRepo)
	googleService := service.NewGoogleService(*cfg, retailPartnerRepo, socialAccountRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)
	app.Get("/logout", auth.Logout)

	platform := handlers.NewPlatformHandler(platformService, facebookService, googleService, *cfg)
	app.Get("/facebook-auth/oauth-url/:partnerId", platform.GetAuthURL)
	app.Get("/facebook-auth/callback", platform.FacebookCallbackHandler)
	app.Get("/google-auth/callback", platform.GoogleCallbackHandler)

	partner := handlers.NewPartnerHandler(partnerService, inviteService)
	app.Post("/invites/accept/:token", partner.AcceptInvite)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(*cfg, userService)
	api.Get("/user/info", user.UserInfo)
	api.Post("/user/remove", user.RemoveUser)

	settings := handlers.NewSettingsHandler(settingsService)
	api.Get("/settings/info", settings.GetSettings)
	api.Post("/settings/update", settings.SaveSettings)

	apiKeys := handlers.NewKeysHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveKey)

	content := handlers.NewContentHandler(contentService, assignmentService, client)
	api.Post("/content-posts/create", content.CreatePost)
	api.Get("/content-posts", content.ListPosts)
	api.Post("/content-posts/update", content.UpdatePost)
	api.Post("/content-posts/remove", content.RemovePost)
	api.Post("/content-posts/evergreen-schedule", content.ScheduleEvergreen)
	api.Get("/assignments", content.ListAssignments)

	api.Post("/partners/create", partner.CreatePartner)
	api.Get("/partners", partner.ListPartners)
	api.Post("/partners/update", partner.UpdatePartner)
	api.Post("/partners/remove", partner.RemovePartner)
	api.Post("/invites/new", partner.CreateInvite)
	api.Get("/invites", partner.ListInvites)

	api.Get("/accounts", platform.ListSocialAccounts)
	api.Delete("/social-accounts/:id", platform.DeleteSocialAccount)

	// cron jobs
	refreshTokenJob := job.NewTokenRefreshJob(socialAccountRepo, inviteRepo, facebookService, googleService)

	// queue
	queueW := queue.NewQueue(contentPostRepo, postAssignmentRepo, socialAccountRepo, publishHistoryRepo, facebookService, googleService)

	c := cron.New()
	c.AddFunc("@every 00h10m00s", refreshTokenJob.RefreshTokens)
	c.AddFunc("@every 01h00m00s", refreshTokenJob.RemoveExpiredInvites)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishAssignment, queueW.HandlePublishAssignmentTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
