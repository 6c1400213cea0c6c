package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"career-quest-system/handlers"
	"career-quest-system/middleware"
	"career-quest-system/models"
	"career-quest-system/services"
	"career-quest-system/utils"
	"career-quest-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // 50MB, resource attachments only
	})

	// 🔐 GLOBAL: only Gateway requests allowed, no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID, X-User-Roles, X-Service-Token, X-Device-ID",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	// TranslateError makes unique-key conflicts surface as
	// gorm.ErrDuplicatedKey, which the completion ledger relies on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.CareerUser{},
		&models.UserProgress{},
		&models.Quest{},
		&models.QuestCompletion{},
		&models.CareerPath{},
		&models.Roadmap{},
		&models.RoadmapStep{},
		&models.Resource{},
		&models.BadgeType{},
		&models.UserBadge{},
		&models.AdvisorMessage{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	progressionService := services.NewProgressionService(db)
	questService := services.NewQuestService(db)
	careerService := services.NewCareerService(db)
	roadmapService := services.NewRoadmapService(db)
	resourceService := services.NewResourceService(db)
	badgeService := services.NewBadgeService(db)

	if err := badgeService.SeedBadgeTypes(); err != nil {
		log.Fatal("failed to seed badge types:", err)
	}
	if err := careerService.SeedDefaultCareers(); err != nil {
		log.Fatal("failed to seed careers:", err)
	}
	if err := roadmapService.SeedDefaultRoadmaps(); err != nil {
		log.Fatal("failed to seed roadmaps:", err)
	}
	if err := questService.SeedDefaultQuests(); err != nil {
		log.Fatal("failed to seed quests:", err)
	}

	// --- Advisor (hosted LLM) ---
	advisorBaseURL := os.Getenv("ADVISOR_API_URL")
	if advisorBaseURL == "" {
		advisorBaseURL = "https://generativelanguage.googleapis.com"
	}
	advisorModel := os.Getenv("ADVISOR_MODEL")
	if advisorModel == "" {
		advisorModel = "gemini-2.0-flash"
	}
	advisorKey := os.Getenv("ADVISOR_API_KEY")
	if advisorKey == "" {
		log.Fatal("ADVISOR_API_KEY environment variable not set")
	}
	advisorClient := services.NewAdvisorClient(advisorBaseURL, advisorModel, advisorKey)
	advisorService := services.NewAdvisorService(db, advisorClient)

	// --- Profile service (identity collaborator) ---
	profileServiceURL := os.Getenv("PROFILE_SERVICE_URL")
	if profileServiceURL == "" {
		log.Fatal("PROFILE_SERVICE_URL environment variable not set")
	}
	serviceToken := os.Getenv("CAREER_SERVICE_TOKEN")
	profileClient := services.NewProfileServiceClient(profileServiceURL, serviceToken)

	syncWorker := workers.NewProfileSyncWorker(db, progressionService, profileServiceURL, "/api/v1/public/profiles", serviceToken)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	syncWorker.Start(ctx)
	questService.StartQuestScheduler()

	// ✅ Routes: enforced Gateway auth, user context where required
	handlers.SetupProgressionRoutes(app, progressionService, questService, badgeService)
	handlers.SetupQuestRoutes(app, questService)
	handlers.SetupCatalogRoutes(app, careerService, roadmapService, resourceService)
	handlers.SetupAdvisorRoutes(app, advisorService)

	// SSE stream authenticates via query params (EventSource can't set headers)
	app.Get("/user/progress/stream", middleware.SSEAuthMiddleware(profileClient), progressionService.StreamUserProgressSSE)

	app.Static("/uploads", "./uploads")

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Profile Sync Worker running")
	log.Println("✅ Quest scheduler running (hourly slate refresh)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
