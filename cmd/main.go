package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Frisk239/minpaixinyu/config"
	"github.com/Frisk239/minpaixinyu/database"
	_ "github.com/Frisk239/minpaixinyu/docs" // Swagger docs
	"github.com/Frisk239/minpaixinyu/internal/controller"
	"github.com/Frisk239/minpaixinyu/internal/logger"
	"github.com/Frisk239/minpaixinyu/internal/model"
	"github.com/Frisk239/minpaixinyu/internal/repository"
	"github.com/Frisk239/minpaixinyu/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Minpai Xinyu API
// @version 1.0
// @description Fujian regional-culture quiz and exploration backend: session-authenticated quizzes, city exploration tracking, account management and an AI culture assistant.
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewQuestionRepository,
			repository.NewAnswerRecordRepository,
			repository.NewExplorationRepository,
		),

		// Services Layer
		fx.Provide(
			// AccountService runs the account-deletion transaction itself,
			// so it takes the *gorm.DB alongside its repository.
			func(userRepo repository.UserRepository, db *gorm.DB) service.AccountService {
				return service.NewAccountService(userRepo, db)
			},
			service.NewQuizService,
			service.NewProgressService,
			service.NewChatService,
		),

		// API Controllers Layer
		fx.Provide(
			controller.NewAuthController,
			controller.NewAccountController,
			controller.NewQuizController,
			controller.NewProgressController,
			controller.NewChatController,
		),

		// Invokers - Functions that are executed by Fx
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedQuestions),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	r := gin.New()

	// Route gin's request log through zerolog.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	// Signed cookie sessions; the secret is the sole tamper protection.
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 7 * 24 * 60 * 60, HttpOnly: true})
	r.Use(sessions.Sessions(controller.SessionName, store))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *controller.AuthController,
	accountCtrl *controller.AccountController,
	quizCtrl *controller.QuizController,
	progressCtrl *controller.ProgressController,
	chatCtrl *controller.ChatController,
) {
	// Authentication endpoints
	router.POST("/register", authCtrl.Register)
	router.POST("/login", authCtrl.Login)
	router.GET("/logout", authCtrl.Logout)

	// Public API: these degrade gracefully without a session.
	api := router.Group("/api")
	{
		api.GET("/check-login", authCtrl.CheckLogin)
		api.GET("/check-explored", progressCtrl.CheckExplored)
		api.GET("/get-explorations", progressCtrl.GetExplorations)
	}

	// Protected API
	authed := router.Group("/api", controller.RequireAuth())
	{
		authed.GET("/get-questions", quizCtrl.GetQuestions)
		authed.POST("/submit-answer", quizCtrl.SubmitAnswer)
		authed.GET("/answer-history", quizCtrl.GetAnswerHistory)
		authed.POST("/mark-explored", progressCtrl.MarkExplored)
		authed.GET("/statistics", progressCtrl.GetStatistics)
		authed.POST("/change-password", accountCtrl.ChangePassword)
		authed.POST("/delete-account", accountCtrl.DeleteAccount)
		authed.POST("/chat", chatCtrl.Chat)
	}

	// Avatar endpoints keep their original top-level paths.
	router.POST("/upload-avatar", controller.RequireAuth(), accountCtrl.UploadAvatar)
	router.GET("/get-avatar", controller.RequireAuth(), accountCtrl.GetAvatar)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Minpai Xinyu server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.AnswerRecord{},
		&model.CityExploration{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

// SeedQuestions loads the starter question bank when the table is empty.
func SeedQuestions(questionRepo repository.QuestionRepository) error {
	count, err := questionRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []model.Question{
		{
			QuestionText:  "福建省的省会是哪个城市？",
			OptionA:       "厦门市",
			OptionB:       "福州市",
			OptionC:       "泉州市",
			OptionD:       "漳州市",
			CorrectAnswer: "B",
		},
		{
			QuestionText:  "福建土楼主要分布在哪两个地级市？",
			OptionA:       "福州市和厦门市",
			OptionB:       "泉州市和漳州市",
			OptionC:       "龙岩市和漳州市",
			OptionD:       "南平市和宁德市",
			CorrectAnswer: "C",
		},
		{
			QuestionText:  "武夷山位于福建省的哪个地级市？",
			OptionA:       "南平市",
			OptionB:       "三明市",
			OptionC:       "宁德市",
			OptionD:       "龙岩市",
			CorrectAnswer: "A",
		},
		{
			QuestionText:  "鼓浪屿属于福建省哪个城市？",
			OptionA:       "泉州市",
			OptionB:       "漳州市",
			OptionC:       "厦门市",
			OptionD:       "福州市",
			CorrectAnswer: "C",
		},
		{
			QuestionText:  "福建省有多少个地级市？",
			OptionA:       "8个",
			OptionB:       "9个",
			OptionC:       "10个",
			OptionD:       "11个",
			CorrectAnswer: "B",
		},
	}
	for i := range seed {
		if err := questionRepo.Create(&seed[i]); err != nil {
			log.Error().Err(err).Msg("Failed to seed question bank")
			return err
		}
	}
	log.Info().Int("count", len(seed)).Msg("Seeded starter question bank")
	return nil
}
