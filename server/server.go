package server

import (
	"net/http"

	"task-server/auth"
	"task-server/confs"
	"task-server/db"
	"task-server/handlers"
	httpHandler "task-server/handlers/http"
	"task-server/repositories"
	"task-server/usecases"
	"task-server/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	app *gin.Engine
	db  db.Database
	cfg *confs.Config
}

func NewServer(cfg *confs.Config, database db.Database) *Server {
	gin.SetMode(cfg.GinMode)
	s := &Server{
		app: gin.Default(),
		db:  database,
		cfg: cfg,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.app
}

func (s *Server) setupRoutes() {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	if len(s.cfg.AllowedOrigins) > 0 {
		config.AllowOrigins = s.cfg.AllowedOrigins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	taskRepo := repositories.NewTaskPgRepository(s.db)

	// Session and credential primitives
	issuer := auth.NewIssuer(s.cfg.JWTSecret, s.cfg.RegistrationTokenTTL, s.cfg.LoginTokenTTL)
	credentials := auth.NewCredentials(s.cfg.BcryptCost)

	// WebSocket manager feeding task events to connected users
	feed := handlers.NewTaskFeed(ws.NewManager())

	// Initialize use cases
	userUseCase := usecases.NewUserUseCase(userRepo, credentials)
	taskUseCase := usecases.NewTaskUseCase(taskRepo, userRepo, feed)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(userUseCase, issuer)
	taskHandler := httpHandler.NewTaskHandler(taskUseCase)
	requireAuth := handlers.RequireAuth(issuer)

	api := s.app.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", requireAuth, authHandler.Me)
			authRoutes.PUT("/update", requireAuth, authHandler.UpdateProfile)
			authRoutes.PUT("/update-password", requireAuth, authHandler.UpdatePassword)
			authRoutes.GET("/allusers", authHandler.GetAllUsers)
		}

		tasks := api.Group("/tasks", requireAuth)
		{
			tasks.POST("/create", taskHandler.CreateTask)
			tasks.GET("", taskHandler.GetMyTasks)
			tasks.GET("/filter", taskHandler.FilterTasks)
			tasks.GET("/ws", feed.HandleTaskFeed)
			tasks.GET("/:taskId", taskHandler.GetTask)
			tasks.PUT("/:taskId", taskHandler.UpdateTask)
			tasks.DELETE("/:taskId", taskHandler.DeleteTask)
		}
	}
}

func (s *Server) Start() error {
	return s.app.Run(s.cfg.Addr())
}
