package router

import (
	"campusnet/internal/config"
	"campusnet/internal/events"
	"campusnet/internal/handler"
	"campusnet/internal/middleware"
	"campusnet/internal/repository"
	"campusnet/internal/service"
	"campusnet/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Router struct {
	engine *gin.Engine
	hub    *ws.Hub

	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	friendshipHandler   *handler.FriendshipHandler
	notificationHandler *handler.NotificationHandler
	postHandler         *handler.PostHandler
	messageHandler      *handler.MessageHandler
	wsHandler           *handler.WSHandler

	jwtSecret string
}

func NewRouter(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	images service.ImageStore,
	publisher events.Publisher,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.LogAPI())

	// Repositories
	userRepo := repository.NewUserRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	postRepo := repository.NewPostRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	presenceRepo := repository.NewPresenceRepository(redisClient)

	// Services
	notificationService := service.NewNotificationService(notificationRepo, userRepo, publisher)
	friendshipService := service.NewFriendshipService(friendshipRepo, userRepo, notificationService)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.ExpirationTime)
	userService := service.NewUserService(userRepo, friendshipService, images)
	postService := service.NewPostService(postRepo, userRepo, notificationService)
	messageService := service.NewMessageService(messageRepo, friendshipService)
	presenceService := service.NewPresenceService(presenceRepo, friendshipService)

	// Chat hub
	hub := ws.NewHub(messageService, presenceService)
	go hub.Run()

	return &Router{
		engine:              engine,
		hub:                 hub,
		authHandler:         handler.NewAuthHandler(authService),
		userHandler:         handler.NewUserHandler(userService),
		friendshipHandler:   handler.NewFriendshipHandler(friendshipService, presenceService),
		notificationHandler: handler.NewNotificationHandler(notificationService),
		postHandler:         handler.NewPostHandler(postService),
		messageHandler:      handler.NewMessageHandler(messageService),
		wsHandler:           handler.NewWSHandler(hub, cfg.JWT.Secret),
		jwtSecret:           cfg.JWT.Secret,
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")

	// Websocket upgrade authenticates via query token inside the handler.
	api.GET("/ws", r.wsHandler.Connect)

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/login", r.authHandler.Login)
	}

	// Authenticated routes
	protected := api.Group("/")
	protected.Use(middleware.Auth(r.jwtSecret))
	{
		protected.GET("/auth/me", r.authHandler.Me)

		protected.GET("/profile/:id", r.userHandler.GetProfile)
		protected.PUT("/profile/:id", r.userHandler.UpdateProfile)
		protected.POST("/profile/avatar", r.userHandler.UploadAvatar)
		protected.GET("/users/search", r.userHandler.Search)

		friendships := protected.Group("/friendships")
		{
			friendships.POST("", r.friendshipHandler.Request)
			friendships.GET("", r.friendshipHandler.Relation)
			friendships.PUT("/:id/accept", r.friendshipHandler.Accept)
			friendships.PUT("/:id/reject", r.friendshipHandler.Reject)
			friendships.DELETE("/:id", r.friendshipHandler.Break)
		}

		friends := protected.Group("/friends")
		{
			friends.GET("/:userId", r.friendshipHandler.Friends)
			friends.GET("/:userId/requests", r.friendshipHandler.PendingRequests)
			friends.GET("/:userId/online", r.friendshipHandler.OnlineFriends)
		}

		// Param name is shared: it is a user id on GET and a
		// notification id on PUT.
		notifications := protected.Group("/notifications")
		{
			notifications.GET("/:id", r.notificationHandler.List)
			notifications.PUT("/:id/read", r.notificationHandler.MarkRead)
		}

		posts := protected.Group("/posts")
		{
			posts.POST("", r.postHandler.Create)
			posts.GET("", r.postHandler.Feed)
			posts.GET("/user/:userId", r.postHandler.UserPosts)
			posts.GET("/liked/:userId", r.postHandler.LikedPosts)
			posts.POST("/:id/like", r.postHandler.Like)
			posts.DELETE("/:id/like", r.postHandler.Unlike)
			posts.POST("/:id/comments", r.postHandler.AddComment)
			posts.GET("/:id/comments", r.postHandler.Comments)
		}

		protected.GET("/messages/:friendId", r.messageHandler.History)
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// StopHub shuts down the chat hub during graceful shutdown.
func (r *Router) StopHub() {
	r.hub.Stop()
}
