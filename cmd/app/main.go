package main

import (
	dbadapter "plume/internal/adapters/database"
	"plume/internal/adapters/httpapi"
	redisadapter "plume/internal/adapters/redis"
	"plume/internal/config"
	"plume/internal/core/comment"
	commentapp "plume/internal/core/comment/service"
	"plume/internal/core/follow"
	followapp "plume/internal/core/follow/service"
	"plume/internal/core/group"
	groupapp "plume/internal/core/group/service"
	"plume/internal/core/post"
	postapp "plume/internal/core/post/service"
	"plume/internal/core/user"
	userapp "plume/internal/core/user/service"

	"go.uber.org/zap"
)

func main() {
	config.InitLogger()
	cfg := config.Init()

	config.InitDB()
	if err := config.DB.AutoMigrate(
		&user.User{},
		&group.Group{},
		&post.Post{},
		&comment.Comment{},
		&follow.Follow{},
	); err != nil {
		config.Logger.Fatal("Error during migrations:", zap.Error(err))
	}
	config.Logger.Info("✅ Database migrations completed")

	config.InitRedis()
	defer closeResources(config.Logger)

	userRepo := dbadapter.NewUserRepositoryDatabase()
	groupRepo := dbadapter.NewGroupRepositoryDatabase()
	postRepo := dbadapter.NewPostRepositoryDatabase()
	commentRepo := dbadapter.NewCommentRepositoryDatabase()
	followRepo := dbadapter.NewFollowRepositoryDatabase()
	pageCache := redisadapter.NewPageCacheRedis(config.RedisClient)

	userSvc := userapp.NewUserService(userRepo, []byte(cfg.JWTSecret))
	groupSvc := groupapp.NewGroupService(groupRepo)
	postSvc := postapp.NewPostService(postRepo, pageCache, cfg.PostsPerPage)
	commentSvc := commentapp.NewCommentService(commentRepo)
	followSvc := followapp.NewFollowService(followRepo)

	r := httpapi.SetupRoutes(httpapi.RouterConfig{
		JWTKey:        []byte(cfg.JWTSecret),
		TemplatesGlob: cfg.TemplatesGlob,
		MediaRoot:     cfg.MediaRoot,
		Cache:         pageCache,
		CacheTTL:      cfg.CacheTTL,
	}, userSvc, groupSvc, postSvc, commentSvc, followSvc)

	config.Logger.Info("App is running...")
	if err := r.Run(":" + cfg.AppPort); err != nil {
		config.Logger.Fatal("Server failed to start:", zap.Error(err))
	}
}

// closeResources shuts down the Redis and database connections.
func closeResources(logger *zap.Logger) {
	if err := config.RedisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection:", zap.Error(err))
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		logger.Error("Error getting raw DB:", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection:", zap.Error(err))
	}
}
