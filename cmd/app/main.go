package main

import (
	"context"
	"os"
	"strconv"

	"go.uber.org/zap"

	dbadapter "socialite/internal/adapters/database"
	"socialite/internal/adapters/filestore"
	"socialite/internal/adapters/httpapi"
	redisadapter "socialite/internal/adapters/redis"
	"socialite/internal/config"
	"socialite/internal/core/comment"
	commentapp "socialite/internal/core/comment/service"
	"socialite/internal/core/identity"
	identityapp "socialite/internal/core/identity/service"
	"socialite/internal/core/like"
	likeapp "socialite/internal/core/like/service"
	"socialite/internal/core/post"
	postapp "socialite/internal/core/post/service"
	"socialite/internal/core/profile"
	profileapp "socialite/internal/core/profile/service"
	"socialite/internal/workers"
)

func main() {
	config.InitLogger()
	config.Init()
	config.InitSettings()

	config.InitDB()

	if err := config.DB.AutoMigrate(
		&identity.Identity{},
		&profile.Profile{},
		&profile.FollowEdge{},
		&post.Post{},
		&comment.Comment{},
		&like.Like{},
	); err != nil {
		config.Logger.Fatal("Error during migrations:", zap.Error(err))
	}

	config.Logger.Info("✅ Database migrations completed")

	config.InitRedis()

	defer closeResources(config.Logger)

	config.Logger.Info("App is running...")

	store := filestore.New(config.MediaRoot)

	identityRepo := dbadapter.NewIdentityRepositoryDatabase()
	profileRepo := dbadapter.NewProfileRepositoryDatabase()
	postRepo := dbadapter.NewPostRepositoryDatabase()
	commentRepo := dbadapter.NewCommentRepositoryDatabase()
	likeRepo := dbadapter.NewLikeRepositoryDatabase()
	schedulerQueue := redisadapter.NewSchedulerRepositoryRedis(config.RedisClient)

	identitySvc := identityapp.NewIdentityService(identityRepo, []byte(os.Getenv("JWT_SECRET")))
	profileSvc := profileapp.NewProfileService(profileRepo, identityRepo, store)
	postSvc := postapp.NewPostService(postRepo, profileRepo, schedulerQueue, store, config.Timezone)
	commentSvc := commentapp.NewCommentService(commentRepo, postRepo)
	likeSvc := likeapp.NewLikeService(likeRepo, postRepo)

	r := httpapi.SetupRoutes(identitySvc, profileSvc, postSvc, commentSvc, likeSvc)

	batchSize, err := strconv.Atoi(os.Getenv("BATCH_SIZE"))
	if err != nil || batchSize <= 0 {
		batchSize = 100
	}

	worker := workers.NewScheduledPostWorker(
		schedulerQueue,
		postRepo,
		store,
		batchSize,
		config.SchedulerPollInterval(),
		config.Logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go worker.Run(ctx)

	if err := r.Run(":" + os.Getenv("APP_PORT")); err != nil {
		config.Logger.Fatal("Server failed to start:", zap.Error(err))
	}
}

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
