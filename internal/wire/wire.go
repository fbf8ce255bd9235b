package wire

import (
	"Mosaic/internal/api"
	"Mosaic/internal/api/config"
	"Mosaic/internal/api/handler"
	"Mosaic/internal/job"
	"Mosaic/internal/pkg/cron"
	"Mosaic/internal/pkg/es"
	"Mosaic/internal/pkg/kafka"
	"Mosaic/internal/pkg/mongo"
	"Mosaic/internal/repository"
	"Mosaic/internal/service"

	"github.com/gin-gonic/gin"
	mongoDriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoConn *mongoDriver.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepository(db)
	contentRepo := repository.NewContentRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	hashtagRepo := repository.NewHashtagRepository(db)
	savedRepo := repository.NewSavedRepository(db)
	moderationRepo := repository.NewModerationRepository(db)

	notificationRepo := mongo.NewNotificationRepo(mongoConn)
	contentESRepo := es.NewContentRepo(es.Client)

	notificationService := service.NewNotificationService(notificationRepo, userRepo, contentRepo)
	scoreService := service.NewScoreService(db, voteRepo, contentRepo)
	voteService := service.NewVoteService(db, voteRepo, contentRepo, userRepo, scoreService)
	answerService := service.NewAnswerService(db, answerRepo, contentRepo, userRepo, scoreService, notificationService)
	contentService := service.NewContentService(db, contentRepo, voteRepo, userRepo, hashtagRepo, savedRepo, answerRepo, moderationRepo, contentESRepo, scoreService, notificationService)
	hashtagService := service.NewHashtagService(hashtagRepo)
	savedService := service.NewSavedService(savedRepo, contentRepo, contentService)
	userService := service.NewUserService(db, userRepo, contentRepo, hashtagRepo, savedRepo, moderationRepo, notificationRepo)
	mediaService := service.NewMediaService()

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService),
		ContentHandler:      handler.NewContentHandler(contentService),
		VoteHandler:         handler.NewVoteHandler(voteService),
		AnswerHandler:       handler.NewAnswerHandler(answerService),
		HashtagHandler:      handler.NewHashtagHandler(hashtagService),
		SavedHandler:        handler.NewSavedHandler(savedService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		MediaHandler:        handler.NewMediaHandler(mediaService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, contentESRepo, userRepo, hashtagRepo)
	if err != nil {
		return nil, err
	}

	trendingJob := job.NewTrendingHashtagJob(hashtagRepo)
	cronMgr := cron.NewCronManager(trendingJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
