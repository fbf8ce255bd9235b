package api

import (
	"Mosaic/internal/api/middleware"
	"Mosaic/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetProfile)
				authGroup.PUT("/info", group.UserHandler.UpdateProfile)
				authGroup.PUT("/password", group.UserHandler.ChangePassword)
				authGroup.GET("/settings", group.UserHandler.GetSettings)
				authGroup.PUT("/settings", group.UserHandler.UpdateSettings)
				authGroup.POST("/cancel", group.UserHandler.DeleteAccount)
			}
		}

		contentGroup := apiGroup.Group("/contents")
		{
			authOptGroup := contentGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/feed", group.ContentHandler.GetFeed)
				authOptGroup.GET("/trending", group.ContentHandler.GetTrending)
				authOptGroup.GET("/search", group.ContentHandler.SearchContents)
				authOptGroup.GET("/detail/:content_id", group.ContentHandler.GetContent)
				authOptGroup.GET("/remixes/:content_id", group.ContentHandler.GetRemixes)
				authOptGroup.GET("/hashtag/:name", group.ContentHandler.GetByHashtag)
			}

			authGroup := contentGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.ContentHandler.CreateContent)
				authGroup.PUT("/:content_id", group.ContentHandler.UpdateContent)
				authGroup.DELETE("/:content_id", group.ContentHandler.DeleteContent)
				authGroup.GET("/self", group.ContentHandler.GetMyContents)

				authGroup.POST("/:content_id/hide", group.ContentHandler.HideContent)
				authGroup.DELETE("/:content_id/hide", group.ContentHandler.UnhideContent)
				authGroup.GET("/hidden", group.ContentHandler.GetHiddenContents)
				authGroup.POST("/:content_id/report", group.ContentHandler.ReportContent)
			}
		}

		voteGroup := apiGroup.Group("/votes")
		{
			authOptGroup := voteGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/state/:content_id", group.VoteHandler.GetVoteState)
			}

			authGroup := voteGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.VoteHandler.CastVote)
				authGroup.DELETE("/:content_id", group.VoteHandler.RevokeVote)
				authGroup.GET("/allowance", group.VoteHandler.GetAllowance)
			}
		}

		answerGroup := apiGroup.Group("/answers")
		{
			authOptGroup := answerGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/list/:content_id", group.AnswerHandler.ListAnswers)
			}

			authGroup := answerGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.AnswerHandler.AddAnswer)
				authGroup.POST("/vote", group.AnswerHandler.VoteOnAnswer)
				authGroup.DELETE("/vote/:content_id", group.AnswerHandler.RevokeAnswerVote)
			}
		}

		hashtagGroup := apiGroup.Group("/hashtags")
		{
			authOptGroup := hashtagGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/trending", group.HashtagHandler.GetTrending)
				authOptGroup.GET("/overview/:name", group.HashtagHandler.GetOverview)
			}

			authGroup := hashtagGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/follow/:name", group.HashtagHandler.Follow)
				authGroup.DELETE("/follow/:name", group.HashtagHandler.Unfollow)
				authGroup.GET("/following", group.HashtagHandler.GetFollowing)
			}
		}

		savedGroup := apiGroup.Group("/saved")
		savedGroup.Use(middleware.AuthMiddleware())
		{
			savedGroup.POST("", group.SavedHandler.SaveContent)
			savedGroup.GET("", group.SavedHandler.GetSavedContents)
			savedGroup.DELETE("/:content_id", group.SavedHandler.UnsaveContent)
			savedGroup.PUT("/:content_id/collection", group.SavedHandler.MoveSaved)

			savedGroup.POST("/collections", group.SavedHandler.CreateCollection)
			savedGroup.GET("/collections", group.SavedHandler.GetCollections)
			savedGroup.DELETE("/collections/:collection_id", group.SavedHandler.DeleteCollection)
		}

		notificationGroup := apiGroup.Group("/notifications")
		notificationGroup.Use(middleware.AuthMiddleware())
		{
			notificationGroup.GET("/list", group.NotificationHandler.GetNotificationList)
			notificationGroup.GET("/unread", group.NotificationHandler.GetUnreadCount)
			notificationGroup.POST("/read", group.NotificationHandler.MarkRead)
			notificationGroup.POST("/read/all", group.NotificationHandler.MarkAllRead)
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware())
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}
	}

	return r
}
