package api

import "Mosaic/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler         *handler.UserHandler
	ContentHandler      *handler.ContentHandler
	VoteHandler         *handler.VoteHandler
	AnswerHandler       *handler.AnswerHandler
	HashtagHandler      *handler.HashtagHandler
	SavedHandler        *handler.SavedHandler
	NotificationHandler *handler.NotificationHandler
	MediaHandler        *handler.MediaHandler
}
