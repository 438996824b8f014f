package router

import (
	"clipflow/internal/api/handler"
	"clipflow/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	videoHandler *handler.VideoHandler,
	commentHandler *handler.CommentHandler,
	likeHandler *handler.LikeHandler,
	playlistHandler *handler.PlaylistHandler,
	tweetHandler *handler.TweetHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	channelHandler *handler.ChannelHandler,
	searchHandler *handler.SearchHandler,
) {
	v1 := r.Group("/api/v1", middleware.AuthRequired())

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		videos.GET("", videoHandler.List)
		videos.POST("", videoHandler.Publish)
		videos.GET("/:id", videoHandler.GetByID)
		videos.PATCH("/:id", videoHandler.Update)
		videos.DELETE("/:id", videoHandler.Delete)
		videos.PATCH("/:id/toggle-publish", videoHandler.TogglePublish)

		// 评论挂在所属视频下
		videos.GET("/:id/comments", commentHandler.ListByVideo)
		videos.POST("/:id/comments", commentHandler.Create)
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments")
	{
		comments.PATCH("/:id", commentHandler.Update)
		comments.DELETE("/:id", commentHandler.Delete)
	}

	// --- 点赞模块 ---
	likes := v1.Group("/likes")
	{
		likes.POST("/toggle/video/:id", likeHandler.ToggleVideo)
		likes.POST("/toggle/comment/:id", likeHandler.ToggleComment)
		likes.POST("/toggle/tweet/:id", likeHandler.ToggleTweet)
		likes.GET("/videos", likeHandler.LikedVideos)
	}

	// --- 播放列表模块 ---
	playlists := v1.Group("/playlists")
	{
		playlists.POST("", playlistHandler.Create)
		playlists.GET("/user/:userId", playlistHandler.ListByUser)
		playlists.GET("/:id", playlistHandler.GetDetail)
		playlists.PATCH("/:id", playlistHandler.Update)
		playlists.DELETE("/:id", playlistHandler.Delete)
		playlists.PATCH("/:id/videos/:videoId", playlistHandler.AddVideo)
		playlists.DELETE("/:id/videos/:videoId", playlistHandler.RemoveVideo)
	}

	// --- 动态模块 ---
	tweets := v1.Group("/tweets")
	{
		tweets.POST("", tweetHandler.Create)
		tweets.GET("/user/:userId", tweetHandler.ListByUser)
		tweets.PATCH("/:id", tweetHandler.Update)
		tweets.DELETE("/:id", tweetHandler.Delete)
	}

	// --- 订阅模块 ---
	subscriptions := v1.Group("/subscriptions")
	{
		subscriptions.GET("/me/channels", subscriptionHandler.ListMyChannels)
		subscriptions.POST("/:channelId", subscriptionHandler.Toggle)
		subscriptions.GET("/:channelId/subscribers", subscriptionHandler.ListSubscribers)
	}

	// --- 频道模块 ---
	channels := v1.Group("/channels")
	{
		channels.GET("/me/stats", channelHandler.GetMyStats)
		channels.GET("/:username", channelHandler.GetProfile)
	}

	// --- 搜索模块 ---
	search := v1.Group("/search")
	{
		search.GET("/videos", searchHandler.SearchVideos)
	}
}
