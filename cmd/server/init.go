package main

import (
	"context"

	"video_tube/config"
	commentmodels "video_tube/internal/api/comment/models"
	likemodels "video_tube/internal/api/like/models"
	playlistmodels "video_tube/internal/api/playlist/models"
	submodels "video_tube/internal/api/subscription/models"
	tweetmodels "video_tube/internal/api/tweet/models"
	usermodels "video_tube/internal/api/user/models"
	videomodels "video_tube/internal/api/video/models"
	"video_tube/internal/database"
	"video_tube/internal/global"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Users = "users"
	global.MongoDB_ColNames.Videos = "videos"
	global.MongoDB_ColNames.Comments = "comments"
	global.MongoDB_ColNames.Likes = "likes"
	global.MongoDB_ColNames.Tweets = "tweets"
	global.MongoDB_ColNames.Playlists = "playlists"
	global.MongoDB_ColNames.Subscriptions = "subscriptions"

	logrus.Info("Initialized collection names")
}

// Hàm khởi tạo validator (global.InitValidator đăng ký các custom validators: no_xss, not_blank, exists)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	if !global.MongoDB_ServerConfig.InitMode {
		logrus.Info("InitMode off, skip ensuring collections and indexes")
		return
	}

	// Khởi tạo các db và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	// Khởi tạo các index cho các collection theo tag `index` trên model
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	indexTargets := []struct {
		collection string
		model      interface{}
	}{
		{global.MongoDB_ColNames.Users, usermodels.User{}},
		{global.MongoDB_ColNames.Videos, videomodels.Video{}},
		{global.MongoDB_ColNames.Comments, commentmodels.Comment{}},
		{global.MongoDB_ColNames.Likes, likemodels.Like{}},
		{global.MongoDB_ColNames.Tweets, tweetmodels.Tweet{}},
		{global.MongoDB_ColNames.Playlists, playlistmodels.Playlist{}},
		{global.MongoDB_ColNames.Subscriptions, submodels.Subscription{}},
	}
	for _, target := range indexTargets {
		if err := database.CreateIndexes(context.TODO(), db.Collection(target.collection), target.model); err != nil {
			logrus.Fatalf("Failed to create indexes for %s: %v", target.collection, err)
		}
	}
	logrus.Info("Ensured collection indexes")
}
