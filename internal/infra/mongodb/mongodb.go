package mongodb

import (
	"context"
	"fmt"

	"clipflow/internal/config"
	"clipflow/internal/model"
	"clipflow/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	client   *mongo.Client
	database *mongo.Database
)

// Init 初始化 MongoDB 连接
func Init(cfg *config.MongoDBConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeoutDuration())
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	var err error
	client, err = mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database = client.Database(cfg.Database)

	logger.Info("MongoDB connected",
		zap.String("database", cfg.Database),
	)

	return nil
}

// EnsureIndexes 创建业务索引。唯一性约束是点赞/订阅切换和
// 播放列表命名冲突检测的正确性基础，必须在服务启动前建好
func EnsureIndexes(ctx context.Context) error {
	db := database

	// likes: 每个目标类型一条部分唯一索引，(目标, likedBy) 至多一条
	likeIndexes := make([]mongo.IndexModel, 0, 3)
	for _, field := range []string{"video", "comment", "tweet"} {
		likeIndexes = append(likeIndexes, mongo.IndexModel{
			Keys: bson.D{{Key: field, Value: 1}, {Key: "likedBy", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.D{
					{Key: field, Value: bson.D{{Key: "$type", Value: "objectId"}}},
				}),
		})
	}
	if _, err := db.Collection(model.Like{}.Collection()).Indexes().CreateMany(ctx, likeIndexes); err != nil {
		return fmt.Errorf("create like indexes: %w", err)
	}

	// playlists: 名称在属主范围内唯一
	if _, err := db.Collection(model.Playlist{}.Collection()).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create playlist index: %w", err)
	}

	// subscriptions: (subscriber, channel) 唯一
	if _, err := db.Collection(model.Subscription{}.Collection()).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create subscription index: %w", err)
	}

	// 列表查询索引
	listing := map[string]bson.D{
		model.Video{}.Collection():   {{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}},
		model.Comment{}.Collection(): {{Key: "video", Value: 1}, {Key: "createdAt", Value: -1}},
		model.Tweet{}.Collection():   {{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}},
	}
	for coll, keys := range listing {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys}); err != nil {
			return fmt.Errorf("create %s index: %w", coll, err)
		}
	}

	// users: 用户名唯一
	if _, err := db.Collection(model.User{}.Collection()).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create user index: %w", err)
	}

	logger.Info("MongoDB indexes ensured")
	return nil
}

// Get 获取数据库实例
func Get() *mongo.Database {
	return database
}

// Close 关闭数据库连接
func Close() error {
	if client == nil {
		return nil
	}
	logger.Info("MongoDB connection closed")
	return client.Disconnect(context.Background())
}
