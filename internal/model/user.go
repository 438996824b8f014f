package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 用户模型。凭证由上游认证服务管理，这里只保存展示资料
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username   string             `bson:"username" json:"username"`
	Email      string             `bson:"email" json:"email"`
	FullName   string             `bson:"fullName" json:"fullName"`
	Avatar     *string            `bson:"avatar,omitempty" json:"avatar"`
	CoverImage *string            `bson:"coverImage,omitempty" json:"coverImage"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OwnerInfo 聚合 $lookup 投影出的属主展示字段
type OwnerInfo struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
	FullName string             `bson:"fullName" json:"fullName"`
	Avatar   *string            `bson:"avatar" json:"avatar"`
}

func (User) Collection() string {
	return "users"
}
