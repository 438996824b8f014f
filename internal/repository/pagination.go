package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// 分页默认值
const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10
)

// NormalizePagination 纠正非法分页参数，小于 1 一律回落到默认值
func NormalizePagination(page, limit int64) (int64, int64) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

// TotalPages 由过滤后的总数计算总页数（向上取整）
func TotalPages(totalItems, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return (totalItems + limit - 1) / limit
}

// paginate 在管道末尾追加分页并执行。总数基于过滤后、分页前的
// 结果集单独统计，越界页返回空集而不是错误
func paginate(ctx context.Context, coll *mongo.Collection, pipe mongo.Pipeline, page, limit int64, out interface{}) (int64, error) {
	page, limit = NormalizePagination(page, limit)

	countPipe := make(mongo.Pipeline, 0, len(pipe)+1)
	countPipe = append(countPipe, pipe...)
	countPipe = append(countPipe, bson.D{{Key: "$count", Value: "total"}})

	cursor, err := coll.Aggregate(ctx, countPipe)
	if err != nil {
		return 0, err
	}
	var counts []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &counts); err != nil {
		return 0, err
	}
	var total int64
	if len(counts) > 0 {
		total = counts[0].Total
	}

	pagedPipe := make(mongo.Pipeline, 0, len(pipe)+2)
	pagedPipe = append(pagedPipe, pipe...)
	pagedPipe = append(pagedPipe, skipStage((page-1)*limit), limitStage(limit))

	cursor, err = coll.Aggregate(ctx, pagedPipe)
	if err != nil {
		return 0, err
	}
	if err := cursor.All(ctx, out); err != nil {
		return 0, err
	}

	return total, nil
}
