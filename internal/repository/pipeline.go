package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// 聚合管道按固定顺序组装：match → sort → lookup → unwind → addFields。
// 各 Stage 构造函数返回独立的 bson.D，便于按资源自由拼装

// matchStage 过滤阶段
func matchStage(filter bson.D) bson.D {
	return bson.D{{Key: "$match", Value: filter}}
}

// sortStage 排序阶段，field 为空时默认按创建时间倒序（最新优先）
func sortStage(field string, direction int) bson.D {
	if field == "" {
		field = "createdAt"
		direction = -1
	}
	if direction != 1 && direction != -1 {
		direction = -1
	}
	return bson.D{{Key: "$sort", Value: bson.D{{Key: field, Value: direction}}}}
}

func skipStage(n int64) bson.D {
	return bson.D{{Key: "$skip", Value: n}}
}

func limitStage(n int64) bson.D {
	return bson.D{{Key: "$limit", Value: n}}
}

// lookupStage 关联查询阶段。project 非空时通过子管道裁剪关联文档，
// 避免把完整关联文档搬回来
func lookupStage(from, localField, as string, project bson.D) bson.D {
	spec := bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: as},
	}
	if project != nil {
		spec = append(spec, bson.E{Key: "pipeline", Value: mongo.Pipeline{
			{{Key: "$project", Value: project}},
		}})
	}
	return bson.D{{Key: "$lookup", Value: spec}}
}

// ownerLookupStage 关联属主，只取展示字段
func ownerLookupStage(localField, as string) bson.D {
	return lookupStage("users", localField, as, ownerProjection())
}

// ownerProjection 属主展示字段投影
func ownerProjection() bson.D {
	return bson.D{
		{Key: "username", Value: 1},
		{Key: "fullName", Value: 1},
		{Key: "avatar", Value: 1},
	}
}

// unwindStage 把一对一关联出来的数组展平为嵌套对象。
// preserveEmpty 为 true 时保留关联缺失的文档（字段为 null）
func unwindStage(path string, preserveEmpty bool) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: "$" + path},
		{Key: "preserveNullAndEmptyArrays", Value: preserveEmpty},
	}}}
}

// addFieldsStage 计算字段阶段
func addFieldsStage(fields bson.D) bson.D {
	return bson.D{{Key: "$addFields", Value: fields}}
}

// projectStage 投影阶段
func projectStage(fields bson.D) bson.D {
	return bson.D{{Key: "$project", Value: fields}}
}

// searchFilter 大小写不敏感的子串匹配，多个字段取或。
// 查询串先转义，正则元字符一律按字面处理
func searchFilter(query string, fields ...string) bson.D {
	pattern := regexp.QuoteMeta(query)
	conditions := make(bson.A, 0, len(fields))
	for _, f := range fields {
		conditions = append(conditions, bson.D{{Key: f, Value: bson.D{
			{Key: "$regex", Value: pattern},
			{Key: "$options", Value: "i"},
		}}})
	}
	return bson.D{{Key: "$or", Value: conditions}}
}

// likesCountStages 关联 likes 并计算点赞数，targetField 为 likes 中的目标字段名
func likesCountStages(targetField string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "likes"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: targetField},
			{Key: "as", Value: "likeDocs"},
		}}},
		addFieldsStage(bson.D{{Key: "likesCount", Value: bson.D{{Key: "$size", Value: "$likeDocs"}}}}),
		projectStage(bson.D{{Key: "likeDocs", Value: 0}}),
	}
}
