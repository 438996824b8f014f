package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestSortStageDefaults(t *testing.T) {
	stage := sortStage("", 1)
	spec := stage[0].Value.(bson.D)
	assert.Equal(t, "createdAt", spec[0].Key)
	assert.Equal(t, -1, spec[0].Value)

	stage = sortStage("views", 1)
	spec = stage[0].Value.(bson.D)
	assert.Equal(t, "views", spec[0].Key)
	assert.Equal(t, 1, spec[0].Value)

	// 非法方向回落为倒序
	stage = sortStage("views", 7)
	spec = stage[0].Value.(bson.D)
	assert.Equal(t, -1, spec[0].Value)
}

func TestSearchFilter(t *testing.T) {
	filter := searchFilter("golang", "title", "description")
	require.Equal(t, "$or", filter[0].Key)

	conditions := filter[0].Value.(bson.A)
	require.Len(t, conditions, 2)

	first := conditions[0].(bson.D)
	assert.Equal(t, "title", first[0].Key)
	regex := first[0].Value.(bson.D)
	assert.Equal(t, "golang", regex[0].Value)
	assert.Equal(t, "i", regex[1].Value)
}

func TestSearchFilterEscapesMetacharacters(t *testing.T) {
	// 带正则元字符的查询按字面子串匹配，不能让聚合报错
	cases := map[string]string{
		"c++":   `c\+\+`,
		"a(":    `a\(`,
		"1.5":   `1\.5`,
		"a|b":   `a\|b`,
		"plain": "plain",
	}
	for query, want := range cases {
		filter := searchFilter(query, "title")
		conditions := filter[0].Value.(bson.A)
		regex := conditions[0].(bson.D)[0].Value.(bson.D)
		assert.Equal(t, want, regex[0].Value, "query %q", query)
	}
}

func TestLookupStageProjection(t *testing.T) {
	stage := ownerLookupStage("owner", "ownerInfo")
	spec := stage[0].Value.(bson.D)

	m := spec.Map()
	assert.Equal(t, "users", m["from"])
	assert.Equal(t, "owner", m["localField"])
	assert.Equal(t, "_id", m["foreignField"])
	assert.Equal(t, "ownerInfo", m["as"])

	sub, ok := m["pipeline"].(mongo.Pipeline)
	require.True(t, ok)
	require.Len(t, sub, 1)
	assert.Equal(t, "$project", sub[0][0].Key)
}

func TestLookupStageWithoutProjection(t *testing.T) {
	stage := lookupStage("videos", "videos", "videoItems", nil)
	spec := stage[0].Value.(bson.D)
	_, hasPipeline := spec.Map()["pipeline"]
	assert.False(t, hasPipeline)
}

func TestUnwindStage(t *testing.T) {
	stage := unwindStage("ownerInfo", true)
	spec := stage[0].Value.(bson.D)
	assert.Equal(t, "$ownerInfo", spec[0].Value)
	assert.Equal(t, true, spec[1].Value)
}

func TestLikesCountStages(t *testing.T) {
	stages := likesCountStages("comment")
	require.Len(t, stages, 3)

	lookup := stages[0][0].Value.(bson.D).Map()
	assert.Equal(t, "likes", lookup["from"])
	assert.Equal(t, "comment", lookup["foreignField"])

	addFields := stages[1][0].Value.(bson.D)
	assert.Equal(t, "likesCount", addFields[0].Key)

	project := stages[2][0].Value.(bson.D)
	assert.Equal(t, "likeDocs", project[0].Key)
	assert.Equal(t, 0, project[0].Value)
}
