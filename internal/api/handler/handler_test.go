package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int64
		wantLimit int64
	}{
		{"缺省用默认值", "", 1, 10},
		{"合法参数", "page=3&limit=25", 3, 25},
		{"非数字回落默认", "page=abc&limit=xyz", 1, 10},
		{"零和负数回落默认", "page=0&limit=-2", 1, 10},
		{"大 limit 不设上限", "page=1&limit=500", 1, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContext(t, tt.query)
			page, limit := parsePagination(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestParseObjectID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	id := primitive.NewObjectID()
	c.Params = gin.Params{{Key: "id", Value: id.Hex()}}

	parsed, err := parseObjectID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	c.Params = gin.Params{{Key: "id", Value: "not-a-hex-id"}}
	_, err = parseObjectID(c, "id")
	assert.Error(t, err)
}
