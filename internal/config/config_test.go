package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
app:
  name: clipflow
  version: 1.0.0
  mode: test
  port: 8000

mongodb:
  uri: mongodb://localhost:27017
  database: clipflow_test
  connect_timeout: 5
  max_pool_size: 20

redis:
  host: localhost
  port: 6379
  db: 1

minio:
  endpoint: localhost:9000
  access_key: ak
  secret_key: sk
  bucket: media-test

kafka:
  brokers:
    - localhost:9092
  topics:
    video_views: views-test

elasticsearch:
  hosts:
    - http://localhost:9200

jwt:
  secret: test-secret
  expire_hours: 2

log:
  level: debug
  format: console
  output: stdout
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "clipflow", cfg.App.Name)
	assert.Equal(t, 8000, cfg.App.Port)
	assert.Equal(t, "clipflow_test", cfg.MongoDB.Database)
	assert.Equal(t, uint64(20), cfg.MongoDB.MaxPoolSize)
	assert.Equal(t, 5*time.Second, cfg.MongoDB.ConnectTimeoutDuration())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "media-test", cfg.MinIO.Bucket)
	assert.Equal(t, "views-test", cfg.Kafka.Topics["video_views"])
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireDuration())

	// 全局配置在 Load 后可用
	assert.Equal(t, cfg, Get())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestVideosIndexFallback(t *testing.T) {
	cfg := &ElasticsearchConfig{}
	assert.Equal(t, "videos", cfg.VideosIndex())

	cfg.Index = map[string]string{"videos": "clipflow_videos"}
	assert.Equal(t, "clipflow_videos", cfg.VideosIndex())
}
