package elasticsearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"clipflow/internal/config"
	"clipflow/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

var client *elasticsearch.Client

var errNotInitialized = errors.New("elasticsearch client not initialized")

// Init 初始化 Elasticsearch 客户端。失败不致命，搜索会降级到数据库
func Init(cfg *config.ElasticsearchConfig) error {
	hosts := make([]string, 0, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if !strings.HasPrefix(h, "http") {
			h = "http://" + h
		}
		hosts = append(hosts, h)
	}
	if len(hosts) == 0 {
		return fmt.Errorf("elasticsearch hosts is empty")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     hosts,
		RetryOnStatus: []int{502, 503, 504},
		MaxRetries:    3,
		RetryBackoff:  func(i int) time.Duration { return time.Duration(i) * time.Second },
	})
	if err != nil {
		return fmt.Errorf("create elasticsearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping elasticsearch: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("elasticsearch ping failed: %s", resp.String())
	}

	client = es
	logger.Info("Elasticsearch connected", zap.Strings("hosts", hosts))
	return nil
}

// Enabled 返回 ES 是否可用
func Enabled() bool {
	return client != nil
}

func active() (*elasticsearch.Client, error) {
	if client == nil {
		return nil, errNotInitialized
	}
	return client, nil
}

// Search 在指定索引上执行查询，body 为查询 JSON
func Search(ctx context.Context, index string, body io.Reader) (*esapi.Response, error) {
	es, err := active()
	if err != nil {
		return nil, err
	}
	return es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(body),
	)
}

// Index 按文档 ID 写入（存在则覆盖）
func Index(ctx context.Context, index, id string, body io.Reader) (*esapi.Response, error) {
	es, err := active()
	if err != nil {
		return nil, err
	}
	return es.Index(
		index,
		body,
		es.Index.WithContext(ctx),
		es.Index.WithDocumentID(id),
	)
}

// Delete 按文档 ID 删除
func Delete(ctx context.Context, index, id string) (*esapi.Response, error) {
	es, err := active()
	if err != nil {
		return nil, err
	}
	return es.Delete(index, id, es.Delete.WithContext(ctx))
}

// IndicesCreate 创建索引
func IndicesCreate(ctx context.Context, index string, body io.Reader) (*esapi.Response, error) {
	es, err := active()
	if err != nil {
		return nil, err
	}
	return es.Indices.Create(
		index,
		es.Indices.Create.WithContext(ctx),
		es.Indices.Create.WithBody(body),
	)
}

// IndicesExists 检查索引是否存在
func IndicesExists(ctx context.Context, index string) (bool, error) {
	es, err := active()
	if err != nil {
		return false, err
	}
	resp, err := es.Indices.Exists(
		[]string{index},
		es.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, err
	}
	return resp.StatusCode == 200, nil
}

// Close 置空客户端，后续调用走降级路径
func Close() error {
	client = nil
	return nil
}
