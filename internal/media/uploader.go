package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"clipflow/internal/config"
	infraMinio "clipflow/internal/infra/minio"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 资源目录，按类型划分对象前缀
const (
	KindVideo     = "videos"
	KindThumbnail = "thumbnails"
	KindImage     = "images"
)

// Asset 上传结果：公开访问 URL + 对象名（删除凭据）
type Asset struct {
	URL        string
	ObjectName string
}

// Uploader 媒体上传服务，封装 MinIO 对象存储
type Uploader struct {
	bucket   string
	endpoint string
	useSSL   bool
}

// NewUploader 创建媒体上传服务
func NewUploader(cfg *config.MinIOConfig) *Uploader {
	return &Uploader{
		bucket:   cfg.Bucket,
		endpoint: cfg.Endpoint,
		useSSL:   cfg.UseSSL,
	}
}

// Upload 上传文件，对象名随机生成避免覆盖
func (u *Uploader) Upload(ctx context.Context, kind, filename string, reader io.Reader, size int64, contentType string) (*Asset, error) {
	ext := strings.ToLower(path.Ext(filename))
	objectName := fmt.Sprintf("%s/%s%s", kind, primitive.NewObjectID().Hex(), ext)

	uploadCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	if _, err := infraMinio.UploadFile(uploadCtx, u.bucket, objectName, reader, size, contentType); err != nil {
		return nil, err
	}

	return &Asset{
		URL:        infraMinio.GetPublicURL(u.endpoint, u.useSSL, u.bucket, objectName),
		ObjectName: objectName,
	}, nil
}

// Remove 按对象名删除资源
func (u *Uploader) Remove(ctx context.Context, objectName string) error {
	if objectName == "" {
		return nil
	}
	return infraMinio.RemoveFile(ctx, u.bucket, objectName)
}
