package service

import (
	"cohort_backend/internal/config"
	"cohort_backend/internal/util"
	"cohort_backend/pkg/logger"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ObjectStore 课程资料的对象存储后端，key 形如 materials/<表名>/<课程ID>/<文件名>
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PutFile(ctx context.Context, key, path, contentType string) error
	Remove(ctx context.Context, key string) error
	URL(key string) string
}

type localStore struct {
	root string
}

func (l *localStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	dst := filepath.Join(l.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

func (l *localStore) PutFile(ctx context.Context, key, path, contentType string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	return l.Put(ctx, key, src, -1, contentType)
}

func (l *localStore) Remove(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(l.root, filepath.FromSlash(key)))
}

// URL 本地文件由 /uploads 静态路由提供
func (l *localStore) URL(key string) string {
	return "/uploads/" + key
}

type minioStore struct {
	client *minio.Client
	bucket string
}

func newMinioStore(ctx context.Context, cfg *config.StorageConfig) (*minioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.MinioBucket, err)
		}
	}
	return &minioStore{client: client, bucket: cfg.MinioBucket}, nil
}

func (m *minioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (m *minioStore) PutFile(ctx context.Context, key, path, contentType string) error {
	_, err := m.client.FPutObject(ctx, m.bucket, key, path, minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (m *minioStore) Remove(ctx context.Context, key string) error {
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}

func (m *minioStore) URL(key string) string {
	return "/" + m.bucket + "/" + key
}

type ossStore struct {
	bucket   *oss.Bucket
	endpoint string
}

func newOSSStore(cfg *config.StorageConfig) (*ossStore, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &ossStore{bucket: bucket, endpoint: cfg.OSSEndpoint}, nil
}

// oss SDK 不接收 context
func (o *ossStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return o.bucket.PutObject(key, r, oss.ContentType(contentType))
}

func (o *ossStore) PutFile(ctx context.Context, key, path, contentType string) error {
	return o.bucket.PutObjectFromFile(key, path, oss.ContentType(contentType))
}

func (o *ossStore) Remove(ctx context.Context, key string) error {
	return o.bucket.DeleteObject(key)
}

func (o *ossStore) URL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", o.bucket.BucketName, o.endpoint, key)
}

// StorageService 按配置选择存储后端，并统一生成资料的对象 key
type StorageService struct {
	Backend string
	Store   ObjectStore
}

// NewStorageService 远程存储初始化失败时退回本地存储
func NewStorageService(cfg *config.StorageConfig) *StorageService {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		store ObjectStore
		err   error
	)
	switch cfg.Type {
	case util.StorageMinio:
		store, err = newMinioStore(ctx, cfg)
	case util.StorageOSS:
		store, err = newOSSStore(cfg)
	}

	if err != nil {
		logger.Log.Error("init material storage failed, falling back to local",
			zap.String("type", cfg.Type),
			zap.Error(err))
	}
	if store == nil || err != nil {
		return &StorageService{Backend: util.StorageLocal, Store: &localStore{root: cfg.LocalPath}}
	}
	return &StorageService{Backend: cfg.Type, Store: store}
}

// MaterialKey 同一节课可多次上传，时间戳避免覆盖旧文件
func (s *StorageService) MaterialKey(table string, id int, filename string, at time.Time) string {
	name := strings.ReplaceAll(filepath.Base(filename), " ", "-")
	return fmt.Sprintf("materials/%s/%d/%s-%s", table, id, at.Format("20060102150405"), name)
}

func (s *StorageService) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if err := s.Store.Put(ctx, key, r, size, contentType); err != nil {
		return "", err
	}
	return s.Store.URL(key), nil
}

func (s *StorageService) PutFile(ctx context.Context, key, path, contentType string) (string, error) {
	if err := s.Store.PutFile(ctx, key, path, contentType); err != nil {
		return "", err
	}
	return s.Store.URL(key), nil
}

func (s *StorageService) Remove(ctx context.Context, key string) error {
	return s.Store.Remove(ctx, key)
}
