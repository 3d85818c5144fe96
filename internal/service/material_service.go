package service

import (
	"cohort_backend/internal/model"
	"cohort_backend/internal/util"
	"cohort_backend/pkg/logger"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

type MaterialSessionStore interface {
	TableExists(ctx context.Context, table string) (bool, error)
	FindByID(ctx context.Context, table string, id int) (*model.ClassSession, error)
	UpdateContent(ctx context.Context, table string, id int, fields map[string]interface{}) error
}

type MaterialResult struct {
	SessionID int     `json:"sessionId"`
	Kind      string  `json:"kind"`
	URL       string  `json:"url"`
	MimeType  string  `json:"mimeType"`
	Size      int64   `json:"size"`
	Duration  float64 `json:"duration,omitempty"`
}

// MaterialService 上传课前资料、课堂资料和录像，并把链接写回课程表
type MaterialService struct {
	Sessions MaterialSessionStore
	Storage  *StorageService
	// TempDir 录像探测时的临时目录
	TempDir         string
	ProbeRecordings bool
}

func NewMaterialService(sessions MaterialSessionStore, storage *StorageService, tempDir string, probe bool) *MaterialService {
	return &MaterialService{
		Sessions:        sessions,
		Storage:         storage,
		TempDir:         tempDir,
		ProbeRecordings: probe,
	}
}

func (s *MaterialService) UploadMaterial(ctx context.Context, table string, id int, kind string, file *multipart.FileHeader) (*MaterialResult, error) {
	column := util.MaterialColumn(kind)
	if column == "" {
		return nil, fmt.Errorf("%w: %q", util.ErrInvalidMaterialKind, kind)
	}
	if file == nil {
		return nil, fmt.Errorf("%w: file is required", util.ErrMissingFields)
	}

	exists, err := s.Sessions.TableExists(ctx, table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", util.ErrCohortNotFound, table)
	}
	if _, err := s.Sessions.FindByID(ctx, table, id); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := sniff(src, kind, file.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	key := s.Storage.MaterialKey(table, id, file.Filename, time.Now())

	result := &MaterialResult{
		SessionID: id,
		Kind:      kind,
		MimeType:  mimeType,
		Size:      file.Size,
	}

	if kind == util.MaterialRecording && s.ProbeRecordings {
		result.URL, result.Duration, err = s.uploadProbed(ctx, src, key, mimeType)
	} else {
		result.URL, err = s.Storage.Put(ctx, key, src, file.Size, mimeType)
	}
	if err != nil {
		return nil, fmt.Errorf("upload material: %w", err)
	}

	if err := s.Sessions.UpdateContent(ctx, table, id, map[string]interface{}{column: result.URL}); err != nil {
		if rmErr := s.Storage.Remove(ctx, key); rmErr != nil {
			logger.Log.Warn("remove orphan material failed", zap.String("key", key), zap.Error(rmErr))
		}
		return nil, fmt.Errorf("save material link: %w", err)
	}

	logger.Log.Info("material uploaded",
		zap.String("table", table),
		zap.Int("id", id),
		zap.String("kind", kind),
		zap.String("url", result.URL))

	return result, nil
}

// uploadProbed 录像先落到临时文件，用 ffprobe 确认有视频流后再上传
func (s *MaterialService) uploadProbed(ctx context.Context, src io.Reader, key, mimeType string) (string, float64, error) {
	tempDir := s.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return "", 0, err
	}

	tmp, err := os.CreateTemp(tempDir, "recording-*"+filepath.Ext(key))
	if err != nil {
		return "", 0, err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return "", 0, err
	}
	tmp.Close()

	info, err := util.ProbeRecording(tmp.Name())
	if err != nil {
		return "", 0, err
	}

	url, err := s.Storage.PutFile(ctx, key, tmp.Name(), mimeType)
	if err != nil {
		return "", 0, err
	}
	return url, info.Duration, nil
}

// sniff 录像只接受视频；嗅探不出容器格式时按扩展名兜底
func sniff(src io.Reader, kind, filename string) (string, error) {
	allowed := util.AllowedMaterialTypes
	if kind == util.MaterialRecording {
		allowed = []string{util.MimeVideo}
	}

	mimeType, err := util.ValidateMimeType(src, allowed)
	if err == nil {
		return mimeType, nil
	}

	if kind == util.MaterialRecording &&
		mimeType == util.MimeOctetStream &&
		util.HasAllowedExtension(filename, util.AllowedVideoExtensions) {
		return "video/" + strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."), nil
	}
	return "", err
}
