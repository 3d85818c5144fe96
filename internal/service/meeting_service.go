package service

import (
	"bytes"
	"cohort_backend/internal/config"
	"cohort_backend/internal/model"
	"cohort_backend/internal/util"
	"cohort_backend/pkg/logger"
	"cohort_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type MeetingStore interface {
	Create(ctx context.Context, meeting *model.Meeting) error
	List(ctx context.Context, table string) ([]model.Meeting, error)
}

// SessionFinder 创建会议时校验关联的课程
type SessionFinder interface {
	TableExists(ctx context.Context, table string) (bool, error)
	FindByID(ctx context.Context, table string, id int) (*model.ClassSession, error)
}

type CreateMeetingRequest struct {
	Topic     string    `json:"topic" binding:"required"`
	StartTime time.Time `json:"startTime" binding:"required"`
	Duration  int       `json:"duration"`
	Agenda    string    `json:"agenda"`
	TableName string    `json:"tableName"`
	SessionID int       `json:"sessionId"`
	Operator  string    `json:"-"`
}

// 令牌过期前一分钟即刷新
const tokenRefreshMargin = time.Minute

// scheduledMeeting 会议服务中的预约会议类型
const scheduledMeeting = 2

// MeetingService 通过 Zoom 风格的 REST API 创建在线课堂
type MeetingService struct {
	Store    MeetingStore
	Sessions SessionFinder

	client *http.Client
	now    func() time.Time

	mu          sync.Mutex
	cfg         config.MeetingConfig
	token       string
	tokenExpiry time.Time
}

func NewMeetingService(cfg config.MeetingConfig, store MeetingStore, sessions SessionFinder) *MeetingService {
	return &MeetingService{
		Store:    store,
		Sessions: sessions,
		client:   &http.Client{Timeout: 15 * time.Second},
		now:      time.Now,
		cfg:      cfg,
	}
}

// UpdateConfig 配置热更新时调用，凭据变化后丢弃缓存的令牌
func (s *MeetingService) UpdateConfig(cfg config.MeetingConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg.AccountID != s.cfg.AccountID || cfg.ClientID != s.cfg.ClientID || cfg.ClientSecret != s.cfg.ClientSecret || cfg.TokenURL != s.cfg.TokenURL {
		s.token = ""
		s.tokenExpiry = time.Time{}
	}
	s.cfg = cfg
}

func (s *MeetingService) currentConfig() config.MeetingConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

func (s *MeetingService) Configured() bool {
	cfg := s.currentConfig()
	return cfg.AccountID != "" && cfg.ClientID != "" && cfg.ClientSecret != ""
}

func (s *MeetingService) CreateMeeting(ctx context.Context, req CreateMeetingRequest) (*model.Meeting, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" || req.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: topic and startTime are required", util.ErrMissingFields)
	}
	if !s.Configured() {
		return nil, util.ErrMeetingNotConfigured
	}

	if req.TableName != "" && s.Sessions != nil {
		exists, err := s.Sessions.TableExists(ctx, req.TableName)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", util.ErrCohortNotFound, req.TableName)
		}
		if req.SessionID > 0 {
			if _, err := s.Sessions.FindByID(ctx, req.TableName, req.SessionID); err != nil {
				return nil, err
			}
		}
	}

	cfg := s.currentConfig()
	duration := req.Duration
	if duration <= 0 {
		duration = cfg.DefaultDuration
	}

	token, err := s.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"topic":      req.Topic,
		"type":       scheduledMeeting,
		"start_time": req.StartTime.UTC().Format("2006-01-02T15:04:05Z"),
		"duration":   duration,
		"agenda":     req.Agenda,
	}
	if cfg.Timezone != "" {
		payload["timezone"] = cfg.Timezone
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(cfg.BaseURL, "/")+"/users/me/meetings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	var created struct {
		ID        int64  `json:"id"`
		Topic     string `json:"topic"`
		JoinURL   string `json:"join_url"`
		StartURL  string `json:"start_url"`
		Password  string `json:"password"`
		StartTime string `json:"start_time"`
		Duration  int    `json:"duration"`
	}
	if err := s.do(httpReq, "create", &created); err != nil {
		return nil, err
	}

	meeting := &model.Meeting{
		ProviderID: strconv.FormatInt(created.ID, 10),
		Topic:      req.Topic,
		Agenda:     req.Agenda,
		StartTime:  req.StartTime,
		Duration:   duration,
		JoinURL:    created.JoinURL,
		StartURL:   created.StartURL,
		Password:   created.Password,
		Table:      req.TableName,
		SessionID:  req.SessionID,
		CreatedBy:  req.Operator,
	}
	if created.Duration > 0 {
		meeting.Duration = created.Duration
	}

	if err := s.Store.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("save meeting: %w", err)
	}

	logger.Log.Info("meeting created",
		zap.String("provider_id", meeting.ProviderID),
		zap.String("table", meeting.Table),
		zap.Int("session_id", meeting.SessionID))

	return meeting, nil
}

func (s *MeetingService) ListMeetings(ctx context.Context, table string) ([]model.Meeting, error) {
	return s.Store.List(ctx, table)
}

// accessToken 服务端 OAuth (account_credentials)，令牌缓存在内存
func (s *MeetingService) accessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.now().Before(s.tokenExpiry.Add(-tokenRefreshMargin)) {
		return s.token, nil
	}

	query := url.Values{}
	query.Set("grant_type", "account_credentials")
	query.Set("account_id", s.cfg.AccountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TokenURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(s.cfg.ClientID, s.cfg.ClientSecret)

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := s.do(req, "token", &result); err != nil {
		return "", err
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", util.ErrMeetingProvider)
	}

	s.token = result.AccessToken
	s.tokenExpiry = s.now().Add(time.Duration(result.ExpiresIn) * time.Second)
	return s.token, nil
}

// do 发送请求并解析 JSON，非 2xx 时带上服务方返回的 message
func (s *MeetingService) do(req *http.Request, operation string, out interface{}) error {
	resp, err := s.client.Do(req)
	if err != nil {
		monitoring.MeetingRequests.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("%w: %v", util.ErrMeetingProvider, err)
	}
	defer resp.Body.Close()

	monitoring.MeetingRequests.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", util.ErrMeetingProvider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var providerErr struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Reason  string `json:"reason"`
		}
		msg := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &providerErr) == nil {
			if providerErr.Message != "" {
				msg = providerErr.Message
			} else if providerErr.Reason != "" {
				msg = providerErr.Reason
			}
		}
		logger.Log.Warn("meeting provider error",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return fmt.Errorf("%w: %s (status %d)", util.ErrMeetingProvider, msg, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", util.ErrMeetingProvider, err)
	}
	return nil
}
