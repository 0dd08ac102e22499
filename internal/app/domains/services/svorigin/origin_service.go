package svorigin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ftaorigin/common/model"
	"ftaorigin/internal/app/domains/entity/etorigin"
	"ftaorigin/internal/app/domains/modules/mdbom"
	"ftaorigin/internal/app/domains/modules/mdorigin"
	"ftaorigin/internal/app/domains/repo/rpdetermination"
	"ftaorigin/internal/app/domains/repo/rppart"
	"ftaorigin/internal/app/infra/mq/lmstfy"
	"ftaorigin/internal/app/infra/persistence/redis"
	"ftaorigin/internal/app/pkg/errorx"
	"ftaorigin/internal/app/pkg/logger"
	"ftaorigin/internal/app/pkg/metrics"
)

// JobPublisher 判定任务投递（lmstfy）
type JobPublisher interface {
	Publish(queue string, data []byte, ttl, delay uint32) (string, error)
}

// ResultBus 判定结果通知（redis pub/sub）
type ResultBus interface {
	Publish(ctx context.Context, channel string, message string) error
	Listen(ctx context.Context, channel string) (redis.Waiter, error)
}

// Options 服务参数
type Options struct {
	Queue         string // 判定任务队列
	ChannelPrefix string // 结果频道前缀，完整频道为 prefix + request_id
}

// OriginService 原产地判定服务，负责判定流程编排
type OriginService struct {
	originModule      *mdorigin.OriginModule
	bomModule         *mdbom.BOMModule
	partRepo          rppart.PartRepository
	determinationRepo rpdetermination.DeterminationRepository
	publisher         JobPublisher
	bus               ResultBus
	opts              Options
	logger            logger.Logger
}

// NewOriginService 创建判定服务实例
// publisher、bus 可为 nil：仅同步判定时不需要队列与通知
func NewOriginService(
	originModule *mdorigin.OriginModule,
	bomModule *mdbom.BOMModule,
	partRepo rppart.PartRepository,
	determinationRepo rpdetermination.DeterminationRepository,
	publisher JobPublisher,
	bus ResultBus,
	opts Options,
	log logger.Logger,
) *OriginService {
	if opts.ChannelPrefix == "" {
		opts.ChannelPrefix = "origin:result:"
	}
	return &OriginService{
		originModule:      originModule,
		bomModule:         bomModule,
		partRepo:          partRepo,
		determinationRepo: determinationRepo,
		publisher:         publisher,
		bus:               bus,
		opts:              opts,
		logger:            log,
	}
}

// Determine 同步判定
func (s *OriginService) Determine(ctx context.Context, partID string) (*etorigin.Result, error) {
	ctx = logger.WithPartID(ctx, partID)
	start := time.Now()

	result, err := s.originModule.Determine(ctx, partID)
	if err != nil {
		metrics.RecordError(errorType(err))
		s.logger.Warnf(ctx, "[OriginService] determine failed: %v", err)
		return nil, err
	}

	metrics.RecordDetermination(etorigin.RuleCTSH4, string(result.Verdict), len(result.Components), time.Since(start))
	s.logger.Infof(ctx, "[OriginService] determined: verdict=%s, components=%d, trail=%d, id=%d",
		result.Verdict, len(result.Components), len(result.Trail), result.Determination.ID)

	return result, nil
}

// DetermineAndNotify 判定并将结果发布到 prefix + requestID 频道（worker 调用）
// 判定失败同样发布 FAILED 通知，通知发布失败只记录日志
func (s *OriginService) DetermineAndNotify(ctx context.Context, requestID, partID string) (*etorigin.Result, error) {
	result, err := s.Determine(ctx, partID)

	notification := &model.DeterminationNotification{
		RequestID:   requestID,
		PartID:      partID,
		ProcessedAt: time.Now().Unix(),
	}
	if err != nil {
		notification.Status = model.NotificationStatusFailed
		notification.Error = err.Error()
	} else {
		notification.Status = model.NotificationStatusSuccess
		notification.Result = etorigin.ToResultData(result)
	}

	if pubErr := s.notify(ctx, notification); pubErr != nil {
		s.logger.Warnf(ctx, "[OriginService] publish notification failed: request_id=%s, error=%v", requestID, pubErr)
	}

	return result, err
}

// History 查询判定历史（最新的在前），partID 为空表示全部
func (s *OriginService) History(ctx context.Context, partID string, limit int) ([]*etorigin.Determination, error) {
	return s.determinationRepo.List(ctx, partID, limit)
}

// Explode 返回成品的 BOM 树
func (s *OriginService) Explode(ctx context.Context, partID string) (*mdbom.Node, error) {
	return s.bomModule.Tree(ctx, partID)
}

// JobTicket 异步判定任务受理结果
type JobTicket struct {
	RequestID    string
	PartID       string
	JobID        string
	Notification *model.DeterminationNotification // Smart Wait 拿到结果时非空
}

// Done 是否已拿到判定结果
func (t *JobTicket) Done() bool {
	return t.Notification != nil
}

// SubmitJob 投递异步判定任务
// 1. 校验成品存在
// 2. wait > 0 时先订阅结果频道
// 3. 投递任务到队列
// 4. Smart Wait：超时返回未完成的 ticket，不视为错误
func (s *OriginService) SubmitJob(ctx context.Context, partID string, wait time.Duration) (*JobTicket, error) {
	if s.publisher == nil {
		return nil, errorx.ErrQueueUnavailable
	}

	if _, err := s.partRepo.GetByID(ctx, partID); err != nil {
		return nil, err
	}

	ticket := &JobTicket{
		RequestID: uuid.New().String(),
		PartID:    partID,
	}
	ctx = logger.WithTraceID(logger.WithPartID(ctx, partID), ticket.RequestID)

	var waiter redis.Waiter
	if wait > 0 && s.bus != nil {
		w, err := s.bus.Listen(ctx, s.channel(ticket.RequestID))
		if err != nil {
			// 订阅失败降级为纯异步
			s.logger.Warnf(ctx, "[OriginService] listen result channel failed: %v", err)
		} else {
			waiter = w
			defer waiter.Close()
		}
	}

	job := model.OriginDetermineJob{
		Payload: model.OriginDeterminePayload{
			Data: model.OriginDetermineData{
				RequestID:  ticket.RequestID,
				OrgID:      "0",
				ActionType: model.ActionTypeOriginDetermine,
				ID:         partID,
				Data: model.OriginDetermineBusinessData{
					PartID: partID,
				},
			},
		},
	}
	data, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("marshal job failed: %w", err)
	}

	jobID, err := s.publisher.Publish(s.opts.Queue, data, lmstfy.DefaultTTL, 0)
	if err != nil {
		return nil, err
	}
	ticket.JobID = jobID
	s.logger.Infof(ctx, "[OriginService] job published: queue=%s, job_id=%s", s.opts.Queue, jobID)

	if waiter == nil {
		return ticket, nil
	}

	payload, err := waiter.Wait(ctx, wait)
	if err != nil {
		s.logger.Infof(ctx, "[OriginService] wait for result ended without result: %v", err)
		return ticket, nil
	}

	var notification model.DeterminationNotification
	if err := json.Unmarshal([]byte(payload), &notification); err != nil {
		s.logger.Warnf(ctx, "[OriginService] invalid notification payload: %v", err)
		return ticket, nil
	}
	ticket.Notification = &notification

	return ticket, nil
}

func (s *OriginService) notify(ctx context.Context, n *model.DeterminationNotification) error {
	if s.bus == nil || n.RequestID == "" {
		return nil
	}
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification failed: %w", err)
	}
	return s.bus.Publish(ctx, s.channel(n.RequestID), string(data))
}

func (s *OriginService) channel(requestID string) string {
	return s.opts.ChannelPrefix + requestID
}

// errorType 错误分类（指标标签）
func errorType(err error) string {
	switch {
	case errors.Is(err, errorx.ErrPartNotFound):
		return "not_found"
	case errors.Is(err, errorx.ErrCyclicBOM):
		return "cyclic_bom"
	case errors.Is(err, errorx.ErrLookupFailed):
		return "lookup"
	default:
		return "other"
	}
}
