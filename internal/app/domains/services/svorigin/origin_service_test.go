package svorigin

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ftaorigin/common/entity"
	"ftaorigin/common/model"
	"ftaorigin/internal/app/domains/entity/etorigin"
	"ftaorigin/internal/app/domains/modules/mdbom"
	"ftaorigin/internal/app/domains/modules/mdorigin"
	"ftaorigin/internal/app/domains/repo/rpdetermination"
	"ftaorigin/internal/app/domains/repo/rppart"
	"ftaorigin/internal/app/domains/services/svmaster"
	"ftaorigin/internal/app/infra/persistence/redis"
	"ftaorigin/internal/app/pkg/errorx"
	"ftaorigin/internal/app/pkg/logger"
)

// fakeBus 进程内结果通知
type fakeBus struct {
	mu        sync.Mutex
	channels  map[string]chan string
	published []string
}

func newFakeBus() *fakeBus {
	return &fakeBus{channels: make(map[string]chan string)}
}

func (b *fakeBus) Publish(_ context.Context, channel, message string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, channel)
	if ch, ok := b.channels[channel]; ok {
		select {
		case ch <- message:
		default:
		}
	}
	return nil
}

func (b *fakeBus) Listen(_ context.Context, channel string) (redis.Waiter, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan string, 1)
	b.channels[channel] = ch
	return &fakeWaiter{ch: ch}, nil
}

type fakeWaiter struct {
	ch chan string
}

func (w *fakeWaiter) Wait(ctx context.Context, timeout time.Duration) (string, error) {
	select {
	case msg := <-w.ch:
		return msg, nil
	case <-time.After(timeout):
		return "", context.DeadlineExceeded
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (w *fakeWaiter) Close() error { return nil }

// fakePublisher 投递时同步回调，模拟 worker 消费
type fakePublisher struct {
	jobs    []model.OriginDetermineJob
	queue   string
	onJob   func(job model.OriginDetermineJob)
	publish error
}

func (p *fakePublisher) Publish(queue string, data []byte, _, _ uint32) (string, error) {
	if p.publish != nil {
		return "", p.publish
	}
	var job model.OriginDetermineJob
	if err := json.Unmarshal(data, &job); err != nil {
		return "", err
	}
	p.queue = queue
	p.jobs = append(p.jobs, job)
	if p.onJob != nil {
		p.onJob(job)
	}
	return "job-1", nil
}

type testEnv struct {
	history   rpdetermination.DeterminationRepository
	bus       *fakeBus
	publisher *fakePublisher
	svc       *OriginService
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(entity.AllModels()...))

	parts := rppart.NewPartRepository(db)
	history := rpdetermination.NewDeterminationRepository(db)
	log := logger.NewNopLogger()
	require.NoError(t, svmaster.NewMasterService(parts, history, log).ResetAndSeed(context.Background()))

	bom := mdbom.NewBOMModule(parts, 0)
	module := mdorigin.NewOriginModule(parts, history, bom, mdorigin.Options{})
	bus := newFakeBus()
	publisher := &fakePublisher{}

	return &testEnv{
		history:   history,
		bus:       bus,
		publisher: publisher,
		svc: NewOriginService(module, bom, parts, history, publisher, bus,
			Options{Queue: "origin_determine", ChannelPrefix: "origin:result:"}, log),
	}
}

func TestDetermineAndHistory(t *testing.T) {
	ctx := context.Background()
	env := setup(t)

	result, err := env.svc.Determine(ctx, svmaster.SeedRootID)
	require.NoError(t, err)
	assert.Equal(t, etorigin.VerdictForeign, result.Verdict)

	result, err = env.svc.Determine(ctx, "AL_CASE")
	require.NoError(t, err)
	assert.Equal(t, etorigin.Verdict("KR"), result.Verdict)

	_, err = env.svc.Determine(ctx, "MISSING")
	assert.ErrorIs(t, err, errorx.ErrPartNotFound)

	history, err := env.svc.History(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "AL_CASE", history[0].PartID)
	assert.Equal(t, svmaster.SeedRootID, history[1].PartID)

	history, err = env.svc.History(ctx, svmaster.SeedRootID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestExplode(t *testing.T) {
	env := setup(t)

	tree, err := env.svc.Explode(context.Background(), svmaster.SeedRootID)
	require.NoError(t, err)
	require.Len(t, tree.Children, 4)
	assert.Equal(t, "BATTERY_MODULE", tree.Children[0].PartID)
	assert.Len(t, tree.Children[0].Children, 3)
}

func TestSubmitJob_SmartWaitReceivesResult(t *testing.T) {
	ctx := context.Background()
	env := setup(t)
	env.publisher.onJob = func(job model.OriginDetermineJob) {
		data := job.Payload.Data
		_, _ = env.svc.DetermineAndNotify(ctx, data.RequestID, data.Data.PartID)
	}

	ticket, err := env.svc.SubmitJob(ctx, svmaster.SeedRootID, time.Second)
	require.NoError(t, err)

	assert.Equal(t, "job-1", ticket.JobID)
	assert.NotEmpty(t, ticket.RequestID)
	require.True(t, ticket.Done())
	assert.Equal(t, model.NotificationStatusSuccess, ticket.Notification.Status)
	assert.Equal(t, "FOREIGN", ticket.Notification.Result.Verdict)
	assert.Equal(t, ticket.RequestID, ticket.Notification.RequestID)

	require.Len(t, env.publisher.jobs, 1)
	job := env.publisher.jobs[0].Payload.Data
	assert.Equal(t, model.ActionTypeOriginDetermine, job.ActionType)
	assert.Equal(t, svmaster.SeedRootID, job.Data.PartID)
	assert.Equal(t, "origin_determine", env.publisher.queue)
}

func TestSubmitJob_TimeoutReturnsPendingTicket(t *testing.T) {
	env := setup(t)

	ticket, err := env.svc.SubmitJob(context.Background(), svmaster.SeedRootID, 20*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ticket.Done())
	assert.Equal(t, "job-1", ticket.JobID)
}

func TestSubmitJob_Errors(t *testing.T) {
	env := setup(t)

	_, err := env.svc.SubmitJob(context.Background(), "MISSING", 0)
	assert.ErrorIs(t, err, errorx.ErrPartNotFound)
	assert.Empty(t, env.publisher.jobs)

	env.publisher.publish = errors.New("queue down")
	_, err = env.svc.SubmitJob(context.Background(), svmaster.SeedRootID, 0)
	assert.Error(t, err)

	svc := NewOriginService(nil, nil, nil, nil, nil, nil, Options{}, logger.NewNopLogger())
	_, err = svc.SubmitJob(context.Background(), svmaster.SeedRootID, 0)
	assert.ErrorIs(t, err, errorx.ErrQueueUnavailable)
}

func TestDetermineAndNotify_FailurePublishesFailed(t *testing.T) {
	ctx := context.Background()
	env := setup(t)

	waiter, err := env.bus.Listen(ctx, "origin:result:req-1")
	require.NoError(t, err)

	_, err = env.svc.DetermineAndNotify(ctx, "req-1", "MISSING")
	assert.ErrorIs(t, err, errorx.ErrPartNotFound)

	payload, err := waiter.Wait(ctx, time.Second)
	require.NoError(t, err)

	var n model.DeterminationNotification
	require.NoError(t, json.Unmarshal([]byte(payload), &n))
	assert.Equal(t, model.NotificationStatusFailed, n.Status)
	assert.Equal(t, "MISSING", n.PartID)
	assert.Contains(t, n.Error, "part not found")
	assert.Nil(t, n.Result)
}
