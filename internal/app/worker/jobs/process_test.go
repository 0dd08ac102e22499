package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/bitleak/lmstfy/client"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ftaorigin/common/model"
	"ftaorigin/internal/app/config"
	"ftaorigin/internal/app/domains/entity/etorigin"
	"ftaorigin/internal/app/domains/entity/etpart"
	"ftaorigin/internal/app/domains/modules/mdbom"
	"ftaorigin/internal/app/domains/modules/mdorigin"
	"ftaorigin/internal/app/domains/repo/rpdetermination"
	"ftaorigin/internal/app/domains/repo/rppart"
	"ftaorigin/internal/app/domains/services/svorigin"
	"ftaorigin/internal/app/infra/persistence/database"
	"ftaorigin/internal/app/infra/persistence/redis"
	"ftaorigin/internal/app/pkg/errorx"
	"ftaorigin/internal/app/pkg/lmstfyx"
	"ftaorigin/internal/app/pkg/logger"
)

type fakeDeterminer struct {
	requestID string
	partID    string
	err       error
	panicMsg  string
}

func (f *fakeDeterminer) DetermineAndNotify(_ context.Context, requestID, partID string) (*etorigin.Result, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	f.requestID = requestID
	f.partID = partID
	if f.err != nil {
		return nil, f.err
	}
	return &etorigin.Result{
		PartID:        partID,
		Verdict:       etorigin.VerdictForeign,
		Determination: etorigin.NewDetermination(partID, etorigin.DefaultDestCountry, etorigin.VerdictForeign, nil),
	}, nil
}

func jobBytes(t *testing.T, actionType, partID string) []byte {
	t.Helper()
	data, err := json.Marshal(model.OriginDetermineJob{
		Payload: model.OriginDeterminePayload{
			Data: model.OriginDetermineData{
				RequestID:  "req-1",
				OrgID:      "0",
				ActionType: actionType,
				ID:         partID,
				Data:       model.OriginDetermineBusinessData{PartID: partID},
			},
		},
	})
	require.NoError(t, err)
	return data
}

func TestGetProcess(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		determiner *fakeDeterminer
		want       lmstfyx.JobRespStatus
	}{
		{
			name:       "success",
			determiner: &fakeDeterminer{},
			want:       lmstfyx.JobRespStatusSuccess,
		},
		{
			name:       "not found is not retried",
			determiner: &fakeDeterminer{err: errorx.ErrPartNotFound},
			want:       lmstfyx.JobRespStatusBury,
		},
		{
			name:       "lookup failure is buried",
			determiner: &fakeDeterminer{err: errorx.Lookup("get part", errors.New("db down"))},
			want:       lmstfyx.JobRespStatusBury,
		},
		{
			name:       "explicit retriable error is released",
			determiner: &fakeDeterminer{err: errorx.Retriable("queue busy")},
			want:       lmstfyx.JobRespStatusRelease,
		},
		{
			name:       "panic is buried",
			determiner: &fakeDeterminer{panicMsg: "boom"},
			want:       lmstfyx.JobRespStatusBury,
		},
		{
			name:       "malformed job",
			data:       []byte("{not json"),
			determiner: &fakeDeterminer{},
			want:       lmstfyx.JobRespStatusBury,
		},
		{
			name:       "unknown action type",
			data:       jobBytes(t, "order_diagnose", "X"),
			determiner: &fakeDeterminer{},
			want:       lmstfyx.JobRespStatusBury,
		},
		{
			name:       "missing part id",
			data:       jobBytes(t, model.ActionTypeOriginDetermine, ""),
			determiner: &fakeDeterminer{},
			want:       lmstfyx.JobRespStatusBury,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			if data == nil {
				data = jobBytes(t, model.ActionTypeOriginDetermine, "EV_BATTERY_PACK")
			}

			proc := GetProcess(logger.NewNopLogger(), &Deps{Origin: tt.determiner})
			resp := proc(context.Background(), &client.Job{ID: "job-1", Queue: "origin_determine", Data: data})

			require.NotNil(t, resp)
			assert.Equal(t, tt.want, resp.Action)
		})
	}
}

func TestGetProcess_PassesRequestAndPart(t *testing.T) {
	d := &fakeDeterminer{}
	proc := GetProcess(logger.NewNopLogger(), &Deps{Origin: d})

	resp := proc(context.Background(), &client.Job{ID: "job-1", Data: jobBytes(t, model.ActionTypeOriginDetermine, "EV_BATTERY_PACK")})
	require.Equal(t, lmstfyx.JobRespStatusSuccess, resp.Action)

	assert.Equal(t, "req-1", d.requestID)
	assert.Equal(t, "EV_BATTERY_PACK", d.partID)

	var result model.DeterminationResultData
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, "FOREIGN", result.Verdict)
}

func TestParseJob(t *testing.T) {
	_, _, err := parseJob([]byte(`{"payload":{}}`))
	assert.Error(t, err)

	_, _, err = parseJob([]byte(`{"payload":{"data":{"id":"X"}}}`))
	assert.Error(t, err)

	meta, payload, err := parseJob([]byte(`{"payload":{"data":{"request_id":"r","action_type":"origin_determine","id":"X","data":{"part_id":"X"}}}}`))
	require.NoError(t, err)
	assert.Equal(t, "r", meta.RequestID)
	assert.Equal(t, "origin_determine", meta.ActionType)
	assert.JSONEq(t, `{"part_id":"X"}`, string(payload))
}

// failingAppendRepo 写入判定记录时失败，读取走真实仓储
type failingAppendRepo struct {
	rpdetermination.DeterminationRepository
	err error
}

func (r *failingAppendRepo) Append(context.Context, *etorigin.Determination) error {
	return r.err
}

// recordingBus 记录发布到结果频道的通知
type recordingBus struct {
	mu       sync.Mutex
	messages map[string][]string
}

func (b *recordingBus) Publish(_ context.Context, channel, message string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.messages == nil {
		b.messages = make(map[string][]string)
	}
	b.messages[channel] = append(b.messages[channel], message)
	return nil
}

func (b *recordingBus) Listen(context.Context, string) (redis.Waiter, error) {
	return nil, errors.New("not supported")
}

func (b *recordingBus) published(channel string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.messages[channel]...)
}

func TestGetProcess_AppendFailureIsTerminal(t *testing.T) {
	ctx := context.Background()

	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", AutoMigrate: true})
	require.NoError(t, err)
	defer database.Close(db)

	parts := rppart.NewPartRepository(db)
	pack, err := etpart.NewPart("PACK", "FERT", "Battery Pack", "850760", "KR", decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, parts.Create(ctx, pack))

	history := rpdetermination.NewDeterminationRepository(db)
	failing := &failingAppendRepo{DeterminationRepository: history, err: errors.New("connection reset")}

	bomModule := mdbom.NewBOMModule(parts, mdbom.DefaultMaxDepth)
	originModule := mdorigin.NewOriginModule(parts, failing, bomModule, mdorigin.Options{})
	bus := &recordingBus{}
	svc := svorigin.NewOriginService(originModule, bomModule, parts, failing, nil, bus,
		svorigin.Options{ChannelPrefix: "origin:result:"}, logger.NewNopLogger())

	proc := GetProcess(logger.NewNopLogger(), &Deps{Origin: svc})
	resp := proc(ctx, &client.Job{ID: "job-1", Queue: "origin_determine", Data: jobBytes(t, model.ActionTypeOriginDetermine, "PACK")})

	// 不重新投递：Bury 后由 Processor ACK
	require.NotNil(t, resp)
	assert.Equal(t, lmstfyx.JobRespStatusBury, resp.Action)

	var jobErr errorx.JobError
	require.NoError(t, json.Unmarshal(resp.Data, &jobErr))
	assert.False(t, jobErr.Retryable)
	assert.Equal(t, 500, jobErr.Code)
	assert.Contains(t, jobErr.Message, "connection reset")

	// 等待方收到的 FAILED 通知即最终结果
	messages := bus.published("origin:result:req-1")
	require.Len(t, messages, 1)
	var n model.DeterminationNotification
	require.NoError(t, json.Unmarshal([]byte(messages[0]), &n))
	assert.Equal(t, model.NotificationStatusFailed, n.Status)
	assert.Contains(t, n.Error, "connection reset")

	count, err := history.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
