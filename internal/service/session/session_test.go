// Package session 提供 Session 服务单元测试
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ashwinyue/strato-tools/internal/model"
)

func msg(role, content string) model.ChatMessage {
	return model.ChatMessage{ID: content, Role: role, Content: content, Timestamp: time.Now()}
}

// ========== Config 测试 ==========

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxHistory != 100 {
		t.Errorf("MaxHistory = %d, want 100", cfg.MaxHistory)
	}
	if cfg.TTL != 24*time.Hour {
		t.Errorf("TTL = %v, want 24h", cfg.TTL)
	}
}

func TestNewManager_Defaults(t *testing.T) {
	manager := NewManager(nil, Config{}, nil)

	if manager.memory == nil || manager.pending == nil {
		t.Fatal("maps should be initialized")
	}
	if manager.config.TTL != defaultSessionTTL {
		t.Errorf("TTL = %v, want default", manager.config.TTL)
	}
	if manager.logger == nil {
		t.Error("logger should default to nop")
	}
}

// ========== Manager 测试 ==========

func TestManager_CreateAndGet(t *testing.T) {
	manager := NewManager(nil, DefaultConfig(), nil)
	ctx := context.Background()

	created, err := manager.Create(ctx, "visitor-1", msg(model.RoleAssistant, "hello"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" || created.VisitorID != "visitor-1" {
		t.Errorf("unexpected session %+v", created)
	}

	got, err := manager.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "hello" {
		t.Errorf("Messages = %+v", got.Messages)
	}
	if info := got.Info(); info.ID != created.ID || info.VisitorID != "visitor-1" {
		t.Errorf("Info() = %+v", info)
	}
}

func TestManager_Get_NotFound(t *testing.T) {
	manager := NewManager(nil, DefaultConfig(), nil)

	if _, err := manager.Get(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() error = %v, want ErrSessionNotFound", err)
	}
	if manager.Exists(context.Background(), "missing") {
		t.Error("Exists() = true for missing session")
	}
}

func TestManager_SnapshotIsolation(t *testing.T) {
	manager := NewManager(nil, DefaultConfig(), nil)
	ctx := context.Background()

	sess, _ := manager.Create(ctx, "")
	sess.Messages = append(sess.Messages, msg(model.RoleUser, "not stored"))

	history, err := manager.History(ctx, sess.ID)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("History() = %d messages, want 0", len(history))
	}
}

func TestManager_Append(t *testing.T) {
	manager := NewManager(nil, DefaultConfig(), nil)
	ctx := context.Background()

	sess, _ := manager.Create(ctx, "")
	if err := manager.Append(ctx, sess.ID, msg(model.RoleUser, "a"), msg(model.RoleAssistant, "b")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	history, _ := manager.History(ctx, sess.ID)
	if len(history) != 2 || history[0].Content != "a" || history[1].Content != "b" {
		t.Errorf("History() = %+v", history)
	}

	if err := manager.Append(ctx, "missing", msg(model.RoleUser, "x")); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Append(missing) error = %v, want ErrSessionNotFound", err)
	}
}

func TestManager_Append_MaxHistory(t *testing.T) {
	manager := NewManager(nil, Config{MaxHistory: 3}, nil)
	ctx := context.Background()

	sess, _ := manager.Create(ctx, "")
	for _, c := range []string{"1", "2", "3", "4", "5"} {
		if err := manager.Append(ctx, sess.ID, msg(model.RoleUser, c)); err != nil {
			t.Fatal(err)
		}
	}

	history, _ := manager.History(ctx, sess.ID)
	if len(history) != 3 || history[0].Content != "3" || history[2].Content != "5" {
		t.Errorf("History() = %+v, want last three", history)
	}
}

func TestManager_Clear(t *testing.T) {
	manager := NewManager(nil, DefaultConfig(), nil)
	ctx := context.Background()

	sess, _ := manager.Create(ctx, "")
	turnCtx, done := manager.BeginTurn(ctx, sess.ID)
	defer done()

	if err := manager.Clear(ctx, sess.ID); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if manager.Exists(ctx, sess.ID) {
		t.Error("session should be removed")
	}
	if turnCtx.Err() == nil {
		t.Error("pending turn should be canceled by Clear")
	}
}

// ========== 回复控制测试 ==========

func TestManager_BeginTurn_SupersedesPrevious(t *testing.T) {
	manager := NewManager(nil, DefaultConfig(), nil)
	ctx := context.Background()

	first, doneFirst := manager.BeginTurn(ctx, "s")
	second, doneSecond := manager.BeginTurn(ctx, "s")

	if first.Err() == nil {
		t.Error("first turn should be canceled")
	}
	if second.Err() != nil {
		t.Error("second turn should still be active")
	}

	// 旧回复结束不影响新回复的登记
	doneFirst()
	if !manager.Pending("s") {
		t.Error("second turn should still be pending")
	}

	doneSecond()
	if manager.Pending("s") {
		t.Error("no turn should be pending")
	}
}

func TestManager_StopTurn(t *testing.T) {
	manager := NewManager(nil, DefaultConfig(), nil)

	if manager.StopTurn("s") {
		t.Error("StopTurn() = true with nothing pending")
	}

	turnCtx, done := manager.BeginTurn(context.Background(), "s")
	defer done()

	if !manager.StopTurn("s") {
		t.Error("StopTurn() = false with a pending turn")
	}
	if turnCtx.Err() == nil {
		t.Error("turn context should be canceled")
	}
}

func TestManager_ConcurrentAppend(t *testing.T) {
	manager := NewManager(nil, Config{}, nil)
	ctx := context.Background()
	sess, _ := manager.Create(ctx, "")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = manager.Append(ctx, sess.ID, msg(model.RoleUser, "x"))
			_, _ = manager.History(ctx, sess.ID)
		}()
	}
	wg.Wait()

	history, _ := manager.History(ctx, sess.ID)
	if len(history) != 50 {
		t.Errorf("History() = %d messages, want 50", len(history))
	}
}

// ========== Redis 同步测试 ==========

// redisWrite 记录一次写入：SET 时为消息数，DEL 时为 -1
type redisWrite struct {
	key      string
	messages int
}

// recordingHook 拦截命令并记录写入顺序，不访问网络
type recordingHook struct {
	mu     sync.Mutex
	writes []redisWrite
}

func (h *recordingHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *recordingHook) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		args := cmd.Args()
		switch strings.ToLower(cmd.Name()) {
		case "set":
			var sess Session
			if data, ok := args[2].([]byte); ok {
				_ = json.Unmarshal(data, &sess)
			}
			h.record(redisWrite{key: args[1].(string), messages: len(sess.Messages)})
		case "del":
			h.record(redisWrite{key: args[1].(string), messages: -1})
		default:
			cmd.SetErr(redis.Nil)
			return redis.Nil
		}
		return nil
	}
}

func (h *recordingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (h *recordingHook) record(w redisWrite) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.writes = append(h.writes, w)
}

func newRecordingClient(t *testing.T) (*redis.Client, *recordingHook) {
	t.Helper()
	hook := &recordingHook{}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(hook)
	t.Cleanup(func() { _ = client.Close() })
	return client, hook
}

func TestManager_RedisWritesFollowAppendOrder(t *testing.T) {
	client, hook := newRecordingClient(t)
	manager := NewManager(client, Config{}, nil)
	ctx := context.Background()

	sess, err := manager.Create(ctx, "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = manager.Append(ctx, sess.ID, msg(model.RoleUser, "x"))
		}()
	}
	wg.Wait()

	if err := manager.Clear(ctx, sess.ID); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	hook.mu.Lock()
	defer hook.mu.Unlock()

	if len(hook.writes) != 52 {
		t.Fatalf("writes = %d, want create + 50 appends + delete", len(hook.writes))
	}
	key := sessionKeyPrefix + sess.ID
	for i, w := range hook.writes[:51] {
		if w.key != key || w.messages != i {
			t.Fatalf("write %d = %+v, want %d messages", i, w, i)
		}
	}
	if last := hook.writes[51]; last.key != key || last.messages != -1 {
		t.Errorf("last write = %+v, want delete", last)
	}
}
