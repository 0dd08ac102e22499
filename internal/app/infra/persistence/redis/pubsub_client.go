package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Waiter 已建立的订阅，等待一条消息
type Waiter interface {
	Wait(ctx context.Context, timeout time.Duration) (string, error)
	Close() error
}

// PubSubClient Redis Pub/Sub 客户端封装
type PubSubClient struct {
	rdb *redis.Client
}

// NewPubSubClient 创建 Pub/Sub 客户端，支持密码认证
func NewPubSubClient(addr, password string, db int) (*PubSubClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &PubSubClient{rdb: rdb}, nil
}

// Listen 订阅 channel 并确认订阅生效
// 先订阅再投递任务，保证不会错过 worker 发布的结果
func (c *PubSubClient) Listen(ctx context.Context, channel string) (Waiter, error) {
	sub := c.rdb.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}
	return &subscription{sub: sub}, nil
}

// Subscribe 订阅指定 channel 并等待消息，支持超时控制
func (c *PubSubClient) Subscribe(ctx context.Context, channel string, timeout time.Duration) (string, error) {
	w, err := c.Listen(ctx, channel)
	if err != nil {
		return "", err
	}
	defer w.Close()

	return w.Wait(ctx, timeout)
}

// Publish 向指定 channel 发布消息
func (c *PubSubClient) Publish(ctx context.Context, channel string, message string) error {
	return c.rdb.Publish(ctx, channel, message).Err()
}

// Close 关闭连接
func (c *PubSubClient) Close() error {
	return c.rdb.Close()
}

type subscription struct {
	sub *redis.PubSub
}

// Wait 阻塞直到收到消息或超时
func (s *subscription) Wait(ctx context.Context, timeout time.Duration) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case msg := <-s.sub.Channel():
		return msg.Payload, nil
	case <-timeoutCtx.Done():
		return "", timeoutCtx.Err()
	}
}

func (s *subscription) Close() error {
	return s.sub.Close()
}
