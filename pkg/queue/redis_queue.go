package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RedisQueue Redis事件队列实现
type RedisQueue struct {
	client *redis.Client
	prefix string
}

// 事件类型常量
const (
	EventLicenseActivated   = "license.activated"
	EventLicenseUsersAdded  = "license.users_increased"
	EventEmployeeRegistered = "employee.registered"
	EventCompanyDeleted     = "company.deleted"
)

// EventMessage 队列中的事件消息
type EventMessage struct {
	EventID   string                 `json:"event_id"`
	EventType string                 `json:"event_type"`
	CompanyID uint                   `json:"company_id"`
	UserID    uint                   `json:"user_id"`   // 触发人ID
	Username  string                 `json:"username"`  // 触发人用户名
	Payload   map[string]interface{} `json:"payload"`
	Created   int64                  `json:"created"`
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// NewRedisQueue 创建Redis队列实例
func NewRedisQueue(config *Config) *RedisQueue {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "slms:events"
	}

	return &RedisQueue{
		client: client,
		prefix: prefix,
	}
}

// Close 关闭Redis连接
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

// Ping 测试Redis连接
func (q *RedisQueue) Ping() error {
	ctx := context.Background()
	return q.client.Ping(ctx).Err()
}

// Publish 发布生命周期事件
func (q *RedisQueue) Publish(eventType string, companyID, userID uint, username string, payload map[string]interface{}) error {
	ctx := context.Background()

	message := EventMessage{
		EventID:   uuid.NewString(),
		EventType: eventType,
		CompanyID: companyID,
		UserID:    userID,
		Username:  username,
		Payload:   payload,
		Created:   time.Now().Unix(),
	}

	// 序列化消息
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("序列化事件消息失败: %v", err)
	}

	// 加入队列（左侧入队）
	queueKey := fmt.Sprintf("%s:lifecycle", q.prefix)
	if err := q.client.LPush(ctx, queueKey, data).Err(); err != nil {
		return fmt.Errorf("事件入队失败: %v", err)
	}

	return nil
}

// Pop 从队列取出一个事件（阻塞，供外部消费方使用）
func (q *RedisQueue) Pop(timeout time.Duration) (*EventMessage, error) {
	ctx := context.Background()

	queueKey := fmt.Sprintf("%s:lifecycle", q.prefix)
	result, err := q.client.BRPop(ctx, timeout, queueKey).Result()
	if err != nil {
		return nil, err
	}

	// BRPop返回 [key, value]
	if len(result) < 2 {
		return nil, fmt.Errorf("队列返回数据格式错误")
	}

	var message EventMessage
	if err := json.Unmarshal([]byte(result[1]), &message); err != nil {
		return nil, fmt.Errorf("解析事件消息失败: %v", err)
	}

	return &message, nil
}
