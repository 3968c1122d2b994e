package database

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisConfig 会话与刷新令牌所用 Redis 的连接参数
type RedisConfig struct {
	ServiceName  string
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxConnAge   time.Duration
}

// RedisClient 供 auth 包注入的客户端
type RedisClient struct {
	*redis.Client
}

// InitRedis 建立客户端并 ping 确认可用
func InitRedis(config *RedisConfig) (*RedisClient, error) {
	if config == nil {
		return nil, errNilConfig
	}
	setRedisDefaults(config)

	client := redis.NewClient(&redis.Options{
		Addr:            net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
		Password:        config.Password,
		DB:              config.DB,
		PoolSize:        config.PoolSize,
		MinIdleConns:    config.MinIdleConns,
		ConnMaxLifetime: config.MaxConnAge,
	})

	ping := func(ctx context.Context) error { return client.Ping(ctx).Err() }
	if err := verify("Redis", config.ServiceName, ping, client.Close); err != nil {
		return nil, err
	}

	logConnected("Redis", config.ServiceName,
		zap.String("addr", client.Options().Addr),
		zap.Int("db", config.DB),
		zap.Bool("password", config.Password != ""),
	)
	return &RedisClient{Client: client}, nil
}

func setRedisDefaults(c *RedisConfig) {
	orDefault(&c.ServiceName, "caiary")
	orDefault(&c.Host, "localhost")
	orDefault(&c.Port, 6379)
	orDefault(&c.PoolSize, 10)
	orDefault(&c.MinIdleConns, 5)
	orDefault(&c.MaxConnAge, time.Hour)
}
