package refresh

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"caiary/packages/database"

	"github.com/redis/go-redis/v9"
)

const (
	// RefreshToken Redis key 前缀
	RefreshTokenPrefix = "refresh_token:"
	// 用户的 RefreshToken 集合 key 前缀（用于查看用户的所有活跃 session）
	UserRefreshTokensPrefix = "user_refresh_tokens:"
)

// RefreshTokenRepository 刷新令牌数据访问层
type RefreshTokenRepository struct {
	redis *database.RedisClient
}

func NewRefreshTokenRepository(redisClient *database.RedisClient) *RefreshTokenRepository {
	return &RefreshTokenRepository{redis: redisClient}
}

// TokenData 令牌数据结构
type TokenData struct {
	UserID   uint
	Username string
	Email    string
}

func userTokensKey(userID uint) string {
	return UserRefreshTokensPrefix + strconv.FormatUint(uint64(userID), 10)
}

// Create 存储刷新令牌，并加入用户的令牌集合
func (r *RefreshTokenRepository) Create(ctx context.Context, token string, data TokenData, ttl time.Duration) error {
	key := RefreshTokenPrefix + token
	setKey := userTokensKey(data.UserID)

	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"user_id":  data.UserID,
			"username": data.Username,
			"email":    data.Email,
		})
		pipe.Expire(ctx, key, ttl)
		pipe.SAdd(ctx, setKey, token)
		pipe.Expire(ctx, setKey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("存储令牌失败: %w", err)
	}
	return nil
}

// Consume 原子地读取并删除刷新令牌，同一个令牌只能被消费一次
func (r *RefreshTokenRepository) Consume(ctx context.Context, token string) (*TokenData, error) {
	key := RefreshTokenPrefix + token

	var getCmd *redis.MapStringStringCmd
	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		getCmd = pipe.HGetAll(ctx, key)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("消费令牌失败: %w", err)
	}

	data, err := parseTokenData(getCmd.Val())
	if err != nil || data == nil {
		return data, err
	}

	if err := r.redis.SRem(ctx, userTokensKey(data.UserID), token).Err(); err != nil {
		return nil, fmt.Errorf("更新用户令牌集合失败: %w", err)
	}
	return data, nil
}

// DeleteAllByUserID 删除用户的所有刷新令牌
func (r *RefreshTokenRepository) DeleteAllByUserID(ctx context.Context, userID uint) error {
	setKey := userTokensKey(userID)

	tokens, err := r.redis.SMembers(ctx, setKey).Result()
	if err != nil {
		return fmt.Errorf("获取用户令牌列表失败: %w", err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, RefreshTokenPrefix+token)
	}
	keys = append(keys, setKey)

	if err := r.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("删除用户令牌失败: %w", err)
	}
	return nil
}

func parseTokenData(fields map[string]string) (*TokenData, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	userID, err := strconv.ParseUint(fields["user_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("用户 ID 格式错误: %w", err)
	}

	return &TokenData{
		UserID:   uint(userID),
		Username: fields["username"],
		Email:    fields["email"],
	}, nil
}
