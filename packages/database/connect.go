package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"caiary/packages/logger"

	"go.uber.org/zap"
)

// 建连后校验可用性的超时
const pingTimeout = 5 * time.Second

var errNilConfig = errors.New("数据库配置不能为空")

// orDefault 字段为零值时填充默认值
func orDefault[T comparable](field *T, def T) {
	var zero T
	if *field == zero {
		*field = def
	}
}

// verify 在超时内 ping 一次，失败时释放连接并返回包装后的错误
func verify(kind, service string, ping func(ctx context.Context) error, release func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := ping(ctx); err != nil {
		_ = release()
		logger.L().Error(kind+" 连接失败", zap.String("service", service), zap.Error(err))
		return fmt.Errorf("连接 %s 失败: %w", kind, err)
	}
	return nil
}

func logConnected(kind, service string, fields ...zap.Field) {
	logger.L().Info(kind+" 连接成功", append([]zap.Field{zap.String("service", service)}, fields...)...)
}
