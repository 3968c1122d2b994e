package database

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// PostgresConfig 日记库连接参数，零值字段由 setDefaults 补齐
type PostgresConfig struct {
	ServiceName     string
	Username        string
	Password        string
	Host            string
	Port            int
	Database        string
	SSLMode         bool
	TimeZone        string
	LogLevel        string // silent, error, warn, info
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

var gormLevels = map[string]gormlogger.LogLevel{
	"silent": gormlogger.Silent,
	"error":  gormlogger.Error,
	"warn":   gormlogger.Warn,
	"info":   gormlogger.Info,
}

// InitPostgres 打开连接池并 ping 确认可用
func InitPostgres(config *PostgresConfig) (*gorm.DB, error) {
	if config == nil {
		return nil, errNilConfig
	}
	setDefaults(config)

	// TranslateError 把唯一键、外键冲突翻译为 gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated
	db, err := gorm.Open(postgres.Open(buildDSN(config)), &gorm.Config{
		Logger:         GormLogger(config.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接 PostgreSQL 失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取连接池失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err := verify("PostgreSQL", config.ServiceName, sqlDB.PingContext, sqlDB.Close); err != nil {
		return nil, err
	}

	logConnected("PostgreSQL", config.ServiceName,
		zap.String("host", config.Host),
		zap.Int("port", config.Port),
		zap.String("database", config.Database),
	)
	return db, nil
}

func setDefaults(c *PostgresConfig) {
	orDefault(&c.ServiceName, "caiary")
	orDefault(&c.Host, "localhost")
	orDefault(&c.Port, 5432)
	orDefault(&c.TimeZone, "UTC")
	orDefault(&c.LogLevel, "info")
	orDefault(&c.MaxIdleConns, 10)
	orDefault(&c.MaxOpenConns, 100)
	orDefault(&c.ConnMaxLifetime, time.Hour)
}

// buildDSN 拼接 key=value 形式的连接串，顺序固定
func buildDSN(c *PostgresConfig) string {
	sslmode := "disable"
	if c.SSLMode {
		sslmode = "require"
	}
	return strings.Join([]string{
		"host=" + c.Host,
		"user=" + c.Username,
		"password=" + c.Password,
		"dbname=" + c.Database,
		"port=" + strconv.Itoa(c.Port),
		"sslmode=" + sslmode,
		"TimeZone=" + c.TimeZone,
	}, " ")
}

// GormLogger 未知级别按 info 处理
func GormLogger(level string) gormlogger.Interface {
	l, ok := gormLevels[level]
	if !ok {
		l = gormlogger.Info
	}
	return gormlogger.Default.LogMode(l)
}
