package database

import (
	"time"

	"caiary/config"
	"caiary/internal/model"
	"caiary/packages/database"

	"gorm.io/gorm"
)

var (
	PostgresDB *gorm.DB
	RedisDB    *database.RedisClient
)

// InitDatabase 初始化 PostgreSQL 和 Redis，失败直接返回错误由调用方处理
func InitDatabase(migrate bool) error {
	if err := initPostgres(); err != nil {
		return err
	}
	if migrate {
		if err := model.InitTable(PostgresDB); err != nil {
			return err
		}
	}
	return initRedis()
}

// InitPostgresOnly 仅连接数据库，供 migrate 子命令使用
func InitPostgresOnly() error {
	return initPostgres()
}

func initPostgres() error {
	databaseConf := config.Conf.Database

	logLevel := databaseConf.LogLevel
	if logLevel == "" {
		logLevel = "warn"
	}

	var err error
	PostgresDB, err = database.InitPostgres(
		&database.PostgresConfig{
			ServiceName:     "caiary",
			Username:        databaseConf.Username,
			Password:        databaseConf.Password,
			Host:            databaseConf.Host,
			Port:            databaseConf.Port,
			Database:        databaseConf.Database,
			SSLMode:         databaseConf.SSLMode,
			TimeZone:        databaseConf.TimeZone,
			LogLevel:        logLevel,
			MaxIdleConns:    databaseConf.MaxIdleConns,
			MaxOpenConns:    databaseConf.MaxOpenConns,
			ConnMaxLifetime: time.Duration(databaseConf.MaxLifetime) * time.Second,
		},
	)
	return err
}

func initRedis() error {
	redisConf := config.Conf.Redis

	var err error
	RedisDB, err = database.InitRedis(
		&database.RedisConfig{
			ServiceName: "caiary",
			Host:        redisConf.Host,
			Port:        redisConf.Port,
			Password:    redisConf.Password,
			DB:          redisConf.DB,
			PoolSize:    redisConf.PoolSize,
		},
	)
	return err
}

// Close 关闭所有连接
func Close() {
	if PostgresDB != nil {
		if sqlDB, err := PostgresDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if RedisDB != nil {
		_ = RedisDB.Close()
	}
}
