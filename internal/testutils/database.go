package testutils

import (
	"fmt"
	"testing"

	"caiary/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbPkg "caiary/packages/database"
)

// SetupTestDB creates an isolated in-memory database with all tables migrated.
// Every call gets its own database, so tests never share state.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// 与线上一致：启用外键约束并翻译唯一键、外键错误
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// sqlite 单写者，串行化所有连接
	sqlDB.SetMaxOpenConns(1)

	if err := model.InitTable(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// SetupTestRedis starts an in-process redis server for the test
func SetupTestRedis(t *testing.T) (*dbPkg.RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
	})

	return &dbPkg.RedisClient{Client: client}, mr
}
