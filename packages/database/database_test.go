package database

import (
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	c := &PostgresConfig{Username: "caiary", Password: "pw", Database: "diary"}
	setDefaults(c)

	assert.Equal(t,
		"host=localhost user=caiary password=pw dbname=diary port=5432 sslmode=disable TimeZone=UTC",
		buildDSN(c))

	c.SSLMode = true
	c.TimeZone = "Asia/Seoul"
	assert.Contains(t, buildDSN(c), "sslmode=require TimeZone=Asia/Seoul")
}

func TestSetDefaults(t *testing.T) {
	c := &PostgresConfig{}
	setDefaults(c)

	assert.Equal(t, 10, c.MaxIdleConns)
	assert.Equal(t, 100, c.MaxOpenConns)
	assert.Equal(t, time.Hour, c.ConnMaxLifetime)
	assert.Equal(t, "info", c.LogLevel)
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := InitRedis(&RedisConfig{ServiceName: "caiary-test", Host: mr.Host(), Port: port})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, 10, client.Options().PoolSize)
}

func TestInitRedis_NilConfig(t *testing.T) {
	_, err := InitRedis(nil)
	assert.Error(t, err)
}

func TestInitRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	mr.Close()

	_, err = InitRedis(&RedisConfig{Host: mr.Host(), Port: port})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "连接 Redis 失败")
}

func TestOrDefault_KeepsExplicitValues(t *testing.T) {
	c := &RedisConfig{Port: 6380, PoolSize: 3}
	setRedisDefaults(c)

	assert.Equal(t, 6380, c.Port)
	assert.Equal(t, 3, c.PoolSize)
	assert.Equal(t, "localhost", c.Host)
	assert.Equal(t, 5, c.MinIdleConns)
}

func TestGormLogger_UnknownLevel(t *testing.T) {
	assert.Equal(t, GormLogger("info"), GormLogger("verbose"))
	assert.NotNil(t, GormLogger("silent"))
}
