package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadInto_Defaults(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: test-secret
database:
  host: db.internal
  port: 5433
`)

	conf, err := loadInto(koanf.New("."), path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", conf.Database.Host)
	assert.Equal(t, 5433, conf.Database.Port)
	assert.Equal(t, 8080, conf.Server.Port)
	assert.Equal(t, 30*time.Second, conf.Server.ReadTimeout)
	assert.Equal(t, 24, conf.JWT.ExpireTime)
	assert.Equal(t, "https://kapi.kakao.com", conf.Kakao.APIBase)
	assert.Equal(t, "local", conf.Storage.Driver)
	assert.Equal(t, "Asia/Seoul", conf.Article.TimeZone)
	assert.Equal(t, "Asia/Seoul", conf.ArticleLocation().String())
}

func TestLoadInto_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: from-file
server:
  port: 9000
  read_timeout: 10
`)
	t.Setenv("CAIARY_JWT_SECRET", "from-env")

	conf, err := loadInto(koanf.New("."), path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", conf.JWT.Secret)
	assert.Equal(t, ":9000", conf.ServerAddr())
	assert.Equal(t, 10*time.Second, conf.Server.ReadTimeout)
}

func TestLoadInto_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := loadInto(koanf.New("."), filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		_, err := loadInto(koanf.New("."), writeConfig(t, "server:\n  port: 8080\n"))
		assert.ErrorContains(t, err, "jwt.secret")
	})

	t.Run("invalid timezone", func(t *testing.T) {
		_, err := loadInto(koanf.New("."), writeConfig(t, "jwt:\n  secret: s\narticle:\n  timezone: Mars/Olympus\n"))
		assert.ErrorContains(t, err, "article.timezone")
	})
}
