// config/config.go - 配置管理文件
package config

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix 环境变量前缀，CAIARY_DATABASE_HOST 对应 database.host
const EnvPrefix = "CAIARY_"

var (
	Conf *AppConfig
	once sync.Once
)

// Load 加载配置文件，进程内只加载一次
func Load(configPath string) error {
	var err error
	once.Do(func() {
		// 首先加载 .env 文件到环境变量
		if envErr := godotenv.Load(); envErr != nil {
			log.Printf("警告: 无法加载 .env 文件: %v", envErr)
		}

		Conf, err = loadInto(koanf.New("."), configPath)
	})

	return err
}

// loadInto 依次加载配置文件和环境变量，并解析到结构体
func loadInto(k *koanf.Koanf, configPath string) (*AppConfig, error) {
	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("加载配置文件失败: %w", err)
	}

	// 再加载环境变量（覆盖配置文件）
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		log.Printf("加载环境变量失败: %v", err)
	}

	conf := &AppConfig{}
	if err := k.Unmarshal("", conf); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	applyDefaults(conf)

	if conf.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret 不能为空")
	}
	if _, err := time.LoadLocation(conf.Article.TimeZone); err != nil {
		return nil, fmt.Errorf("无效的 article.timezone: %w", err)
	}

	return conf, nil
}

// applyDefaults 填充默认值并转换时间单位
func applyDefaults(c *AppConfig) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}
	// 配置文件中以秒为单位
	c.Server.ReadTimeout = secondsOr(c.Server.ReadTimeout, 30)
	c.Server.WriteTimeout = secondsOr(c.Server.WriteTimeout, 30)

	if c.JWT.ExpireTime == 0 {
		c.JWT.ExpireTime = 24
	}
	if c.JWT.RefreshExpireTime == 0 {
		c.JWT.RefreshExpireTime = 24 * 7
	}

	if c.Kakao.APIBase == "" {
		c.Kakao.APIBase = "https://kapi.kakao.com"
	}
	c.Kakao.Timeout = secondsOr(c.Kakao.Timeout, 5)

	if c.Storage.Driver == "" {
		c.Storage.Driver = "local"
	}
	if c.Storage.Local.Dir == "" {
		c.Storage.Local.Dir = "media"
	}
	if c.Storage.Local.URLPrefix == "" {
		c.Storage.Local.URLPrefix = "/media"
	}

	if c.Article.TimeZone == "" {
		c.Article.TimeZone = "Asia/Seoul"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func secondsOr(v time.Duration, def int) time.Duration {
	if v <= 0 {
		return time.Duration(def) * time.Second
	}
	return v * time.Second
}

// ServerAddr 监听地址
func (c *AppConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ArticleLocation 按年月筛选日记使用的时区
func (c *AppConfig) ArticleLocation() *time.Location {
	loc, err := time.LoadLocation(c.Article.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
