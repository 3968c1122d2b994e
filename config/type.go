package config

import "time"

// AppConfig 应用配置结构
type AppConfig struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Log      LogConfig      `koanf:"log"`
	JWT      JWTConfig      `koanf:"jwt"`
	Kakao    KakaoConfig    `koanf:"kakao"`
	Storage  StorageConfig  `koanf:"storage"`
	Article  ArticleConfig  `koanf:"article"`
}

type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	Mode         string        `koanf:"mode"` // debug, release
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	FrontendURL  string        `koanf:"frontend_url"`
	CookieSecure bool          `koanf:"cookie_secure"`
}

type DatabaseConfig struct {
	Driver       string `koanf:"driver"`
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	Database     string `koanf:"database"`
	SSLMode      bool   `koanf:"sslmode"`
	TimeZone     string `koanf:"timezone"`
	LogLevel     string `koanf:"log_level"` // 数据库日志级别
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"` // 秒
}

type RedisConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	PoolSize int    `koanf:"pool_size"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, console
	Output string `koanf:"output"` // stdout, file, both
	Path   string `koanf:"path"`   // 日志文件路径
}

type JWTConfig struct {
	Secret            string `koanf:"secret"`
	ExpireTime        int    `koanf:"expire_time"`         // 小时
	RefreshExpireTime int    `koanf:"refresh_expire_time"` // 小时
}

// KakaoConfig 第三方登录(Kakao)配置
type KakaoConfig struct {
	APIBase string        `koanf:"api_base"`
	Timeout time.Duration `koanf:"timeout"`
}

// StorageConfig 图片存储配置
type StorageConfig struct {
	Driver string             `koanf:"driver"` // local, minio
	Local  LocalStorageConfig `koanf:"local"`
	Minio  MinioStorageConfig `koanf:"minio"`
}

type LocalStorageConfig struct {
	Dir       string `koanf:"dir"`
	URLPrefix string `koanf:"url_prefix"`
}

type MinioStorageConfig struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Bucket    string `koanf:"bucket"`
	Region    string `koanf:"region"`
	UseSSL    bool   `koanf:"use_ssl"`
	PublicURL string `koanf:"public_url"`
}

// ArticleConfig 日记相关配置
type ArticleConfig struct {
	// 按年月筛选时使用的时区
	TimeZone string `koanf:"timezone"`
}
