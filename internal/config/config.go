package config

import (
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	MetricsPort    int    `mapstructure:"metrics_port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	Campgrounds string `mapstructure:"campgrounds_collection"`
	Reviews     string `mapstructure:"reviews_collection"`
	Users       string `mapstructure:"users_collection"`
}

type AWSConf struct {
	Region   string `mapstructure:"region"`
	Bucket   string `mapstructure:"bucket"`
	Endpoint string `mapstructure:"endpoint"`
}

type S3Conf struct {
	PublicRead bool `mapstructure:"public_read"`
	PresignTTL int  `mapstructure:"presign_ttl_seconds"`
}

type RedisConf struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SessionConf struct {
	CookieName string `mapstructure:"cookie_name"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

type JWTConf struct {
	PublicKeyPath string `mapstructure:"public_key_path"`
}

type GeocoderConf struct {
	Endpoint        string `mapstructure:"endpoint"`
	Token           string `mapstructure:"token"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	RetryMaxSeconds int    `mapstructure:"retry_max_seconds"`
}

type RateLimitConf struct {
	LoginLimit         int `mapstructure:"login_limit"`
	LoginWindowSeconds int `mapstructure:"login_window_seconds"`
}

type Config struct {
	App       AppConf       `mapstructure:"app"`
	Mongo     MongoConf     `mapstructure:"mongodb"`
	AWS       AWSConf       `mapstructure:"aws"`
	S3        S3Conf        `mapstructure:"s3"`
	Redis     RedisConf     `mapstructure:"redis"`
	Session   SessionConf   `mapstructure:"session"`
	JWT       JWTConf       `mapstructure:"jwt"`
	Geocoder  GeocoderConf  `mapstructure:"geocoder"`
	RateLimit RateLimitConf `mapstructure:"ratelimit"`
	Log       struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	// derived
	ShutdownTimeout time.Duration
	SessionTTL      time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.App.ShutdownSecond == 0 {
		cfg.App.ShutdownSecond = 15
	}
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	if cfg.S3.PresignTTL == 0 {
		cfg.S3.PresignTTL = 600
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "campsite_sid"
	}
	if cfg.Session.TTLSeconds == 0 {
		cfg.Session.TTLSeconds = 7 * 24 * 3600
	}
	cfg.SessionTTL = time.Duration(cfg.Session.TTLSeconds) * time.Second
	if cfg.Geocoder.TimeoutSeconds == 0 {
		cfg.Geocoder.TimeoutSeconds = 10
	}
	if cfg.Geocoder.RetryMaxSeconds == 0 {
		cfg.Geocoder.RetryMaxSeconds = 20
	}
	if cfg.RateLimit.LoginLimit == 0 {
		cfg.RateLimit.LoginLimit = 10
	}
	if cfg.RateLimit.LoginWindowSeconds == 0 {
		cfg.RateLimit.LoginWindowSeconds = 60
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	return &cfg, nil
}
