package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Storage  StorageConfig
	JWT      JWTConfig
}

var (
	instance *Config
	once     sync.Once
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	URI          string
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

type JWTConfig struct {
	Secret         string
	ExpirationTime time.Duration
}

func Load() (*Config, error) {
	once.Do(func() {
		viper.SetDefault("CAMPUSNET_HOST", "")
		viper.SetDefault("CAMPUSNET_PORT", "8080")
		viper.SetDefault("CAMPUSNET_READ_TIMEOUT", 30*time.Second)
		viper.SetDefault("CAMPUSNET_WRITE_TIMEOUT", 30*time.Second)
		viper.SetDefault("CAMPUSNET_IDLE_TIMEOUT", 60*time.Second)
		viper.SetDefault("CAMPUSNET_JWT_SECRET", "secret")
		viper.SetDefault("CAMPUSNET_JWT_EXPIRE", "168h")
		viper.SetDefault("MYSQL_USER", "root")
		viper.SetDefault("MYSQL_PASSWORD", "password")
		viper.SetDefault("MYSQL_HOST", "localhost")
		viper.SetDefault("MYSQL_PORT", "3306")
		viper.SetDefault("MYSQL_DB", "campusnet")
		viper.SetDefault("REDIS_URL", "redis://127.0.0.1:6379/0")
		viper.SetDefault("REDIS_MAX_RETRIES", 3)
		viper.SetDefault("REDIS_POOL_SIZE", 100)
		viper.SetDefault("REDIS_MIN_IDLE_CONNS", 10)
		viper.SetDefault("REDIS_DIAL_TIMEOUT", 5*time.Second)
		viper.SetDefault("REDIS_READ_TIMEOUT", 3*time.Second)
		viper.SetDefault("REDIS_WRITE_TIMEOUT", 3*time.Second)
		viper.SetDefault("KAFKA_BROKERS", []string{"localhost:9092"})
		viper.SetDefault("KAFKA_NOTIFICATION_TOPIC", "campusnet.notifications")
		viper.SetDefault("MINIO_ENDPOINT", "localhost:9000")
		viper.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
		viper.SetDefault("MINIO_SECRET_KEY", "minioadmin")
		viper.SetDefault("MINIO_BUCKET", "campusnet")
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Host:         viper.GetString("CAMPUSNET_HOST"),
				Port:         viper.GetString("CAMPUSNET_PORT"),
				ReadTimeout:  viper.GetDuration("CAMPUSNET_READ_TIMEOUT"),
				WriteTimeout: viper.GetDuration("CAMPUSNET_WRITE_TIMEOUT"),
				IdleTimeout:  viper.GetDuration("CAMPUSNET_IDLE_TIMEOUT"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("MYSQL_HOST"),
				Port:     viper.GetString("MYSQL_PORT"),
				User:     viper.GetString("MYSQL_USER"),
				Password: viper.GetString("MYSQL_PASSWORD"),
				DBName:   viper.GetString("MYSQL_DB"),
			},
			Redis: RedisConfig{
				URI:          viper.GetString("REDIS_URL"),
				MaxRetries:   viper.GetInt("REDIS_MAX_RETRIES"),
				DialTimeout:  viper.GetDuration("REDIS_DIAL_TIMEOUT"),
				ReadTimeout:  viper.GetDuration("REDIS_READ_TIMEOUT"),
				WriteTimeout: viper.GetDuration("REDIS_WRITE_TIMEOUT"),
				PoolSize:     viper.GetInt("REDIS_POOL_SIZE"),
				MinIdleConns: viper.GetInt("REDIS_MIN_IDLE_CONNS"),
			},
			Kafka: KafkaConfig{
				Brokers: viper.GetStringSlice("KAFKA_BROKERS"),
				Topic:   viper.GetString("KAFKA_NOTIFICATION_TOPIC"),
			},
			Storage: StorageConfig{
				Endpoint:  viper.GetString("MINIO_ENDPOINT"),
				AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
				SecretKey: viper.GetString("MINIO_SECRET_KEY"),
				Bucket:    viper.GetString("MINIO_BUCKET"),
			},
			JWT: JWTConfig{
				Secret:         viper.GetString("CAMPUSNET_JWT_SECRET"),
				ExpirationTime: viper.GetDuration("CAMPUSNET_JWT_EXPIRE"),
			},
		}
	})

	return instance, nil
}
