package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	RedisAddr     string
	RedisPassword string

	JWTPublicKey string

	// StorageDriver selects where video artifacts live: "minio" or "local".
	StorageDriver    string
	LocalStoragePath string
	MinioEndpoint    string
	MinioAccessKey   string
	MinioSecretKey   string
	MinioUseSSL      bool
	Bucket           string

	// StreamSecret signs playback URLs; StreamBaseURL is the public prefix
	// embedded into them.
	StreamSecret  string
	StreamBaseURL string

	FFmpegPath  string
	FFprobePath string
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	viper.SetDefault("STORAGE_DRIVER", "minio")
	viper.SetDefault("LOCAL_STORAGE_PATH", "/var/lib/streams-ms")
	viper.SetDefault("STORAGE_BUCKET", "private")
	viper.SetDefault("STREAM_BASE_URL", "/stream")
	viper.SetDefault("FFMPEG_PATH", "ffmpeg")
	viper.SetDefault("FFPROBE_PATH", "ffprobe")

	if !viper.IsSet("MARIADB_DSN") {
		return nil, fmt.Errorf("MARIADB_DSN is required")
	}
	if !viper.IsSet("MARIADB_MAX_OPEN_CONN") {
		return nil, fmt.Errorf("MARIADB_MAX_OPEN_CONN is required")
	}
	if !viper.IsSet("MARIADB_MAX_IDLE_CONNS") {
		return nil, fmt.Errorf("MARIADB_MAX_IDLE_CONNS is required")
	}
	if !viper.IsSet("MARIADB_CONN_MAX_LIFETIME") {
		return nil, fmt.Errorf("MARIADB_CONN_MAX_LIFETIME is required")
	}
	if !viper.IsSet("SERVER_PORT") {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}
	if !viper.IsSet("STREAM_SECRET") {
		return nil, fmt.Errorf("STREAM_SECRET is required")
	}

	driver := viper.GetString("STORAGE_DRIVER")
	if driver != "minio" && driver != "local" {
		return nil, fmt.Errorf("STORAGE_DRIVER must be \"minio\" or \"local\", got %q", driver)
	}

	return &Settings{
		MariaDBDSN:       viper.GetString("MARIADB_DSN"),
		MaxOpenConns:     viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:     viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime:  time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:       viper.GetInt("SERVER_PORT"),
		RedisAddr:        viper.GetString("REDIS_ADDR"),
		RedisPassword:    viper.GetString("REDIS_PASSWORD"),
		JWTPublicKey:     viper.GetString("JWT_PUBLIC_KEY"),
		StorageDriver:    driver,
		LocalStoragePath: viper.GetString("LOCAL_STORAGE_PATH"),
		MinioEndpoint:    viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey:   viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey:   viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:      viper.GetBool("MINIO_USE_SSL"),
		Bucket:           viper.GetString("STORAGE_BUCKET"),
		StreamSecret:     viper.GetString("STREAM_SECRET"),
		StreamBaseURL:    viper.GetString("STREAM_BASE_URL"),
		FFmpegPath:       viper.GetString("FFMPEG_PATH"),
		FFprobePath:      viper.GetString("FFPROBE_PATH"),
	}, nil
}
