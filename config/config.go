package config

import (
	"os"
	"shop-service/internal/database"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Config struct {
	Port           string
	GRPCPort       string
	RequestTimeout time.Duration
	JWT            JWT
	DB             DB
	Redis          Redis
	Kafka          Kafka
}

type JWT struct {
	Secret    string
	Issuer    string
	Audience  string
	AccessExp time.Duration
}

type DB struct {
	database.Config
}

type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// Kafka без брокеров отключена: события и письма не публикуются.
type Kafka struct {
	Brokers     []string
	OrdersTopic string
	EmailTopic  string
}

func (k Kafka) Enabled() bool { return len(k.Brokers) > 0 }

func Load(log *zap.Logger) *Config {
	return &Config{
		Port:           getEnv("APP_PORT", log),
		GRPCPort:       getEnvDefault("GRPC_PORT", "50051"),
		RequestTimeout: parseDurationWithDays(getEnvDefault("REQUEST_TIMEOUT", "5s")),
		JWT: JWT{
			Secret:    getEnv("JWT_SECRET", log),
			Issuer:    getEnv("JWT_ISSUER", log),
			Audience:  getEnv("JWT_AUDIENCE", log),
			AccessExp: parseDurationWithDays(getEnvDefault("ACCESS_EXP", "1d")),
		},
		DB: DB{Config: LoadDB(log)},
		Redis: Redis{
			Enabled:  getEnvDefault("REDIS_ENABLED", "false") == "true",
			Addr:     getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       atoiDefault(os.Getenv("REDIS_DB"), 0),
		},
		Kafka: Kafka{
			Brokers:     splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			OrdersTopic: getEnvDefault("KAFKA_TOPIC_ORDERS", "orders.events"),
			EmailTopic:  getEnvDefault("KAFKA_TOPIC_EMAIL", "notifications.email"),
		},
	}
}

// LoadDB: только параметры БД, для cmd/migrate и cmd/seed.
func LoadDB(log *zap.Logger) database.Config {
	return database.Config{
		Host:     getEnv("DB_HOST", log),
		Port:     getEnv("DB_PORT", log),
		User:     getEnv("DB_USER", log),
		Password: getEnv("DB_PASSWORD", log),
		Name:     getEnv("DB_NAME", log),
		SSLMode:  getEnvDefault("DB_SSLMODE", "disable"),
	}
}

type NotifierConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPSSL      bool

	TMPLDir string

	KafkaBrokers []string
	KafkaGroupID string
	KafkaTopic   string
}

func LoadNotifier(log *zap.Logger) *NotifierConfig {
	return &NotifierConfig{
		SMTPHost:     getEnv("SMTP_HOST", log),
		SMTPPort:     getEnvInt("SMTP_PORT", log),
		SMTPUser:     getEnv("SMTP_USER", log),
		SMTPPassword: getEnv("SMTP_PASSWORD", log),
		SMTPFrom:     getEnv("SMTP_FROM", log),
		SMTPSSL:      getEnvDefault("SMTP_SSL", "true") == "true",
		TMPLDir:      getEnvDefault("TMPL_DIR", "templates"),
		KafkaBrokers: splitAndTrim(os.Getenv("KAFKA_BROKERS")),
		KafkaGroupID: getEnvDefault("KAFKA_GROUP_ID", "shop-notifier"),
		KafkaTopic:   getEnvDefault("KAFKA_TOPIC_EMAIL", "notifications.email"),
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, log *zap.Logger) int {
	valStr := getEnv(key, log)
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Error("Ошибка преобразования переменной окружения в int", zap.String("key", key), zap.Error(err))
		panic("invalid int value for environment variable: " + key)
	}
	return val
}

// parseDurationWithDays понимает time.ParseDuration и суффикс "d" (дни).
func parseDurationWithDays(s string) time.Duration {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0
		}
		return time.Duration(days) * 24 * time.Hour
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return duration
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
