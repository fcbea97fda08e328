package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Trivia      TriviaConfig
	Leaderboard LeaderboardConfig
	Quota       QuotaConfig
	Session     SessionConfig
	APIs        APIsConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single', если Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	// Настройки ретраев клиента (0 — значения по умолчанию go-redis)
	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // миллисекунды
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // миллисекунды
}

// TriviaConfig содержит игровые настройки викторины
type TriviaConfig struct {
	// Количество вопросов по контракту: 7 для фильма, 21 для коллекции
	MovieQuestions      int `mapstructure:"movie_questions"`
	CollectionQuestions int `mapstructure:"collection_questions"`

	// Минимальное количество фильмов для викторины по коллекции
	MinMoviesForCollection int `mapstructure:"min_movies_for_collection"`

	// Пороги бейджей производительности (проценты), строго по убыванию
	MasterThreshold   int `mapstructure:"master_threshold"`
	ExpertThreshold   int `mapstructure:"expert_threshold"`
	BuffThreshold     int `mapstructure:"buff_threshold"`
	LearningThreshold int `mapstructure:"learning_threshold"`

	// ProviderMode: "auto" — RapidAPI с откатом на OpenAI; "mock" — локальный
	// генератор без внешних вызовов (явный оффлайн/тестовый режим)
	ProviderMode string `mapstructure:"provider_mode"`
}

// LeaderboardConfig содержит лимиты выборок лидербордов
type LeaderboardConfig struct {
	GlobalLimit      int `mapstructure:"global_limit"`
	CollectionLimit  int `mapstructure:"collection_limit"`
	MovieLimit       int `mapstructure:"movie_limit"`
	UserRecentScores int `mapstructure:"user_recent_scores"`
}

// QuotaConfig содержит настройки месячного лимита вызовов основного провайдера
type QuotaConfig struct {
	MonthlyLimit int    `mapstructure:"monthly_limit"`
	UsageFile    string `mapstructure:"usage_file"`
}

// SessionConfig содержит настройки игровых сессий в Redis
type SessionConfig struct {
	// TTLMinutes — время жизни неоконченной сессии викторины
	TTLMinutes int `mapstructure:"ttl_minutes"`
	// CookieName — имя cookie с идентификатором сессии браузера
	CookieName string `mapstructure:"cookie_name"`
}

// APIsConfig содержит настройки внешних API
type APIsConfig struct {
	RapidAPI RapidAPIConfig `mapstructure:"rapidapi"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	OMDb     OMDbConfig     `mapstructure:"omdb"`
}

// RapidAPIConfig — основной (квотируемый) провайдер вопросов
type RapidAPIConfig struct {
	Key        string `mapstructure:"key"`
	URL        string `mapstructure:"url"`
	Host       string `mapstructure:"host"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// OpenAIConfig — резервный провайдер вопросов
type OpenAIConfig struct {
	Key        string `mapstructure:"key"`
	URL        string `mapstructure:"url"`
	Model      string `mapstructure:"model"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// OMDbConfig — обогащение данных о фильмах
type OMDbConfig struct {
	Key        string `mapstructure:"key"`
	URL        string `mapstructure:"url"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Значения по умолчанию для игровых настроек
	vip.SetDefault("trivia.movie_questions", 7)
	vip.SetDefault("trivia.collection_questions", 21)
	vip.SetDefault("trivia.min_movies_for_collection", 3)
	vip.SetDefault("trivia.master_threshold", 90)
	vip.SetDefault("trivia.expert_threshold", 75)
	vip.SetDefault("trivia.buff_threshold", 60)
	vip.SetDefault("trivia.learning_threshold", 40)
	vip.SetDefault("trivia.provider_mode", "auto")
	vip.SetDefault("leaderboard.global_limit", 20)
	vip.SetDefault("leaderboard.collection_limit", 20)
	vip.SetDefault("leaderboard.movie_limit", 15)
	vip.SetDefault("leaderboard.user_recent_scores", 5)
	vip.SetDefault("quota.monthly_limit", 95)
	vip.SetDefault("quota.usage_file", "instance/api_usage.json")
	vip.SetDefault("session.ttl_minutes", 120)
	vip.SetDefault("session.cookie_name", "mw_session")
	vip.SetDefault("apis.rapidapi.url", "https://chatgpt-ai-chat-bot.p.rapidapi.com/ask")
	vip.SetDefault("apis.rapidapi.host", "chatgpt-ai-chat-bot.p.rapidapi.com")
	vip.SetDefault("apis.rapidapi.timeout_sec", 30)
	vip.SetDefault("apis.openai.url", "https://api.openai.com/v1/chat/completions")
	vip.SetDefault("apis.openai.model", "gpt-3.5-turbo")
	vip.SetDefault("apis.openai.timeout_sec", 30)
	vip.SetDefault("apis.omdb.url", "http://www.omdbapi.com/")
	vip.SetDefault("apis.omdb.timeout_sec", 5)
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 15)

	// 2. Привязываем переменные окружения ЯВНО
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// Ключи внешних API только из окружения
	vip.BindEnv("apis.rapidapi.key", "RAPIDAPI_KEY")
	vip.BindEnv("apis.openai.key", "OPENAI_API_KEY")
	vip.BindEnv("apis.omdb.key", "OMDB_API_KEY")

	vip.BindEnv("trivia.provider_mode", "TRIVIA_PROVIDER_MODE")
	vip.BindEnv("quota.monthly_limit", "QUOTA_MONTHLY_LIMIT")
	vip.BindEnv("quota.usage_file", "QUOTA_USAGE_FILE")

	vip.BindEnv("server.port", "SERVER_PORT")

	// 3. Путь к файлу конфигурации
	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Не страшно, если файла нет: есть BindEnv и умолчания
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 4. Анмаршалим конфигурацию (Viper объединит файл, env vars и умолчания)
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Логирование конфигурации (только в debug режиме)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Trivia Provider Mode: %s", cfg.Trivia.ProviderMode)
		log.Printf("Quota Monthly Limit: %d", cfg.Quota.MonthlyLimit)
		log.Printf("RapidAPI Key Set: %t", cfg.APIs.RapidAPI.Key != "")
		log.Printf("OpenAI Key Set: %t", cfg.APIs.OpenAI.Key != "")
		log.Printf("OMDb Key Set: %t", cfg.APIs.OMDb.Key != "")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("-----------------------------------------")
	}

	// 6. Проверка обязательных параметров
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if err := cfg.Trivia.validateThresholds(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validateThresholds проверяет, что пороги бейджей упорядочены по убыванию
// и лежат в [0, 100]. Шаговая функция должна быть тотальной на этом отрезке.
func (t *TriviaConfig) validateThresholds() error {
	if t.MasterThreshold > 100 || t.LearningThreshold < 0 {
		return fmt.Errorf("trivia thresholds must lie within [0, 100]")
	}
	if !(t.MasterThreshold > t.ExpertThreshold &&
		t.ExpertThreshold > t.BuffThreshold &&
		t.BuffThreshold > t.LearningThreshold) {
		return fmt.Errorf("trivia thresholds must be strictly decreasing: master > expert > buff > learning")
	}
	return nil
}
