package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Quiz   QuizConfig   `yaml:"quiz"`
	Assets AssetsConfig `yaml:"assets"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP server settings. WriteTimeout stays 0 by default
// because the cue stream is a long-lived response.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"0s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout"  env:"SERVER_REQUEST_TIMEOUT"  env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	SessionTTL      time.Duration `yaml:"session_ttl"      env:"SERVER_SESSION_TTL"      env-default:"2h"`
	JanitorInterval time.Duration `yaml:"janitor_interval" env:"SERVER_JANITOR_INTERVAL" env-default:"5m"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// QuizConfig holds the rules every session plays by.
type QuizConfig struct {
	QuestionCount      int           `yaml:"question_count"      env:"QUIZ_QUESTION_COUNT"      env-default:"20"`
	PronunciationDelay time.Duration `yaml:"pronunciation_delay" env:"QUIZ_PRONUNCIATION_DELAY" env-default:"400ms"`
	Locale             string        `yaml:"locale"              env:"QUIZ_LOCALE"              env-default:"fr"`
	SoundMode          string        `yaml:"sound_mode"          env:"QUIZ_SOUND_MODE"          env-default:"file"`
}

// AssetsConfig locates the word list and the media served to the browser.
type AssetsConfig struct {
	CatalogPath string `yaml:"catalog_path" env:"ASSETS_CATALOG_PATH" env-default:"./data/words.json"`
	Dir         string `yaml:"dir"          env:"ASSETS_DIR"          env-default:"./assets"`
	// CheckFiles drops cues whose file is absent from Dir instead of sending a broken URL.
	CheckFiles bool `yaml:"check_files" env:"ASSETS_CHECK_FILES" env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
