package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type HeartbeatConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval" validate:"min:0"`
	Timeout  time.Duration `yaml:"timeout" validate:"min:0"`
	Message  string        `yaml:"message"`
	Response string        `yaml:"response"`
}

type StreamConfig struct {
	Address        string          `yaml:"address" validate:"required"`
	Retries        int             `yaml:"retries" validate:"min:0"`
	ReconnectDelay time.Duration   `yaml:"reconnectDelay" validate:"min:0"`
	DialTimeout    time.Duration   `yaml:"dialTimeout" validate:"min:0"`
	MaxFrameSize   int64           `yaml:"maxFrameSize" validate:"min:0"`
	Compression    bool            `yaml:"compression"`
	Heartbeat      HeartbeatConfig `yaml:"heartbeat"`
}

type SpotlightConfig struct {
	Duration time.Duration `yaml:"duration" validate:"required|min:1"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	Stream    StreamConfig    `yaml:"stream"`
	Spotlight SpotlightConfig `yaml:"spotlight"`
	WebServer Server          `yaml:"webServer"`
	Logger    LoggerConfig    `yaml:"logger"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}
