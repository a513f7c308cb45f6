package providers

import (
	"donosync/internal/structures"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("stream.retries", 3)
	v.SetDefault("stream.reconnectDelay", time.Second)
	v.SetDefault("stream.dialTimeout", 10*time.Second)
	v.SetDefault("stream.maxFrameSize", 1<<20)
	v.SetDefault("stream.heartbeat.enabled", true)
	v.SetDefault("stream.heartbeat.interval", 60*time.Second)
	v.SetDefault("stream.heartbeat.timeout", 5*time.Second)
	v.SetDefault("stream.heartbeat.message", "ping")
	v.SetDefault("stream.heartbeat.response", "pong")
	v.SetDefault("spotlight.duration", 20*time.Second)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config
	v := viper.New()

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setConfigDefaults(v)

	v.BindEnv("stream.address", "DONOSYNC_WS_URL", "WS_URL")
	v.BindEnv("stream.retries", "DONOSYNC_RETRIES")
	v.BindEnv("stream.heartbeat.interval", "DONOSYNC_HEARTBEAT_INTERVAL")
	v.BindEnv("stream.heartbeat.timeout", "DONOSYNC_HEARTBEAT_TIMEOUT")
	v.BindEnv("spotlight.duration", "DONOSYNC_SPOTLIGHT_DURATION")
	v.BindEnv("logger.level", "DONOSYNC_LOG_LEVEL")
	v.BindEnv("cache.enabled", "DONOSYNC_CACHE_ENABLED")
	v.BindEnv("cache.size", "DONOSYNC_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "DonoSync"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
