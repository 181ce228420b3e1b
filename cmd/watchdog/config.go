package main

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DisconnectInterval time.Duration
	TimeoutInterval    time.Duration
	CleanupInterval    time.Duration
}

func NewConfig() Config {
	viper.AutomaticEnv()
	viper.SetDefault("WATCHDOG_DISCONNECT_INTERVAL", "1m")
	viper.SetDefault("WATCHDOG_TIMEOUT_INTERVAL", "1m")
	viper.SetDefault("WATCHDOG_CLEANUP_INTERVAL", "5m")

	return Config{
		DisconnectInterval: viper.GetDuration("WATCHDOG_DISCONNECT_INTERVAL"),
		TimeoutInterval:    viper.GetDuration("WATCHDOG_TIMEOUT_INTERVAL"),
		CleanupInterval:    viper.GetDuration("WATCHDOG_CLEANUP_INTERVAL"),
	}
}
