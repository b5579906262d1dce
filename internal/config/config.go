package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/engula/engula-operator/internal/infra/resync"
	"github.com/engula/engula-operator/internal/logic/controller"
)

const (
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultHTTPPort        = "8080"
	defaultMetricsPort     = "9090"
	defaultWorkers         = "2"
	defaultResyncPeriod    = "5m"
	defaultPingerInterval  = "10s"
	defaultTerminationFile = "/mnt/signal/terminating"
)

type Config struct {
	KubeConfig      string
	KubeMaster      string
	LogLevel        string
	LogFormat       string
	HTTPPort        string
	MetricsPort     string
	Namespace       string
	Workers         int
	ResyncPeriod    time.Duration
	ResyncSchedule  string
	PingerInterval  time.Duration
	Reporter        string
	TerminationFile string
}

func Load() (*Config, error) {
	cfg := &Config{
		KubeConfig:      getEnvWithFallback(envKeyKubeConfig, envKeyKubeConfigFallback),
		KubeMaster:      getEnvWithFallback(envKeyKubeMaster, envKeyKubeMasterFallback),
		LogLevel:        getEnvOrDefault(envKeyLogLevel, defaultLogLevel),
		LogFormat:       getEnvOrDefault(envKeyLogFormat, defaultLogFormat),
		HTTPPort:        getEnvOrDefault(envKeyHTTPPort, defaultHTTPPort),
		MetricsPort:     getEnvOrDefault(envKeyMetricsPort, defaultMetricsPort),
		Namespace:       os.Getenv(envKeyNamespace),
		ResyncSchedule:  os.Getenv(envKeyResyncSchedule),
		Reporter:        getEnvOrDefault(envKeyReporter, controller.DefaultReporter),
		TerminationFile: getEnvOrDefault(envKeyTerminationFile, defaultTerminationFile),
	}

	workers, err := strconv.Atoi(getEnvOrDefault(envKeyWorkers, defaultWorkers))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", envKeyWorkers, err)
	}

	if workers < envMinWorkers {
		return nil, fmt.Errorf("%s must be at least %d: %w", envKeyWorkers, envMinWorkers, ErrInvalidValue)
	}

	cfg.Workers = workers

	cfg.ResyncPeriod, err = parseDuration(envKeyResyncPeriod, defaultResyncPeriod, envMinResyncPeriod)
	if err != nil {
		return nil, err
	}

	cfg.PingerInterval, err = parseDuration(envKeyPingerInterval, defaultPingerInterval, envMinPingerInterval)
	if err != nil {
		return nil, err
	}

	if cfg.ResyncSchedule != "" {
		_, err = resync.ParseSchedule(cfg.ResyncSchedule)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", envKeyResyncSchedule, err)
		}
	}

	return cfg, nil
}

func parseDuration(key, defaultValue string, minValue time.Duration) (time.Duration, error) {
	d, err := time.ParseDuration(getEnvOrDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	if d < minValue {
		return 0, fmt.Errorf("%s must be at least %s: %w", key, minValue, ErrInvalidValue)
	}

	return d, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

func getEnvWithFallback(key, fallbackKey string) string {
	value := os.Getenv(key)
	if value == "" {
		return os.Getenv(fallbackKey)
	}

	return value
}
