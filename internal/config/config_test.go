package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/engula/engula-operator/internal/config"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		giveEnv   map[string]string
		wantErr   bool
		wantErrIs error
		wantCfg   *config.Config
	}{
		{
			name: "all defaults",
			giveEnv: map[string]string{
				"KUBECONFIG":        "",
				"KUBERNETES_MASTER": "",
			},
			wantCfg: &config.Config{
				LogLevel:        "info",
				LogFormat:       "json",
				HTTPPort:        "8080",
				MetricsPort:     "9090",
				Workers:         2,
				ResyncPeriod:    5 * time.Minute,
				PingerInterval:  10 * time.Second,
				Reporter:        "engula-operator",
				TerminationFile: "/mnt/signal/terminating",
			},
		},
		{
			name: "kube settings fall back to standard keys",
			giveEnv: map[string]string{
				"KUBECONFIG":        "/home/op/.kube/config",
				"KUBERNETES_MASTER": "https://10.0.0.1:6443",
			},
			wantCfg: &config.Config{
				KubeConfig:      "/home/op/.kube/config",
				KubeMaster:      "https://10.0.0.1:6443",
				LogLevel:        "info",
				LogFormat:       "json",
				HTTPPort:        "8080",
				MetricsPort:     "9090",
				Workers:         2,
				ResyncPeriod:    5 * time.Minute,
				PingerInterval:  10 * time.Second,
				Reporter:        "engula-operator",
				TerminationFile: "/mnt/signal/terminating",
			},
		},
		{
			name: "prefixed keys win and everything overrides",
			giveEnv: map[string]string{
				"KUBECONFIG":              "/ignored",
				"ENGULA_KUBECONFIG":       "/etc/engula/kubeconfig",
				"ENGULA_KUBE_MASTER":      "https://api:6443",
				"ENGULA_LOG_LEVEL":        "debug",
				"ENGULA_LOG_FORMAT":       "text",
				"ENGULA_HTTP_PORT":        "8081",
				"ENGULA_METRICS_PORT":     "9091",
				"ENGULA_NAMESPACE":        "engula",
				"ENGULA_WORKERS":          "4",
				"ENGULA_RESYNC_PERIOD":    "1m",
				"ENGULA_RESYNC_SCHEDULE":  "0 * * * *",
				"ENGULA_PINGER_INTERVAL":  "5s",
				"ENGULA_REPORTER":         "engula-operator-canary",
				"ENGULA_TERMINATION_FILE": "/tmp/terminating",
			},
			wantCfg: &config.Config{
				KubeConfig:      "/etc/engula/kubeconfig",
				KubeMaster:      "https://api:6443",
				LogLevel:        "debug",
				LogFormat:       "text",
				HTTPPort:        "8081",
				MetricsPort:     "9091",
				Namespace:       "engula",
				Workers:         4,
				ResyncPeriod:    time.Minute,
				ResyncSchedule:  "0 * * * *",
				PingerInterval:  5 * time.Second,
				Reporter:        "engula-operator-canary",
				TerminationFile: "/tmp/terminating",
			},
		},
		{
			name:    "invalid ENGULA_WORKERS",
			giveEnv: map[string]string{"ENGULA_WORKERS": "x"},
			wantErr: true,
		},
		{
			name:      "zero ENGULA_WORKERS",
			giveEnv:   map[string]string{"ENGULA_WORKERS": "0"},
			wantErr:   true,
			wantErrIs: config.ErrInvalidValue,
		},
		{
			name:    "invalid ENGULA_RESYNC_PERIOD",
			giveEnv: map[string]string{"ENGULA_RESYNC_PERIOD": "soon"},
			wantErr: true,
		},
		{
			name:      "too short ENGULA_RESYNC_PERIOD",
			giveEnv:   map[string]string{"ENGULA_RESYNC_PERIOD": "10s"},
			wantErr:   true,
			wantErrIs: config.ErrInvalidValue,
		},
		{
			name:      "too short ENGULA_PINGER_INTERVAL",
			giveEnv:   map[string]string{"ENGULA_PINGER_INTERVAL": "100ms"},
			wantErr:   true,
			wantErrIs: config.ErrInvalidValue,
		},
		{
			name:    "malformed ENGULA_RESYNC_SCHEDULE",
			giveEnv: map[string]string{"ENGULA_RESYNC_SCHEDULE": "every hour"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.giveEnv {
				t.Setenv(k, v)
			}

			got, err := config.Load()
			if tt.wantErr {
				require.Error(t, err)

				if tt.wantErrIs != nil {
					require.ErrorIs(t, err, tt.wantErrIs)
				}

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantCfg, got)
		})
	}
}
