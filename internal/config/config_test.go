package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		filePath  string
		wantErr   bool
		errString string
	}{
		{
			name:     "valid config file",
			filePath: "testdata/valid_config.yaml",
			wantErr:  false,
		},
		{
			name:      "non-existent file",
			filePath:  "testdata/nonexistent.yaml",
			wantErr:   true,
			errString: "failed to read config file",
		},
		{
			name:      "malformed yaml",
			filePath:  "testdata/malformed.yaml",
			wantErr:   true,
			errString: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.filePath)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)

				// Verify some key fields are populated
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "jobboard_db", cfg.Database.Database)
				assert.Equal(t, "jobboard_events", cfg.RabbitMQ.Exchange.Name)
				assert.Equal(t, "jobboard_notifications", cfg.RabbitMQ.Queue.Name)
				assert.Equal(t, "#", cfg.RabbitMQ.BindingKey)
				assert.Equal(t, 10, cfg.RabbitMQ.Consumer.PrefetchCount)
				assert.Equal(t, "jobboard-api-service", cfg.App.Name)
				assert.Equal(t, 4, cfg.Worker.Concurrency)
				assert.Equal(t, 30*time.Second, cfg.Worker.ShutdownTimeout)
			}
		})
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "jobboard_db",
		},
		RabbitMQ: RabbitMQConfig{
			Host: "localhost",
			Port: 5672,
			Exchange: ExchangeConfig{
				Name: "jobboard_events",
			},
			Queue: QueueConfig{
				Name: "jobboard_notifications",
			},
		},
		Worker: WorkerConfig{
			Concurrency:     4,
			ShutdownTimeout: 30 * time.Second,
		},
	}
}

func TestConfig_ValidateAPIConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(cfg *Config)
		wantErr   bool
		errString string
	}{
		{
			name:    "valid config",
			mutate:  func(cfg *Config) {},
			wantErr: false,
		},
		{
			name: "invalid server port - too low",
			mutate: func(cfg *Config) {
				cfg.Server.Port = 0
			},
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name: "invalid server port - too high",
			mutate: func(cfg *Config) {
				cfg.Server.Port = 70000
			},
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name: "missing database host",
			mutate: func(cfg *Config) {
				cfg.Database.Host = ""
			},
			wantErr:   true,
			errString: "database host is required",
		},
		{
			name: "invalid database port",
			mutate: func(cfg *Config) {
				cfg.Database.Port = -1
			},
			wantErr:   true,
			errString: "invalid database port",
		},
		{
			name: "missing database name",
			mutate: func(cfg *Config) {
				cfg.Database.Database = ""
			},
			wantErr:   true,
			errString: "database name is required",
		},
		{
			name: "missing rabbitmq host",
			mutate: func(cfg *Config) {
				cfg.RabbitMQ.Host = ""
			},
			wantErr:   true,
			errString: "rabbitmq host is required",
		},
		{
			name: "missing exchange name",
			mutate: func(cfg *Config) {
				cfg.RabbitMQ.Exchange.Name = ""
			},
			wantErr:   true,
			errString: "rabbitmq exchange name is required",
		},
		{
			name: "queue name not required for api",
			mutate: func(cfg *Config) {
				cfg.RabbitMQ.Queue.Name = ""
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.ValidateAPIConfig()

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateWorkerConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(cfg *Config)
		wantErr   bool
		errString string
	}{
		{
			name:    "valid config",
			mutate:  func(cfg *Config) {},
			wantErr: false,
		},
		{
			name: "server port not required for worker",
			mutate: func(cfg *Config) {
				cfg.Server.Port = 0
			},
			wantErr: false,
		},
		{
			name: "missing queue name",
			mutate: func(cfg *Config) {
				cfg.RabbitMQ.Queue.Name = ""
			},
			wantErr:   true,
			errString: "rabbitmq queue name is required",
		},
		{
			name: "zero concurrency",
			mutate: func(cfg *Config) {
				cfg.Worker.Concurrency = 0
			},
			wantErr:   true,
			errString: "worker concurrency must be greater than 0",
		},
		{
			name: "zero shutdown timeout",
			mutate: func(cfg *Config) {
				cfg.Worker.ShutdownTimeout = 0
			},
			wantErr:   true,
			errString: "worker shutdown_timeout must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.ValidateWorkerConfig()

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
