package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Configuration struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Repository   RepositoryConfig   `yaml:"repository"`
	Localization LocalizationConfig `yaml:"localization"`
}

type ServerConfig struct {
	Port          int           `yaml:"port"`
	Concurrency   int           `yaml:"concurrency"`
	RequestConfig RequestConfig `yaml:"request"`
	LogConfig     LogConfig     `yaml:"log"`
	CleanConfig   CleanConfig   `yaml:"clean"`
}

type RequestConfig struct {
	// SizeLimit in megabytes
	SizeLimit int `yaml:"sizeLimit"`
}

type LogConfig struct {
	Format  string `yaml:"format"`
	Level   string `yaml:"level"`
	Output  string `yaml:"output"`
	LogPath string `yaml:"logPath"`
}

// CleanConfig drives the janitor that purges rows soft deleted longer than Retention ago.
type CleanConfig struct {
	Schedule  string        `yaml:"schedule"`
	Retention time.Duration `yaml:"retention"`
}

type DatabaseConfig struct {
	Driver      string `yaml:"driver"`
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	Name        string `yaml:"name"`
	SSLMode     string `yaml:"sslMode"`
	TimeZone    string `yaml:"timeZone"`
	Path        string `yaml:"path"`
	AutoMigrate bool   `yaml:"autoMigrate"`
}

type RepositoryConfig struct {
	BatchSize      int           `yaml:"batchSize"`
	BulkBatchSize  int           `yaml:"bulkBatchSize"`
	CommandTimeout time.Duration `yaml:"commandTimeout"`
	Retry          RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxRetries int           `yaml:"maxRetries"`
	BaseDelay  time.Duration `yaml:"baseDelay"`
	MaxDelay   time.Duration `yaml:"maxDelay"`
}

type LocalizationConfig struct {
	Language string `yaml:"language"`
	Path     string `yaml:"path"`
}

func LoadConfiguration(configurationFilePath string) (*Configuration, error) {
	data, err := os.ReadFile(configurationFilePath)
	if err != nil {
		return nil, err
	}
	var config Configuration
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Configuration) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Concurrency == 0 {
		c.Server.Concurrency = 256
	}
	if c.Server.RequestConfig.SizeLimit == 0 {
		c.Server.RequestConfig.SizeLimit = 4
	}
	if c.Server.LogConfig.Format == "" {
		c.Server.LogConfig.Format = "text"
	}
	if c.Server.LogConfig.Level == "" {
		c.Server.LogConfig.Level = "info"
	}
	if c.Server.LogConfig.Output == "" {
		c.Server.LogConfig.Output = "stdout"
	}
	if c.Server.CleanConfig.Schedule == "" {
		c.Server.CleanConfig.Schedule = "@daily"
	}
	if c.Server.CleanConfig.Retention == 0 {
		c.Server.CleanConfig.Retention = 30 * 24 * time.Hour
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Localization.Language == "" {
		c.Localization.Language = "en"
	}
}
