package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Source  SourceConfig  `mapstructure:"source"`
	Replica ReplicaConfig `mapstructure:"replica"`
	Backup  BackupConfig  `mapstructure:"backup"`
	Notify  NotifyConfig  `mapstructure:"notify"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

type SourceConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	DumpBin    string `mapstructure:"dump_bin"`
	RestoreBin string `mapstructure:"restore_bin"`
}

type ReplicaConfig struct {
	URI                 string `mapstructure:"uri"`
	ParallelCollections int    `mapstructure:"parallel_collections"`
}

type BackupConfig struct {
	LocalPath     string         `mapstructure:"local_path"`
	RetentionDays int            `mapstructure:"retention_days"`
	Schedule      string         `mapstructure:"schedule"`
	UploadTargets []UploadTarget `mapstructure:"upload_targets"`
}

type UploadTarget struct {
	Type    string `mapstructure:"type"`
	Enabled bool   `mapstructure:"enabled"`

	// AWS S3
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`

	// Google Drive
	CredentialsFile string `mapstructure:"credentials_file"`
	FolderID        string `mapstructure:"folder_id"`
}

type NotifyConfig struct {
	Mail     MailConfig     `mapstructure:"mail"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app.name", "argos")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("source.dump_bin", "mongodump")
	v.SetDefault("source.restore_bin", "mongorestore")
	v.SetDefault("replica.parallel_collections", 4)
	v.SetDefault("backup.retention_days", 7)
	v.SetDefault("backup.schedule", "0 0 * * * *")
	v.SetDefault("notify.mail.port", 587)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks required keys only. Optional groups (replica, upload
// targets, notifiers) disable their step when absent instead of failing.
func (c *Config) Validate() error {
	if c.Source.URI == "" {
		return fmt.Errorf("source.uri is required")
	}
	if c.Backup.LocalPath == "" {
		return fmt.Errorf("backup.local_path is required")
	}
	return nil
}

// HasReplica reports whether the replication branch is enabled.
func (c *Config) HasReplica() bool {
	return c.Replica.URI != ""
}

func (c *Config) GetEnabledUploadTargets() []UploadTarget {
	var enabled []UploadTarget
	for _, target := range c.Backup.UploadTargets {
		if target.Enabled {
			enabled = append(enabled, target)
		}
	}
	return enabled
}

func (m *MailConfig) Enabled() bool {
	return m.Host != "" && m.To != ""
}

func (t *TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}
