// Package config builds the explicit runtime configuration for all
// binaries. The Config struct is constructed once at startup and passed by
// reference into every component that needs it; nothing reads the process
// environment after Load returns.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
)

// Required environment variables.
const (
	EnvNotionToken          = "NOTION_AUTH_KEY"
	EnvChannelDatabaseID    = "NOTION_CHANNEL_DATABASE_ID"
	EnvNewsletterDatabaseID = "NOTION_NEWSLETTER_DATABASE_ID"
	EnvTelegramBotToken     = "TELEGRAM_BOT_TOKEN"
	EnvTelegramChatID       = "TELEGRAM_CHAT_ID"
)

// NotionConfig configures the document-store client.
type NotionConfig struct {
	Token                string
	ChannelDatabaseID    string
	NewsletterDatabaseID string
	Timeout              time.Duration
}

// TelegramConfig configures the chat transport.
type TelegramConfig struct {
	BotToken string
	ChatID   int64
	Timeout  time.Duration
}

// ImageHostConfig configures the sm.ms image hosting client.
type ImageHostConfig struct {
	Username string
	Password string
	CacheDir string
	Timeout  time.Duration
}

// BackupConfig configures the local per-send post archive.
type BackupConfig struct {
	Enabled bool
	Dir     string
}

// ChannelConfig carries channel-specific literals.
type ChannelConfig struct {
	// Footer is the copyright line appended to every outbound message
	// unless the post hides it. Stored pre-escaped for MarkdownV2.
	Footer string
}

// Config is the root configuration shared by the CLI, server, and worker
// binaries.
type Config struct {
	Notion    NotionConfig
	Telegram  TelegramConfig
	ImageHost ImageHostConfig
	Backup    BackupConfig
	Channel   ChannelConfig
	Templates Templates
}

// Load reads a local .env file when present, then builds the Config from
// the environment. Optional values fall back to defaults with a logged
// warning; missing required values are an error.
func Load(logger *slog.Logger) (*Config, error) {
	// Missing .env is fine: CI and production inject real env vars.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env file")
	}

	var warnings []string

	notionTimeout, w := LoadEnvDuration("NOTION_TIMEOUT", 50*time.Second)
	warnings = append(warnings, w...)
	telegramTimeout, w := LoadEnvDuration("TELEGRAM_TIMEOUT", 5*time.Second)
	warnings = append(warnings, w...)
	imageHostTimeout, w := LoadEnvDuration("IMAGE_HOST_TIMEOUT", 50*time.Second)
	warnings = append(warnings, w...)
	chatID, w := LoadEnvInt64(EnvTelegramChatID, 0)
	warnings = append(warnings, w...)
	backupEnabled, w := LoadEnvBool("CHANNEL_BACKUP_ENABLED", true)
	warnings = append(warnings, w...)

	for _, warning := range warnings {
		logger.Warn("configuration fallback", slog.String("warning", warning))
	}

	cfg := &Config{
		Notion: NotionConfig{
			Token:                LoadEnvString(EnvNotionToken, ""),
			ChannelDatabaseID:    LoadEnvString(EnvChannelDatabaseID, ""),
			NewsletterDatabaseID: LoadEnvString(EnvNewsletterDatabaseID, ""),
			Timeout:              notionTimeout,
		},
		Telegram: TelegramConfig{
			BotToken: LoadEnvString(EnvTelegramBotToken, ""),
			ChatID:   chatID,
			Timeout:  telegramTimeout,
		},
		ImageHost: ImageHostConfig{
			Username: LoadEnvString("SMMS_USERNAME", ""),
			Password: LoadEnvString("SMMS_PASSWORD", ""),
			CacheDir: LoadEnvString("CACHE_DIR", ".cache"),
			Timeout:  imageHostTimeout,
		},
		Backup: BackupConfig{
			Enabled: backupEnabled,
			Dir:     LoadEnvString("CHANNEL_BACKUP_DIR", "backup"),
		},
		Channel: ChannelConfig{
			Footer: LoadEnvString("CHANNEL_FOOTER", "频道：@AboutZY"),
		},
	}

	templates, err := LoadTemplates(LoadEnvString("NEWSLETTER_TEMPLATE_FILE", ""))
	if err != nil {
		return nil, fmt.Errorf("load newsletter templates: %w", err)
	}
	cfg.Templates = *templates

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every required value is present.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{EnvNotionToken, c.Notion.Token},
		{EnvChannelDatabaseID, c.Notion.ChannelDatabaseID},
		{EnvNewsletterDatabaseID, c.Notion.NewsletterDatabaseID},
		{EnvTelegramBotToken, c.Telegram.BotToken},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("missing required configuration: %s", r.name)
		}
	}
	if c.Telegram.ChatID == 0 {
		return fmt.Errorf("missing required configuration: %s", EnvTelegramChatID)
	}
	return nil
}
