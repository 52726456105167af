// Package telegram implements the chat transport: delivering a rendered
// post to the channel as a text message, a single photo, or a media album.
// All outbound text is expected to be valid MarkdownV2; the platform
// rejects malformed escape sequences with a transport-level error.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"notigram/internal/config"
)

// Client wraps the bot API for channel sends.
type Client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

// NewClient authorizes the bot and builds a Client. The HTTP timeout is
// applied at the transport boundary; no retry logic exists here or in any
// caller — a failed send aborts the enclosing operation.
func NewClient(cfg config.TelegramConfig, logger *slog.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, &http.Client{
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("authorize bot: %w", err)
	}

	return &Client{bot: bot, chatID: cfg.ChatID, logger: logger}, nil
}

// SendText delivers a plain MarkdownV2 message.
func (c *Client) SendText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	c.logger.Info("message sent", slog.Int("length", len(text)))
	return nil
}

// SendPhoto delivers one photo with a MarkdownV2 caption.
func (c *Client) SendPhoto(ctx context.Context, caption, photoURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	photo := tgbotapi.NewPhoto(c.chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdownV2

	if _, err := c.bot.Send(photo); err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	c.logger.Info("photo sent", slog.String("photo", photoURL))
	return nil
}

// SendAlbum delivers a media group. The caption is attached to the first
// item only; the platform shows it under the whole album.
func (c *Client) SendAlbum(ctx context.Context, caption string, photoURLs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	media := make([]interface{}, 0, len(photoURLs))
	for i, url := range photoURLs {
		photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FileURL(url))
		if i == 0 {
			photo.Caption = caption
			photo.ParseMode = tgbotapi.ModeMarkdownV2
		}
		media = append(media, photo)
	}

	group := tgbotapi.NewMediaGroup(c.chatID, media)
	if _, err := c.bot.SendMediaGroup(group); err != nil {
		return fmt.Errorf("send media group: %w", err)
	}
	c.logger.Info("album sent", slog.Int("items", len(photoURLs)))
	return nil
}
