package main

import (
	"fmt"
	"log/slog"

	"notigram/internal/config"
	"notigram/internal/infra/backup"
	"notigram/internal/infra/imagehost"
	"notigram/internal/infra/notion"
	"notigram/internal/infra/telegram"
	"notigram/internal/usecase/channel"
	"notigram/internal/usecase/newsletter"
)

// app bundles the wired collaborators for one CLI invocation.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	notion *notion.Client
	images *imagehost.Client
}

func newApp(logger *slog.Logger) (*app, error) {
	cfg, err := config.Load(logger)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &app{
		cfg:    cfg,
		logger: logger,
		notion: notion.NewClient(cfg.Notion, logger),
		images: imagehost.NewClient(cfg.ImageHost, logger),
	}, nil
}

// channelService wires the send use case. The transport is only authorized
// for real sends; a dry run never talks to the chat platform.
func (a *app) channelService(dryRun bool) (*channel.Service, error) {
	svc := &channel.Service{
		Posts:  a.notion,
		Footer: a.cfg.Channel.Footer,
		Logger: a.logger,
	}

	if !dryRun {
		transport, err := telegram.NewClient(a.cfg.Telegram, a.logger)
		if err != nil {
			return nil, err
		}
		svc.Transport = transport
	}
	if a.cfg.Backup.Enabled {
		svc.Archive = backup.NewWriter(a.cfg.Backup.Dir, a.images, a.logger)
	}
	return svc, nil
}

func (a *app) newsletterService() *newsletter.Service {
	svc := &newsletter.Service{
		Posts:     a.notion,
		Digests:   a.notion,
		Templates: &a.cfg.Templates,
		Logger:    a.logger,
	}
	if a.cfg.ImageHost.Username != "" {
		svc.Images = a.images
	}
	return svc
}
