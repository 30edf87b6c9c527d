// Package digest publishes periodic activity summaries to the notification
// channel.
package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zulandar/postbox/internal/channel"
	"github.com/zulandar/postbox/internal/store"
	"go.uber.org/zap"
)

// CountStore is the store capability digests depend on.
type CountStore interface {
	CountSince(ctx context.Context, since int64) ([]store.AuthorCount, error)
}

// Digest builds and publishes per-author submission counts over a lookback
// window.
type Digest struct {
	store    CountStore
	pub      channel.Publisher
	topic    string
	lookback time.Duration
	logger   *zap.Logger
}

// Opts holds parameters for creating a Digest.
type Opts struct {
	Store    CountStore
	Pub      channel.Publisher
	Topic    string
	Lookback time.Duration
	Logger   *zap.Logger
}

// New creates a Digest.
func New(opts Opts) (*Digest, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("digest: store is required")
	}
	if opts.Pub == nil {
		return nil, fmt.Errorf("digest: publisher is required")
	}
	if opts.Lookback <= 0 {
		opts.Lookback = 24 * time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Digest{
		store:    opts.Store,
		pub:      opts.Pub,
		topic:    opts.Topic,
		lookback: opts.Lookback,
		logger:   opts.Logger,
	}, nil
}

// summary is the JSON payload published for a digest.
type summary struct {
	Type    string              `json:"type"`
	Since   int64               `json:"since"`
	Total   int64               `json:"total"`
	Authors []store.AuthorCount `json:"authors"`
}

// Build returns the digest payload for the lookback window, or nil when no
// messages were submitted in it.
func (d *Digest) Build(ctx context.Context) ([]byte, error) {
	since := time.Now().Add(-d.lookback).UnixMilli()
	counts, err := d.store.CountSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("digest: build: %w", err)
	}
	if len(counts) == 0 {
		return nil, nil
	}

	var total int64
	for _, c := range counts {
		total += c.Count
	}
	payload, err := json.Marshal(summary{
		Type:    "digest",
		Since:   since,
		Total:   total,
		Authors: counts,
	})
	if err != nil {
		return nil, fmt.Errorf("digest: marshal: %w", err)
	}
	return payload, nil
}

// PublishOnce builds and publishes a digest. A quiet window publishes
// nothing and is not an error.
func (d *Digest) PublishOnce(ctx context.Context) error {
	payload, err := d.Build(ctx)
	if err != nil {
		return err
	}
	if payload == nil {
		return nil
	}
	if err := d.pub.Publish(ctx, d.topic, payload); err != nil {
		return fmt.Errorf("digest: publish: %w", err)
	}
	return nil
}

// Run publishes digests on the given 5-field cron schedule until ctx is
// cancelled. Publish failures are logged and the loop continues.
func (d *Digest) Run(ctx context.Context, schedule string) error {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return fmt.Errorf("digest: parse schedule %q: %w", schedule, err)
	}

	for {
		timer := time.NewTimer(time.Until(sched.Next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			if err := d.PublishOnce(ctx); err != nil {
				d.logger.Warn("digest publish failed", zap.Error(err))
			}
		}
	}
}
