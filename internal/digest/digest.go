// Package digest sequences one run: fetch prices, render the report, send it.
package digest

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/GregJanota/coin-updates/pkg/coingecko"
	"github.com/GregJanota/coin-updates/pkg/email"
	"github.com/GregJanota/coin-updates/pkg/report"
)

// MarketFetcher fetches market data for a batch of coin ids.
type MarketFetcher interface {
	Markets(ctx context.Context, ids []string) ([]coingecko.Coin, error)
}

// Service runs one digest cycle. All collaborators are injected; a run is
// all-or-nothing and no mail is sent when the fetch fails.
type Service struct {
	Markets   MarketFetcher
	Sender    email.Sender
	Watched   []string
	Recipient string

	// Now overrides the clock in tests. Nil means time.Now.
	Now func() time.Time
}

// Run executes one fetch-render-send cycle.
func (s *Service) Run(ctx context.Context) error {
	coins, err := s.Markets.Markets(ctx, s.Watched)
	if err != nil {
		return fmt.Errorf("fetching market data: %w", err)
	}

	rows, missing := report.Build(s.Watched, coins)
	if len(missing) > 0 {
		log.Printf("Warning: no market data returned for: %s", strings.Join(missing, ", "))
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	html, err := report.Render(rows, now)
	if err != nil {
		return fmt.Errorf("rendering digest: %w", err)
	}

	msg := email.Message{
		To:      s.Recipient,
		Subject: report.Subject,
		HTML:    html,
		Text:    report.RenderText(rows, now),
	}
	if err := s.Sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("sending digest: %w", err)
	}
	return nil
}
