// Command coin-updates fetches current prices for a configured list of
// coins and emails an HTML digest to one recipient. It is a one-shot
// program meant to be triggered by cron or a similar scheduler.
package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/GregJanota/coin-updates/internal/digest"
	"github.com/GregJanota/coin-updates/pkg/coingecko"
	"github.com/GregJanota/coin-updates/pkg/config"
	"github.com/GregJanota/coin-updates/pkg/email"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "log the digest instead of sending it")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Watching coins: %s", strings.Join(cfg.WatchedCoins, ", "))

	var sender email.Sender
	switch {
	case *dryRun, cfg.Provider == config.ProviderLog:
		sender = email.NewLogSender()
	case cfg.Provider == config.ProviderResend:
		sender = email.NewResendSender(cfg.ResendAPIKey, cfg.EmailUser)
	default:
		sender = email.NewSMTPSender(cfg.SMTPServer, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass, cfg.EmailUser)
	}

	service := &digest.Service{
		Markets:   coingecko.NewClient(cfg.APIBaseURL),
		Sender:    sender,
		Watched:   cfg.WatchedCoins,
		Recipient: cfg.RecipientEmail,
	}

	if err := service.Run(context.Background()); err != nil {
		log.Fatalf("Failed to send crypto update: %v", err)
	}
	log.Println("Email sent successfully")
}
