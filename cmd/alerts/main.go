package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"reliefconnect-ai-be/internal/config"
	"reliefconnect-ai-be/pkg/events"
	"reliefconnect-ai-be/pkg/nats"

	"github.com/fatih/color"
)

// Console tail for the ALERTS stream. Handy for support shifts without a
// dashboard open: shows every decision, highlights fraud escalations.
func main() {
	cfg := config.Load()

	if cfg.App.NatsURL == "" {
		log.Fatal("Error: NATS_URL is not set")
	}

	sub, err := nats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatal("Error: Failed to connect to NATS:", err)
	}
	defer sub.Close()

	err = sub.Subscribe("alerts.>", "alerts-console", func(_ context.Context, event events.Event) error {
		payload, _ := json.MarshalIndent(event.Payload(), "", "  ")

		riskLevel, _ := event.Payload()["fraud_risk_level"].(string)
		switch {
		case event.EventType() == "alerts."+events.TypeFraudAlert:
			color.Red("🚨 %s\n%s", event.EventType(), payload)
		case riskLevel == "high":
			color.Yellow("⚠️  %s\n%s", event.EventType(), payload)
		default:
			color.Green("✓ %s\n%s", event.EventType(), payload)
		}
		return nil
	})
	if err != nil {
		log.Fatal("Error: Failed to subscribe:", err)
	}

	color.Cyan("👂 Listening for decision alerts on %s (Ctrl+C to exit)\n", cfg.App.NatsURL)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}
