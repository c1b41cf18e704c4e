package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"chameleon-be/pkg/events"
	pktNats "chameleon-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	natsURL string
	durable string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print suggestion and session events as they arrive",
	RunE: func(cmd *cobra.Command, args []string) error {
		sub, err := pktNats.NewSubscriber(natsURL)
		if err != nil {
			color.Red("Failed: %v", err)
			return err
		}
		defer sub.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = sub.Subscribe(ctx, pktNats.SubjectPrefix+">", durable, func(ctx context.Context, evt events.Event) error {
			printEvent(evt)
			return nil
		})
		if err != nil {
			color.Red("Failed: %v", err)
			return err
		}

		color.Cyan("Watching %s on %s (Ctrl+C to stop)", pktNats.StreamName, natsURL)
		<-ctx.Done()
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&natsURL, "nats", "nats://localhost:4222", "NATS server URL")
	watchCmd.Flags().StringVar(&durable, "durable", "", "durable consumer name (empty: only new events)")
}

func printEvent(evt events.Event) {
	ts := evt.Timestamp().Format("15:04:05")
	p := evt.Payload()

	switch evt.EventType() {
	case events.SuggestionGenerated:
		line := color.GreenString("%s %s", ts, evt.EventType())
		if cached, _ := p["cached"].(bool); cached {
			line += color.YellowString(" (cached)")
		}
		color.White("%s tone=%v purpose=%v genre=%v structure=%v latency_ms=%v",
			line, p["tone"], p["purpose"], p["genre"], p["structure"], p["latency_ms"])
	case events.SessionSignedIn, events.SessionSignedOut:
		color.Blue("%s %s %s", ts, evt.EventType(), events.StringField(evt, "email"))
	default:
		color.White("%s %s %v", ts, evt.EventType(), p)
	}
}
