// Command genfeed publishes synthetic sea-state and vessel observations to
// the source topic so the advisor can be exercised without a live sensor
// bridge. By default it sweeps a plausible passage: Hs and Tp drift slowly
// while the vessel alters heading through head, beam, and following seas.
//
// Usage:
//
//	go run ./cmd/genfeed -brokers localhost:9092 -topic sea-state-observations \
//	  -interval 2s -cycles 120
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os/signal"
	"syscall"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

type observation struct {
	Kind    string    `json:"kind"`
	Hs      float64   `json:"hs,omitempty"`
	Tp      float64   `json:"tp,omitempty"`
	Speed   float64   `json:"speed,omitempty"`
	Heading float64   `json:"heading,omitempty"`
	TS      time.Time `json:"ts"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	brokers := flag.String("brokers", "localhost:9092", "kafka broker address")
	topic := flag.String("topic", "sea-state-observations", "source topic")
	interval := flag.Duration("interval", 2*time.Second, "delay between observation pairs")
	cycles := flag.Int("cycles", 120, "number of observation pairs to publish (0 = run until interrupted)")
	hs := flag.Float64("hs", 3.0, "baseline significant wave height (m)")
	tp := flag.Float64("tp", 10.0, "baseline peak period (s)")
	speed := flag.Float64("speed", 15, "vessel speed (knots)")
	flag.Parse()

	if *hs <= 0 || *tp <= 0 {
		flag.Usage()
		return fmt.Errorf("hs and tp must be positive")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	writer := &kafkago.Writer{
		Addr:     kafkago.TCP(*brokers),
		Topic:    *topic,
		Balancer: &kafkago.LeastBytes{},
	}
	defer writer.Close()

	log.Printf("publishing to %s/%s every %s", *brokers, *topic, *interval)

	for i := 0; *cycles == 0 || i < *cycles; i++ {
		// Slow sinusoidal drift around the baseline sea state; the heading
		// walks a full circle so every folded bucket gets traffic.
		phase := float64(i) / 30
		wave := observation{
			Kind: "wave",
			Hs:   *hs * (1 + 0.3*math.Sin(phase)),
			Tp:   *tp * (1 + 0.15*math.Cos(phase/2)),
			TS:   time.Now().UTC(),
		}
		vessel := observation{
			Kind:    "vessel",
			Speed:   *speed,
			Heading: math.Mod(float64(i*3), 360),
			TS:      time.Now().UTC(),
		}

		if err := publish(ctx, writer, wave, vessel); err != nil {
			if ctx.Err() != nil {
				break
			}
			return err
		}
		log.Printf("cycle %d: hs=%.2f tp=%.2f heading=%.0f", i, wave.Hs, wave.Tp, vessel.Heading)

		select {
		case <-ctx.Done():
			log.Println("interrupted")
			return nil
		case <-time.After(*interval):
		}
	}

	log.Println("done")
	return nil
}

func publish(ctx context.Context, writer *kafkago.Writer, obs ...observation) error {
	msgs := make([]kafkago.Message, 0, len(obs))
	for _, o := range obs {
		payload, err := json.Marshal(o)
		if err != nil {
			return fmt.Errorf("marshal observation: %w", err)
		}
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(o.Kind),
			Value: payload,
			Time:  o.TS,
		})
	}
	if err := writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write observations: %w", err)
	}
	return nil
}
