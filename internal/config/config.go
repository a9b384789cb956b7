package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	// RAODataDir holds the <dof>_<speed>kn.txt response tables.
	RAODataDir string

	// ShipPositions are the evaluated longitudinal offsets in metres from
	// midships, positive forward.
	ShipPositions []float64

	// JonswapGamma overrides the peak-enhancement factor; 3.3 is the
	// open-ocean default.
	JonswapGamma float64
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	positions, err := parsePositions(envOrDefault("SHIP_POSITIONS", "-60,-30,0,30,60"))
	if err != nil {
		return nil, err
	}

	gamma, err := parseGamma(envOrDefault("JONSWAP_GAMMA", "3.3"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:     parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic: envOrDefault("KAFKA_SOURCE_TOPIC", "sea-state-observations"),
		KafkaSinkTopic:   envOrDefault("KAFKA_SINK_TOPIC", "motion-sickness-assessments"),
		KafkaGroupID:     envOrDefault("KAFKA_GROUP_ID", "seakeeping-advisor"),
		HTTPAddr:         envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		LogFormat:        envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		RAODataDir:       envOrDefault("RAO_DATA_DIR", "data/rao"),
		ShipPositions:    positions,
		JonswapGamma:     gamma,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.RAODataDir == "" {
		return nil, errors.New("RAO_DATA_DIR is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func parsePositions(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	positions := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SHIP_POSITIONS entry %q", p)
		}
		positions = append(positions, v)
	}
	if len(positions) == 0 {
		return nil, errors.New("SHIP_POSITIONS must list at least one offset")
	}
	return positions, nil
}

func parseGamma(raw string) (float64, error) {
	g, err := strconv.ParseFloat(raw, 64)
	if err != nil || g < 1 {
		return 0, fmt.Errorf("invalid JONSWAP_GAMMA: %q (must be >= 1)", raw)
	}
	return g, nil
}
