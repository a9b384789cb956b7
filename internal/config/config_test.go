package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "sea-state-observations", cfg.KafkaSourceTopic)
	assert.Equal(t, "motion-sickness-assessments", cfg.KafkaSinkTopic)
	assert.Equal(t, "seakeeping-advisor", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "data/rao", cfg.RAODataDir)
	assert.Equal(t, []float64{-60, -30, 0, 30, 60}, cfg.ShipPositions)
	assert.Equal(t, 3.3, cfg.JonswapGamma)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "custom-source")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("RAO_DATA_DIR", "/opt/vessel/rao")
	t.Setenv("SHIP_POSITIONS", " -45, 0 ,45 ")
	t.Setenv("JONSWAP_GAMMA", "2.0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/opt/vessel/rao", cfg.RAODataDir)
	assert.Equal(t, []float64{-45, 0, 45}, cfg.ShipPositions)
	assert.Equal(t, 2.0, cfg.JonswapGamma)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidShipPositions(t *testing.T) {
	t.Setenv("SHIP_POSITIONS", "0,amidships")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHIP_POSITIONS")
}

func TestLoad_EmptyShipPositions(t *testing.T) {
	t.Setenv("SHIP_POSITIONS", " , ,")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHIP_POSITIONS")
}

func TestLoad_InvalidGamma(t *testing.T) {
	for _, raw := range []string{"bad", "0.5", "-3"} {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("JONSWAP_GAMMA", raw)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "JONSWAP_GAMMA")
		})
	}
}
