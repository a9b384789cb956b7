package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Observation kinds accepted on the sensor feed.
const (
	KindWave   = "wave"
	KindVessel = "vessel"
)

// RawReading is an unprocessed message from the sensor feed, together with
// its transport coordinates and an optional offset-commit callback.
type RawReading struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// rawObservation is the flat JSON envelope published by the sensor bridge.
// Wave messages carry hs/tp, vessel messages carry speed/heading.
type rawObservation struct {
	Kind    string    `json:"kind"`
	Hs      float64   `json:"hs"`
	Tp      float64   `json:"tp"`
	Speed   float64   `json:"speed"`
	Heading float64   `json:"heading"`
	TS      time.Time `json:"ts"`
}

// Observation is a parsed sensor reading. Exactly one of Wave or Vessel is
// non-nil.
type Observation struct {
	Wave   *WaveState
	Vessel *VesselState
}

// ParseObservation deserializes and validates a sensor-feed message. A wave
// observation with non-positive Hs or Tp is rejected here, before it can
// reach the synthesis stage. If the message carries no timestamp the
// transport timestamp is used.
func ParseObservation(value []byte, transportTime time.Time) (Observation, error) {
	var raw rawObservation
	if err := json.Unmarshal(value, &raw); err != nil {
		return Observation{}, fmt.Errorf("parse observation: %w", err)
	}

	ts := raw.TS
	if ts.IsZero() {
		ts = transportTime
	}

	switch raw.Kind {
	case KindWave:
		if err := validateSeaState(raw.Hs, raw.Tp); err != nil {
			return Observation{}, err
		}
		return Observation{Wave: &WaveState{Hs: raw.Hs, Tp: raw.Tp, Timestamp: ts}}, nil
	case KindVessel:
		if math.IsNaN(raw.Speed) || math.IsInf(raw.Speed, 0) || raw.Speed < 0 {
			return Observation{}, &ValidationError{Field: "speed", Reason: "must be a finite non-negative number of knots"}
		}
		if math.IsNaN(raw.Heading) || math.IsInf(raw.Heading, 0) {
			return Observation{}, &ValidationError{Field: "heading", Reason: "must be a finite number of degrees"}
		}
		return Observation{Vessel: &VesselState{Speed: raw.Speed, Heading: raw.Heading, Timestamp: ts}}, nil
	default:
		return Observation{}, &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown observation kind %q", raw.Kind)}
	}
}
