package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tbourn/quantifyme-backend/internal/scoring"
)

// LoadScoringProfile reads a scoring profile from a YAML file. An empty
// path yields the built-in defaults. Every failure, including an unreadable
// file or unknown keys, is reported as a *scoring.ConfigurationError.
//
// Example file:
//
//	bounds:
//	  sleep_hours: {min: 0, max: 14}
//	weights: {mood: 0.2, sleep_hours: 0.2, stress: 0.2, focus: 0.4}
//	windows: [7, 14, 30]
//	clamp_out_of_range: false
//	trend_flat_epsilon: 0.1
func LoadScoringProfile(path string) (*scoring.Profile, error) {
	if path == "" {
		return scoring.NewProfile(scoring.DefaultSpec())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &scoring.ConfigurationError{Field: "SCORING_PROFILE_PATH", Reason: err.Error()}
	}
	return ParseScoringProfile(b)
}

// ParseScoringProfile decodes YAML into a validated profile.
func ParseScoringProfile(data []byte) (*scoring.Profile, error) {
	var spec scoring.ProfileSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return nil, &scoring.ConfigurationError{Field: "profile", Reason: err.Error()}
	}
	return scoring.NewProfile(spec)
}
