package podcast

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Configuration holds model, persona and audio settings for one pipeline run.
// It is never mutated after construction.
type Configuration struct {
	SearchModel    string `toml:"search_model"`
	SynthesisModel string `toml:"synthesis_model"`
	VideoModel     string `toml:"video_model"`
	TTSModel       string `toml:"tts_model"`

	SearchTemperature    float64 `toml:"search_temperature"`
	SynthesisTemperature float64 `toml:"synthesis_temperature"`
	ScriptTemperature    float64 `toml:"script_temperature"`
	MetadataTemperature  float64 `toml:"metadata_temperature"`

	HostName              string `toml:"host_name"`
	ExpertName            string `toml:"expert_name"`
	TargetDurationMinutes int    `toml:"target_duration_minutes"`
	ConversationStyle     string `toml:"conversation_style"`

	HostVoice      string `toml:"host_voice"`
	ExpertVoice    string `toml:"expert_voice"`
	TTSChannels    int    `toml:"tts_channels"`
	TTSRate        int    `toml:"tts_rate"`
	TTSSampleWidth int    `toml:"tts_sample_width"`

	OutputDir string `toml:"output_dir"`
}

// DefaultConfiguration returns the built-in defaults.
func DefaultConfiguration() Configuration {
	return Configuration{
		SearchModel:           "gemini-2.5-flash",
		SynthesisModel:        "gemini-2.5-flash",
		VideoModel:            "gemini-2.5-flash",
		TTSModel:              "gemini-2.5-flash-preview-tts",
		SearchTemperature:     0.0,
		SynthesisTemperature:  0.3,
		ScriptTemperature:     0.7,
		MetadataTemperature:   0.4,
		HostName:              "Alex",
		ExpertName:            "Sam",
		TargetDurationMinutes: 5,
		ConversationStyle:     "professional",
		HostVoice:             "Kore",
		ExpertVoice:           "Puck",
		TTSChannels:           1,
		TTSRate:               24000,
		TTSSampleWidth:        2,
		OutputDir:             "generated_podcasts",
	}
}

// configField binds an override key to a Configuration field. apply reports
// whether the value was usable; empty and unparsable values are not.
type configField struct {
	key   string
	apply func(c *Configuration, v any) bool
}

func stringField(key string, ptr func(*Configuration) *string) configField {
	return configField{key: key, apply: func(c *Configuration, v any) bool {
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}
		if s = strings.TrimSpace(s); s == "" {
			return false
		}
		*ptr(c) = s
		return true
	}}
}

func floatField(key string, ptr func(*Configuration) *float64) configField {
	return configField{key: key, apply: func(c *Configuration, v any) bool {
		f, ok := toFloat(v)
		if !ok {
			return false
		}
		*ptr(c) = f
		return true
	}}
}

// intField only accepts positive values: every integer setting is a count or a rate.
func intField(key string, ptr func(*Configuration) *int) configField {
	return configField{key: key, apply: func(c *Configuration, v any) bool {
		n, ok := toInt(v)
		if !ok || n <= 0 {
			return false
		}
		*ptr(c) = n
		return true
	}}
}

var configFields = []configField{
	stringField("search_model", func(c *Configuration) *string { return &c.SearchModel }),
	stringField("synthesis_model", func(c *Configuration) *string { return &c.SynthesisModel }),
	stringField("video_model", func(c *Configuration) *string { return &c.VideoModel }),
	stringField("tts_model", func(c *Configuration) *string { return &c.TTSModel }),
	floatField("search_temperature", func(c *Configuration) *float64 { return &c.SearchTemperature }),
	floatField("synthesis_temperature", func(c *Configuration) *float64 { return &c.SynthesisTemperature }),
	floatField("script_temperature", func(c *Configuration) *float64 { return &c.ScriptTemperature }),
	floatField("metadata_temperature", func(c *Configuration) *float64 { return &c.MetadataTemperature }),
	stringField("host_name", func(c *Configuration) *string { return &c.HostName }),
	stringField("expert_name", func(c *Configuration) *string { return &c.ExpertName }),
	intField("target_duration_minutes", func(c *Configuration) *int { return &c.TargetDurationMinutes }),
	stringField("conversation_style", func(c *Configuration) *string { return &c.ConversationStyle }),
	stringField("host_voice", func(c *Configuration) *string { return &c.HostVoice }),
	stringField("expert_voice", func(c *Configuration) *string { return &c.ExpertVoice }),
	intField("tts_channels", func(c *Configuration) *int { return &c.TTSChannels }),
	intField("tts_rate", func(c *Configuration) *int { return &c.TTSRate }),
	intField("tts_sample_width", func(c *Configuration) *int { return &c.TTSSampleWidth }),
	stringField("output_dir", func(c *Configuration) *string { return &c.OutputDir }),
}

// ConfigurationKeys lists the override keys in declaration order.
func ConfigurationKeys() []string {
	keys := make([]string, len(configFields))
	for i, f := range configFields {
		keys[i] = f.key
	}
	return keys
}

// ResolveConfiguration builds a Configuration from the process environment,
// overrides and defaults, in that order of precedence.
func ResolveConfiguration(overrides map[string]any) Configuration {
	return ResolveConfigurationFrom(os.LookupEnv, overrides)
}

// ResolveConfigurationFrom is ResolveConfiguration with an explicit
// environment lookup. Each field is looked up under its upper-cased key.
// Unknown override keys are ignored and resolution never fails.
func ResolveConfigurationFrom(lookup func(string) (string, bool), overrides map[string]any) Configuration {
	cfg := DefaultConfiguration()
	for _, f := range configFields {
		if lookup != nil {
			if v, ok := lookup(strings.ToUpper(f.key)); ok && f.apply(&cfg, v) {
				continue
			}
		}
		if v, ok := overrides[f.key]; ok && v != nil {
			f.apply(&cfg, v)
		}
	}
	return cfg
}

// LoadOverrides reads an override map from a TOML file with top-level keys
// named like the configuration fields.
func LoadOverrides(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	overrides := map[string]any{}
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return overrides, nil
}

// TOML renders the configuration as a TOML document.
func (c Configuration) TOML() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}
