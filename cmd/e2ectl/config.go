package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/e2eprotect/e2e"
)

// Config is the YAML document e2ectl reads to build a profile. Only the
// fields relevant to the selected Profile kind need to be set; the rest
// keep the zero value and fall through to the profile's own defaults where
// the profile type supports that.
type Config struct {
	Profile string `yaml:"profile"`

	DataID          uint32 `yaml:"data_id"`
	Offset          uint16 `yaml:"offset"`
	MinDataLength   uint32 `yaml:"min_data_length"`
	MaxDataLength   uint32 `yaml:"max_data_length"`
	MaxDeltaCounter uint32 `yaml:"max_delta_counter"`
	DataLength      uint16 `yaml:"data_length"`

	// Profile 4M / 7M.
	SourceID      uint32 `yaml:"source_id"`
	MessageType   uint8  `yaml:"message_type"`
	MessageResult uint8  `yaml:"message_result"`

	// Profile 11.
	CounterOffset uint8  `yaml:"counter_offset"`
	CRCOffset     uint8  `yaml:"crc_offset"`
	NibbleOffset  uint8  `yaml:"nibble_offset"`
	Mode          string `yaml:"mode"`

	// Profile 22.
	DataIDList []byte `yaml:"data_id_list"`
}

// LoadConfig reads and parses a YAML profile configuration from path.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Profile == "" {
		return Config{}, fmt.Errorf("profile is required")
	}
	return cfg, nil
}

// Build constructs the e2e.Profile the configuration names.
func (c Config) Build() (e2e.Profile, error) {
	switch c.Profile {
	case "4":
		cfg := DefaultOrOverride4(c)
		return e2e.NewProfile4(cfg)
	case "4m":
		cfg := DefaultOrOverride4(c)
		p, err := e2e.NewProfile4M(cfg)
		if err != nil {
			return nil, err
		}
		p.SourceID, p.MessageType, p.MessageResult = c.SourceID, c.MessageType, c.MessageResult
		return p, nil
	case "5":
		cfg := e2e.DefaultProfile5Config()
		applyIfSet16(&cfg.DataID, uint16(c.DataID), c.DataID != 0)
		applyIfSet16(&cfg.DataLength, c.DataLength, c.DataLength != 0)
		cfg.Offset = c.Offset
		if c.MaxDeltaCounter != 0 {
			cfg.MaxDeltaCounter = uint8(c.MaxDeltaCounter)
		}
		return e2e.NewProfile5(cfg)
	case "6":
		cfg := e2e.DefaultProfile6Config()
		applyIfSet16(&cfg.DataID, uint16(c.DataID), c.DataID != 0)
		cfg.Offset = c.Offset
		applyIfSet16(&cfg.MinDataLength, uint16(c.MinDataLength), c.MinDataLength != 0)
		applyIfSet16(&cfg.MaxDataLength, uint16(c.MaxDataLength), c.MaxDataLength != 0)
		if c.MaxDeltaCounter != 0 {
			cfg.MaxDeltaCounter = uint8(c.MaxDeltaCounter)
		}
		return e2e.NewProfile6(cfg)
	case "7":
		cfg := DefaultOrOverride7(c)
		return e2e.NewProfile7(cfg)
	case "7m":
		cfg := DefaultOrOverride7(c)
		p, err := e2e.NewProfile7M(cfg)
		if err != nil {
			return nil, err
		}
		p.SourceID, p.MessageType, p.MessageResult = c.SourceID, c.MessageType, c.MessageResult
		return p, nil
	case "8":
		cfg := e2e.DefaultProfile8Config()
		if c.DataID != 0 {
			cfg.DataID = c.DataID
		}
		cfg.Offset = uint32(c.Offset)
		if c.MinDataLength != 0 {
			cfg.MinDataLength = c.MinDataLength
		}
		if c.MaxDataLength != 0 {
			cfg.MaxDataLength = c.MaxDataLength
		}
		if c.MaxDeltaCounter != 0 {
			cfg.MaxDeltaCounter = c.MaxDeltaCounter
		}
		return e2e.NewProfile8(cfg)
	case "11":
		cfg := e2e.DefaultProfile11Config()
		if c.Mode == "both" {
			cfg.Mode = e2e.Profile11Both
		}
		applyIfSet16(&cfg.DataID, uint16(c.DataID), c.DataID != 0)
		if c.CounterOffset != 0 {
			cfg.CounterOffset = c.CounterOffset
		}
		if c.CRCOffset != 0 {
			cfg.CRCOffset = c.CRCOffset
		}
		if c.NibbleOffset != 0 {
			cfg.NibbleOffset = c.NibbleOffset
		}
		if c.MaxDeltaCounter != 0 {
			cfg.MaxDeltaCounter = uint8(c.MaxDeltaCounter)
		}
		if c.DataLength != 0 {
			cfg.DataLength = uint8(c.DataLength)
		}
		return e2e.NewProfile11(cfg)
	case "22":
		cfg := e2e.DefaultProfile22Config()
		if c.DataLength != 0 {
			cfg.DataLength = c.DataLength
		}
		cfg.Offset = c.Offset
		if c.MaxDeltaCounter != 0 {
			cfg.MaxDeltaCounter = uint8(c.MaxDeltaCounter)
		}
		if len(c.DataIDList) == 16 {
			copy(cfg.DataIDList[:], c.DataIDList)
		}
		return e2e.NewProfile22(cfg)
	default:
		return nil, fmt.Errorf("unknown profile kind %q", c.Profile)
	}
}

// DefaultOrOverride4 builds a Profile4Config (also used by Profile4M) from
// the YAML config, layering overrides on top of the profile's own default.
func DefaultOrOverride4(c Config) e2e.Profile4Config {
	cfg := e2e.DefaultProfile4Config()
	if c.DataID != 0 {
		cfg.DataID = c.DataID
	}
	cfg.Offset = c.Offset
	applyIfSet16(&cfg.MinDataLength, uint16(c.MinDataLength), c.MinDataLength != 0)
	applyIfSet16(&cfg.MaxDataLength, uint16(c.MaxDataLength), c.MaxDataLength != 0)
	if c.MaxDeltaCounter != 0 {
		cfg.MaxDeltaCounter = uint16(c.MaxDeltaCounter)
	}
	return cfg
}

// DefaultOrOverride7 builds a Profile7Config (also used by Profile7M).
func DefaultOrOverride7(c Config) e2e.Profile7Config {
	cfg := e2e.DefaultProfile7Config()
	if c.DataID != 0 {
		cfg.DataID = c.DataID
	}
	cfg.Offset = uint32(c.Offset)
	if c.MinDataLength != 0 {
		cfg.MinDataLength = c.MinDataLength
	}
	if c.MaxDataLength != 0 {
		cfg.MaxDataLength = c.MaxDataLength
	}
	if c.MaxDeltaCounter != 0 {
		cfg.MaxDeltaCounter = c.MaxDeltaCounter
	}
	return cfg
}

func applyIfSet16(dst *uint16, v uint16, ok bool) {
	if ok {
		*dst = v
	}
}
