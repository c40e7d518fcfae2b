package emu

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"

	"w4kit/emu/log"
	"w4kit/hw/apu"
	"w4kit/hw/gfx"
	"w4kit/hw/hwdefs"
)

type Config struct {
	General GeneralConfig `toml:"general"`
	Audio   AudioConfig   `toml:"audio"`
	Video   VideoConfig   `toml:"video"`
}

type GeneralConfig struct {
	// Number of frames run by replay when the script doesn't say.
	Frames int `toml:"frames"`
}

type AudioConfig struct {
	SampleRate   int  `toml:"sample_rate"`
	DisableAudio bool `toml:"disable_audio"`
}

type VideoConfig struct {
	Palette []gfx.Color `toml:"palette"`
}

const (
	DefaultFrames     = 600
	DefaultSampleRate = 44100
)

// DefaultConfig returns the configuration used when there's no config file.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{Frames: DefaultFrames},
		Audio:   AudioConfig{SampleRate: DefaultSampleRate},
		Video:   VideoConfig{Palette: slices.Clone(gfx.DefaultPalette[:])},
	}
}

// Check replaces invalid values with their defaults.
func (cfg *Config) Check() {
	if cfg.General.Frames <= 0 {
		log.ModEmu.Warnf("Invalid frame count %d, fallback to %d", cfg.General.Frames, DefaultFrames)
		cfg.General.Frames = DefaultFrames
	}
	cfg.Audio.Check()
	cfg.Video.Check()
}

func (acfg *AudioConfig) Check() {
	if acfg.SampleRate < apu.MinSampleRate || acfg.SampleRate > apu.MaxSampleRate {
		log.ModEmu.Warnf("Invalid sample rate %d, fallback to %d", acfg.SampleRate, DefaultSampleRate)
		acfg.SampleRate = DefaultSampleRate
	}
}

func (vcfg *VideoConfig) Check() {
	if len(vcfg.Palette) != hwdefs.NumPaletteColors {
		log.ModEmu.Warnf("Palette must have %d colors, got %d, fallback to default palette", hwdefs.NumPaletteColors, len(vcfg.Palette))
		vcfg.Palette = slices.Clone(gfx.DefaultPalette[:])
	}
}

// ConfigDir returns the w4kit config directory, creating it if needed.
var ConfigDir = sync.OnceValues(func() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "w4kit")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
})

const cfgFilename = "config.toml"

// LoadConfig loads the configuration at path. Missing keys keep their default
// value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), err
	}
	cfg.Check()
	return cfg, nil
}

// LoadConfigOrDefault loads the configuration from the w4kit config directory,
// or provides the default one.
func LoadConfigOrDefault() Config {
	dir, err := ConfigDir()
	if err != nil {
		log.ModEmu.Warnf("No config directory: %v", err)
		return DefaultConfig()
	}
	cfg, err := LoadConfig(filepath.Join(dir, cfgFilename))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.ModEmu.Warnf("Failed to load config, using defaults: %v", err)
	}
	return cfg
}

// SaveConfig into w4kit config directory.
func SaveConfig(cfg Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return WriteConfig(filepath.Join(dir, cfgFilename), cfg)
}

func WriteConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}
