package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ezraisw/scenecall/adapter"
	"github.com/ezraisw/scenecall/chat"
	"github.com/ezraisw/scenecall/serial"
)

type config struct {
	Path    string
	Method  string
	MaxArgs int
	Batch   chat.Batch
}

type fileConfig struct {
	Path     string `toml:"path"`
	Method   string `toml:"method"`
	Nick     string `toml:"nick"`
	Template string `toml:"template"`
	StartMS  int64  `toml:"start_ms"`
	Interval string `toml:"interval"`
	Count    int    `toml:"count"`
	MaxArgs  int    `toml:"max_args"`
}

func defaultConfig() config {
	return config{
		Path:    chat.DefaultPath,
		Method:  chat.DefaultMethod,
		MaxArgs: adapter.DefaultMaxArgs,
		Batch:   chat.DefaultBatch(),
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load chatfill config: %w", err)
	}

	if meta.IsDefined("path") {
		if p := strings.TrimSpace(raw.Path); p != "" {
			cfg.Path = p
		}
	}

	if meta.IsDefined("method") {
		if m := strings.TrimSpace(raw.Method); m != "" {
			cfg.Method = m
		}
	}

	if meta.IsDefined("nick") {
		cfg.Batch.Nick = raw.Nick
	}

	if meta.IsDefined("template") {
		cfg.Batch.Template = raw.Template
	}

	if meta.IsDefined("start_ms") {
		start, err := serial.U64FromInt(raw.StartMS)
		if err != nil {
			return config{}, fmt.Errorf("parse start_ms: %w", err)
		}
		cfg.Batch.Start = start
	}

	if meta.IsDefined("interval") {
		d, err := parseInterval(raw.Interval)
		if err != nil {
			return config{}, fmt.Errorf("parse interval: %w", err)
		}
		cfg.Batch.Interval = d
	}

	if meta.IsDefined("count") {
		cfg.Batch.Count = raw.Count
	}

	if meta.IsDefined("max_args") {
		cfg.MaxArgs = raw.MaxArgs
	}

	if err := cfg.Batch.Validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}
