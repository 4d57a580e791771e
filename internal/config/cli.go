// Package config holds the command-line surface of keygrab.
package config

import "github.com/Alia5/keygrab/internal/cmd"

// LogConfig configures logging for every command.
type LogConfig struct {
	Level     string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"KEYGRAB_LOG_LEVEL"`
	File      string `help:"Write logs to this file instead of stdout" type:"path" env:"KEYGRAB_LOG_FILE"`
	EventFile string `help:"Trace every captured and injected key event to this file" type:"path" env:"KEYGRAB_LOG_EVENT_FILE"`
}

// CLI is the root kong grammar. Flags are resolved from the command line,
// then KEYGRAB_* environment variables, then config files.
type CLI struct {
	ConfigFile string    `name:"config" help:"Configuration file (json, yaml or toml)" type:"path" env:"KEYGRAB_CONFIG"`
	Log        LogConfig `embed:"" prefix:"log."`

	Run    cmd.Run           `cmd:"" help:"Capture mapped keys and remap them"`
	Keys   cmd.Keys          `cmd:"" help:"List key names with their native keys and virtual key codes"`
	Config cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
}
