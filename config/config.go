// Package config loads the solcmeta-grpcd configuration file.
//
// Example:
//
//	listen = "127.0.0.1:7787"
//	mode = "strict"
//	max_msg_bytes = 4194304
//	gateway_prefix = "https://ipfs.io/ipfs"
//	log_level = "debug"
package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/BurntSushi/toml"

	"xdao.co/solcmeta/compliance"
	"xdao.co/solcmeta/internal/logging"
	"xdao.co/solcmeta/model"
)

const DefaultListen = "127.0.0.1:7787"

type Config struct {
	// Listen is the TCP address the gRPC server binds.
	Listen string `toml:"listen"`
	// Mode is "permissive" (default) or "strict".
	Mode string `toml:"mode"`
	// MaxMsgBytes caps request size; 0 keeps the grpc default.
	MaxMsgBytes int `toml:"max_msg_bytes"`
	// GatewayPrefix is used for gateway URLs of IPFS digests; "" disables them.
	GatewayPrefix string `toml:"gateway_prefix"`
	LogLevel      string `toml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:        DefaultListen,
		Mode:          compliance.Permissive.String(),
		GatewayPrefix: model.DefaultGatewayPrefix,
		LogLevel:      "info",
	}
}

// LoadFile reads a TOML file on top of Default and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, errors.New("config: empty config path")
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config: unknown key %q", undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New("config: listen address is required")
	}
	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		return fmt.Errorf("config: invalid listen address %q: %w", c.Listen, err)
	}
	if _, err := compliance.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.MaxMsgBytes < 0 {
		return errors.New("config: max_msg_bytes must not be negative")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	return nil
}

// ComplianceMode returns the parsed Mode. Call Validate first.
func (c Config) ComplianceMode() compliance.ComplianceMode {
	m, _ := compliance.ParseMode(c.Mode)
	return m
}
