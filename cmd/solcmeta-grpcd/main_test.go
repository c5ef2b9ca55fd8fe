package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"google.golang.org/grpc"

	"xdao.co/solcmeta/compliance"
	"xdao.co/solcmeta/config"
	"xdao.co/solcmeta/internal/logging"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg != config.Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_FileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grpcd.toml")
	body := "listen = \"127.0.0.1:9100\"\nmode = \"strict\"\nlog_level = \"debug\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig([]string{"-c", path, "--listen", "127.0.0.1:9200"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Listen != "127.0.0.1:9200" {
		t.Fatalf("--listen must override the file, got %q", cfg.Listen)
	}
	if cfg.ComplianceMode() != compliance.Strict || cfg.LogLevel != "debug" {
		t.Fatalf("file values lost: %+v", cfg)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := loadConfig([]string{"--mode", "lenient"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected invalid mode error")
	}
	if _, err := loadConfig([]string{"stray"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected unexpected argument error")
	}
	if _, err := loadConfig([]string{"-c", filepath.Join(t.TempDir(), "missing.toml")}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected missing file error")
	}
	_, err := loadConfig([]string{"--help"}, &bytes.Buffer{})
	if !errors.Is(err, pflag.ErrHelp) {
		t.Fatalf("expected ErrHelp, got %v", err)
	}
}

func TestLogRequests_AttachesLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, log.DebugLevel)
	intercept := logRequests(logger)

	info := &grpc.UnaryServerInfo{FullMethod: "/xdao.solcmeta.v1.Metadata/Decode"}
	_, err := intercept(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		if logging.FromContext(ctx) != logger {
			t.Fatalf("handler context does not carry the server logger")
		}
		return nil, nil
	})
	if err != nil {
		t.Fatalf("intercept: %v", err)
	}
	if !strings.Contains(buf.String(), "Metadata/Decode") {
		t.Fatalf("expected request log line, got %q", buf.String())
	}
}
