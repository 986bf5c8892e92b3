package config

import (
	"log/slog"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid file backend config",
			config: Config{
				DataBackend: "file",
				DataDir:     "./data",
				LogLevel:    "info",
			},
			wantErr: false,
		},
		{
			name: "valid sqlite backend config",
			config: Config{
				DataBackend:  "sqlite",
				SQLiteDBPath: "./test.db",
				LogLevel:     "debug",
			},
			wantErr: false,
		},
		{
			name: "invalid data backend",
			config: Config{
				DataBackend: "memory",
				LogLevel:    "info",
			},
			wantErr:     true,
			errorString: "invalid data backend 'memory': must be one of [file sqlite]",
		},
		{
			name: "file backend missing data directory",
			config: Config{
				DataBackend: "file",
				DataDir:     "",
				LogLevel:    "info",
			},
			wantErr:     true,
			errorString: "data directory cannot be empty when using file backend",
		},
		{
			name: "sqlite backend missing database path",
			config: Config{
				DataBackend:  "sqlite",
				SQLiteDBPath: "",
				LogLevel:     "info",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name: "invalid log level",
			config: Config{
				DataBackend: "file",
				DataDir:     "./data",
				LogLevel:    "loud",
			},
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errorString)
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"info", slog.LevelInfo, true},
		{"INFO", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"", slog.LevelInfo, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q: expected %v, got %v (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATA_BACKEND", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("SQLITE_DB_PATH", "")
	cfg := Load()
	if cfg.DataBackend != "file" {
		t.Fatalf("expected file default backend, got %q", cfg.DataBackend)
	}
	if cfg.DataDir == "" || cfg.SQLiteDBPath == "" {
		t.Fatalf("expected non-empty path defaults: %+v", cfg)
	}
}
