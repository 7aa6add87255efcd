package configs

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// unsetEnv убирает переменную на время теста; t.Setenv вернет прежнее значение
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeEnvFile(t, "APP_NAME=props-test\n")
	unsetEnv(t, "APP_NAME", "PORT", "STORAGE_DRIVER", "MONGODB_URI", "MONGODB_DATABASE", "CORS_ALLOWED_ORIGINS", "RABBITMQ_ENABLED")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.AppName != "props-test" {
		t.Fatalf("AppName = %q", cfg.AppName)
	}
	if cfg.Rest.PORT != "8080" || cfg.Storage.Driver != StorageMongo || cfg.Mongo.Database != "MillionPropertiesDB" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Rest.AllowedOrigins, []string{"*"}) {
		t.Fatalf("AllowedOrigins = %v", cfg.Rest.AllowedOrigins)
	}
}

func TestLoadConfigValidatesDriver(t *testing.T) {
	path := writeEnvFile(t, "")

	cases := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{name: "memory", env: map[string]string{"STORAGE_DRIVER": "Memory"}},
		{name: "unknown driver", env: map[string]string{"STORAGE_DRIVER": "redis"}, wantErr: true},
		{name: "postgres without url", env: map[string]string{"STORAGE_DRIVER": "postgres", "DATABASE_URL": ""}, wantErr: true},
		{name: "postgres with url", env: map[string]string{"STORAGE_DRIVER": "postgres", "DATABASE_URL": "postgres://u:p@localhost/db"}},
		{name: "rabbit without url", env: map[string]string{"STORAGE_DRIVER": "memory", "RABBITMQ_ENABLED": "true", "RABBITMQ_URL": ""}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(path)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFluentBitDisabledWithoutHost(t *testing.T) {
	path := writeEnvFile(t, "")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("FLUENTBIT_ENABLED", "true")
	t.Setenv("FLUENTBIT_HOST", "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FluentBit.Enabled {
		t.Fatal("fluent bit must be disabled when host is empty")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" http://a.test , ,http://b.test")
	want := []string{"http://a.test", "http://b.test"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitList = %v, want %v", got, want)
	}
}
