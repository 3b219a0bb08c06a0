package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJWKSEndpoints(t *testing.T) {
	endpoints := parseJWKSEndpoints("https://a=https://a/jwks.json, https://b =https://b/jwks.json")
	assert.Len(t, endpoints, 2)
	assert.Equal(t, "https://a/jwks.json", endpoints["https://a"])
	assert.Equal(t, "https://b/jwks.json", endpoints["https://b"])

	assert.Empty(t, parseJWKSEndpoints(""))
	assert.Empty(t, parseJWKSEndpoints("garbage"))
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{"empty allowed", "", "", false},
		{"valid", "https://engine.mindgrate.dev", "https://engine.mindgrate.dev", false},
		{"trailing slash trimmed", "https://engine.mindgrate.dev/", "https://engine.mindgrate.dev", false},
		{"missing scheme", "engine.mindgrate.dev", "", true},
		{"scheme only", "https://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{BaseURL: tt.baseURL}
			err := cfg.validateBaseURL()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, cfg.BaseURL)
		})
	}
}

func TestHubConfigDelays(t *testing.T) {
	hub := HubConfig{ReplyDelayMS: 1500, SearchDelayMS: 500}
	assert.Equal(t, "1.5s", hub.ReplyDelay().String())
	assert.Equal(t, "500ms", hub.SearchDelay().String())
}

func TestDatabaseConnectionString(t *testing.T) {
	db := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "mindgrate",
		Password: "pw", Database: "mindgrate_engine", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=mindgrate password=pw dbname=mindgrate_engine sslmode=disable",
		db.ConnectionString())
}
