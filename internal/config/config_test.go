package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
api:
  environment: test
  port: "8000"
  jwt_signing_key: secret
  jwt_ttl: 2h
  timezone: Asia/Tokyo
  allowed_cors_domains:
    - http://localhost:8080
database:
  host: localhost
  port: "5432"
storage:
  base_path: ./media
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "8000", conf.API.Port)
	assert.Equal(t, 2*time.Hour, conf.API.JWTTTL)
	assert.Equal(t, []string{"http://localhost:8080"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, "postgres", conf.Database.Driver)
	assert.Equal(t, "disable", conf.Database.SSLMode)
	assert.Equal(t, "local", conf.Storage.Driver)
	assert.Equal(t, int64(5*1024*1024), conf.Storage.MaxUploadBytes)
	assert.Equal(t, "release", conf.Gin.Mode)
	assert.NotNil(t, conf.Storage.S3)

	loc, err := conf.API.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("DATABASE_HOST", "db.internal")

	conf, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "9999", conf.API.Port)
	assert.Equal(t, "db.internal", conf.Database.Host)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{
			name:    "missing signing key",
			body:    "api:\n  port: \"8000\"\n",
			wantErr: errMissingSigningKey,
		},
		{
			name:    "unknown database driver",
			body:    "api:\n  port: \"8000\"\n  jwt_signing_key: k\ndatabase:\n  driver: sqlite\n",
			wantErr: errUnknownDBDriver,
		},
		{
			name:    "unknown storage driver",
			body:    "api:\n  port: \"8000\"\n  jwt_signing_key: k\nstorage:\n  driver: ftp\n",
			wantErr: errUnknownStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
