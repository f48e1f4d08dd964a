package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, BackendPostgres, cfg.StoreBackend)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=tourneyops sslmode=disable",
		cfg.DB.DSN(),
	)
}

func TestLoad_MemoryBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, BackendMemory, cfg.StoreBackend)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "dynamo")

	_, err := Load()
	require.Error(t, err)
}
