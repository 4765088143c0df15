package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tempizhere/linkvault/internal/config"
	"github.com/tempizhere/linkvault/internal/store"
)

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.Config
		want any
	}{
		{"Memory", config.Config{}, &store.MemoryStore{}},
		{"File", config.Config{FileStoragePath: filepath.Join(dir, "log.json")}, &store.FileStore{}},
		{"Badger", config.Config{BadgerPath: filepath.Join(dir, "badger")}, &store.BadgerStore{}},
		{"SQLite", config.Config{DatabaseDSN: "sqlite://" + filepath.Join(dir, "links.db")}, &store.SQLStore{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			st, err := openStore(ctx, &tt.cfg, zap.NewNop())
			require.NoError(t, err)
			defer st.Close()

			assert.IsType(t, tt.want, st)
			assert.NoError(t, st.Ping(ctx))
		})
	}
}

func TestOpenStore_BadDSN(t *testing.T) {
	_, err := openStore(context.Background(), &config.Config{DatabaseDSN: "mysql://nope"}, zap.NewNop())
	assert.ErrorIs(t, err, store.ErrUnsupportedDSN)
}
