package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pastro-api/pkg/config"
)

func TestApplyPoolOptions_Defaults(t *testing.T) {
	pc, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/pastro?sslmode=disable")
	require.NoError(t, err)

	applyPoolOptions(pc, PoolOptions{MaxConns: 0, MinConns: 50})
	assert.Equal(t, int32(20), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)

	applyPoolOptions(pc, PoolOptions{MaxConns: 4, MinConns: 1})
	assert.Equal(t, int32(4), pc.MaxConns)
	assert.Equal(t, int32(1), pc.MinConns)
}

func TestFirstIPv4(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "10.0.0.7", firstIPv4(ctx, "10.0.0.7"))
	assert.Equal(t, "", firstIPv4(ctx, "::1"))
}

func TestNewPool_DSNInvalido(t *testing.T) {
	_, err := NewPool(context.Background(), config.DBConfig{DatabaseURL: "postgres://%zz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse DSN")
}
