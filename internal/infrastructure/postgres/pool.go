package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pastro-api/pkg/config"
	"github.com/jhoicas/pastro-api/pkg/retry"
)

// PoolOptions límites del pool; los ceros toman los valores por defecto.
type PoolOptions struct {
	MaxConns int32
	MinConns int32
	// Connect reintentos del primer ping (la BD suele arrancar después que la API en compose).
	Connect retry.Config
}

func defaultPoolOptions() PoolOptions {
	return PoolOptions{
		MaxConns: 20,
		MinConns: 2,
		Connect: retry.Config{
			MaxAttempts:   5,
			InitialDelay:  500 * time.Millisecond,
			MaxDelay:      5 * time.Second,
			BackoffFactor: 2,
		},
	}
}

// NewPool crea el pool de PostgreSQL desde DATABASE_URL o, si falta, desde DB_HOST/DB_PORT/....
// Registra el codec NUMERIC <-> decimal.Decimal y prefiere IPv4 al marcar.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	return NewPoolWithOptions(ctx, cfg, defaultPoolOptions())
}

// NewPoolWithOptions igual que NewPool con límites explícitos.
func NewPoolWithOptions(ctx context.Context, cfg config.DBConfig, opts PoolOptions) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	applyPoolOptions(poolConfig, opts)
	poolConfig.ConnConfig.DialFunc = dialPreferIPv4

	// precios de company_services
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := retry.Do(ctx, opts.Connect, func() error { return pool.Ping(ctx) }, nil); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

func applyPoolOptions(pc *pgxpool.Config, opts PoolOptions) {
	def := defaultPoolOptions()
	if opts.MaxConns <= 0 {
		opts.MaxConns = def.MaxConns
	}
	if opts.MinConns < 0 || opts.MinConns > opts.MaxConns {
		opts.MinConns = def.MinConns
	}
	pc.MaxConns = opts.MaxConns
	pc.MinConns = opts.MinConns
	pc.MaxConnLifetime = time.Hour
	pc.MaxConnIdleTime = 30 * time.Minute
	pc.HealthCheckPeriod = time.Minute
}

// dialPreferIPv4 algunos contenedores no tienen salida IPv6 y el proveedor puede publicar AAAA primero.
func dialPreferIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	d := &net.Dialer{Timeout: 10 * time.Second}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	if ip := firstIPv4(ctx, host); ip != "" {
		if conn, err := d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port)); err == nil {
			return conn, nil
		}
	}
	return d.DialContext(ctx, network, addr)
}

func firstIPv4(ctx context.Context, host string) string {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host
		}
		return ""
	}
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
	if err != nil || len(ips) == 0 {
		return ""
	}
	return ips[0].String()
}
