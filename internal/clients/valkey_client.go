package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyCache is a ResponseCache backed by Valkey string keys with a TTL.
type ValkeyCache struct {
	Client valkey.Client
	ttl    time.Duration
}

func NewValkeyCache(addr, password string, useTLS bool, ttl time.Duration) (*ValkeyCache, error) {
	opts := valkey.ClientOption{
		InitAddress: []string{
			addr,
		},
		Password:         password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if useTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), CACHE_CONN_TIMEOUT)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey",
		slog.String("address", addr),
		slog.Duration("ttl", ttl))

	return &ValkeyCache{Client: client, ttl: ttl}, nil
}

func (vc *ValkeyCache) Close() {
	if vc != nil && vc.Client != nil {
		vc.Client.Close()
	}
}

func (vc *ValkeyCache) Get(ctx context.Context, key string) ([]byte, bool) {
	res := vc.DoWithRetry(ctx, vc.Client.B().Get().Key(key).Build(), CACHE_RETRIES)

	value, err := res.AsBytes()
	if err != nil {
		if !valkey.IsValkeyNil(err) {
			slog.Warn("[ValkeyClient] Cache read failed",
				slog.String("error", err.Error()))
		}
		return nil, false
	}
	return value, true
}

func (vc *ValkeyCache) Set(ctx context.Context, key string, value []byte) {
	seconds := int64(vc.ttl / time.Second)
	if seconds <= 0 {
		seconds = 1
	}

	cmd := vc.Client.B().Set().Key(key).Value(valkey.BinaryString(value)).ExSeconds(seconds).Build()
	if err := vc.DoWithRetry(ctx, cmd, CACHE_RETRIES).Error(); err != nil {
		slog.Warn("[ValkeyClient] Cache write failed",
			slog.String("error", err.Error()))
	}
}

func (vc *ValkeyCache) DoWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.Client.Do(ctx, completed)
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) || !isConnectionError(err) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))

		time.Sleep(CACHE_RETRY_DELAY)
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}

func (vc *ValkeyCache) Name() string {
	return "valkey"
}

func (vc *ValkeyCache) HealthCheck(ctx context.Context) error {
	return vc.Client.Do(ctx, vc.Client.B().Ping().Build()).Error()
}
