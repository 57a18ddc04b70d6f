package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

type ValkeyClient struct {
	Client valkey.Client
	mu     sync.Mutex
}

func valkeyOptions() valkey.ClientOption {
	valkeyAddr := os.Getenv("VALKEY_INIT_ADDRESS")
	valkeyPassword := os.Getenv("VALKEY_PASSWORD")
	useTLS := os.Getenv("VALKEY_TLS") == "true"

	opts := valkey.ClientOption{
		InitAddress: []string{
			valkeyAddr,
		},
		Password:         valkeyPassword,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if useTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}
	return opts
}

func connectValkey() (valkey.Client, error) {
	client, err := valkey.NewClient(valkeyOptions())
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}
	return client, nil
}

func InitValkey() (*ValkeyClient, error) {
	var initErr error
	valkeyOnce.Do(func() {
		client, err := connectValkey()
		if err != nil {
			initErr = err
			return
		}
		slog.Info("[ValkeyClient] Successfully connected to valkey")
		valkeyInstance = &ValkeyClient{Client: client}
	})
	if valkeyInstance == nil && initErr == nil {
		initErr = fmt.Errorf("[ValkeyClient] previous initialization failed")
	}
	return valkeyInstance, initErr
}

func (vc *ValkeyClient) client() valkey.Client {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.Client
}

func (vc *ValkeyClient) recreateClient() {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")

	client, err := connectValkey()
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed",
			slog.String("error", err.Error()))
		return
	}
	vc.Client.Close()
	vc.Client = client
	slog.Info("[ValkeyClient] Successfully reconnected to valkey")
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.client().Close()
	}
}

// RPush appends value to the list at key. It is not retried, since a retry
// after an ambiguous failure could append twice.
func (vc *ValkeyClient) RPush(ctx context.Context, key string, value string) (int64, error) {
	c := vc.client()
	res := c.Do(ctx, c.B().Rpush().Key(key).Element(value).Build())
	if err := res.Error(); err != nil {
		if isConnectionError(err) {
			vc.recreateClient()
		}
		return 0, err
	}
	return res.AsInt64()
}

// LRangeAll reads the whole list at key.
func (vc *ValkeyClient) LRangeAll(ctx context.Context, key string) ([]string, error) {
	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Lrange().Key(key).Start(0).Stop(-1).Build()
	}, VALKEY_RETRIES)
	if err := res.Error(); err != nil {
		return nil, err
	}
	return res.AsStrSlice()
}

func (vc *ValkeyClient) Ping(ctx context.Context) error {
	c := vc.client()
	return c.Do(ctx, c.B().Ping().Build()).Error()
}

// DoWithRetry rebuilds the command on every attempt because valkey-go
// recycles a Completed command once it has been sent.
func (vc *ValkeyClient) DoWithRetry(ctx context.Context, build func(valkey.Client) valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		c := vc.client()
		result = c.Do(ctx, build(c))
		if result.Error() == nil {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		if isConnectionError(result.Error()) {
			vc.recreateClient()
		}
		time.Sleep(VALKEY_RETRY_DELAY)
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
