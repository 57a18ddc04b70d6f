package clients

import "time"

const (
	VALKEY_RETRIES     = 3
	VALKEY_RETRY_DELAY = 250 * time.Millisecond
)
