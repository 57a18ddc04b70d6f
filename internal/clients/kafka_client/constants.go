package kafka_client

import "time"

const (
	KAFKA_TOPIC_REVIEW_ISSUES = "review-issues" // issue log entries published after each append
)

const (
	BATCH_SIZE    = 50
	BATCH_TIMEOUT = 5 * time.Second
	MAX_RETRIES   = 3
	FLUSH_TIMEOUT = 5000 // ms
)
