package kafka_client

import "time"

const (
	KAFKA_TOPIC_FEEDBACK_REPORTS = "feedback-reports" // one message per analyzed batch
)

const (
	DELIVERY_TIMEOUT = 10 * time.Second
	FLUSH_TIMEOUT_MS = 5000
	MAX_RETRIES      = 3
)
