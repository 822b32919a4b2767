package clients

import "time"

const (
	USER_AGENT = "feedbackflow-client/1.0 (+https://github.com/spacesedan/feedbackflow)"

	HF_SENTIMENT_MODEL = "cardiffnlp/twitter-roberta-base-sentiment-latest"
	HF_EMOTION_MODEL   = "j-hartmann/emotion-english-distilroberta-base"
	HF_ZERO_SHOT_MODEL = "facebook/bart-large-mnli"

	CACHE_KEY_PREFIX   = "feedbackflow:inference:"
	CACHE_RETRIES      = 3
	CACHE_RETRY_DELAY  = 250 * time.Millisecond
	CACHE_CONN_TIMEOUT = 3 * time.Second
)
