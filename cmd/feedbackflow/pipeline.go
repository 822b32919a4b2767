package main

import (
	"log/slog"

	"github.com/spacesedan/feedbackflow/config"
	"github.com/spacesedan/feedbackflow/internal/agent"
	"github.com/spacesedan/feedbackflow/internal/clients"
	"github.com/spacesedan/feedbackflow/internal/clients/kafka_client"
	"github.com/spacesedan/feedbackflow/internal/models"
	"github.com/spacesedan/feedbackflow/internal/monitoring"
	"github.com/spacesedan/feedbackflow/internal/report"
	"github.com/spacesedan/feedbackflow/internal/sentiment"
	"github.com/spacesedan/feedbackflow/internal/topics"
)

// pipeline owns the agent and every optional backend wired around it.
type pipeline struct {
	agent     *agent.FeedbackAgent
	publisher report.Publisher
	checkers  []monitoring.HealthChecker
	closers   []func()
}

func newPipeline(cfg config.Config, method models.Method, publish bool) *pipeline {
	p := &pipeline{}

	hf := clients.NewHuggingFaceClient(cfg.HuggingFaceAPIKey, cfg.HuggingFaceBaseURL, cfg.RequestTimeout)
	if hf.HasCredential() {
		p.checkers = append(p.checkers, hf)
	}
	if cfg.ValkeyAddress != "" {
		cache, err := clients.NewValkeyCache(cfg.ValkeyAddress, cfg.ValkeyPassword, cfg.ValkeyTLS, cfg.CacheTTL)
		if err != nil {
			slog.Warn("Valkey unavailable, continuing without response cache",
				slog.String("error", err.Error()))
		} else {
			hf.WithCache(cache)
			p.checkers = append(p.checkers, cache)
			p.closers = append(p.closers, cache.Close)
		}
	}

	llm := clients.NewLLMClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel, cfg.RequestTimeout)
	if llm.HasCredential() {
		p.checkers = append(p.checkers, llm)
	}

	coordinator := sentiment.NewCoordinator(
		sentiment.NewRemoteAdapter(hf),
		sentiment.NewLexiconAdapter(),
		sentiment.NewLLMAdapter(llm),
	)
	extractor := topics.NewExtractor(
		topics.NewNounPhraseExtractor(),
		topics.NewRemoteClassifier(hf),
	)
	p.agent = agent.New(coordinator, extractor, agent.WithMethod(method))

	if publish {
		if cfg.KafkaBroker == "" {
			slog.Warn("Publishing requested but KAFKA_BROKER is not set, skipping")
		} else {
			publisher, err := kafka_client.NewReportPublisher(cfg.KafkaBroker, cfg.KafkaReportTopic)
			if err != nil {
				slog.Error("Failed to create report publisher", slog.String("error", err.Error()))
			} else {
				p.publisher = publisher
				p.checkers = append(p.checkers, publisher)
				p.closers = append(p.closers, publisher.Close)
			}
		}
	}

	return p
}

func (p *pipeline) Close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		p.closers[i]()
	}
}
