package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacesedan/feedbackflow/config"
	"github.com/spacesedan/feedbackflow/internal/logging"
	"github.com/spacesedan/feedbackflow/internal/models"
	"github.com/spacesedan/feedbackflow/internal/monitoring"
	"github.com/spacesedan/feedbackflow/internal/report"
	"github.com/spacesedan/feedbackflow/internal/sampledata"
	"github.com/spacesedan/feedbackflow/internal/utils"
	"github.com/spf13/cobra"
)

var (
	method     string
	jsonOutput bool
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	cfg := config.FromEnv()
	logging.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:   "feedbackflow",
		Short: "Sentiment, topic and insight analysis for customer feedback",
		Long: `feedbackflow classifies customer feedback with a hosted sentiment model
and a local lexicon, detects product topics, derives action items and
aggregates batches into a report.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&method, "method", "m", string(models.MethodAuto),
		"Sentiment method: auto, remote-classifier, lexicon-heuristic or llm")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	rootCmd.AddCommand(analyzeCmd(cfg), batchCmd(cfg), sampleCmd(), healthCmd(cfg))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func analyzeCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [feedback...]",
		Short: "Analyze one or more feedback texts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPipeline(cfg, models.Method(method), false)
			defer p.Close()

			for _, item := range utils.TextsToFeedbackItems(args) {
				record := p.agent.AnalyzeSingle(cmd.Context(), item)
				if jsonOutput {
					if err := printJSON(record); err != nil {
						return err
					}
					continue
				}
				printRecord(record)
			}
			return nil
		},
	}
}

func batchCmd(cfg config.Config) *cobra.Command {
	var input, output string
	var publish bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Analyze a feedback file and write a batch report",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := sampledata.Load(input)
			if err != nil {
				return err
			}

			p := newPipeline(cfg, models.Method(method), publish)
			defer p.Close()

			result := p.agent.AnalyzeBatch(cmd.Context(), items)

			path, err := report.SaveJSON(output, result)
			if err != nil {
				return err
			}

			if p.publisher != nil {
				if err := p.publisher.Publish(cmd.Context(), result); err != nil {
					slog.Error("Failed to publish batch report",
						slog.String("batch_id", result.BatchID),
						slog.String("error", err.Error()))
				}
			}

			if jsonOutput {
				return printJSON(result.BatchReport)
			}
			printBatch(result, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", sampledata.DEFAULT_SAMPLE_PATH, "Feedback file, a JSON array of {feedback, metadata}")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Report path (default feedback_analysis_report_<timestamp>.json)")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the report to Kafka when KAFKA_BROKER is set")
	return cmd
}

func sampleCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the built-in sample feedback set to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sampledata.Save(output, sampledata.Default()); err != nil {
				return err
			}
			fmt.Printf("Sample feedback written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", sampledata.DEFAULT_SAMPLE_PATH, "Destination file")
	return cmd
}

func healthCmd(cfg config.Config) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check every configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPipeline(cfg, models.MethodAuto, cfg.KafkaBroker != "")
			defer p.Close()

			if len(p.checkers) == 0 {
				fmt.Println("No remote backends configured, running lexicon-only")
				return nil
			}

			printStatuses := func(statuses []monitoring.Status) {
				if jsonOutput {
					_ = printJSON(statuses)
					return
				}
				for _, s := range statuses {
					state := "ok"
					if !s.Healthy {
						state = "FAIL " + s.Error
					}
					fmt.Printf("%-12s %-8s %s\n", s.Name, s.Latency.Round(time.Millisecond), state)
				}
			}

			if watch {
				monitoring.Monitor(cmd.Context(), monitoring.HEALTHCHECK_TIMER*time.Second, printStatuses, p.checkers...)
				return nil
			}
			printStatuses(monitoring.CheckAll(cmd.Context(), p.checkers...))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep checking until interrupted")
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRecord(record models.AnalysisRecord) {
	fmt.Printf("\n#%d %s\n", record.ID, record.OriginalFeedback)
	if record.Analysis.Error != "" {
		fmt.Printf("  error: %s\n", record.Analysis.Error)
		return
	}

	fmt.Printf("  sentiment: %s\n", models.PrimaryLabel(record.Analysis.Sentiment))
	if record.Analysis.Topics != nil {
		for _, c := range record.Analysis.Topics.Categories {
			fmt.Printf("  topic: %s (score %d)\n", c.Category, c.Score)
		}
	}
	if insight := record.Analysis.Insights; insight != nil {
		fmt.Printf("  priority: %s\n", insight.PriorityLevel)
		fmt.Printf("  summary: %s\n", insight.Summary)
		for _, action := range insight.ActionItems {
			fmt.Printf("  - %s\n", action)
		}
	}
}

func printBatch(result models.BatchResult, path string) {
	stats := result.BatchReport.Statistics

	fmt.Printf("\nBatch %s\n", result.BatchID)
	fmt.Printf("  analyzed:   %d (%d successful)\n", stats.TotalAnalyzed, stats.SuccessfulAnalysis)
	fmt.Printf("  positive:   %d\n", stats.PositiveFeedback)
	fmt.Printf("  negative:   %d (%.1f%%)\n", stats.NegativeFeedback, result.BatchReport.NegativePercentage)
	fmt.Printf("  neutral:    %d\n", stats.NeutralFeedback)
	fmt.Println("  recommendations:")
	for _, r := range result.BatchReport.Recommendations {
		fmt.Printf("  - %s\n", r)
	}
	fmt.Printf("\nReport saved to %s\n", path)
}
