package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"clarifycoder/internal/answer"
	"clarifycoder/internal/clarify"
	"clarifycoder/internal/config"
	"clarifycoder/internal/critic"
	"clarifycoder/internal/generate"
	"clarifycoder/internal/llm"
	"clarifycoder/internal/pipeline"
	"clarifycoder/internal/record"
	"clarifycoder/internal/repair"
)

var (
	// Global flags
	cfgPath string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clarifycoder",
	Short: "clarifycoder - clarify-then-generate coding pipeline",
	Long: `clarifycoder turns a free-text coding request into verified Go code.

Each prompt flows through ambiguity detection, question answering, code
generation, sandboxed evaluation, and a single bounded repair pass. Every
stage offers a deterministic strategy and an LLM-backed one, selected in
the configuration file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}

		zc := zap.NewProductionConfig()
		if cfg.Logging.Format == "console" {
			zc = zap.NewDevelopmentConfig()
		}
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else if lvl, perr := zapcore.ParseLevel(cfg.Logging.Level); perr == nil {
			zc.Level = zap.NewAtomicLevelAt(lvl)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// buildClient creates the completion service client when any configured
// strategy needs one. Returns nil when everything runs rule-based.
func buildClient() llm.Client {
	if cfg.LLM.APIKey == "" {
		return nil
	}
	client := llm.NewGeminiClientWithConfig(llm.GeminiConfig{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.GetLLMTimeout(),
	})
	client.SetLogger(logger)
	return client
}

type stages struct {
	clarifier clarify.Clarifier
	answerer  answer.Answerer
	generator generate.Generator
	critic    critic.Critic
	repairer  repair.Repairer
}

// buildStages assembles the per-stage strategies from configuration. The
// interactive flag controls whether the human answerer may prompt on stdin.
func buildStages(client llm.Client, interactive bool) (stages, error) {
	var s stages

	switch cfg.Strategies.Clarifier {
	case "llm":
		if client == nil {
			return s, fmt.Errorf("llm clarifier requires an API key")
		}
		s.clarifier = clarify.NewLLM(client)
	default:
		s.clarifier = clarify.NewRuleBased()
	}

	switch cfg.Strategies.Answerer {
	case "human":
		if interactive {
			s.answerer = answer.NewInteractive(os.Stdin, os.Stdout)
		} else {
			s.answerer = answer.NewHuman()
		}
	default:
		if client != nil {
			s.answerer = answer.NewAuto(client)
		} else {
			s.answerer = answer.NewHuman()
		}
	}

	switch cfg.Strategies.Generator {
	case "llm":
		if client == nil {
			return s, fmt.Errorf("llm generator requires an API key")
		}
		s.generator = generate.NewLLM(client)
	default:
		s.generator = generate.NewTemplate()
	}

	switch cfg.Strategies.Critic {
	case "llm":
		if client == nil {
			return s, fmt.Errorf("llm critic requires an API key")
		}
		s.critic = critic.NewReviewer(client)
	default:
		s.critic = critic.NewSandbox(critic.WithInvokeTimeout(cfg.GetInvokeTimeout()))
	}

	switch cfg.Strategies.Repairer {
	case "llm":
		if client == nil {
			return s, fmt.Errorf("llm repairer requires an API key")
		}
		s.repairer = repair.NewLLM(client)
	default:
		s.repairer = repair.NewRuleBased()
	}

	return s, nil
}

// buildPipeline wires the stages into a pipeline with persistent records.
func buildPipeline(interactive bool) (*pipeline.Pipeline, *record.JSONLStore, error) {
	client := buildClient()
	s, err := buildStages(client, interactive)
	if err != nil {
		return nil, nil, err
	}

	store, err := record.NewJSONLStore(cfg.Records.Dir)
	if err != nil {
		return nil, nil, err
	}

	p, err := pipeline.New(s.clarifier, s.answerer, s.generator, s.critic, s.repairer,
		pipeline.WithRecorder(store),
		pipeline.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return p, store, nil
}

// appendHistory stores a finished run in the history database. History is
// best-effort and never fails the command.
func appendHistory(out pipeline.Outcome) {
	h, err := record.OpenHistory(cfg.Records.HistoryPath)
	if err != nil {
		logger.Warn("history unavailable", zap.Error(err))
		return
	}
	defer h.Close()

	if err := h.Append(rootCmd.Context(), record.Run{
		Prompt:    out.Prompt,
		Status:    string(out.Verdict.Status),
		Function:  out.Verdict.Function,
		Details:   out.Verdict.Details,
		Repaired:  out.Repaired,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		logger.Warn("history append failed", zap.Error(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "clarifycoder.yaml", "path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	// The sandbox re-executes this binary as its oracle runner; runner
	// children never reach cobra.
	if critic.RunnerInvoked() {
		os.Exit(critic.RunnerMain(os.Stdin, os.Stdout))
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
