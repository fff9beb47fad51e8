package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/CrimsonX77/Aurora/pkg/config"
	pkgerrors "github.com/CrimsonX77/Aurora/pkg/errors"
	"github.com/CrimsonX77/Aurora/runtime/bounded"
	"github.com/CrimsonX77/Aurora/runtime/credentials"
	"github.com/CrimsonX77/Aurora/runtime/logger"
	metrics "github.com/CrimsonX77/Aurora/runtime/metrics/prometheus"
	"github.com/CrimsonX77/Aurora/runtime/providers/mistral"
	"github.com/CrimsonX77/Aurora/runtime/structured"
	"github.com/CrimsonX77/Aurora/runtime/telemetry"
)

func newAgentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Start one conversation with the configured Mistral agent",
		Long: `Loads MISTRAL_API_KEY from the environment or the env file, starts a
single conversation with the agent and prints the response as JSON or YAML,
or only the assistant text with --output text.

The request is abandoned when it does not complete within --timeout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, map[string]string{
				"env_file":       "env-file",
				"metrics_file":   flagMetricsFile,
				"otlp_endpoint":  "otlp-endpoint",
				"agent.id":       "agent-id",
				"agent.prompt":   "prompt",
				"agent.timeout":  "timeout",
				"agent.base_url": "base-url",
				"agent.output":   "output",
			})
			if err != nil {
				return err
			}
			if err := configureLogging(cmd, s.Logging, ""); err != nil {
				return err
			}
			defer func() { _ = logger.Close() }()

			return runAgent(cmd.Context(), cmd.OutOrStdout(), s)
		},
	}

	addConfigFlag(cmd)
	cmd.Flags().String("env-file", config.DefaultDotEnvFile, "Env file holding MISTRAL_API_KEY")
	cmd.Flags().String("agent-id", config.DefaultAgentID, "Agent identifier")
	cmd.Flags().StringP("prompt", "p", config.DefaultPrompt, "Conversation input")
	cmd.Flags().Duration("timeout", config.DefaultCeiling, "Wall-clock ceiling for the request")
	cmd.Flags().String("base-url", config.DefaultMistralBaseURL, "Mistral API base URL")
	cmd.Flags().StringP("output", "o", config.OutputJSON, "Output format (json, yaml, text)")
	cmd.Flags().String(flagMetricsFile, "", "Write Prometheus metrics to this file on exit")
	cmd.Flags().String("otlp-endpoint", "", "OTLP/HTTP endpoint for trace export")
	return cmd
}

// runAgent performs the single bounded conversation request and renders the
// normalized response to out.
func runAgent(ctx context.Context, out io.Writer, s *config.Settings) error {
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := config.LoadEnvironment(s.EnvFile)
	if err != nil {
		return pkgerrors.New("config", "LoadEnvironment", err).WithKind(pkgerrors.ErrConfiguration)
	}
	logger.Debug("environment loaded", "env_file", s.EnvFile, "vars", env.Len())
	cred, err := credentials.Resolve(env)
	if err != nil {
		return err
	}
	client, err := mistral.NewClient(cred, mistral.WithBaseURL(s.Agent.BaseURL))
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if s.MetricsFile != "" {
		defer func() {
			if werr := metrics.NewExporter().WriteTextfile(s.MetricsFile); werr != nil {
				logger.Warn("Failed to write metrics", "error", werr)
			}
		}()
	}

	ctx = logger.WithLoggingContext(ctx, &logger.LoggingFields{
		RequestID: uuid.NewString(),
		Provider:  mistral.ProviderID,
		AgentID:   s.Agent.ID,
	})

	tracer, shutdown, err := newTracer(ctx, s.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer shutdown()

	ctx, span := telemetry.StartConversationSpan(ctx, tracer, mistral.ProviderID, s.Agent.ID)
	start := time.Now()
	resp, err := bounded.Run(ctx, s.Agent.Timeout,
		func(ctx context.Context) (*mistral.ConversationResponse, error) {
			return client.StartConversation(ctx, s.Agent.ID, s.Agent.Prompt)
		})
	telemetry.EndSpan(span, err)
	recordRequest(resp, err, time.Since(start))
	if err != nil {
		return err
	}

	if s.Agent.Output == config.OutputText {
		_, err = fmt.Fprintln(out, resp.Text())
		return err
	}
	return structured.Render(out, structured.Normalize(resp), structured.Format(s.Agent.Output))
}

// newTracer returns an exporting tracer when endpoint is set and the global
// tracer otherwise. The returned shutdown flushes pending spans.
func newTracer(ctx context.Context, endpoint string) (trace.Tracer, func(), error) {
	if endpoint == "" {
		return telemetry.Tracer(nil), func() {}, nil
	}
	tp, err := telemetry.NewTracerProvider(ctx, endpoint, telemetry.ServiceName)
	if err != nil {
		return nil, nil, pkgerrors.New("telemetry", "NewTracerProvider", err).WithKind(pkgerrors.ErrConfiguration)
	}
	telemetry.SetupPropagation()
	return telemetry.Tracer(tp), func() {
		if serr := tp.Shutdown(context.WithoutCancel(ctx)); serr != nil {
			logger.Warn("Failed to flush traces", "error", serr)
		}
	}, nil
}

func recordRequest(resp *mistral.ConversationResponse, err error, elapsed time.Duration) {
	status := metrics.StatusSuccess
	switch {
	case errors.Is(err, pkgerrors.ErrTimeout):
		status = metrics.StatusTimeout
	case err != nil:
		status = metrics.StatusError
	}
	metrics.RecordProviderRequest(mistral.ProviderID, status, elapsed.Seconds())
	if resp != nil {
		metrics.RecordProviderTokens(mistral.ProviderID, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	}
}
