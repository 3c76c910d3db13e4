package generator

import (
	"context"
	"errors"
	"time"

	"github.com/linkiq/linkiq/services/themegen/internal/llm"
	"github.com/linkiq/linkiq/services/themegen/internal/observability"
	"go.uber.org/zap"
)

// State is the position of one invocation in its lifecycle:
// idle, awaiting-remote-response, extracting or substituting, then
// success or failed.
type State string

const (
	StateIdle         State = "idle"
	StateAwaiting     State = "awaiting-remote-response"
	StateExtracting   State = "extracting"
	StateSubstituting State = "substituting"
	StateSuccess      State = "success"
	StateFailed       State = "failed"
)

type invocation struct {
	endpoint string
	state    State
	start    time.Time
	log      *zap.Logger
}

func begin(ctx context.Context, endpoint string) *invocation {
	return &invocation{
		endpoint: endpoint,
		state:    StateIdle,
		start:    time.Now(),
		log:      observability.GetLogger(ctx).With(zap.String("endpoint", endpoint)),
	}
}

func (i *invocation) to(s State) {
	i.log.Debug("generation_state", zap.String("from", string(i.state)), zap.String("to", string(s)))
	i.state = s
}

func (i *invocation) call(ctx context.Context, c llm.Completer, req llm.Request) (string, error) {
	if c == nil {
		return "", llm.ErrNotConfigured
	}

	i.to(StateAwaiting)

	start := time.Now()
	text, err := c.Complete(ctx, req)
	observability.UpstreamDuration.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())

	return text, err
}

func (i *invocation) fail(err error) error {
	i.to(StateFailed)
	outcome := Outcome(err)
	observability.GenerationsTotal.WithLabelValues(i.endpoint, outcome).Inc()

	if outcome == "invalid_input" {
		i.log.Debug("generation_rejected", zap.Error(err))
	} else {
		i.log.Error("generation_failed", zap.String("outcome", outcome), zap.Error(err),
			zap.Duration("elapsed", time.Since(i.start)))
	}
	return err
}

func (i *invocation) succeed(fields ...zap.Field) {
	i.to(StateSuccess)
	observability.GenerationsTotal.WithLabelValues(i.endpoint, "success").Inc()
	i.log.Info("generation_succeeded", append(fields, zap.Duration("elapsed", time.Since(i.start)))...)
}

// Outcome names the failure class of err for metrics and error mapping.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrEmptyPrompt), errors.Is(err, ErrPromptTooLong), errors.Is(err, ErrMissingUser):
		return "invalid_input"
	case errors.Is(err, llm.ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, llm.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, llm.ErrPaymentRequired):
		return "payment_required"
	case errors.Is(err, llm.ErrEmptyCompletion):
		return "invalid_response"
	case errors.Is(err, llm.ErrUpstream):
		return "upstream_error"
	case errors.Is(err, ErrParse):
		return "parse_error"
	default:
		return "unexpected"
	}
}
