// Package pipeline drives one prompt through clarification, answering,
// generation, evaluation, and the single conditional repair pass.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clarifycoder/internal/answer"
	"clarifycoder/internal/clarify"
	"clarifycoder/internal/critic"
	"clarifycoder/internal/generate"
	"clarifycoder/internal/record"
	"clarifycoder/internal/repair"
)

// State describes how a prompt run ended.
type State string

const (
	// StateDone means a terminal verdict was produced.
	StateDone State = "done"
	// StateAwaitingAnswers means clarifying questions are pending and the
	// caller must re-invoke with answers supplied.
	StateAwaitingAnswers State = "awaiting_answers"
)

// Outcome is the full result of one prompt run. When State is
// StateAwaitingAnswers only ID, Prompt, Clarification and Questions are
// populated.
type Outcome struct {
	ID            string
	Prompt        string
	State         State
	Clarification clarify.Result
	Questions     []string
	Bundle        answer.Bundle
	Code            string
	Verdict         critic.Verdict
	RepairAttempted bool
	Repaired        bool
	RepairReason    string
}

// Pipeline wires the five stages together with a recorder and logger.
type Pipeline struct {
	clarifier clarify.Clarifier
	answerer  answer.Answerer
	generator generate.Generator
	critic    critic.Critic
	repairer  repair.Repairer
	recorder  record.Recorder
	logger    *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRecorder sets the stage recorder. Defaults to a discard recorder.
func WithRecorder(r record.Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithLogger sets the structured logger. Defaults to a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New assembles a pipeline. All five stages are required.
func New(cl clarify.Clarifier, an answer.Answerer, gen generate.Generator,
	cr critic.Critic, rep repair.Repairer, opts ...Option) (*Pipeline, error) {
	if cl == nil || an == nil || gen == nil || cr == nil || rep == nil {
		return nil, errors.New("pipeline: all stages must be non-nil")
	}
	p := &Pipeline{
		clarifier: cl,
		answerer:  an,
		generator: gen,
		critic:    cr,
		repairer:  rep,
		recorder:  record.Nop{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// RunPrompt processes one prompt end to end. Supplied answers, when given,
// are paired with clarifying questions instead of soliciting new ones; a
// human answerer with no answers and no interactive input yields an
// awaiting-answers outcome instead of a verdict.
func (p *Pipeline) RunPrompt(ctx context.Context, prompt string, supplied []string) (Outcome, error) {
	out := Outcome{ID: uuid.NewString(), Prompt: prompt}

	cres, err := p.clarifier.Detect(ctx, prompt)
	if err != nil {
		return Outcome{}, fmt.Errorf("clarify stage: %w", err)
	}
	out.Clarification = cres
	p.record("clarify", p.recorder.Clarify(record.ClarifyRecord{
		Prompt:         prompt,
		Status:         string(cres.Status),
		Clarifications: cres.Clarifications,
		Timestamp:      time.Now().UTC(),
	}))
	p.logger.Debug("clarified prompt",
		zap.String("run_id", out.ID),
		zap.String("status", string(cres.Status)),
		zap.Int("questions", len(cres.Clarifications)))

	bundle, err := p.answerer.Resolve(ctx, cres.Clarifications, prompt, supplied)
	if err != nil {
		return Outcome{}, fmt.Errorf("answer stage: %w", err)
	}
	if bundle.Pending(cres.Clarifications) {
		out.State = StateAwaitingAnswers
		out.Questions = cres.Clarifications
		p.logger.Info("run paused for answers",
			zap.String("run_id", out.ID),
			zap.Int("pending", len(cres.Clarifications)))
		return out, nil
	}
	out.Bundle = bundle
	if len(cres.Clarifications) > 0 {
		pairs := make([]record.QAPair, len(bundle.QAPairs))
		for i, qa := range bundle.QAPairs {
			pairs[i] = record.QAPair{Question: qa.Question, Answer: qa.Answer}
		}
		p.record("answer", p.recorder.Answer(record.AnswerRecord{
			Prompt:          prompt,
			QAPairs:         pairs,
			AugmentedPrompt: bundle.AugmentedPrompt,
			Timestamp:       time.Now().UTC(),
		}))
	}

	artifact, err := p.generator.Synthesize(ctx, bundle.AugmentedPrompt)
	if err != nil {
		return Outcome{}, fmt.Errorf("generate stage: %w", err)
	}
	out.Code = artifact.Source
	p.record("code", p.recorder.Code(record.CodeRecord{
		Prompt:    prompt,
		Source:    artifact.Source,
		Timestamp: time.Now().UTC(),
	}))

	verdict, err := p.critic.Evaluate(ctx, artifact.Source, bundle.AugmentedPrompt)
	if err != nil {
		return Outcome{}, fmt.Errorf("evaluate stage: %w", err)
	}
	p.record("eval", p.recorder.Eval(record.EvalRecord{
		Prompt:    prompt,
		Status:    string(verdict.Status),
		Function:  verdict.Function,
		Details:   verdict.Details,
		Timestamp: time.Now().UTC(),
	}))
	out.Verdict = verdict

	if verdict.Status.NeedsRepair() {
		final, err := p.repairOnce(ctx, &out, artifact.Source, verdict)
		if err != nil {
			return Outcome{}, err
		}
		out.Verdict = final
	}

	out.State = StateDone
	p.logger.Info("run finished",
		zap.String("run_id", out.ID),
		zap.String("status", string(out.Verdict.Status)),
		zap.Bool("repaired", out.Repaired))
	return out, nil
}

// repairOnce applies the single bounded repair pass. The re-evaluation's
// verdict is final whatever it says; there is no second attempt.
func (p *Pipeline) repairOnce(ctx context.Context, out *Outcome, code string, verdict critic.Verdict) (critic.Verdict, error) {
	out.RepairAttempted = true
	res, err := p.repairer.Repair(ctx, code, verdict)
	if err != nil {
		return critic.Verdict{}, fmt.Errorf("repair stage: %w", err)
	}
	out.Repaired = res.Applied
	out.RepairReason = res.Reason
	if res.Applied {
		out.Code = res.Code
	}

	// Re-evaluation follows every repair attempt, applied or not. An
	// unapplied repair echoes the input code, but the critic is not
	// guaranteed deterministic, so the second verdict is the one that
	// counts either way.
	final, err := p.critic.Evaluate(ctx, res.Code, out.Bundle.AugmentedPrompt)
	if err != nil {
		return critic.Verdict{}, fmt.Errorf("re-evaluate stage: %w", err)
	}

	p.record("refine", p.recorder.Refine(record.RefineRecord{
		Prompt:    out.Prompt,
		Action:    res.Reason,
		Source:    res.Code,
		Status:    string(final.Status),
		Details:   final.Details,
		Timestamp: time.Now().UTC(),
	}))
	return final, nil
}

// record logs recorder failures without failing the run. Persistence is
// best-effort; the verdict still stands.
func (p *Pipeline) record(stage string, err error) {
	if err != nil {
		p.logger.Warn("record write failed", zap.String("stage", stage), zap.Error(err))
	}
}
