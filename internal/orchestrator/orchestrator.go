// Package orchestrator implements the phase lifecycle state machine from
// spec §4.7: start/status/cancel/rerun over an explicit PipelineRun value,
// with per-(run_id,phase) serialization and idempotent output persistence.
package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dom/matchcore/internal/aggregator"
	"github.com/dom/matchcore/internal/costmodel"
	"github.com/dom/matchcore/internal/dispatch"
	"github.com/dom/matchcore/internal/domain"
	"github.com/dom/matchcore/internal/logging"
	"github.com/dom/matchcore/internal/metrics"
	"github.com/dom/matchcore/internal/phase1"
	"github.com/dom/matchcore/internal/phase2"
	"github.com/dom/matchcore/internal/phase3"
	"github.com/dom/matchcore/internal/repository"
	"github.com/google/uuid"
)

type key struct {
	runID uuid.UUID
	phase domain.Phase
}

// Orchestrator is the single logical executor for every pipeline run it
// is given (spec §5): concurrent Start calls for the same (run,phase) are
// rejected without blocking.
type Orchestrator struct {
	Repo       repository.Repository
	Dispatcher dispatch.Dispatcher
	Timeout    time.Duration
	Importance aggregator.SkillImportance

	mu      sync.Mutex
	inFlight map[key]bool
	cancels  map[key]context.CancelFunc
}

// New wires an Orchestrator. timeout is the default per-phase wall-clock
// budget (spec §5); if zero, a five-minute default is used.
func New(repo repository.Repository, dispatcher dispatch.Dispatcher, timeout time.Duration, importance aggregator.SkillImportance) *Orchestrator {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Orchestrator{
		Repo:       repo,
		Dispatcher: dispatcher,
		Timeout:    timeout,
		Importance: importance,
		inFlight:   make(map[key]bool),
		cancels:    make(map[key]context.CancelFunc),
	}
}

func (o *Orchestrator) loadState(ctx context.Context, runID uuid.UUID, phase domain.Phase) (domain.PhaseState, error) {
	status, err := o.Repo.LoadStatus(ctx, runID, phase)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.StateIdle, nil
		}
		return "", err
	}
	return status.State, nil
}

// Start transitions phase from idle (or a prior terminal state) to
// queued and dispatches it. It rejects with ErrPhaseBusy if the phase is
// already queued or running, and ErrPhasePreconditionUnmet if the
// previous phase in the pipeline has not completed.
func (o *Orchestrator) Start(ctx context.Context, runID uuid.UUID, phase domain.Phase, overrides *domain.Overrides) (string, error) {
	return o.trigger(ctx, runID, phase, overrides, false)
}

// Rerun re-queues phase (which must already have run; an idle phase is
// rejected with ErrPhasePreconditionUnmet) and resets every downstream
// phase's status to idle, since its output is now stale relative to the
// new upstream result (spec §4.7).
func (o *Orchestrator) Rerun(ctx context.Context, runID uuid.UUID, phase domain.Phase, overrides *domain.Overrides) (string, error) {
	return o.trigger(ctx, runID, phase, overrides, true)
}

func (o *Orchestrator) trigger(ctx context.Context, runID uuid.UUID, phase domain.Phase, overrides *domain.Overrides, isRerun bool) (string, error) {
	k := key{runID, phase}

	o.mu.Lock()
	if o.inFlight[k] {
		o.mu.Unlock()
		return "", domain.ErrPhaseBusy
	}
	o.mu.Unlock()

	current, err := o.loadState(ctx, runID, phase)
	if err != nil {
		return "", err
	}
	if current == domain.StateRunning || current == domain.StateQueued {
		return "", domain.ErrPhaseBusy
	}
	if isRerun && current == domain.StateIdle {
		return "", domain.ErrPhasePreconditionUnmet
	}
	if !current.CanTransitionTo(domain.StateQueued) {
		return "", domain.ErrPhasePreconditionUnmet
	}

	if prev := phase.Previous(); prev != "" {
		prevState, err := o.loadState(ctx, runID, prev)
		if err != nil {
			return "", err
		}
		if prevState != domain.StateCompleted {
			return "", domain.ErrPhasePreconditionUnmet
		}
	}

	o.mu.Lock()
	o.inFlight[k] = true
	o.mu.Unlock()

	if err := o.Repo.SaveStatus(ctx, &domain.PhaseStatus{RunID: runID, Phase: phase, State: domain.StateQueued}); err != nil {
		o.mu.Lock()
		delete(o.inFlight, k)
		o.mu.Unlock()
		return "", err
	}

	if isRerun {
		if err := o.invalidateDownstream(ctx, runID, phase); err != nil {
			return "", err
		}
	}

	if overrides != nil {
		o.mu.Lock()
		o.pendingOverrides(runID, phase, overrides)
		o.mu.Unlock()
	}

	taskID, err := o.Dispatcher.Enqueue(ctx, dispatch.TaskRunPhase, map[string]string{
		"run_id": runID.String(),
		"phase":  string(phase),
	})
	if err != nil {
		o.mu.Lock()
		delete(o.inFlight, k)
		o.mu.Unlock()
		return "", err
	}
	return taskID, nil
}

// overridesStore holds overrides passed to Start/Rerun so Execute (which
// is invoked later, possibly from a dispatcher worker) can read them back
// by (run,phase). This keeps the Dispatcher's args map free of serialized
// structs: only the run id and phase name cross that boundary.
var overridesStore sync.Map // key -> *domain.Overrides

func (o *Orchestrator) pendingOverrides(runID uuid.UUID, phase domain.Phase, overrides *domain.Overrides) {
	overridesStore.Store(key{runID, phase}, overrides)
}

func (o *Orchestrator) takeOverrides(runID uuid.UUID, phase domain.Phase) *domain.Overrides {
	v, ok := overridesStore.LoadAndDelete(key{runID, phase})
	if !ok {
		return nil
	}
	return v.(*domain.Overrides)
}

// invalidateDownstream resets status to idle for every phase after the
// given one. Their persisted outputs are not deleted; they stay in the
// repository until that phase runs again and overwrites them.
func (o *Orchestrator) invalidateDownstream(ctx context.Context, runID uuid.UUID, phase domain.Phase) error {
	downstream := false
	for _, p := range domain.AllPhases {
		if p == phase {
			downstream = true
			continue
		}
		if !downstream {
			continue
		}
		if err := o.Repo.SaveStatus(ctx, &domain.PhaseStatus{RunID: runID, Phase: p, State: domain.StateIdle}); err != nil {
			return err
		}
	}
	return nil
}

// Status returns the current PhaseStatus, defaulting to an idle record
// when none has been persisted yet.
func (o *Orchestrator) Status(ctx context.Context, runID uuid.UUID, phase domain.Phase) (*domain.PhaseStatus, error) {
	status, err := o.Repo.LoadStatus(ctx, runID, phase)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.PhaseStatus{RunID: runID, Phase: phase, State: domain.StateIdle}, nil
		}
		return nil, err
	}
	return status, nil
}

// Cancel cooperatively cancels a running phase. It is a no-op if the
// phase is not currently running in this process.
func (o *Orchestrator) Cancel(runID uuid.UUID, phase domain.Phase) {
	k := key{runID, phase}
	o.mu.Lock()
	cancel, ok := o.cancels[k]
	o.mu.Unlock()
	if ok {
		cancel()
	}
}

// Execute runs one phase to completion. It is the function the task
// dispatcher's handler invokes after popping a queued task; it is never
// called directly by Start/Rerun, keeping the core synchronous and
// dispatch at the edge (spec §9 Design Note).
func (o *Orchestrator) Execute(ctx context.Context, runID uuid.UUID, phase domain.Phase, run *domain.Run) error {
	k := key{runID, phase}
	defer func() {
		o.mu.Lock()
		delete(o.inFlight, k)
		delete(o.cancels, k)
		o.mu.Unlock()
	}()

	phaseCtx, timeoutCancel := context.WithTimeout(ctx, o.Timeout)
	phaseCtx, cancel := context.WithCancel(phaseCtx)
	defer timeoutCancel()
	defer cancel()

	o.mu.Lock()
	o.cancels[k] = cancel
	o.mu.Unlock()

	log := logging.ForRun(runID.String(), string(phase))

	started := time.Now()
	if err := o.Repo.SaveStatus(ctx, &domain.PhaseStatus{RunID: runID, Phase: phase, State: domain.StateRunning, StartedAt: &started}); err != nil {
		return err
	}
	log.Info().Str("state", string(domain.StateRunning)).Msg("phase started")

	metrics.RunningPhases.WithLabelValues(string(phase)).Inc()
	defer metrics.RunningPhases.WithLabelValues(string(phase)).Dec()

	overrides := o.takeOverrides(runID, phase)
	weights := costmodel.DefaultWeights()
	teamSize := run.TeamSize
	if overrides != nil {
		if overrides.Weights != nil {
			weights = costmodel.FromOverrides(*overrides.Weights)
		}
		if overrides.TeamSize != nil {
			teamSize = *overrides.TeamSize
		}
	}

	var runErr error
	var unassigned int
	switch phase {
	case domain.Phase1:
		var bucket *domain.Bucket
		bucket, runErr = o.runPhase1(phaseCtx, runID, run, overrides, weights, teamSize)
		if bucket != nil {
			unassigned = len(bucket.Unassigned)
		}
	case domain.Phase2:
		runErr = o.runPhase2(phaseCtx, runID, teamSize)
	case domain.Phase3:
		runErr = o.runPhase3(phaseCtx, runID, weights)
	}

	completed := time.Now()
	duration := completed.Sub(started).Seconds()

	if phase == domain.Phase1 && runErr == nil {
		metrics.UnassignedParticipants.WithLabelValues(runID.String()).Set(float64(unassigned))
	}

	if runErr != nil {
		var phaseErr *domain.PhaseError
		if ctxErr := phaseCtx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				phaseErr = domain.NewPhaseError(domain.KindTimeout, domain.ErrTimeout, "phase timed out")
			} else {
				phaseErr = domain.NewPhaseError(domain.KindCanceled, domain.ErrCanceled, "phase canceled")
			}
		} else {
			phaseErr = domain.WrapPhaseError(runErr)
		}
		metrics.PhaseDuration.WithLabelValues(string(phase), string(phaseErr.Kind)).Observe(duration)
		metrics.PhaseRuns.WithLabelValues(string(phase), string(phaseErr.Kind)).Inc()
		log.Error().Str("state", string(domain.StateFailed)).Dur("duration_ms", completed.Sub(started)).Err(phaseErr).Msg("phase failed")
		return o.Repo.SaveStatus(ctx, &domain.PhaseStatus{
			RunID: runID, Phase: phase, State: domain.StateFailed,
			StartedAt: &started, CompletedAt: &completed, Error: phaseErr, Progress: 1,
		})
	}

	metrics.PhaseDuration.WithLabelValues(string(phase), "completed").Observe(duration)
	metrics.PhaseRuns.WithLabelValues(string(phase), "completed").Inc()
	log.Info().Str("state", string(domain.StateCompleted)).Dur("duration_ms", completed.Sub(started)).Msg("phase completed")

	return o.Repo.SaveStatus(ctx, &domain.PhaseStatus{
		RunID: runID, Phase: phase, State: domain.StateCompleted,
		StartedAt: &started, CompletedAt: &completed, Progress: 1,
	})
}

func (o *Orchestrator) runPhase1(ctx context.Context, runID uuid.UUID, run *domain.Run, overrides *domain.Overrides, weights costmodel.Weights, teamSize int) (*domain.Bucket, error) {
	participants, err := o.Repo.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}
	problems, err := o.Repo.ListProblems(ctx)
	if err != nil {
		return nil, err
	}
	if len(participants) < teamSize || len(problems) == 0 {
		return nil, domain.ErrInsufficientData
	}

	capacity := run.PerProblemCapacity
	if overrides != nil && overrides.PerProblemCapacity != nil {
		capacity = overrides.PerProblemCapacity
	}

	bucket, err := phase1.Match(runID, phase1.Input{
		Participants:       participants,
		Problems:           problems,
		Weights:            weights,
		TeamSize:           teamSize,
		CapacityMultiplier: capacity,
	})
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := o.Repo.SaveBucket(ctx, runID, bucket); err != nil {
		return nil, err
	}
	return bucket, nil
}

func (o *Orchestrator) runPhase2(ctx context.Context, runID uuid.UUID, teamSize int) error {
	bucket, err := o.Repo.LoadBucket(ctx, runID)
	if err != nil {
		return err
	}
	participants, err := o.Repo.ListParticipants(ctx)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*domain.Participant, len(participants))
	skillSet := make(map[string]bool)
	for _, p := range participants {
		byID[p.ID] = p
		for skill := range p.Skills {
			skillSet[skill] = true
		}
	}
	skills := make([]string, 0, len(skillSet))
	for s := range skillSet {
		skills = append(skills, s)
	}

	importance := o.Importance
	if len(importance) == 0 {
		// No operator-supplied weighting: the skill vocabulary is open per
		// spec §9 (no global skill table), so fall back to weighting every
		// skill this run's participants actually reported equally, rather
		// than leaving skills_covered permanently zeroed.
		importance = make(aggregator.SkillImportance, len(skills))
		for _, s := range skills {
			importance[s] = 1.0
		}
	}

	results, err := phase2.FormAll(ctx, runID, bucket, byID, teamSize, skills, importance)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var teams []*domain.Team
	for _, r := range results {
		teams = append(teams, r.Teams...)
	}
	return o.Repo.SaveTeams(ctx, runID, teams)
}

// TaskHandler adapts Execute to the signature dispatch implementations
// expect, resolving the Run record for each task before running it.
func (o *Orchestrator) TaskHandler() func(ctx context.Context, taskName string, args map[string]string) error {
	return func(ctx context.Context, taskName string, args map[string]string) error {
		runID, err := uuid.Parse(args["run_id"])
		if err != nil {
			return err
		}
		run, err := o.Repo.LoadRun(ctx, runID)
		if err != nil {
			return err
		}
		return o.Execute(ctx, runID, domain.Phase(args["phase"]), run)
	}
}

func (o *Orchestrator) runPhase3(ctx context.Context, runID uuid.UUID, weights costmodel.Weights) error {
	teams, err := o.Repo.LoadTeams(ctx, runID)
	if err != nil {
		return err
	}
	problems, err := o.Repo.ListProblems(ctx)
	if err != nil {
		return err
	}

	assignment, err := phase3.Assign(runID, phase3.Input{Teams: teams, Problems: problems, Weights: weights})
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return o.Repo.SaveAssignment(ctx, runID, assignment)
}
