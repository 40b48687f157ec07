package learner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oraclearn/oraclearn/alphabet"
	"github.com/oraclearn/oraclearn/hypothesis"
	"github.com/oraclearn/oraclearn/obstable"
	"github.com/oraclearn/oraclearn/periodicity"
	"github.com/oraclearn/oraclearn/stratified"
	"github.com/oraclearn/oraclearn/teacher"
)

// Sentinel errors. ErrTeacherInconsistent and ErrOutOfRangeStep alias the originating
// packages' own sentinels (teacher's membership cache, stratified's
// level-range guard) rather than redefining them, so errors.Is matches
// regardless of which package a caller imports to check against.
var (
	// ErrTeacherInconsistent indicates the teacher answered the same
	// word differently across calls. Fatal.
	ErrTeacherInconsistent = teacher.ErrTeacherInconsistent

	// ErrOutOfRangeStep indicates a stratified step requested a level
	// beyond the known range in the table's interior. Fatal there;
	// boundary occurrences are suppressed by stratified.Family itself
	// and never reach here.
	ErrOutOfRangeStep = stratified.ErrOutOfRangeStep

	// ErrMalformedCounterExample indicates a teacher-supplied
	// counter-example did not actually disagree with the current
	// hypothesis. Non-fatal: logged, and the loop retries without
	// absorbing it.
	ErrMalformedCounterExample = errors.New("learner: counter-example did not disagree with hypothesis")

	// ErrMaxIterationsExceeded indicates WithMaxIterations's safety
	// valve tripped before the teacher answered Ok.
	ErrMaxIterationsExceeded = errors.New("learner: exceeded maximum iterations")
)

// Result is the outcome of a successful learning run.
type Result struct {
	// Automaton is the learned acceptor: an NFA for LearnRegular, a
	// (possibly periodicity-folded) behaviour graph for LearnOneCounter.
	Automaton *hypothesis.Automaton
	// EdgeClasses is the per-transition classification the periodicity
	// fold produced (init / loopin-unconditional / loopin-conditional /
	// loopout), used by export.WriteDOTClassified to color diagnostic
	// output. Nil for LearnRegular and for one-counter runs that
	// converged without a fold.
	EdgeClasses map[hypothesis.Transition]periodicity.EdgeClass
	// RunID tags this run for diagnostic export and log correlation.
	RunID uuid.UUID
	// Queries counts the equivalence queries made (Equiv/EquivBehaviour
	// calls), not membership queries, which are cached and typically far
	// more numerous.
	Queries int
}

// LearnRegular runs the regular (L*) loop: fixpoint the flat
// table, build an NFA, ask the teacher for equivalence, and on a
// counter-example absorb every prefix and retry. Returns once the
// teacher answers Ok.
func LearnRegular(a alphabet.Alphabet, t teacher.Teacher, opts ...Option) (*Result, error) {
	cfg := newOptions(opts...)
	ctx := context.Background()
	runID := uuid.New()

	tbl, err := obstable.New(a, t)
	if err != nil {
		return nil, fmt.Errorf("learner: %w", err)
	}

	queries := 0
	for iter := 1; ; iter++ {
		if cfg.maxIterations > 0 && iter > cfg.maxIterations {
			return nil, fmt.Errorf("learner: %w", ErrMaxIterationsExceeded)
		}
		if err := tbl.Fixpoint(); err != nil {
			return nil, fmt.Errorf("learner: %w", err)
		}

		h, err := obstable.BuildNFA(tbl)
		if err != nil {
			return nil, fmt.Errorf("learner: %w", err)
		}

		ans, err := t.Equiv(ctx, h)
		if err != nil {
			return nil, fmt.Errorf("learner: %w", err)
		}
		queries++
		cfg.logger.Debug("regular equivalence query",
			zap.Int("iteration", iter),
			zap.Int("rows", len(tbl.Rows())),
			zap.Int("cols", len(tbl.Cols())),
			zap.Bool("ok", ans.IsOk()))

		if ans.IsOk() {
			if cfg.prune {
				h.Prune()
			}
			return &Result{Automaton: h, RunID: runID, Queries: queries}, nil
		}

		ce, _ := ans.CounterExample()
		if disagrees, err := disagreesWithMember(ctx, t, h, ce); err != nil {
			return nil, fmt.Errorf("learner: %w", err)
		} else if !disagrees {
			cfg.logger.Warn("malformed counter-example, retrying",
				zap.String("word", ce.String()), zap.Error(ErrMalformedCounterExample))
			continue
		}

		if err := tbl.AbsorbCounterExample(ce); err != nil {
			return nil, fmt.Errorf("learner: %w", err)
		}
	}
}

// LearnOneCounter runs the stratified loop: fixpoint the level
// family, build the behaviour graph known so far, gate on the partial
// EquivBehaviour query, then attempt a periodicity fold and a final full
// Equiv query before accepting. Any disagreement, from either query,
// is absorbed via Family.AbsorbCounterExample and the loop retries.
func LearnOneCounter(a alphabet.Alphabet, t teacher.BehaviourTeacher, opts ...Option) (*Result, error) {
	cfg := newOptions(opts...)
	ctx := context.Background()
	runID := uuid.New()

	fam, err := stratified.NewFamily(a, t)
	if err != nil {
		return nil, fmt.Errorf("learner: %w", err)
	}

	queries := 0
	for iter := 1; ; iter++ {
		if cfg.maxIterations > 0 && iter > cfg.maxIterations {
			return nil, fmt.Errorf("learner: %w", ErrMaxIterationsExceeded)
		}
		if err := fam.Fixpoint(); err != nil {
			return nil, fmt.Errorf("learner: %w", err)
		}

		g, err := stratified.BuildBehaviourGraph(fam)
		if err != nil {
			return nil, fmt.Errorf("learner: %w", err)
		}

		behAns, err := t.EquivBehaviour(ctx, g)
		if err != nil {
			return nil, fmt.Errorf("learner: %w", err)
		}
		queries++
		cfg.logger.Debug("behaviour equivalence query",
			zap.Int("iteration", iter),
			zap.Int("maxLevel", fam.MaxLevel()),
			zap.Bool("ok", behAns.IsOk()))

		if !behAns.IsOk() {
			if err := absorbOrWarn(ctx, cfg, t, g, fam, behAns); err != nil {
				return nil, err
			}
			continue
		}

		automaton := cloneAutomaton(g)
		var classes map[hypothesis.Transition]periodicity.EdgeClass
		period, perr := periodicity.Detect(automaton, fam.MaxLevel(), a)
		switch {
		case perr == nil:
			classes, err = periodicity.LoopBack(automaton, period, a)
			if err != nil {
				return nil, fmt.Errorf("learner: %w", err)
			}
			cfg.logger.Info("periodicity fold",
				zap.Int("offset", period.Offset), zap.Int("length", period.Length))
		case errors.Is(perr, periodicity.ErrNoPeriod):
			cfg.logger.Debug("no period found, returning unfolded behaviour graph")
		default:
			return nil, fmt.Errorf("learner: %w", perr)
		}

		finalAns, err := t.Equiv(ctx, automaton)
		if err != nil {
			return nil, fmt.Errorf("learner: %w", err)
		}
		queries++
		cfg.logger.Debug("one-counter equivalence query",
			zap.Int("iteration", iter), zap.Bool("ok", finalAns.IsOk()))

		if finalAns.IsOk() {
			if cfg.prune {
				automaton.Prune()
			}
			return &Result{Automaton: automaton, EdgeClasses: classes, RunID: runID, Queries: queries}, nil
		}

		if err := absorbOrWarn(ctx, cfg, t, automaton, fam, finalAns); err != nil {
			return nil, err
		}
	}
}

// absorbOrWarn checks ans's counter-example against h under the teacher's
// membership answer; a genuine disagreement is absorbed into fam, while
// a malformed one (a word h and the teacher already agree on) is logged
// and left as a no-op for the loop to retry.
func absorbOrWarn(ctx context.Context, cfg *options, t teacher.Teacher, h *hypothesis.Automaton, fam *stratified.Family, ans teacher.Verdict) error {
	ce, _ := ans.CounterExample()
	disagrees, err := disagreesWithMember(ctx, t, h, ce)
	if err != nil {
		return fmt.Errorf("learner: %w", err)
	}
	if !disagrees {
		cfg.logger.Warn("malformed counter-example, retrying",
			zap.String("word", ce.String()), zap.Error(ErrMalformedCounterExample))
		return nil
	}
	if err := fam.AbsorbCounterExample(ce); err != nil {
		return fmt.Errorf("learner: %w", err)
	}
	return nil
}

// disagreesWithMember reports whether h's verdict on ce actually differs
// from the teacher's membership answer; only such words may be absorbed.
func disagreesWithMember(ctx context.Context, t teacher.Teacher, h *hypothesis.Automaton, ce alphabet.Word) (bool, error) {
	want, err := t.Member(ctx, ce)
	if err != nil {
		return false, err
	}
	return hypothesis.Accepts(h, ce) != want, nil
}

// cloneAutomaton returns an independent copy of g via InducedSubgraph
// with every state kept, so the periodicity fold never mutates the
// snapshot already handed to EquivBehaviour.
func cloneAutomaton(g *hypothesis.Automaton) *hypothesis.Automaton {
	keep := make(map[hypothesis.StateID]bool, len(g.States()))
	for _, s := range g.States() {
		keep[s.ID] = true
	}
	return g.InducedSubgraph(keep)
}
