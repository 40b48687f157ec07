package obstable

import (
	"context"
	"errors"
	"strings"

	"github.com/oraclearn/oraclearn/alphabet"
	"github.com/oraclearn/oraclearn/teacher"
)

// ErrNoRows indicates a Table was asked for a row signature before any
// rows were queried, which should never happen since New always seeds ε.
var ErrNoRows = errors.New("obstable: table has no rows")

// Table is the flat (R, S, T) observation table. Rows and columns grow
// monotonically; cells is the lazily-populated membership cache keyed by
// the rendered (row, col) pair, so each (row, col) combination is queried
// from the teacher at most once.
type Table struct {
	rows    []alphabet.Word
	cols    []alphabet.Word
	cells   map[string]bool
	teacher teacher.Teacher
	alpha   alphabet.Alphabet
}

func wordKey(w alphabet.Word) string {
	parts := make([]string, len(w))
	for i, s := range w {
		parts[i] = string(s)
	}
	return strings.Join(parts, "\x1f")
}

func cellKey(row, col alphabet.Word) string {
	return wordKey(row) + "\x1e" + wordKey(col)
}

// New builds the seed table R={ε}, S={ε} and queries T(ε, ε).
func New(a alphabet.Alphabet, t teacher.Teacher) (*Table, error) {
	tbl := &Table{
		rows:    []alphabet.Word{{}},
		cols:    []alphabet.Word{{}},
		cells:   make(map[string]bool),
		teacher: t,
		alpha:   a,
	}
	if _, err := tbl.rowSignature(context.Background(), alphabet.Word{}); err != nil {
		return nil, err
	}
	return tbl, nil
}

// rowSignature fills and returns row(r) = <T(r,s) : s in cols>, querying
// the teacher for any (r, s) pair not already cached. r need not be a
// member of rows; used both for established rows and for tentative
// one-step extensions under closure/consistency checks.
func (t *Table) rowSignature(ctx context.Context, r alphabet.Word) ([]bool, error) {
	sig := make([]bool, len(t.cols))
	for i, s := range t.cols {
		key := cellKey(r, s)
		v, ok := t.cells[key]
		if !ok {
			ans, err := t.teacher.Member(ctx, r.Concat(s))
			if err != nil {
				return nil, err
			}
			t.cells[key] = ans
			v = ans
		}
		sig[i] = v
	}
	return sig, nil
}

// RowSignature returns row(r), filling any missing cells from the
// teacher. Panics if the teacher reports ErrTeacherInconsistent, a
// fatal condition per the error taxonomy, not a recoverable one for a
// pure accessor; callers that need an error return should use Fixpoint,
// MakeClosed, or MakeConsistent, which surface the same failure through
// a normal error return instead.
func (t *Table) RowSignature(r alphabet.Word) []bool {
	sig, err := t.rowSignature(context.Background(), r)
	if err != nil {
		panic(err)
	}
	return sig
}

func sigEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (t *Table) containsRow(r alphabet.Word) bool {
	for _, existing := range t.rows {
		if wordKey(existing) == wordKey(r) {
			return true
		}
	}
	return false
}

// MakeClosed finds the first (in rows/Σ iteration order) row r and
// symbol a such that no existing row of R shares ra's signature, and
// adds ra to R. Returns changed=false once no such witness remains.
//
// The tentative row ra is compared against rows excluding itself: ra is
// not added to t.rows until after the search, so it can never be
// mistaken for one of the rows it is being compared against.
func (t *Table) MakeClosed() (bool, error) {
	ctx := context.Background()
	for _, r := range t.rows {
		for _, a := range t.alpha.Symbols {
			ra := r.Append(a)
			raSig, err := t.rowSignature(ctx, ra)
			if err != nil {
				return false, err
			}
			found := false
			for _, rp := range t.rows {
				rpSig, err := t.rowSignature(ctx, rp)
				if err != nil {
					return false, err
				}
				if sigEqual(raSig, rpSig) {
					found = true
					break
				}
			}
			if !found {
				t.rows = append(t.rows, ra)
				return true, nil
			}
		}
	}
	return false, nil
}

// MakeConsistent finds the first pair r1, r2 in R (iteration order) with
// row(r1) = row(r2) and a symbol a for which row(r1 a) != row(r2 a),
// picks the first witnessing column s, adds a.s to S, and fills it for
// every row. Returns changed=false once no such witness remains.
func (t *Table) MakeConsistent() (bool, error) {
	ctx := context.Background()
	for i, r1 := range t.rows {
		sig1, err := t.rowSignature(ctx, r1)
		if err != nil {
			return false, err
		}
		for _, r2 := range t.rows[i+1:] {
			sig2, err := t.rowSignature(ctx, r2)
			if err != nil {
				return false, err
			}
			if !sigEqual(sig1, sig2) {
				continue
			}
			for _, a := range t.alpha.Symbols {
				sigA, err := t.rowSignature(ctx, r1.Append(a))
				if err != nil {
					return false, err
				}
				sigB, err := t.rowSignature(ctx, r2.Append(a))
				if err != nil {
					return false, err
				}
				if sigEqual(sigA, sigB) {
					continue
				}
				// Find the witnessing column.
				for j, s := range t.cols {
					v1 := sigA[j]
					v2 := sigB[j]
					if v1 != v2 {
						newCol := alphabet.Word{a}.Concat(s)
						if t.hasColumn(newCol) {
							continue
						}
						t.cols = append(t.cols, newCol)
						if err := t.fillColumnForAllRows(ctx, newCol); err != nil {
							return false, err
						}
						return true, nil
					}
				}
			}
		}
	}
	return false, nil
}

func (t *Table) hasColumn(s alphabet.Word) bool {
	key := wordKey(s)
	for _, c := range t.cols {
		if wordKey(c) == key {
			return true
		}
	}
	return false
}

// HasColumn reports whether s is already a member of S.
func (t *Table) HasColumn(s alphabet.Word) bool { return t.hasColumn(s) }

// HasRow reports whether r is already a member of R.
func (t *Table) HasRow(r alphabet.Word) bool { return t.containsRow(r) }

// AddColumn appends s to S and fills it for every existing row, unless s
// is already a column, in which case it is a no-op. Used by the
// stratified family, whose per-level consistency witness may need to add
// a column to a table other than the one the witnessing pair lives in.
func (t *Table) AddColumn(s alphabet.Word) error {
	if t.hasColumn(s) {
		return nil
	}
	t.cols = append(t.cols, s)
	return t.fillColumnForAllRows(context.Background(), s)
}

// AddRow appends r to R, filling its signature, unless r is already a
// row, in which case it is a no-op.
func (t *Table) AddRow(r alphabet.Word) error {
	if t.containsRow(r) {
		return nil
	}
	if _, err := t.rowSignature(context.Background(), r); err != nil {
		return err
	}
	t.rows = append(t.rows, r)
	return nil
}

// fillColumnForAllRows eagerly queries col for every row currently in R
// (not its one-step extensions, which are filled lazily on demand).
func (t *Table) fillColumnForAllRows(ctx context.Context, col alphabet.Word) error {
	for _, r := range t.rows {
		key := cellKey(r, col)
		if _, ok := t.cells[key]; ok {
			continue
		}
		ans, err := t.teacher.Member(ctx, r.Concat(col))
		if err != nil {
			return err
		}
		t.cells[key] = ans
	}
	return nil
}

// AbsorbCounterExample adds every prefix of ce to R (skipping prefixes
// already present), filling each new row's signature.
func (t *Table) AbsorbCounterExample(ce alphabet.Word) error {
	ctx := context.Background()
	for _, p := range ce.Prefixes() {
		if t.containsRow(p) {
			continue
		}
		if _, err := t.rowSignature(ctx, p); err != nil {
			return err
		}
		t.rows = append(t.rows, p)
	}
	return nil
}

// Fixpoint alternates MakeConsistent/MakeClosed until neither reports a
// change, per the outer loop's ordering guarantee (closed does not imply
// consistent stays true after a consistency step, and vice versa).
func (t *Table) Fixpoint() error {
	for {
		changed := false
		for {
			c, err := t.MakeConsistent()
			if err != nil {
				return err
			}
			if !c {
				break
			}
			changed = true
		}
		for {
			c, err := t.MakeClosed()
			if err != nil {
				return err
			}
			if !c {
				break
			}
			changed = true
		}
		if !changed {
			return nil
		}
	}
}

// Rows returns R in insertion order.
func (t *Table) Rows() []alphabet.Word {
	out := make([]alphabet.Word, len(t.rows))
	copy(out, t.rows)
	return out
}

// Cols returns S in insertion order.
func (t *Table) Cols() []alphabet.Word {
	out := make([]alphabet.Word, len(t.cols))
	copy(out, t.cols)
	return out
}

// Accepting reports whether row r satisfies T(r, ε) = 1.
func (t *Table) Accepting(r alphabet.Word) bool {
	sig := t.RowSignature(r)
	for i, s := range t.cols {
		if len(s) == 0 {
			return sig[i]
		}
	}
	return false
}
