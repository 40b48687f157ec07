package stratified

import (
	"errors"

	"github.com/oraclearn/oraclearn/alphabet"
	"github.com/oraclearn/oraclearn/obstable"
	"github.com/oraclearn/oraclearn/teacher"
)

// ErrOutOfRangeStep indicates a level-closure/consistency step was asked
// to act on a level outside [0, t] in the table's strict interior: a
// table invariant violation distinct from the boundary skip rules, which
// never reach this path.
var ErrOutOfRangeStep = errors.New("stratified: step requests a level outside the known range")

// Family is the family {O_i} of per-level observation tables, indexed by
// counter value. NewFamily seeds O_0 and Extend appends one table per
// missing level, so levels holds a table for every i in [0, MaxLevel()]
// with no gaps.
type Family struct {
	levels  []*obstable.Table
	alpha   alphabet.Alphabet
	teacher teacher.Teacher
}

// NewFamily seeds O_0 with R={ε}, S={ε}.
func NewFamily(a alphabet.Alphabet, t teacher.Teacher) (*Family, error) {
	o0, err := obstable.New(a, t)
	if err != nil {
		return nil, err
	}
	return &Family{levels: []*obstable.Table{o0}, alpha: a, teacher: t}, nil
}

// Level returns O_i and true, or nil, false if level i is not yet known.
func (f *Family) Level(i int) (*obstable.Table, bool) {
	if i < 0 || i >= len(f.levels) {
		return nil, false
	}
	return f.levels[i], true
}

// MaxLevel returns t, the highest currently-known level.
func (f *Family) MaxLevel() int { return len(f.levels) - 1 }

// Extend ensures the family covers cv(w), appending empty tables as
// needed, then adds w as a row of O_{cv(w)}.
func (f *Family) Extend(w alphabet.Word) error {
	i, err := f.alpha.CounterValue(w)
	if err != nil {
		return err
	}
	if i < 0 {
		return ErrOutOfRangeStep
	}
	for len(f.levels) <= i {
		next, err := newEmptyTable(f.alpha, f.teacher)
		if err != nil {
			return err
		}
		f.levels = append(f.levels, next)
	}
	return f.levels[i].AddRow(w)
}

// newEmptyTable seeds a level table the same way O_0 is seeded, but
// without assuming ε belongs to that level (a fresh level's seed row is
// filled in lazily by whatever AddRow call populates it first; the
// initial ε/ε column pairing is harmless scaffolding reused from
// obstable.New for symmetry with O_0's construction).
func newEmptyTable(a alphabet.Alphabet, t teacher.Teacher) (*obstable.Table, error) {
	return obstable.New(a, t)
}

// OEquivalent reports whether u ~_O v: same counter value, and equal row
// signatures in that level's table. Returns an error if u and v use a
// symbol outside the alphabet, or reach a negative counter value.
func (f *Family) OEquivalent(u, v alphabet.Word) (bool, error) {
	iu, err := f.alpha.CounterValue(u)
	if err != nil {
		return false, err
	}
	iv, err := f.alpha.CounterValue(v)
	if err != nil {
		return false, err
	}
	if iu != iv {
		return false, nil
	}
	if iu < 0 || iu >= len(f.levels) {
		return false, ErrOutOfRangeStep
	}
	tbl := f.levels[iu]
	return sigEqual(tbl.RowSignature(u), tbl.RowSignature(v)), nil
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

// rowOEquivalentToAny reports whether w is O-equivalent to some row
// already present in O_j.
func (f *Family) rowOEquivalentToAny(w alphabet.Word, j int) (bool, error) {
	tbl := f.levels[j]
	wSig := tbl.RowSignature(w)
	for _, r := range tbl.Rows() {
		if sigEqual(wSig, tbl.RowSignature(r)) {
			return true, nil
		}
	}
	return false, nil
}

// MakeClosed finds the first (level i, row r, symbol a), in level,
// row, then Σ iteration order, such that j = i + χ(a) falls in the
// strict interior [0, t] and no row of O_j is O-equivalent to r·a, and
// adds r·a as a new row of O_j. Steps where j < 0 (χ(a)=-1, i=0) are
// skipped permanently (the counter cannot go negative); steps where
// j > t (χ(a)=+1, i=t) are skipped as "need more counter-examples" and
// do not count as a permanent exclusion; the outer learner loop
// revisits them once t grows. Returns changed=false once no witness
// remains in the current range.
func (f *Family) MakeClosed() (bool, error) {
	t := f.MaxLevel()
	for i, tbl := range f.levels {
		for _, r := range tbl.Rows() {
			for _, a := range f.alpha.Symbols {
				w, err := f.alpha.Weight(a)
				if err != nil {
					return false, err
				}
				j := i + w
				if j < 0 {
					continue // counter cannot go negative: permanent skip
				}
				if j > t {
					continue // beyond known levels: request more counter-examples, not an exclusion
				}
				ra := r.Append(a)
				equiv, err := f.rowOEquivalentToAny(ra, j)
				if err != nil {
					return false, err
				}
				if !equiv {
					if err := f.levels[j].AddRow(ra); err != nil {
						return false, err
					}
					return true, nil
				}
			}
		}
	}
	return false, nil
}

// MakeConsistent finds the first level i and pair u, v in O_i with
// u ~_O v, and symbol a, such that j = i + χ(a) is in range and u·a,
// v·a disagree on some column s of O_j; it adds a·s as a new column of
// O_j (never of O_i: the stratum index used to extend columns is the
// *target* level j, threaded explicitly through this loop, not a
// variable captured from an outer scope) and refills it. Returns
// changed=false once no witness remains.
func (f *Family) MakeConsistent() (bool, error) {
	t := f.MaxLevel()
	for i, tbl := range f.levels {
		rows := tbl.Rows()
		for x, u := range rows {
			for _, v := range rows[x+1:] {
				equiv, err := f.OEquivalent(u, v)
				if err != nil {
					return false, err
				}
				if !equiv {
					continue
				}
				for _, a := range f.alpha.Symbols {
					w, err := f.alpha.Weight(a)
					if err != nil {
						return false, err
					}
					j := i + w
					if j < 0 || j > t {
						continue
					}
					ua, va := u.Append(a), v.Append(a)
					changed, err := f.diffAndAddColumn(a, ua, va, j)
					if err != nil {
						return false, err
					}
					if changed {
						return true, nil
					}
				}
			}
		}
	}
	return false, nil
}

// diffAndAddColumn compares ua and va's signatures in O_j, and if they
// disagree on some column s, adds a·s as a new column of O_j. The target
// level j is threaded in explicitly: the column always lands in the
// stratum the extended words live in, never the one the witnessing pair
// came from.
func (f *Family) diffAndAddColumn(a alphabet.Symbol, ua, va alphabet.Word, j int) (bool, error) {
	tbl := f.levels[j]
	sigU := tbl.RowSignature(ua)
	sigV := tbl.RowSignature(va)
	if sigEqual(sigU, sigV) {
		return false, nil
	}
	cols := tbl.Cols()
	for k, s := range cols {
		if sigU[k] != sigV[k] {
			newCol := alphabet.Word{a}.Concat(s)
			if err := tbl.AddColumn(newCol); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// Fixpoint alternates MakeConsistent/MakeClosed until neither reports a
// change.
func (f *Family) Fixpoint() error {
	for {
		changed := false
		for {
			c, err := f.MakeConsistent()
			if err != nil {
				return err
			}
			if !c {
				break
			}
			changed = true
		}
		for {
			c, err := f.MakeClosed()
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

// AbsorbCounterExample seeds ce as accepted in the teacher's cache when
// no answer for ce is cached yet (teacher.MarkAccepted keeps a known
// answer), then
// inserts every prefix p of ce into O_{cv(p)} (extending the family as
// needed), and for each prefix adds the remaining suffix of ce as a new
// column at that prefix's level, refilling it.
func (f *Family) AbsorbCounterExample(ce alphabet.Word) error {
	if err := teacher.MarkAccepted(f.teacher, ce); err != nil {
		return err
	}
	prefixes := ce.Prefixes()
	for i, p := range prefixes {
		if err := f.Extend(p); err != nil {
			return err
		}
		cv, err := f.alpha.CounterValue(p)
		if err != nil {
			return err
		}
		suffix := ce[i:]
		if len(suffix) == 0 {
			continue
		}
		if err := f.levels[cv].AddColumn(suffix); err != nil {
			return err
		}
	}
	return nil
}

// Alphabet returns the alphabet the family was built with.
func (f *Family) Alphabet() alphabet.Alphabet { return f.alpha }
