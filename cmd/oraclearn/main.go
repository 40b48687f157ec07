// Command oraclearn is the CLI entry point: callable with no arguments,
// seeded with a built-in target language for demonstration.
// By default it runs the stratified (one-counter)
// learner against aⁿbⁿ; --regular switches to the L* branch against a
// built-in regular demo language; --config loads Σ/χ from a YAML file;
// --interactive swaps in a human oracle.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oraclearn/oraclearn/alphabet"
	"github.com/oraclearn/oraclearn/config"
	"github.com/oraclearn/oraclearn/export"
	"github.com/oraclearn/oraclearn/learner"
	"github.com/oraclearn/oraclearn/teacher"
)

var (
	verbose       bool
	regular       bool
	interactive   bool
	prune         bool
	demoName      string
	configPath    string
	exportPath    string
	maxLen        int
	maxIterations int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "oraclearn",
	Short: "active automaton learning engine",
	Long: `oraclearn infers a finite-state acceptor of an unknown formal language
by querying a teacher oracle via membership and equivalence queries.

Run without arguments to learn the built-in a^n b^n one-counter demo
language via the stratified learner.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l
		return nil
	},
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level structured logging")
	rootCmd.Flags().BoolVar(&regular, "regular", false, "learn a regular-language demo via the L* branch instead of the one-counter branch")
	rootCmd.Flags().BoolVar(&interactive, "interactive", false, "use a human oracle (reads y/n and counter-examples from stdin) instead of the built-in demo teacher")
	rootCmd.Flags().BoolVar(&prune, "prune", false, "remove unreachable/dead states from the learned automaton before export")
	rootCmd.Flags().StringVar(&demoName, "demo", "anbn", "built-in demo target: anbn|ancbn|xabnycdnz (one-counter), abstar (regular)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "load the alphabet from a YAML file instead of the built-in demo's alphabet")
	rootCmd.Flags().StringVar(&exportPath, "export", "", "write a Graphviz DOT rendering of the learned automaton to this path")
	rootCmd.Flags().IntVar(&maxLen, "max-len", 8, "longest word the built-in demo teacher brute-force-searches for a counter-example")
	rootCmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "bound the outer learning loop; 0 means unbounded")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "oraclearn:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	opts := []learner.Option{learner.WithLogger(logger)}
	if maxIterations > 0 {
		opts = append(opts, learner.WithMaxIterations(maxIterations))
	}
	if prune {
		opts = append(opts, learner.WithPrune())
	}

	if regular {
		return runRegular(opts)
	}
	return runOneCounter(opts)
}

func runRegular(opts []learner.Option) error {
	a, t, err := buildRegularTeacher()
	if err != nil {
		return err
	}
	if interactive {
		t = teacher.NewInteractiveTeacher(os.Stdin, os.Stdout)
	}

	res, err := learner.LearnRegular(a, t, opts...)
	if err != nil {
		return fmt.Errorf("learning: %w", err)
	}
	fmt.Printf("learned NFA: %d states, %d transitions, %d equivalence queries\n",
		len(res.Automaton.States()), len(res.Automaton.Transitions()), res.Queries)

	if exportPath != "" {
		if err := export.WriteDOTFile(res.Automaton, exportPath); err != nil {
			return fmt.Errorf("exporting: %w", err)
		}
		fmt.Println("wrote", exportPath)
	}
	return nil
}

func runOneCounter(opts []learner.Option) error {
	a, t, err := buildOneCounterTeacher()
	if err != nil {
		return err
	}
	var bt teacher.BehaviourTeacher = t
	if interactive {
		bt = teacher.NewInteractiveTeacher(os.Stdin, os.Stdout)
	}

	res, err := learner.LearnOneCounter(a, bt, opts...)
	if err != nil {
		return fmt.Errorf("learning: %w", err)
	}
	fmt.Printf("learned one-counter automaton: %d states, %d transitions, %d equivalence queries\n",
		len(res.Automaton.States()), len(res.Automaton.Transitions()), res.Queries)

	if exportPath != "" {
		// EdgeClasses colors the fold's loopin/loopout edges; it is nil
		// when the run converged without a fold, which renders plain.
		if err := export.WriteDOTClassifiedFile(res.Automaton, res.EdgeClasses, exportPath); err != nil {
			return fmt.Errorf("exporting: %w", err)
		}
		fmt.Println("wrote", exportPath)
	}
	return nil
}

// buildRegularTeacher resolves the alphabet (from --config or the
// regular demo's default) and a teacher.Teacher backed by a RegexTeacher
// over the "abstar" demo: (ab)*.
func buildRegularTeacher() (alphabet.Alphabet, teacher.Teacher, error) {
	a, err := resolveAlphabet(false)
	if err != nil {
		return alphabet.Alphabet{}, nil, err
	}
	rt, err := teacher.NewRegexTeacher("(ab)*", a, maxLen)
	if err != nil {
		return alphabet.Alphabet{}, nil, fmt.Errorf("building regex teacher: %w", err)
	}
	return a, rt, nil
}

// buildOneCounterTeacher resolves the alphabet and a
// teacher.BehaviourTeacher for one of the built-in one-counter demo
// languages: anbn (aⁿbⁿ), ancbn (aⁿcᵏbⁿ, weight-0 middle symbol),
// xabnycdnz (two independent counter phases separated by weight-0
// markers).
func buildOneCounterTeacher() (alphabet.Alphabet, *teacher.FuncTeacher, error) {
	a, err := resolveAlphabet(true)
	if err != nil {
		return alphabet.Alphabet{}, nil, err
	}

	var member teacher.MemberFunc
	switch demoName {
	case "anbn":
		member = isAnBn
	case "ancbn":
		member = isAnCBn
	case "xabnycdnz":
		member = isXABnYCDnZ
	default:
		return alphabet.Alphabet{}, nil, fmt.Errorf("unknown one-counter demo %q", demoName)
	}
	return a, teacher.NewFuncTeacher(member, a, maxLen), nil
}

// resolveAlphabet loads Σ/χ from --config if given, or returns the
// built-in demo alphabet appropriate for oneCounter mode.
func resolveAlphabet(oneCounter bool) (alphabet.Alphabet, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	if !oneCounter {
		return alphabet.New("a", "b")
	}
	switch demoName {
	case "anbn":
		return alphabet.NewWeighted([]alphabet.Symbol{"a", "b"}, map[alphabet.Symbol]int{"a": 1, "b": -1})
	case "ancbn":
		return alphabet.NewWeighted([]alphabet.Symbol{"a", "b", "c"}, map[alphabet.Symbol]int{"a": 1, "b": -1, "c": 0})
	case "xabnycdnz":
		return alphabet.NewWeighted(
			[]alphabet.Symbol{"x", "a", "b", "y", "c", "d", "z"},
			map[alphabet.Symbol]int{"x": 0, "a": 1, "b": -1, "y": 0, "c": 1, "d": -1, "z": 0},
		)
	default:
		return alphabet.Alphabet{}, fmt.Errorf("unknown one-counter demo %q", demoName)
	}
}

func isAnBn(w alphabet.Word) bool {
	i := 0
	for i < len(w) && w[i] == "a" {
		i++
	}
	n := i
	if n == 0 {
		return len(w) == 0
	}
	j := 0
	for i < len(w) && w[i] == "b" {
		i++
		j++
	}
	return i == len(w) && j == n
}

// isAnCBn accepts a^n c^k b^n for any n >= 1, k >= 0 (and the empty
// word): the weight-0 middle symbol c may repeat freely without
// affecting cv.
func isAnCBn(w alphabet.Word) bool {
	i := 0
	for i < len(w) && w[i] == "a" {
		i++
	}
	n := i
	if n == 0 {
		return len(w) == 0
	}
	for i < len(w) && w[i] == "c" {
		i++
	}
	j := 0
	for i < len(w) && w[i] == "b" {
		i++
		j++
	}
	return i == len(w) && j == n
}

// isXABnYCDnZ accepts words of the form x a^n b^n y c^m d^m z: two
// independent counter phases, each returning to counter value 0, joined
// by weight-0 marker symbols.
func isXABnYCDnZ(w alphabet.Word) bool {
	i := 0
	if i >= len(w) || w[i] != "x" {
		return false
	}
	i++
	i, n1 := countRun(w, i, "a")
	i, m1 := countRun(w, i, "b")
	if n1 != m1 {
		return false
	}
	if i >= len(w) || w[i] != "y" {
		return false
	}
	i++
	i, n2 := countRun(w, i, "c")
	i, m2 := countRun(w, i, "d")
	if n2 != m2 {
		return false
	}
	if i >= len(w) || w[i] != "z" {
		return false
	}
	i++
	return i == len(w)
}

func countRun(w alphabet.Word, i int, sym alphabet.Symbol) (int, int) {
	n := 0
	for i < len(w) && w[i] == sym {
		i++
		n++
	}
	return i, n
}
