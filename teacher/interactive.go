package teacher

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lmorg/readline/v4"
	"golang.org/x/term"

	"github.com/oraclearn/oraclearn/alphabet"
	"github.com/oraclearn/oraclearn/hypothesis"
)

// InteractiveTeacher is a human oracle: every Member/Equiv query is
// rendered to output and answered by reading a line from input. When input is a
// terminal, queries use github.com/lmorg/readline/v4 for line editing and
// history; otherwise a plain bufio.Scanner is used, so piping a transcript
// of answers into stdin (for scripted demos or tests) works unchanged.
type InteractiveTeacher struct {
	input  io.Reader
	output io.Writer
	cache  *cache
	rl     *readline.Instance
	sc     *bufio.Scanner
}

// NewInteractiveTeacher builds an InteractiveTeacher reading from input
// and writing prompts to output.
func NewInteractiveTeacher(input io.Reader, output io.Writer) *InteractiveTeacher {
	t := &InteractiveTeacher{input: input, output: output, cache: newCache()}
	if t.isTerminal() {
		t.rl = readline.NewInstance()
	} else {
		t.sc = bufio.NewScanner(input)
	}
	return t
}

func (t *InteractiveTeacher) cacheFor() *cache { return t.cache }

func (t *InteractiveTeacher) isTerminal() bool {
	f, ok := t.input.(*os.File)
	if !ok || f != os.Stdin {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// readLine reads one line of raw user input, trimmed, via readline when
// interactive or bufio.Scanner otherwise.
func (t *InteractiveTeacher) readLine(prompt string) (string, error) {
	if t.rl != nil {
		t.rl.SetPrompt(prompt)
		line, err := t.rl.Readline()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
	fmt.Fprint(t.output, prompt)
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.sc.Text()), nil
}

// askYesNo repeatedly prompts until the human answers y/n (case
// insensitive, accepting yes/no too).
func (t *InteractiveTeacher) askYesNo(prompt string) (bool, error) {
	for {
		line, err := t.readLine(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(t.output, "please answer y or n")
	}
}

// Member asks the human whether w belongs to the target language.
func (t *InteractiveTeacher) Member(_ context.Context, w alphabet.Word) (bool, error) {
	if v, ok := t.cache.lookup(w); ok {
		return v, nil
	}
	answer, err := t.askYesNo(fmt.Sprintf("is %q in L? [y/n] ", displayWord(w)))
	if err != nil {
		return false, err
	}
	if err := t.cache.store(w, answer); err != nil {
		return false, err
	}
	return answer, nil
}

// Equiv prints the hypothesis's state and transition counts and asks the
// human for a verdict; a "n" answer prompts for a counter-example word,
// re-asked until non-empty.
func (t *InteractiveTeacher) Equiv(ctx context.Context, h *hypothesis.Automaton) (Verdict, error) {
	fmt.Fprintf(t.output, "hypothesis has %d states, %d transitions\n", len(h.States()), len(h.Transitions()))
	ok, err := t.askYesNo("does this hypothesis look correct? [y/n] ")
	if err != nil {
		return Verdict{}, err
	}
	if ok {
		return Ok(), nil
	}
	for {
		line, err := t.readLine("enter a counter-example word (space-separated symbols): ")
		if err != nil {
			return Verdict{}, err
		}
		w := parseSymbols(line)
		if len(w) == 0 {
			fmt.Fprintln(t.output, "counter-example must be non-empty")
			continue
		}
		return CounterExampleVerdict(w), nil
	}
}

// EquivBehaviour shows the human the partial behaviour graph known so
// far, the same way Equiv shows a flat hypothesis, for the stratified
// learner's pre-periodicity gate.
func (t *InteractiveTeacher) EquivBehaviour(ctx context.Context, g *hypothesis.Automaton) (Verdict, error) {
	fmt.Fprintln(t.output, "--- partial behaviour graph ---")
	return t.Equiv(ctx, g)
}

func displayWord(w alphabet.Word) string {
	if len(w) == 0 {
		return "ε"
	}
	return w.String()
}

func parseSymbols(line string) alphabet.Word {
	fields := strings.Fields(line)
	w := make(alphabet.Word, 0, len(fields))
	for _, f := range fields {
		w = append(w, alphabet.Symbol(f))
	}
	return w
}
