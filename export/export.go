package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/template"

	"github.com/oraclearn/oraclearn/hypothesis"
	"github.com/oraclearn/oraclearn/periodicity"
)

const dotTemplate = `digraph oraclearn {
	rankdir=LR;
	node [shape=circle];
	__start__ [shape=point];
{{- range .Nodes}}
	{{.ID}} [label="{{.Label}}"{{if .Accepting}}, shape=doublecircle{{end}}];
{{- end}}
{{- if .HasInitial}}
	__start__ -> {{.InitialID}};
{{- end}}
{{- range .Edges}}
	{{.From}} -> {{.To}} [label="{{.Label}}"{{if .Color}}, color="{{.Color}}"{{end}}];
{{- end}}
}
`

var tmpl = template.Must(template.New("dot").Parse(dotTemplate))

type dotNode struct {
	ID        hypothesis.StateID
	Label     string
	Accepting bool
}

type dotEdge struct {
	From, To hypothesis.StateID
	Label    string
	Color    string
}

type dotData struct {
	Nodes      []dotNode
	Edges      []dotEdge
	HasInitial bool
	InitialID  hypothesis.StateID
}

func buildData(a *hypothesis.Automaton, classes map[hypothesis.Transition]periodicity.EdgeClass) dotData {
	var data dotData
	for _, s := range a.States() {
		label := s.Label
		if label == "" {
			label = fmt.Sprintf("%d", s.ID)
		}
		data.Nodes = append(data.Nodes, dotNode{ID: s.ID, Label: label, Accepting: s.Accepting})
	}
	if id, ok := a.Initial(); ok {
		data.HasInitial = true
		data.InitialID = id
	}
	for _, t := range a.Transitions() {
		e := dotEdge{From: t.From, To: t.To, Label: string(t.Symbol)}
		if classes != nil {
			if class, ok := classes[t]; ok {
				e.Color = colorFor(class)
			}
		}
		data.Edges = append(data.Edges, e)
	}
	sort.Slice(data.Edges, func(i, j int) bool {
		if data.Edges[i].From != data.Edges[j].From {
			return data.Edges[i].From < data.Edges[j].From
		}
		return data.Edges[i].Label < data.Edges[j].Label
	})
	return data
}

// colorFor maps a periodicity.EdgeClass to a DOT edge color; init edges
// are left uncolored, i.e. the default black.
func colorFor(c periodicity.EdgeClass) string {
	switch c {
	case periodicity.EdgeLoopinUnconditional:
		return "blue"
	case periodicity.EdgeLoopinConditional:
		return "darkgreen"
	case periodicity.EdgeLoopout:
		return "red"
	default:
		return ""
	}
}

// WriteDOT renders a as Graphviz DOT text to w: one node per state
// (accepting states drawn as doublecircle), one edge per transition
// labeled with its symbol, plus a synthetic start arrow into the initial
// state if one is set.
func WriteDOT(a *hypothesis.Automaton, w io.Writer) error {
	return tmpl.Execute(w, buildData(a, nil))
}

// WriteDOTFile renders a to path, creating or truncating it.
func WriteDOTFile(a *hypothesis.Automaton, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDOT(a, f)
}

// WriteDOTClassified renders a one-counter automaton the same way as
// WriteDOT, but additionally colors each transition by its
// periodicity.EdgeClass (the init / loopin-unconditional /
// loopin-conditional / loopout distinction a periodicity fold attaches
// to a behaviour graph).
func WriteDOTClassified(a *hypothesis.Automaton, classes map[hypothesis.Transition]periodicity.EdgeClass, w io.Writer) error {
	return tmpl.Execute(w, buildData(a, classes))
}

// WriteDOTClassifiedFile is the file-writing counterpart of
// WriteDOTClassified.
func WriteDOTClassifiedFile(a *hypothesis.Automaton, classes map[hypothesis.Transition]periodicity.EdgeClass, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDOTClassified(a, classes, f)
}
