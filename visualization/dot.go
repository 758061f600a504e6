package visualization

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/anggasct/trafficfsm"
)

// DOTGenerator generates Graphviz DOT format representations of state tables
type DOTGenerator struct {
	table   trafficfsm.Table
	initial trafficfsm.StateID
	options DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	ShowOutputs     bool
	ShowHoldTicks   bool
	ShowInputCodes  bool
	RankDirection   string // "TB", "LR", "BT", "RL"
	NodeShape       string
	TransitionStyle string
	FlashStateStyle string
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		ShowOutputs:     true,
		ShowHoldTicks:   true,
		ShowInputCodes:  true,
		RankDirection:   "LR",
		NodeShape:       "box",
		TransitionStyle: "solid",
		FlashStateStyle: "dashed",
	}
}

// NewDOTGenerator creates a new DOT generator for the given table
func NewDOTGenerator(table trafficfsm.Table, initial trafficfsm.StateID, options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{
		table:   table,
		initial: initial,
		options: opts,
	}
}

// Generate creates a DOT representation of the table
func (g *DOTGenerator) Generate() (string, error) {
	if err := g.table.Validate(); err != nil {
		return "", fmt.Errorf("failed to validate table: %w", err)
	}

	var dot strings.Builder

	dot.WriteString("digraph TrafficLight {\n")
	dot.WriteString(fmt.Sprintf("  rankdir=%s;\n", g.options.RankDirection))
	dot.WriteString(fmt.Sprintf("  node [shape=%s];\n", g.options.NodeShape))
	dot.WriteString("  edge [fontsize=10];\n\n")

	g.generateStates(&dot)
	g.generateTransitions(&dot)

	dot.WriteString("}\n")

	return dot.String(), nil
}

// generateStates generates DOT nodes for all states in table order
func (g *DOTGenerator) generateStates(dot *strings.Builder) {
	dot.WriteString("  // States\n")

	for _, id := range trafficfsm.AllStates() {
		row := g.table[id]

		fillColor := fillFor(row)
		style := "filled"
		label := id.String()

		if id == g.initial {
			label += "\\n(initial)"
		}
		if row.IgnoresInput() {
			style += "," + g.options.FlashStateStyle
		}
		if g.options.ShowOutputs {
			label += fmt.Sprintf("\\n%s\\nped=%s", row.MainOutput, row.PedOutput)
		}
		if g.options.ShowHoldTicks {
			label += fmt.Sprintf("\\nhold=%d", row.HoldTicks)
		}

		dot.WriteString(fmt.Sprintf("  \"%s\" [style=\"%s\" fillcolor=%s label=\"%s\"];\n",
			id, style, fillColor, label))
	}
	dot.WriteString("\n")
}

func fillFor(row trafficfsm.State) string {
	switch {
	case row.PedOutput.Walk():
		return "lightgreen"
	case row.MainOutput.EastWest() == trafficfsm.Yellow, row.MainOutput.NorthSouth() == trafficfsm.Yellow:
		return "lightyellow"
	case row.MainOutput.AllRed():
		return "lightcoral"
	default:
		return "lightblue"
	}
}

// generateTransitions generates one DOT edge per distinct successor
func (g *DOTGenerator) generateTransitions(dot *strings.Builder) {
	dot.WriteString("  // Transitions\n")

	for _, id := range trafficfsm.AllStates() {
		for _, edge := range g.table.Successors(id) {
			attrs := []string{fmt.Sprintf("style=%s", g.options.TransitionStyle)}
			if g.options.ShowInputCodes && !edge.Unconditional() {
				attrs = append(attrs, fmt.Sprintf("label=\"%s\"", inputLabel(edge.Inputs)))
			}
			dot.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [%s];\n", edge.From, edge.To, strings.Join(attrs, " ")))
		}
	}
}

func inputLabel(inputs []trafficfsm.InputVector) string {
	codes := make([]string, len(inputs))
	for i, in := range inputs {
		codes[i] = fmt.Sprintf("%d", uint8(in))
	}
	return strings.Join(codes, ",")
}

// GenerateToFile writes the DOT representation to a file
func (g *DOTGenerator) GenerateToFile(filename string) error {
	content, err := g.Generate()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0644)
}

// SVGGenerator generates SVG representations by calling Graphviz
type SVGGenerator struct {
	dotGenerator *DOTGenerator
}

// NewSVGGenerator creates a new SVG generator
func NewSVGGenerator(table trafficfsm.Table, initial trafficfsm.StateID, options ...DOTOptions) *SVGGenerator {
	return &SVGGenerator{
		dotGenerator: NewDOTGenerator(table, initial, options...),
	}
}

// Generate creates an SVG representation of the table
func (g *SVGGenerator) Generate() (string, error) {
	dotContent, err := g.dotGenerator.Generate()
	if err != nil {
		return "", err
	}

	cmd := exec.Command("dot", "-Tsvg")
	cmd.Stdin = strings.NewReader(dotContent)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to execute dot command: %w (make sure Graphviz is installed)", err)
	}

	return out.String(), nil
}
