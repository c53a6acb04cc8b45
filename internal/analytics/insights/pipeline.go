// Package insights turns a filtered record set into short dashboard sentences.
// Each rule is a named step; a Pipeline runs them in registration order and
// keeps only the steps that produced a sentence.
package insights

import "github.com/vishal-24-1/demodashboard/internal/sales"

// NoData is the only sentence emitted for an empty record set.
const NoData = "No data available for the selected date range."

// Step is one insight rule. Run reports false when the rule has nothing to say.
type Step interface {
	Name() string
	Run(records []sales.Record) (string, bool)
}

type stepFunc struct {
	name string
	fn   func([]sales.Record) (string, bool)
}

// NewStep adapts a function into a named Step.
func NewStep(name string, fn func([]sales.Record) (string, bool)) Step {
	return stepFunc{name: name, fn: fn}
}

func (s stepFunc) Name() string { return s.name }

func (s stepFunc) Run(records []sales.Record) (string, bool) {
	return s.fn(records)
}

// Insight is a sentence tagged with the step that produced it.
type Insight struct {
	Step string `json:"step"`
	Text string `json:"text"`
}

// Pipeline tracks registered steps.
type Pipeline struct {
	steps []Step
}

// NewPipeline builds a pipeline preloaded with the provided steps.
func NewPipeline(steps ...Step) *Pipeline {
	p := &Pipeline{}
	for _, step := range steps {
		p.Register(step)
	}
	return p
}

// Register appends a step.
func (p *Pipeline) Register(step Step) {
	if step == nil {
		return
	}
	p.steps = append(p.steps, step)
}

// Steps returns the registered steps in the order they were added.
func (p *Pipeline) Steps() []Step {
	steps := make([]Step, len(p.steps))
	copy(steps, p.steps)
	return steps
}

// Generate runs every step over records. An empty set short-circuits to NoData.
func (p *Pipeline) Generate(records []sales.Record) []Insight {
	if len(records) == 0 {
		return []Insight{{Step: StepNoData, Text: NoData}}
	}
	out := make([]Insight, 0, len(p.steps))
	for _, step := range p.steps {
		if text, ok := step.Run(records); ok {
			out = append(out, Insight{Step: step.Name(), Text: text})
		}
	}
	return out
}

// Sentences drops the step names.
func Sentences(insights []Insight) []string {
	out := make([]string, len(insights))
	for i, in := range insights {
		out[i] = in.Text
	}
	return out
}
