package schemadiff

import "fmt"

// StageFunc is a function for processing a Snapshot in a pipeline Stage.
// It returns one of:
//     (Snapshot, nil): If the stage was successful
//     (nil, error): If there was an error during the stage
// A stage must not modify its input; return a copy instead.
type StageFunc func(*Snapshot) (*Snapshot, error)

// Stage is a pipeline stage.
type Stage struct {
	Name string
	Fn   StageFunc
}

// Pipeline represents a sequence of stages applied to each Snapshot before it
// is diffed.
type Pipeline struct {
	stages []*Stage
}

// NewPipeline returns a new Pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{
		stages: []*Stage{},
	}
}

// AddStage adds a new Stage to the pipeline
func (p *Pipeline) AddStage(name string, fn StageFunc) {
	p.stages = append(p.stages, &Stage{
		Name: name,
		Fn:   fn,
	})
}

// Stages returns the names of the pipeline stages, in order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// Run passes the snapshot through every stage in order.
func (p *Pipeline) Run(snapshot *Snapshot) (*Snapshot, error) {
	if p == nil {
		return snapshot, nil
	}

	out := snapshot
	for _, stage := range p.stages {
		next, err := stage.Fn(out)
		if err != nil {
			return nil, fmt.Errorf("pipeline stage `%s`: %w", stage.Name, err)
		}
		if next == nil {
			return nil, fmt.Errorf("pipeline stage `%s` returned no snapshot", stage.Name)
		}
		out = next
	}

	return out, nil
}
