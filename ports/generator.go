package ports

import "context"

// Solution is the result of one generative-model call.
type Solution struct {
	Text  string // full markdown response
	Model string // model that produced it
}

// SolutionGenerator turns question text into step-by-step solutions via a
// generative text model. Exactly one upstream call per invocation.
type SolutionGenerator interface {
	Generate(ctx context.Context, questions string) (Solution, error)
}
