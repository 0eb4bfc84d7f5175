package actions

// Output supplies the console primitives the dispatcher emits through.
type Output interface {
	WriteLine(text string, values ...any)
	WriteWarning(text string, values ...any)
	RaiseFatal(text string) error
}

type silentOutput struct{}

func (silentOutput) WriteLine(string, ...any) {}

func (silentOutput) WriteWarning(string, ...any) {}

func (silentOutput) RaiseFatal(text string) error {
	return NewFatalError(text)
}
