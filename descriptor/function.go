package descriptor

import (
	"fmt"

	"github.com/reoring/samgen/omap"
)

// Architecture is an instruction set a function can run on.
type Architecture string

const (
	ArchARM64 Architecture = "arm64"
	ArchX8664 Architecture = "x86_64"
)

// Function defaults.
const (
	DefaultHandler = "Provided"
	DefaultRuntime = "provided.al2"
)

// Function is an AWS::Serverless::Function resource.
type Function struct {
	Properties FunctionProperties
}

// FunctionProperties are rendered in field order. Zero-valued optional
// fields are omitted.
type FunctionProperties struct {
	Handler       string
	CodeURI       string
	Runtime       string
	Architectures []Architecture
	Environment   *omap.Map[string, string]
	Events        *omap.Map[string, EventSource]
	MemorySize    *int
	Timeout       *int
	Description   string
}

func (*Function) ResourceType() string { return "AWS::Serverless::Function" }
func (*Function) isResource()          {}

// FunctionOption customizes NewFunction.
type FunctionOption func(*FunctionProperties)

func WithHandler(h string) FunctionOption {
	return func(p *FunctionProperties) { p.Handler = h }
}

func WithRuntime(r string) FunctionOption {
	return func(p *FunctionProperties) { p.Runtime = r }
}

// WithArchitectures replaces the default architecture list.
func WithArchitectures(a ...Architecture) FunctionOption {
	return func(p *FunctionProperties) { p.Architectures = append([]Architecture(nil), a...) }
}

// WithEnvironment sets one environment variable. Variables render in the
// order they were first set.
func WithEnvironment(name, value string) FunctionOption {
	return func(p *FunctionProperties) {
		if p.Environment == nil {
			p.Environment = omap.New[string, string](2)
		}
		p.Environment.Set(name, value)
	}
}

// WithMemorySize sets the memory size in MB.
func WithMemorySize(mb int) FunctionOption {
	return func(p *FunctionProperties) { p.MemorySize = &mb }
}

// WithTimeout sets the timeout in seconds.
func WithTimeout(seconds int) FunctionOption {
	return func(p *FunctionProperties) { p.Timeout = &seconds }
}

func WithDescription(d string) FunctionOption {
	return func(p *FunctionProperties) { p.Description = d }
}

// NewFunction returns a function for the packaged code at codeURI.
func NewFunction(codeURI string, opts ...FunctionOption) *Function {
	f := &Function{Properties: FunctionProperties{
		Handler:       DefaultHandler,
		CodeURI:       codeURI,
		Runtime:       DefaultRuntime,
		Architectures: []Architecture{ArchARM64},
	}}
	for _, opt := range opts {
		opt(&f.Properties)
	}
	return f
}

// AddEvent attaches an event source under an alphanumeric, unused name.
func (f *Function) AddEvent(name string, ev EventSource) error {
	if ev == nil {
		return fmt.Errorf("descriptor: event %q is nil", name)
	}
	if err := checkLogicalID(name); err != nil {
		return err
	}
	if f.Properties.Events == nil {
		f.Properties.Events = omap.New[string, EventSource](2)
	}
	if f.Properties.Events.Has(name) {
		return fmt.Errorf("descriptor: duplicate event %q", name)
	}
	f.Properties.Events.Set(name, ev)
	return nil
}
