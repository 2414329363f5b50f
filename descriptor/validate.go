package descriptor

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ErrInvalid is matched by every defect reported by Validate.
var ErrInvalid = errors.New("descriptor: invalid template")

// Defect is one problem found by Validate. Path names the offending node,
// e.g. "Resources/TestLambda/Properties/Events/SQSEvent/Properties/Queue".
type Defect struct {
	Path   string
	Reason string
}

func (d *Defect) Error() string { return fmt.Sprintf("%s: %s", d.Path, d.Reason) }

func (d *Defect) Is(target error) bool { return target == ErrInvalid }

// Validate checks the whole template and reports every defect at once. It
// returns nil or a *multierror.Error whose members are *Defect.
func (t *Template) Validate() error {
	var result *multierror.Error
	add := func(path, format string, args ...any) {
		result = multierror.Append(result, &Defect{Path: path, Reason: fmt.Sprintf(format, args...)})
	}

	if t.FormatVersion == "" {
		add("AWSTemplateFormatVersion", "is empty")
	}
	for id, r := range t.Resources.All() {
		base := "Resources/" + id
		switch r := r.(type) {
		case *Function:
			t.validateFunction(base, r, add)
		case *Queue:
			if r.Properties.VisibilityTimeout != nil && *r.Properties.VisibilityTimeout < 0 {
				add(base+"/Properties/VisibilityTimeout", "must not be negative")
			}
		case *SimpleTable:
			switch r.Properties.PrimaryKey.Type {
			case KeyTypeString, KeyTypeNumber, KeyTypeBinary:
			default:
				add(base+"/Properties/PrimaryKey/Type", "unknown key type %q", r.Properties.PrimaryKey.Type)
			}
			if r.Properties.PrimaryKey.Name == "" {
				add(base+"/Properties/PrimaryKey/Name", "is empty")
			}
		}
	}
	return result.ErrorOrNil()
}

func (t *Template) validateFunction(base string, f *Function, add func(string, string, ...any)) {
	p := f.Properties
	props := base + "/Properties"
	if p.CodeURI == "" {
		add(props+"/CodeUri", "is empty")
	}
	if p.Handler == "" {
		add(props+"/Handler", "is empty")
	}
	if len(p.Architectures) == 0 {
		add(props+"/Architectures", "is empty")
	}
	for i, a := range p.Architectures {
		if a != ArchARM64 && a != ArchX8664 {
			add(fmt.Sprintf("%s/Architectures/%d", props, i), "unknown architecture %q", a)
		}
	}
	if p.MemorySize != nil && (*p.MemorySize < 128 || *p.MemorySize > 10240) {
		add(props+"/MemorySize", "%d outside 128..10240", *p.MemorySize)
	}
	if p.Timeout != nil && *p.Timeout <= 0 {
		add(props+"/Timeout", "must be positive")
	}
	for name, ev := range p.Events.All() {
		evPath := props + "/Events/" + name
		switch ev := ev.(type) {
		case *SQS:
			if ev.BatchSize < 1 || ev.BatchSize > MaxBatchSize {
				add(evPath+"/Properties/BatchSize", "%d outside 1..%d", ev.BatchSize, MaxBatchSize)
			}
			if ev.Queue.IsZero() {
				add(evPath+"/Properties/Queue", "is empty")
			} else if id, ok := ev.Queue.LogicalID(); ok {
				r, found := t.Resources.Get(id)
				if !found {
					add(evPath+"/Properties/Queue", "unknown resource %q", id)
				} else if _, isQueue := r.(*Queue); !isQueue {
					add(evPath+"/Properties/Queue", "resource %q is a %s, not a queue", id, r.ResourceType())
				}
			}
		case *Schedule:
			if ev.Expression == "" {
				add(evPath+"/Properties/Schedule", "is empty")
			}
		}
	}
}
