package config

import (
	"github.com/pkg/errors"

	"github.com/reoring/samgen/descriptor"
)

// TemplateConfig describes the resources of a template. Lists are used
// instead of maps so that declaration order, and the case of names, survive
// loading.
type TemplateConfig struct {
	Description string           `mapstructure:"description"`
	Functions   []FunctionConfig `mapstructure:"functions"`
	Queues      []QueueConfig    `mapstructure:"queues"`
	Tables      []TableConfig    `mapstructure:"tables"`
}

type FunctionConfig struct {
	Name          string        `mapstructure:"name"`
	CodeURI       string        `mapstructure:"code_uri"`
	Handler       string        `mapstructure:"handler"`
	Runtime       string        `mapstructure:"runtime"`
	Architectures []string      `mapstructure:"architectures"`
	MemorySize    int           `mapstructure:"memory_size"`
	Timeout       int           `mapstructure:"timeout"`
	Description   string        `mapstructure:"description"`
	Environment   []EnvVar      `mapstructure:"environment"`
	Events        []EventConfig `mapstructure:"events"`
}

type EnvVar struct {
	Name  string `mapstructure:"name"`
	Value string `mapstructure:"value"`
}

// Event types.
const (
	EventHTTPAPI  = "http"
	EventSQS      = "sqs"
	EventSchedule = "schedule"
)

// EventConfig is one event source. Queue names a queue from the queues list;
// QueueARN points at a queue outside the template.
type EventConfig struct {
	Name      string `mapstructure:"name"`
	Type      string `mapstructure:"type"`
	Method    string `mapstructure:"method"`
	Path      string `mapstructure:"path"`
	Queue     string `mapstructure:"queue"`
	QueueARN  string `mapstructure:"queue_arn"`
	BatchSize int    `mapstructure:"batch_size"`
	Enabled   *bool  `mapstructure:"enabled"`
	Schedule  string `mapstructure:"schedule"`
}

// QueueConfig declares a queue. Its logical id is "Queue" followed by the
// camel-cased name.
type QueueConfig struct {
	Name string `mapstructure:"name"`
}

type TableConfig struct {
	Name    string `mapstructure:"name"`
	Key     string `mapstructure:"key"`
	KeyType string `mapstructure:"key_type"`
}

// Build creates and validates the template.
func (c TemplateConfig) Build() (*descriptor.Template, error) {
	t := descriptor.NewTemplate(c.Description)

	for _, fc := range c.Functions {
		fn, err := fc.build()
		if err != nil {
			return nil, errors.Wrapf(err, "function %q", fc.Name)
		}
		if err := t.AddResource(fc.Name, fn); err != nil {
			return nil, err
		}
	}
	for _, q := range c.Queues {
		if err := t.AddResource(descriptor.LogicalID("Queue", q.Name), descriptor.NewQueue(q.Name)); err != nil {
			return nil, errors.Wrapf(err, "queue %q", q.Name)
		}
	}
	for _, tc := range c.Tables {
		tbl := descriptor.NewSimpleTable(tc.Name, tc.Key)
		if tc.KeyType != "" {
			tbl.Properties.PrimaryKey.Type = tc.KeyType
		}
		if err := t.AddResource(descriptor.LogicalID("Table", tc.Name), tbl); err != nil {
			return nil, errors.Wrapf(err, "table %q", tc.Name)
		}
	}

	if err := t.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid template")
	}
	return t, nil
}

func (fc FunctionConfig) build() (*descriptor.Function, error) {
	var opts []descriptor.FunctionOption
	if fc.Handler != "" {
		opts = append(opts, descriptor.WithHandler(fc.Handler))
	}
	if fc.Runtime != "" {
		opts = append(opts, descriptor.WithRuntime(fc.Runtime))
	}
	if len(fc.Architectures) > 0 {
		archs := make([]descriptor.Architecture, len(fc.Architectures))
		for i, a := range fc.Architectures {
			archs[i] = descriptor.Architecture(a)
		}
		opts = append(opts, descriptor.WithArchitectures(archs...))
	}
	if fc.MemorySize != 0 {
		opts = append(opts, descriptor.WithMemorySize(fc.MemorySize))
	}
	if fc.Timeout != 0 {
		opts = append(opts, descriptor.WithTimeout(fc.Timeout))
	}
	if fc.Description != "" {
		opts = append(opts, descriptor.WithDescription(fc.Description))
	}
	for _, e := range fc.Environment {
		opts = append(opts, descriptor.WithEnvironment(e.Name, e.Value))
	}

	fn := descriptor.NewFunction(fc.CodeURI, opts...)
	for _, ec := range fc.Events {
		ev, err := ec.build()
		if err != nil {
			return nil, errors.Wrapf(err, "event %q", ec.Name)
		}
		if err := fn.AddEvent(ec.Name, ev); err != nil {
			return nil, err
		}
	}
	return fn, nil
}

func (ec EventConfig) build() (descriptor.EventSource, error) {
	switch ec.Type {
	case EventHTTPAPI:
		return descriptor.NewHTTPAPI(ec.Method, ec.Path), nil
	case EventSQS:
		var ref descriptor.QueueRef
		switch {
		case ec.Queue != "" && ec.QueueARN != "":
			return nil, errors.New("queue and queue_arn are mutually exclusive")
		case ec.Queue != "":
			ref = descriptor.QueueResource(descriptor.LogicalID("Queue", ec.Queue))
		case ec.QueueARN != "":
			ref = descriptor.QueueARN(ec.QueueARN)
		default:
			return nil, errors.New("sqs event needs queue or queue_arn")
		}
		var opts []descriptor.SQSOption
		if ec.BatchSize != 0 {
			opts = append(opts, descriptor.WithBatchSize(ec.BatchSize))
		}
		if ec.Enabled != nil {
			opts = append(opts, descriptor.WithEnabled(*ec.Enabled))
		}
		return descriptor.NewSQS(ref, opts...), nil
	case EventSchedule:
		s := descriptor.NewSchedule(ec.Schedule)
		if ec.Enabled != nil {
			s.Enabled = *ec.Enabled
		}
		return s, nil
	}
	return nil, errors.Errorf("unknown event type %q (want http, sqs or schedule)", ec.Type)
}
