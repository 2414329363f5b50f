package descriptor

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalYAML renders t as a SAM template with a two-space indent. Keys
// appear in model order; strings that YAML would read back as another type
// are quoted.
func MarshalYAML(t *Template) []byte {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(prepareTemplate(t)); err != nil {
		// Should never happen, since prepareTemplate only builds plain
		// mappings, sequences and scalars.
		panic(fmt.Errorf("prepareTemplate produced an unencodable node: %s", err))
	}
	if err := enc.Close(); err != nil {
		panic(fmt.Errorf("closing YAML encoder: %s", err))
	}
	return buf.Bytes()
}

func prepareTemplate(t *Template) *yaml.Node {
	root := mapping()
	version := str(t.FormatVersion)
	version.Style = yaml.SingleQuotedStyle
	set(root, "AWSTemplateFormatVersion", version)
	set(root, "Transform", str(t.Transform))
	set(root, "Description", str(t.Description))
	resources := mapping()
	for id, r := range t.Resources.All() {
		set(resources, id, prepareResource(r))
	}
	set(root, "Resources", resources)
	return root
}

func prepareResource(r Resource) *yaml.Node {
	n := mapping()
	set(n, "Type", str(r.ResourceType()))
	var props *yaml.Node
	switch r := r.(type) {
	case *Function:
		props = prepareFunction(r.Properties)
	case *Queue:
		props = mapping()
		set(props, "QueueName", str(r.Properties.QueueName))
		if r.Properties.VisibilityTimeout != nil {
			set(props, "VisibilityTimeout", integer(*r.Properties.VisibilityTimeout))
		}
	case *SimpleTable:
		props = mapping()
		if r.Properties.TableName != "" {
			set(props, "TableName", str(r.Properties.TableName))
		}
		key := mapping()
		set(key, "Name", str(r.Properties.PrimaryKey.Name))
		set(key, "Type", str(r.Properties.PrimaryKey.Type))
		set(props, "PrimaryKey", key)
	}
	if props != nil {
		set(n, "Properties", props)
	}
	return n
}

func prepareFunction(p FunctionProperties) *yaml.Node {
	n := mapping()
	set(n, "Handler", str(p.Handler))
	set(n, "CodeUri", str(p.CodeURI))
	set(n, "Runtime", str(p.Runtime))
	archs := sequence()
	for _, a := range p.Architectures {
		archs.Content = append(archs.Content, str(string(a)))
	}
	set(n, "Architectures", archs)
	if p.Environment.Len() > 0 {
		vars := mapping()
		for k, v := range p.Environment.All() {
			set(vars, k, str(v))
		}
		env := mapping()
		set(env, "Variables", vars)
		set(n, "Environment", env)
	}
	if p.Events.Len() > 0 {
		events := mapping()
		for name, ev := range p.Events.All() {
			set(events, name, prepareEvent(ev))
		}
		set(n, "Events", events)
	}
	if p.MemorySize != nil {
		set(n, "MemorySize", integer(*p.MemorySize))
	}
	if p.Timeout != nil {
		set(n, "Timeout", integer(*p.Timeout))
	}
	if p.Description != "" {
		set(n, "Description", str(p.Description))
	}
	return n
}

func prepareEvent(ev EventSource) *yaml.Node {
	n := mapping()
	set(n, "Type", str(ev.EventType()))
	var props *yaml.Node
	switch ev := ev.(type) {
	case *HTTPAPI:
		if ev.Method != "" || ev.Path != "" {
			props = mapping()
			if ev.Method != "" {
				set(props, "Method", str(ev.Method))
			}
			if ev.Path != "" {
				set(props, "Path", str(ev.Path))
			}
		}
	case *SQS:
		props = mapping()
		set(props, "Queue", prepareQueueRef(ev.Queue))
		set(props, "BatchSize", integer(ev.BatchSize))
		set(props, "Enabled", boolean(ev.Enabled))
	case *Schedule:
		props = mapping()
		set(props, "Schedule", str(ev.Expression))
		set(props, "Enabled", boolean(ev.Enabled))
	}
	if props != nil {
		set(n, "Properties", props)
	}
	return n
}

func prepareQueueRef(q QueueRef) *yaml.Node {
	if id, ok := q.LogicalID(); ok {
		getAtt := mapping()
		set(getAtt, "Fn::GetAtt", sequence(str(id), str("Arn")))
		return getAtt
	}
	return str(q.arn)
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func sequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}

// str is tagged so the encoder quotes values such as "true" or "10".
func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func integer(i int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(i)}
}

func boolean(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}

func set(m *yaml.Node, key string, v *yaml.Node) {
	m.Content = append(m.Content, str(key), v)
}
