// Package descriptor models a SAM deployment descriptor and renders it as a
// CloudFormation template.
//
// The model is built by the caller and is independent of any schema. Every
// map keeps insertion order, and that order is the order keys are rendered in.
package descriptor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/reoring/samgen/omap"
)

// Template defaults.
const (
	DefaultFormatVersion = "2010-09-09"
	DefaultTransform     = "AWS::Serverless-2016-10-31"
)

// Template is the root of a deployment descriptor.
type Template struct {
	FormatVersion string
	Transform     string
	Description   string
	Resources     *omap.Map[string, Resource]
}

// NewTemplate returns an empty template with the SAM headers set.
func NewTemplate(description string) *Template {
	return &Template{
		FormatVersion: DefaultFormatVersion,
		Transform:     DefaultTransform,
		Description:   description,
		Resources:     omap.New[string, Resource](4),
	}
}

// Resource is one entry of the Resources section.
type Resource interface {
	ResourceType() string
	isResource()
}

// AddResource registers r under a logical id. The id must be alphanumeric and
// unused.
func (t *Template) AddResource(id string, r Resource) error {
	if r == nil {
		return fmt.Errorf("descriptor: resource %q is nil", id)
	}
	if err := checkLogicalID(id); err != nil {
		return err
	}
	if t.Resources == nil {
		t.Resources = omap.New[string, Resource](4)
	}
	if t.Resources.Has(id) {
		return fmt.Errorf("descriptor: duplicate logical id %q", id)
	}
	t.Resources.Set(id, r)
	return nil
}

// Resource returns the resource registered under id.
func (t *Template) Resource(id string) (Resource, bool) {
	return t.Resources.Get(id)
}

func checkLogicalID(id string) error {
	if id == "" {
		return fmt.Errorf("descriptor: empty logical id")
	}
	for _, r := range id {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return fmt.Errorf("descriptor: logical id %q must be alphanumeric", id)
		}
	}
	return nil
}

// LogicalID derives a logical id from a prefix and a free-form name:
// LogicalID("Queue", "test-queue") is "QueueTestQueue".
func LogicalID(prefix, name string) string {
	var b strings.Builder
	b.WriteString(prefix)
	upper := true
	for _, r := range name {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
