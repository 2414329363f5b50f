package descriptor_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/samgen/descriptor"
)

const codeURI = "/pkg/lambda.zip"

func newLambdaTemplate(t *testing.T, opts ...descriptor.FunctionOption) (*descriptor.Template, *descriptor.Function) {
	t.Helper()
	tpl := descriptor.NewTemplate("A SAM template to deploy a Swift Lambda function")
	fn := descriptor.NewFunction(codeURI, opts...)
	require.NoError(t, tpl.AddResource("TestLambda", fn))
	return tpl, fn
}

func TestNewTemplate_Defaults(t *testing.T) {
	tpl := descriptor.NewTemplate("d")
	assert.Equal(t, "2010-09-09", tpl.FormatVersion)
	assert.Equal(t, "AWS::Serverless-2016-10-31", tpl.Transform)
	assert.Equal(t, 0, tpl.Resources.Len())
}

func TestNewFunction_Defaults(t *testing.T) {
	fn := descriptor.NewFunction(codeURI)
	assert.Equal(t, "Provided", fn.Properties.Handler)
	assert.Equal(t, "provided.al2", fn.Properties.Runtime)
	assert.Equal(t, []descriptor.Architecture{descriptor.ArchARM64}, fn.Properties.Architectures)
	assert.Nil(t, fn.Properties.Events)
	assert.Equal(t, "AWS::Serverless::Function", fn.ResourceType())
}

func TestAddResource_RejectsBadIDs(t *testing.T) {
	tpl := descriptor.NewTemplate("d")
	require.NoError(t, tpl.AddResource("Queue1", descriptor.NewQueue("q")))
	assert.Error(t, tpl.AddResource("Queue1", descriptor.NewQueue("other")))
	assert.Error(t, tpl.AddResource("my-queue", descriptor.NewQueue("q")))
	assert.Error(t, tpl.AddResource("", descriptor.NewQueue("q")))
	assert.Error(t, tpl.AddResource("Nil", nil))
	assert.Equal(t, []string{"Queue1"}, tpl.Resources.Keys())
}

func TestAddEvent_RejectsDuplicates(t *testing.T) {
	fn := descriptor.NewFunction(codeURI)
	require.NoError(t, fn.AddEvent("HttpApiEvent", descriptor.NewHTTPAPI("", "")))
	assert.Error(t, fn.AddEvent("HttpApiEvent", descriptor.NewHTTPAPI("GET", "/")))
	assert.Error(t, fn.AddEvent("bad name", descriptor.NewHTTPAPI("", "")))
}

func TestLogicalID(t *testing.T) {
	assert.Equal(t, "QueueTestQueue", descriptor.LogicalID("Queue", "test-queue"))
	assert.Equal(t, "TableUsersV2", descriptor.LogicalID("Table", "users_v2"))
}

func TestQueueRef(t *testing.T) {
	arn := descriptor.QueueARN("arn:aws:sqs:eu-central-1:012345678901:queue")
	s, ok := arn.ARN()
	assert.True(t, ok)
	assert.Equal(t, "arn:aws:sqs:eu-central-1:012345678901:queue", s)
	_, ok = arn.LogicalID()
	assert.False(t, ok)

	ref := descriptor.QueueResource("TestQueue")
	id, ok := ref.LogicalID()
	assert.True(t, ok)
	assert.Equal(t, "TestQueue", id)
	_, ok = ref.ARN()
	assert.False(t, ok)

	assert.True(t, descriptor.QueueRef{}.IsZero())
}

func TestValidate_OK(t *testing.T) {
	tpl, fn := newLambdaTemplate(t)
	queueID := descriptor.LogicalID("Queue", "test-queue")
	require.NoError(t, tpl.AddResource(queueID, descriptor.NewQueue("test-queue")))
	require.NoError(t, fn.AddEvent("SQSEvent", descriptor.NewSQS(descriptor.QueueResource(queueID))))
	assert.NoError(t, tpl.Validate())
}

func TestValidate_ReportsEveryDefect(t *testing.T) {
	tpl := descriptor.NewTemplate("d")
	fn := descriptor.NewFunction("", descriptor.WithArchitectures("sparc"), descriptor.WithMemorySize(64))
	require.NoError(t, tpl.AddResource("Fn", fn))
	require.NoError(t, tpl.AddResource("Table", descriptor.NewSimpleTable("users", "id")))
	require.NoError(t, fn.AddEvent("Missing", descriptor.NewSQS(descriptor.QueueResource("Nope"))))
	require.NoError(t, fn.AddEvent("NotAQueue", descriptor.NewSQS(descriptor.QueueResource("Table"))))
	require.NoError(t, fn.AddEvent("TooBig", descriptor.NewSQS(descriptor.QueueARN("arn:aws:sqs:::q"), descriptor.WithBatchSize(20000))))
	require.NoError(t, fn.AddEvent("Empty", descriptor.NewSchedule("")))

	err := tpl.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, descriptor.ErrInvalid))

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	var paths []string
	for _, e := range merr.Errors {
		var d *descriptor.Defect
		require.True(t, errors.As(e, &d))
		paths = append(paths, d.Path)
	}
	assert.Equal(t, []string{
		"Resources/Fn/Properties/CodeUri",
		"Resources/Fn/Properties/Architectures/0",
		"Resources/Fn/Properties/MemorySize",
		"Resources/Fn/Properties/Events/Missing/Properties/Queue",
		"Resources/Fn/Properties/Events/NotAQueue/Properties/Queue",
		"Resources/Fn/Properties/Events/TooBig/Properties/BatchSize",
		"Resources/Fn/Properties/Events/Empty/Properties/Schedule",
	}, paths)
	assert.True(t, strings.Contains(err.Error(), `unknown resource "Nope"`))
}
