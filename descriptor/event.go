package descriptor

// EventSource triggers a function.
type EventSource interface {
	EventType() string
	isEventSource()
}

// HTTPAPI is an HttpApi event. Empty Method and Path catch every route.
type HTTPAPI struct {
	Method string
	Path   string
}

func NewHTTPAPI(method, path string) *HTTPAPI {
	return &HTTPAPI{Method: method, Path: path}
}

func (*HTTPAPI) EventType() string { return "HttpApi" }
func (*HTTPAPI) isEventSource()    {}

// SQS defaults.
const (
	DefaultBatchSize = 10
	MaxBatchSize     = 10000
)

// SQS polls a queue.
type SQS struct {
	Queue     QueueRef
	BatchSize int
	Enabled   bool
}

// SQSOption customizes NewSQS.
type SQSOption func(*SQS)

func WithBatchSize(n int) SQSOption {
	return func(s *SQS) { s.BatchSize = n }
}

func WithEnabled(enabled bool) SQSOption {
	return func(s *SQS) { s.Enabled = enabled }
}

// NewSQS returns an enabled SQS event with a batch size of 10.
func NewSQS(queue QueueRef, opts ...SQSOption) *SQS {
	s := &SQS{Queue: queue, BatchSize: DefaultBatchSize, Enabled: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (*SQS) EventType() string { return "SQS" }
func (*SQS) isEventSource()    {}

// QueueRef names the queue of an SQS event: either a literal ARN or the
// logical id of a queue declared in the same template.
type QueueRef struct {
	arn       string
	logicalID string
}

// QueueARN refers to an existing queue by ARN.
func QueueARN(arn string) QueueRef { return QueueRef{arn: arn} }

// QueueResource refers to a queue resource of the same template. It renders
// as Fn::GetAtt [id, Arn].
func QueueResource(logicalID string) QueueRef { return QueueRef{logicalID: logicalID} }

// ARN returns the literal ARN, if the reference is one.
func (q QueueRef) ARN() (string, bool) { return q.arn, q.logicalID == "" && q.arn != "" }

// LogicalID returns the referenced resource, if the reference is one.
func (q QueueRef) LogicalID() (string, bool) { return q.logicalID, q.logicalID != "" }

// IsZero reports whether the reference names nothing.
func (q QueueRef) IsZero() bool { return q.arn == "" && q.logicalID == "" }

// Schedule runs a function on a rate or cron expression.
type Schedule struct {
	Expression string
	Enabled    bool
}

// NewSchedule returns an enabled schedule, e.g. NewSchedule("rate(5 minutes)").
func NewSchedule(expr string) *Schedule {
	return &Schedule{Expression: expr, Enabled: true}
}

func (*Schedule) EventType() string { return "Schedule" }
func (*Schedule) isEventSource()    {}
