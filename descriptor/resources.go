package descriptor

// Queue is an AWS::SQS::Queue resource.
type Queue struct {
	Properties QueueProperties
}

type QueueProperties struct {
	QueueName         string
	VisibilityTimeout *int
}

// NewQueue declares a queue named name.
func NewQueue(name string) *Queue {
	return &Queue{Properties: QueueProperties{QueueName: name}}
}

func (*Queue) ResourceType() string { return "AWS::SQS::Queue" }
func (*Queue) isResource()          {}

// SimpleTable is an AWS::Serverless::SimpleTable resource: a DynamoDB table
// with a single-attribute primary key.
type SimpleTable struct {
	Properties SimpleTableProperties
}

type SimpleTableProperties struct {
	TableName  string
	PrimaryKey PrimaryKey
}

// PrimaryKey types accepted by SimpleTable.
const (
	KeyTypeString = "String"
	KeyTypeNumber = "Number"
	KeyTypeBinary = "Binary"
)

type PrimaryKey struct {
	Name string
	Type string
}

// NewSimpleTable declares a table keyed by a string attribute named keyName.
func NewSimpleTable(tableName, keyName string) *SimpleTable {
	return &SimpleTable{Properties: SimpleTableProperties{
		TableName:  tableName,
		PrimaryKey: PrimaryKey{Name: keyName, Type: KeyTypeString},
	}}
}

func (*SimpleTable) ResourceType() string { return "AWS::Serverless::SimpleTable" }
func (*SimpleTable) isResource()          {}
