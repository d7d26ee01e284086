package statusupdate

import (
	json "encoding/json"
	"fmt"

	"github.com/fatih/structs"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"

	"goTweetStatus/goauth1atwitter"
)

// Update is one queued status update and, once posted, its result.
type Update struct {
	// Status text to post
	Status string `json:"status"`
	// Posted is filled in after the API accepted the update
	Posted *goauth1atwitter.StatusResult `json:"posted,omitempty"`
	// SQS Attributes
	MessageID     string `json:"-"`
	MessageBody   string `json:"-"`
	ReceiptHandle string `json:"-"`
}

// Init assign Update fields from the Json message body
func (x *Update) Init() error {
	if err := json.Unmarshal([]byte(x.MessageBody), x); err != nil {
		return fmt.Errorf("message %s: %w", x.MessageID, err)
	}
	if x.Status == "" {
		return fmt.Errorf("message %s: missing status", x.MessageID)
	}
	return nil
}

// ToJdoc return json string
func (x *Update) ToJdoc() (string, error) {
	jdoc, err := json.Marshal(x)
	if err != nil {
		return "", err
	}
	return string(jdoc), nil
}

// ToMap returns the posted status record as a map keyed by field name.
func (x *Update) ToMap() map[string]interface{} {
	if x.Posted == nil {
		return map[string]interface{}{}
	}
	return structs.Map(x.Posted)
}

// SqsMsgAttr return posted status attributes
func (x *Update) SqsMsgAttr() map[string]*sqs.MessageAttributeValue {
	attrs := map[string]*sqs.MessageAttributeValue{}
	for name, value := range x.ToMap() {
		s := fmt.Sprint(value)
		if s == "" {
			continue
		}
		attrs[name] = &sqs.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(s),
		}
	}
	return attrs
}

// SqsMsg return message to put into the output queue.
func (x *Update) SqsMsg(outputQueue string) (*sqs.SendMessageInput, error) {
	if x.Posted == nil {
		return nil, fmt.Errorf("message %s: status not posted", x.MessageID)
	}
	jdoc, err := x.ToJdoc()
	if err != nil {
		return nil, err
	}
	return &sqs.SendMessageInput{
		QueueUrl:          aws.String(outputQueue),
		MessageAttributes: x.SqsMsgAttr(),
		MessageBody:       aws.String(jdoc),
	}, nil
}

// SqsDelMsg remove msg for processed message
func (x *Update) SqsDelMsg(inputQueue string) *sqs.DeleteMessageInput {
	return &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(inputQueue),
		ReceiptHandle: aws.String(x.ReceiptHandle),
	}
}
