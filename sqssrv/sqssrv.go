package sqssrv

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
)

// DefaultRegion is used when no region is given.
const DefaultRegion = "us-east-1"

// StatusesToTwitter forwards posted statuses to the output queue and removes
// them from the input queue.
type StatusesToTwitter struct {
	srv sqsiface.SQSAPI
}

// New wraps an existing SQS client.
func New(srv sqsiface.SQSAPI) *StatusesToTwitter {
	return &StatusesToTwitter{srv: srv}
}

// GetSrv return sqs
func (c *StatusesToTwitter) GetSrv(region string) (*StatusesToTwitter, error) {
	if region == "" {
		region = DefaultRegion
	}
	awsSession, err := session.NewSession(&aws.Config{
		Region: aws.String(region)},
	)
	if err != nil {
		return c, err
	}
	c.srv = sqs.New(awsSession)
	return c, nil
}

// Send send sqs message and remove from queue
func (c *StatusesToTwitter) Send(msg *sqs.SendMessageInput, delmsg *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error) {
	_, serr := c.srv.SendMessage(msg)
	if serr != nil {
		return nil, serr
	}
	deloutput, derr := c.srv.DeleteMessage(delmsg)
	if derr != nil {
		return nil, derr
	}
	return deloutput, nil
}
