package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/service/sqs"

	"goTweetStatus/config"
	"goTweetStatus/goauth1atwitter"
	"goTweetStatus/logging"
	S "goTweetStatus/sqssrv"
	"goTweetStatus/statusupdate"
	"goTweetStatus/twitterhandler"
)

type queue interface {
	Send(msg *sqs.SendMessageInput, delmsg *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error)
}

type handler struct {
	poster      twitterhandler.Poster
	srv         queue
	inputQueue  string
	outputQueue string
}

// Handle Handles AWS SQS Messages in a Lambda. Each message body is
// {"status": "..."}; the status is posted, the result is sent to the output
// queue and the message is deleted from the input queue. The first failure
// stops the batch.
func (h *handler) Handle(ctx context.Context, event events.SQSEvent) (string, error) {
	var msgID string
	for _, sqsmsg := range event.Records {
		msgID = sqsmsg.MessageId
		update := &statusupdate.Update{
			MessageID:     sqsmsg.MessageId,
			MessageBody:   sqsmsg.Body,
			ReceiptHandle: sqsmsg.ReceiptHandle,
		}
		if err := update.Init(); err != nil {
			return msgID, err
		}

		posted, err := twitterhandler.SendStatus(ctx, h.poster, update)
		if err != nil {
			return msgID, fmt.Errorf("message %s: %w", msgID, err)
		}

		toQueueMsg, err := posted.SqsMsg(h.outputQueue)
		if err != nil {
			return msgID, err
		}

		if _, err := h.srv.Send(toQueueMsg, posted.SqsDelMsg(h.inputQueue)); err != nil {
			return msgID, fmt.Errorf("message %s: %w", msgID, err)
		}

		logging.Logger().Printf("Sent %s and deleted %s Successfully!", posted.Posted.IDStr, msgID)
	}
	return msgID, nil
}

// Required Enviroment variables:
// INPUT_QUEUE - SQS url the status updates are read from.
// OUTPUT_QUEUE - SQS url for posted statuses.
// TWITTER_CONFIG - path of the TOML configuration (default ./config/twitter_config.toml).
// TWITTER_* - credential and endpoint overrides, see config.Load.
// AWS_REGION - SQS region (default us-east-1).
func main() {
	log := logging.Logger()
	cfg, err := config.Load(os.Getenv("TWITTER_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}
	srv, err := (&S.StatusesToTwitter{}).GetSrv(os.Getenv("AWS_REGION"))
	if err != nil {
		log.Fatalf("Failed to create sqs client %s", err)
	}
	h := &handler{
		poster:      goauth1atwitter.New(cfg),
		srv:         srv,
		inputQueue:  os.Getenv("INPUT_QUEUE"),
		outputQueue: os.Getenv("OUTPUT_QUEUE"),
	}
	lambda.Start(h.Handle)
}
