package twitterhandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"goTweetStatus/goauth1atwitter"
	"goTweetStatus/logging"
	"goTweetStatus/statusupdate"
)

const (
	couldNotAuthenticate = 32
	rateLimitExceeded    = 88
	statusTooLong        = 186
	duplicateStatus      = 187
)

type badTwitterRequest struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type twitterError struct {
	Errors []badTwitterRequest `json:"errors"`
}

// Poster posts a status update.
type Poster interface {
	UpdateStatus(ctx context.Context, text string) (*goauth1atwitter.StatusResult, error)
}

// StatusError is a rejected status update with the API's error code.
type StatusError struct {
	Code    int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("twitter error: %d, %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// Recoverable reports whether err is worth sending again later. Network
// failures, rate limiting and 5xx replies are, even when the reply carries
// an API error code. Bad credentials, duplicate or oversize statuses and
// malformed responses are not.
func Recoverable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) && se.Code == rateLimitExceeded {
		return true
	}
	var te *goauth1atwitter.TransportError
	return errors.As(err, &te) && te.Temporary()
}

// SendStatus posts the queued update and records the result on it. It does
// not retry.
func SendStatus(ctx context.Context, p Poster, update *statusupdate.Update) (*statusupdate.Update, error) {
	res, err := p.UpdateStatus(ctx, update.Status)
	if err != nil {
		err = classify(err)
		logging.Logger().Printf("status update %s failed (recoverable=%t): %v", update.MessageID, Recoverable(err), err)
		return nil, err
	}
	update.Posted = res
	logging.Logger().Printf("posted status %s for message %s", res.IDStr, update.MessageID)
	return update, nil
}

// classify turns an API error body into a *StatusError when it carries one.
func classify(err error) error {
	var te *goauth1atwitter.TransportError
	if !errors.As(err, &te) || te.Body == "" {
		return err
	}
	ne := &twitterError{}
	if jerr := json.Unmarshal([]byte(te.Body), ne); jerr != nil || len(ne.Errors) == 0 {
		return err
	}
	first := ne.Errors[0]
	switch first.Code {
	case couldNotAuthenticate:
		logging.Logger().Printf("Got %d from Twitter (%s), check the signing credentials", first.Code, first.Message)
	case statusTooLong, duplicateStatus:
		logging.Logger().Printf("Got %d from Twitter (%s), dropping status", first.Code, first.Message)
	}
	return &StatusError{Code: first.Code, Message: first.Message, Err: err}
}
