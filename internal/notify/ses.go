// internal/notify/ses.go
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESService is the slice of the SES API we use, extracted for mocking.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// EmailNotifier mails the student a confirmation via SES.
type EmailNotifier struct {
	client SESService
	sender string
}

func NewEmailNotifier(client SESService, sender string) *EmailNotifier {
	return &EmailNotifier{client: client, sender: sender}
}

func (n *EmailNotifier) Notify(ctx context.Context, ev Event) error {
	subject, body := renderEmail(ev)

	_, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.sender),
		Destination: &types.Destination{
			ToAddresses: []string{ev.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}

func renderEmail(ev Event) (subject, body string) {
	switch ev.Kind {
	case KindSignup:
		subject = fmt.Sprintf("You're signed up for %s", ev.Activity)
		body = fmt.Sprintf("Hi,\n\nYou have been signed up for %s. See you there!\n\nMergington High School", ev.Activity)
	case KindUnregister:
		subject = fmt.Sprintf("You've been removed from %s", ev.Activity)
		body = fmt.Sprintf("Hi,\n\nYou have been removed from the roster for %s.\n\nMergington High School", ev.Activity)
	default:
		subject = "Activity roster update"
		body = fmt.Sprintf("Roster update for %s.", ev.Activity)
	}
	return subject, body
}
