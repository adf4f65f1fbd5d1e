// internal/notify/notify_test.go
package notify

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock AWS services
// ==========================

type mockSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{}, nil
}

type mockSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{}, nil
}

// ==========================
// Tests
// ==========================

func TestNewEvent(t *testing.T) {
	ev := NewEvent(KindSignup, "Chess Club", "new@x.edu")

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, KindSignup, ev.Kind)
	assert.Equal(t, "Chess Club", ev.Activity)
	assert.Equal(t, "new@x.edu", ev.Email)
	assert.False(t, ev.At.IsZero())
}

func TestEmailNotifier_SignupConfirmation(t *testing.T) {
	mock := &mockSES{}
	n := NewEmailNotifier(mock, "activities@mergington.edu")

	err := n.Notify(context.Background(), NewEvent(KindSignup, "Chess Club", "new@x.edu"))
	require.NoError(t, err)

	require.Len(t, mock.inputs, 1)
	input := mock.inputs[0]
	assert.Equal(t, "activities@mergington.edu", *input.Source)
	assert.Equal(t, []string{"new@x.edu"}, input.Destination.ToAddresses)
	assert.Contains(t, *input.Message.Subject.Data, "Chess Club")
	assert.Contains(t, *input.Message.Body.Text.Data, "signed up")
}

func TestEmailNotifier_UnregisterConfirmation(t *testing.T) {
	mock := &mockSES{}
	n := NewEmailNotifier(mock, "activities@mergington.edu")

	err := n.Notify(context.Background(), NewEvent(KindUnregister, "Art Studio", "amelia@mergington.edu"))
	require.NoError(t, err)

	require.Len(t, mock.inputs, 1)
	assert.Contains(t, *mock.inputs[0].Message.Subject.Data, "Art Studio")
	assert.Contains(t, *mock.inputs[0].Message.Body.Text.Data, "removed")
}

func TestEmailNotifier_SendFailure(t *testing.T) {
	mock := &mockSES{err: fmt.Errorf("throttled")}
	n := NewEmailNotifier(mock, "activities@mergington.edu")

	err := n.Notify(context.Background(), NewEvent(KindSignup, "Chess Club", "new@x.edu"))
	assert.Error(t, err)
}

func TestTopicNotifier_PublishesEventJSON(t *testing.T) {
	mock := &mockSNS{}
	n := NewTopicNotifier(mock, "arn:aws:sns:us-east-1:123456789012:activities")

	ev := NewEvent(KindSignup, "Chess Club", "new@x.edu")
	err := n.Notify(context.Background(), ev)
	require.NoError(t, err)

	require.Len(t, mock.inputs, 1)
	input := mock.inputs[0]
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:activities", *input.TopicArn)
	assert.Equal(t, "activity-signup", *input.Subject)
	assert.Contains(t, *input.Message, ev.ID)
	assert.Contains(t, *input.Message, "Chess Club")
}

func TestTopicNotifier_PublishFailure(t *testing.T) {
	mock := &mockSNS{err: fmt.Errorf("no such topic")}
	n := NewTopicNotifier(mock, "arn:bad")

	err := n.Notify(context.Background(), NewEvent(KindUnregister, "Chess Club", "x@y.edu"))
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Notify(context.Background(), Event{}))
}
