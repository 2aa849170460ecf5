package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestProcessOutcomes(t *testing.T) {
	raw, err := json.Marshal(EmailJob{To: "a@x.com", Subject: "hi", Text: "body"})
	require.NoError(t, err)
	noRecipient, err := json.Marshal(EmailJob{Subject: "hi", Text: "body"})
	require.NoError(t, err)

	cases := []struct {
		name    string
		body    []byte
		sendErr error
		want    Outcome
	}{
		{"delivered", raw, nil, Ack},
		{"transient failure", raw, errors.New("mailgun 503"), Retry},
		{"garbage payload", []byte("{"), nil, Drop},
		{"missing recipient", noRecipient, nil, Drop},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &recordingSender{err: tc.sendErr}
			assert.Equal(t, tc.want, Process(context.Background(), s, tc.body, discard()))
		})
	}
}

func TestLogSenderNeverFails(t *testing.T) {
	assert.Equal(t, Ack, Process(context.Background(), LogSender{Logger: discard()}, []byte(`{"to":"a@x.com","subject":"s","text":"t"}`), discard()))
}
