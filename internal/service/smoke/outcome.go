package smoke

import (
	"errors"
	"fmt"

	"github.com/zhouzirui/avatar-smoke/internal/model/avatar"
)

var (
	ErrEmptyMessages     = errors.New("no messages in response")
	ErrUnexpectedStatus  = errors.New("unexpected http status")
	ErrMalformedResponse = errors.New("malformed response body")
)

// Kind tags how a single smoke call ended.
type Kind int

const (
	KindSuccess Kind = iota
	KindEmptyMessages
	KindHTTPError
	KindTransportError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindEmptyMessages:
		return "empty-messages"
	case KindHTTPError:
		return "http-error"
	case KindTransportError:
		return "transport-error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Fields are the values read from the first message of a successful /tts call.
type Fields struct {
	Text             string
	FacialExpression string
	Animation        string
}

// Outcome is the result of one request. Status is zero when no response arrived;
// Err is nil only for KindSuccess.
type Outcome struct {
	Kind      Kind
	Status    int
	Body      string
	Messages  []avatar.MessageUnit
	Fields    Fields
	RequestID string
	Err       error
}

// OK reports whether the call counts as passed.
func (o Outcome) OK() bool {
	return o.Kind == KindSuccess
}

func successOutcome(status int, messages []avatar.MessageUnit) Outcome {
	first := messages[0]
	return Outcome{
		Kind:     KindSuccess,
		Status:   status,
		Messages: messages,
		Fields: Fields{
			Text:             first.Text,
			FacialExpression: first.ExpressionOrUnknown(),
			Animation:        first.AnimationOrUnknown(),
		},
	}
}

func emptyOutcome(status int) Outcome {
	return Outcome{Kind: KindEmptyMessages, Status: status, Err: ErrEmptyMessages}
}

func httpErrorOutcome(status int, body string) Outcome {
	return Outcome{
		Kind:   KindHTTPError,
		Status: status,
		Body:   body,
		Err:    fmt.Errorf("%w: %d", ErrUnexpectedStatus, status),
	}
}

func transportOutcome(status int, err error) Outcome {
	return Outcome{Kind: KindTransportError, Status: status, Err: err}
}
