package notifier

import "context"

// Delivery outcome of a single channel send. Senders are total: they always
// return a Result, never an error, so one failing channel cannot abort an
// approval fan-out.
const (
	StatusSent    = "sent"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

type Result struct {
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
	Response string `json:"response,omitempty"`
}

func Sent() Result {
	return Result{Status: StatusSent}
}

func SentWithResponse(response string) Result {
	return Result{Status: StatusSent, Response: response}
}

func Skipped(reason string) Result {
	return Result{Status: StatusSkipped, Reason: reason}
}

func Failed(reason string) Result {
	return Result{Status: StatusFailed, Reason: reason}
}

type EmailMessage struct {
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	Recipients []string `json:"recipients"`
}

type SMSMessage struct {
	Text    string   `json:"text"`
	Numbers []string `json:"numbers"`
}

type PushMessage struct {
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Tokens []string          `json:"tokens,omitempty"`
	Data   map[string]string `json:"data,omitempty"`
}

type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage) Result
}

type SMSSender interface {
	SendSMS(ctx context.Context, msg SMSMessage) Result
}

type PushSender interface {
	SendPush(ctx context.Context, msg PushMessage) Result
}
