package responder

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/lambda-feedback/echoapi/internal/callback"
	"github.com/lambda-feedback/echoapi/internal/request"
)

const (
	queryCallbackURL       = "callbackUrl"
	fieldTextInput         = "textInput"
	fieldResultStatus      = "resultStatus"
	fieldErrorMessage      = "errorMessage"
	fieldInitialStatusCode = "initialStatusCode"
)

// CallbackInputs is the raw request echoed by the async-callback endpoint.
type CallbackInputs struct {
	Headers     map[string]string `json:"headers"`
	Body        any               `json:"body"`
	CallbackURL *string           `json:"callbackUrl"`
}

// CallbackEnvelope acknowledges an async request. The same envelope is
// later delivered to the callback URL.
type CallbackEnvelope struct {
	ReceiptID string         `json:"receiptId"`
	Inputs    CallbackInputs `json:"inputs"`
	Outputs   map[string]any `json:"outputs"`
	Error     any            `json:"error,omitempty"`
}

// AsyncCallback acknowledges a request with a fresh receipt and, when a
// callback URL was supplied, hands the acknowledgement to the dispatcher
// once the response has been written.
type AsyncCallback struct {
	dispatcher callback.Dispatcher
	newReceipt func() string
}

// NewAsyncCallback creates the async-callback responder.
func NewAsyncCallback(dispatcher callback.Dispatcher) *AsyncCallback {
	return &AsyncCallback{
		dispatcher: dispatcher,
		newReceipt: uuid.NewString,
	}
}

// Respond implements Func.
func (a *AsyncCallback) Respond(_ context.Context, req *request.Request) Response {
	envelope := CallbackEnvelope{
		ReceiptID: a.newReceipt(),
		Inputs: CallbackInputs{
			Headers: req.Header,
			Body:    req.Body,
		},
		Outputs: map[string]any{},
	}

	// the query map is already decoded once
	baseURL, hasURL := req.Query[queryCallbackURL]
	hasURL = hasURL && baseURL != ""
	if hasURL {
		envelope.Inputs.CallbackURL = &baseURL
	}

	if v, ok := req.BodyField(fieldTextInput); ok {
		envelope.Outputs["textOutput"] = v
	}

	target := baseURL
	envelope.Outputs["actualResultStatus"] = nil
	if v, ok := req.BodyField(fieldResultStatus); ok && !isBlank(v) {
		envelope.Outputs["actualResultStatus"] = v
		target += "&status=" + stringValue(v, true)
	}

	envelope.Outputs["callbackUrl"] = nil
	if hasURL {
		envelope.Outputs["callbackUrl"] = target
	}

	if v, ok := req.BodyField(fieldErrorMessage); ok && !isBlank(v) {
		envelope.Error = v
	}

	status := http.StatusAccepted
	if v, ok := req.BodyField(fieldInitialStatusCode); ok && v != nil {
		code, err := ParseStatus(v)
		if err != nil {
			return invalidStatus(err)
		}
		status = code
	}

	res := JSON(status, envelope)

	if hasURL {
		res.Then = func() {
			a.dispatcher.Schedule(callback.Job{
				ReceiptID: envelope.ReceiptID,
				TargetURL: target,
				Payload:   envelope,
			})
		}
	}

	return res
}

func isBlank(v any) bool {
	return v == nil || v == ""
}
