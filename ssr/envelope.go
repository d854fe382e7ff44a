package ssr

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/reactssr/internal"
)

// ErrorCodeServerSide is the error code of a failed outcome whose error
// carries no code of its own.
const ErrorCodeServerSide = "server_side_error"

// Classifier converts an error into user-facing error data.
type Classifier func(err error) internal.ErrorResult

// Outcome is the uniform result of a data fetch.
// A successful outcome has Error false, no Errors, no ErrorCode and status 200.
// A failed outcome has Error true, nil Data, at least one error item, a
// non-empty ErrorCode and the classified status.
type Outcome struct {
	Data      any
	ErrorCode string
	Errors    []internal.ErrorItem
	Status    int
	Error     bool
}

type outcomeJSON struct {
	Data      any                  `json:"data"`
	ErrorCode *string              `json:"errorCode"`
	Errors    []internal.ErrorItem `json:"errors"`
	Status    int                  `json:"status"`
	Error     bool                 `json:"error"`
}

// MarshalJSON encodes the outcome with "errors": [] and "errorCode": null on success.
func (o Outcome) MarshalJSON() ([]byte, error) {
	w := outcomeJSON{
		Data:   o.Data,
		Errors: o.Errors,
		Status: o.Status,
		Error:  o.Error,
	}
	if w.Errors == nil {
		w.Errors = []internal.ErrorItem{}
	}
	if o.ErrorCode != "" {
		w.ErrorCode = &o.ErrorCode
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes an outcome produced by MarshalJSON.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var w outcomeJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*o = Outcome{
		Data:   w.Data,
		Errors: w.Errors,
		Status: w.Status,
		Error:  w.Error,
	}
	if w.ErrorCode != nil {
		o.ErrorCode = *w.ErrorCode
	}
	return nil
}

// Succeed wraps data in a successful outcome.
func Succeed(data any) Outcome {
	return Outcome{
		Data:   data,
		Errors: []internal.ErrorItem{},
		Status: http.StatusOK,
	}
}

// Fail converts err into a failed outcome using classify.
// A nil classify uses internal.ClassifyError. Missing code, status or
// messages from the classifier are filled with defaults so the failed
// outcome is always complete.
func Fail(err error, classify Classifier) Outcome {
	if classify == nil {
		classify = internal.ClassifyError
	}
	res := classify(err)

	status := res.Status
	if status < 100 || status > 599 {
		status = http.StatusInternalServerError
	}

	code := res.ErrorCode
	if code == "" {
		code = ErrorCodeServerSide
	}

	items := make([]internal.ErrorItem, 0, len(res.Errors))
	for _, item := range res.Errors {
		if item.Message != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		text := http.StatusText(status)
		if text == "" {
			text = http.StatusText(http.StatusInternalServerError)
		}
		items = append(items, internal.ErrorItem{Message: text})
	}

	return Outcome{
		Errors:    items,
		ErrorCode: code,
		Status:    status,
		Error:     true,
	}
}

// NewOutcome picks the variant: Fail when err is non-nil, Succeed otherwise.
func NewOutcome(data any, err error, classify Classifier) Outcome {
	if err != nil {
		return Fail(err, classify)
	}
	return Succeed(data)
}

// AppData is the combined page and global data of one request.
// GlobalData is nil when no global controller is configured or the
// request opted out of the initial preload.
type AppData struct {
	GlobalData *Outcome `json:"globalData"`
	PageData   Outcome  `json:"pageData"`
}

// Status returns the HTTP status of the response: the page status.
// Global data failures never change it.
func (d AppData) Status() int {
	if d.PageData.Status == 0 {
		return http.StatusOK
	}
	return d.PageData.Status
}

// Envelope is the summary staged on the response for middleware that
// inspect it after the handler returns.
type Envelope struct {
	GlobalData *Outcome `json:"globalData,omitempty"`
	ErrorCode  *string  `json:"error_code"`
	PageData   Outcome  `json:"pageData"`
	Error      bool     `json:"error"`
}

// Combine builds the envelope for d. The request is erroneous when either
// outcome failed; the global error code wins over the page error code.
func Combine(d AppData) Envelope {
	env := Envelope{
		PageData: d.PageData,
		Error:    d.PageData.Error,
	}
	if d.GlobalData != nil {
		global := *d.GlobalData
		env.GlobalData = &global
		env.Error = env.Error || global.Error
	}

	var code string
	switch {
	case env.GlobalData != nil && env.GlobalData.Error:
		code = env.GlobalData.ErrorCode
	case d.PageData.Error:
		code = d.PageData.ErrorCode
	default:
		return env
	}
	env.ErrorCode = &code
	return env
}

// Code returns the combined error code, or an empty string.
func (e Envelope) Code() string {
	if e.ErrorCode == nil {
		return ""
	}
	return *e.ErrorCode
}

// LogValue implements slog.LogValuer. Data payloads are never logged.
func (e Envelope) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Bool("error", e.Error),
		slog.Int("page_status", e.PageData.Status),
	}
	if code := e.Code(); code != "" {
		attrs = append(attrs, slog.String("error_code", code))
	}
	if e.GlobalData != nil {
		attrs = append(attrs, slog.Int("global_status", e.GlobalData.Status))
	}
	return slog.GroupValue(attrs...)
}
