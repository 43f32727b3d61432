package apierror

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/text/language"
)

// ISO-8601 local date-time, no zone
const timestampLayout = "2006-01-02T15:04:05.000000"

// the request a failure is reported for
type Request struct {
	URI    string
	Method string
	Locale language.Tag
	ID     string // correlation id, only used for logging
}

type Status struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

type Message struct {
	Key         string `json:"key,omitempty"`
	Description string `json:"description"`
	Detail      string `json:"detail"`
}

// wire form of a Record
type Body struct {
	DataHora string  `json:"dataHora"`
	Origin   string  `json:"origin"`
	Method   string  `json:"method"`
	Status   Status  `json:"status"`
	Message  Message `json:"message"`
}

// Record is one reported problem. It is built once and has no setters.
type Record struct {
	key         string
	description string
	detail      string
	status      Status
	origin      string
	method      string
	timestamp   time.Time
}

// creates a record for req; the status description is the canonical reason phrase
func NewRecord(key, description, detail string, code int, req Request, at time.Time) Record {
	return Record{
		key:         key,
		description: description,
		detail:      detail,
		status:      Status{Code: code, Description: http.StatusText(code)},
		origin:      req.URI,
		method:      req.Method,
		timestamp:   at,
	}
}

func (r Record) Key() string          { return r.key }
func (r Record) Description() string  { return r.description }
func (r Record) Detail() string       { return r.detail }
func (r Record) Status() Status       { return r.status }
func (r Record) Origin() string       { return r.origin }
func (r Record) Method() string       { return r.method }
func (r Record) Timestamp() time.Time { return r.timestamp }

func (r Record) Body() Body {
	return Body{
		DataHora: r.timestamp.Local().Format(timestampLayout),
		Origin:   r.origin,
		Method:   r.method,
		Status:   r.status,
		Message: Message{
			Key:         r.key,
			Description: r.description,
			Detail:      r.detail,
		},
	}
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Body())
}
