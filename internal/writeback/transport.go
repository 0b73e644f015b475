package writeback

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"labonita/compras/internal/engineerror"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Encoding selects how a payload body is rendered.
type Encoding int

const (
	EncodeJSON Encoding = iota
	EncodeForm
)

// Transport posts write payloads to the record source endpoint.
type Transport struct {
	endpoint string
	encoding Encoding
	client   *http.Client
}

// NewTransport creates a write transport for the given endpoint.
// A zero timeout selects 30 seconds.
func NewTransport(endpoint string, encoding Encoding, timeout time.Duration) *Transport {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Transport{
		endpoint: endpoint,
		encoding: encoding,
		client:   &http.Client{Timeout: timeout},
	}
}

// Send posts one payload. A non-2xx response or transport failure surfaces
// as a WriteError; nothing is retried or applied locally.
func (t *Transport) Send(ctx context.Context, p Payload) error {
	log.WithFields(logrus.Fields{
		"action": string(p.Action),
		"id":     p.ID,
	}).Info("Sending write payload")

	var body *bytes.Reader
	var contentType string

	switch t.encoding {
	case EncodeForm:
		body = bytes.NewReader([]byte(p.FormBody().Encode()))
		contentType = "application/x-www-form-urlencoded"
	default:
		data, err := p.JSONBody()
		if err != nil {
			return &engineerror.WriteError{Action: string(p.Action), ID: p.ID, Err: err}
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, body)
	if err != nil {
		return &engineerror.WriteError{Action: string(p.Action), ID: p.ID, Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := t.client.Do(req)
	if err != nil {
		return &engineerror.WriteError{Action: string(p.Action), ID: p.ID, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &engineerror.WriteError{
			Action:     string(p.Action),
			ID:         p.ID,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("endpoint rejected write"),
		}
	}

	log.WithFields(logrus.Fields{
		"action": string(p.Action),
		"id":     p.ID,
	}).Info("Write confirmed")
	return nil
}

// String renders the encoding for logs and flags.
func (e Encoding) String() string {
	if e == EncodeForm {
		return "form"
	}
	return "json"
}

// ParseEncoding maps a flag value onto an Encoding, defaulting to JSON.
func ParseEncoding(s string) Encoding {
	if strings.EqualFold(strings.TrimSpace(s), "form") {
		return EncodeForm
	}
	return EncodeJSON
}
