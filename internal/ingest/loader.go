package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/corvolab/speech-analyzer/pkg/models"
)

const (
	defaultTimeout = 30 * time.Second
)

// rawRecord is the wire shape of one ingested record.
type rawRecord struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
	Date    string `json:"date"`
}

// Client loads speech records from a remote JSON endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client (used in tests)
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a loader for the given endpoint.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: baseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Load fetches the full record set and normalizes it: dates parsed as
// ISO dates, week derived from the date. Records with an unparseable
// date fail the whole load; a batch pipeline should halt on bad input
// rather than silently drop rows.
func (c *Client) Load(ctx context.Context) ([]models.SpeechRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "ingest: build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "ingest: fetch records")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("ingest: unexpected status %d from %s", resp.StatusCode, c.baseURL)
	}

	var raw []rawRecord
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "ingest: decode records")
	}

	records := make([]models.SpeechRecord, 0, len(raw))
	for i, r := range raw {
		spokenAt, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			return nil, errors.Wrapf(err, "ingest: record %d: bad date %q", i, r.Date)
		}
		records = append(records, models.SpeechRecord{
			Speaker:  r.Speaker,
			Text:     r.Text,
			SpokenAt: spokenAt,
			Week:     DeriveWeek(spokenAt),
		})
	}

	logrus.WithFields(logrus.Fields{
		"records": len(records),
		"source":  c.baseURL,
	}).Info("loaded speech records")

	return records, nil
}

// DeriveWeek returns the ISO week number (1-53) for a date.
func DeriveWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}
