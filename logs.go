package sendwithus

import (
	"context"
	"net/http"
)

// LogQuery filters and pages the logs returned by ListLogs.
// Timestamps are Unix seconds; zero values are not sent.
type LogQuery struct {
	Count      int   `url:"count,omitempty"`
	Offset     int   `url:"offset,omitempty"`
	CreatedGT  int64 `url:"created_gt,omitempty"`
	CreatedGTE int64 `url:"created_gte,omitempty"`
	CreatedLT  int64 `url:"created_lt,omitempty"`
	CreatedLTE int64 `url:"created_lte,omitempty"`
}

// ListLogs returns delivery logs, newest first. q may be nil.
func (c *Client) ListLogs(ctx context.Context, q *LogQuery) ([]Log, error) {
	rd := newRequest("ListLogs", http.MethodGet, "logs")
	if q != nil {
		var err error
		if rd, err = rd.withQuery(q); err != nil {
			return nil, err
		}
	}

	var logs []Log
	if err := c.do(ctx, rd, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// GetLog returns a single log entry.
func (c *Client) GetLog(ctx context.Context, logID string) (*Log, error) {
	if err := requireArg("log_id", logID); err != nil {
		return nil, err
	}

	var log Log
	if err := c.do(ctx, newRequest("GetLog", http.MethodGet, resourcePath("logs", logID)), &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// GetLogEvents returns the delivery events of a log entry.
func (c *Client) GetLogEvents(ctx context.Context, logID string) ([]LogEvent, error) {
	if err := requireArg("log_id", logID); err != nil {
		return nil, err
	}

	var events []LogEvent
	rd := newRequest("GetLogEvents", http.MethodGet, resourcePath("logs", logID, "events"))
	if err := c.do(ctx, rd, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ResendLog sends the email of a log entry again.
func (c *Client) ResendLog(ctx context.Context, logID string) (*LogResendResponse, error) {
	if err := requireArg("log_id", logID); err != nil {
		return nil, err
	}

	body := struct {
		LogID string `json:"log_id"`
	}{LogID: logID}

	var resp LogResendResponse
	rd := newRequest("ResendLog", http.MethodPost, "resend").withBody(body)
	if err := c.do(ctx, rd, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
