package sendwithus

import (
	"bytes"
	"encoding/json"
)

// decodeResponse maps a successful response body into out.
// Unknown fields are ignored and absent fields keep out's defaults.
// A nil out discards the body.
func decodeResponse(body []byte, out any) error {
	if out == nil {
		return nil
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return &Error{
			Kind:    KindDecode,
			Message: "empty response body",
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{
			Kind:    KindDecode,
			Message: "failed to decode response: " + err.Error(),
			Body:    string(body),
			Cause:   err,
		}
	}

	return nil
}
