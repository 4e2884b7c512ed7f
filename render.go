package sendwithus

import (
	"context"
	"net/http"
)

// RenderTemplate renders a template version with data without sending it.
// With Strict set the API fails when data is missing a referenced variable.
func (c *Client) RenderTemplate(ctx context.Context, req *RenderRequest) (*RenderResponse, error) {
	if req == nil {
		return nil, NewValidationError("render", "request is required")
	}
	if err := requireArg("template", req.Template); err != nil {
		return nil, err
	}

	var resp RenderResponse
	rd := newRequest("RenderTemplate", http.MethodPost, "render").withBody(req)
	if err := c.do(ctx, rd, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
