package sendwithus

import (
	"context"
	"net/http"
)

// ListCustomerGroups returns every customer group of the account.
func (c *Client) ListCustomerGroups(ctx context.Context) (*CustomerGroupsResponse, error) {
	var resp CustomerGroupsResponse
	if err := c.do(ctx, newRequest("ListCustomerGroups", http.MethodGet, "groups"), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateCustomerGroup creates a group. The description is optional.
func (c *Client) CreateCustomerGroup(ctx context.Context, name, description string) (*CustomerGroupResponse, error) {
	if err := requireArg("name", name); err != nil {
		return nil, err
	}

	var resp CustomerGroupResponse
	group := &CustomerGroup{Name: name, Description: description}
	rd := newRequest("CreateCustomerGroup", http.MethodPost, "groups").withBody(group)
	if err := c.do(ctx, rd, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateCustomerGroup changes the name and/or description of a group.
func (c *Client) UpdateCustomerGroup(ctx context.Context, groupID string, update CustomerGroupUpdate) (*CustomerGroupResponse, error) {
	if err := requireArg("group_id", groupID); err != nil {
		return nil, err
	}
	if update.Name == "" && update.Description == "" {
		return nil, NewValidationError("update", "name or description is required")
	}

	var resp CustomerGroupResponse
	rd := newRequest("UpdateCustomerGroup", http.MethodPut, resourcePath("groups", groupID)).withBody(update)
	if err := c.do(ctx, rd, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteCustomerGroup deletes a group. Its customers are kept.
func (c *Client) DeleteCustomerGroup(ctx context.Context, groupID string) (*APIStatus, error) {
	if err := requireArg("group_id", groupID); err != nil {
		return nil, err
	}

	var status APIStatus
	rd := newRequest("DeleteCustomerGroup", http.MethodDelete, resourcePath("groups", groupID))
	if err := c.do(ctx, rd, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
