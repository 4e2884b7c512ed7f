package sendwithus

import (
	"context"
	"net/http"
)

// CustomerLogsQuery filters the logs returned by GetCustomerLogs.
// Timestamps are Unix seconds.
type CustomerLogsQuery struct {
	Count     int   `url:"count,omitempty"`
	CreatedGT int64 `url:"created_gt,omitempty"`
	CreatedLT int64 `url:"created_lt,omitempty"`
}

// GetCustomer returns the customer with the given email address.
func (c *Client) GetCustomer(ctx context.Context, email string) (*CustomerResponse, error) {
	if err := requireArg("email", email); err != nil {
		return nil, err
	}

	var resp CustomerResponse
	rd := newRequest("GetCustomer", http.MethodGet, resourcePath("customers", email))
	if err := c.do(ctx, rd, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateOrUpdateCustomer creates the customer, or updates it when the address is already known.
func (c *Client) CreateOrUpdateCustomer(ctx context.Context, customer *Customer) (*APIStatus, error) {
	if customer == nil {
		return nil, NewValidationError("customer", "customer is required")
	}
	if err := requireArg("email", customer.Email); err != nil {
		return nil, err
	}

	var status APIStatus
	rd := newRequest("CreateOrUpdateCustomer", http.MethodPost, "customers").withBody(customer)
	if err := c.do(ctx, rd, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// DeleteCustomer deletes the customer with the given email address.
func (c *Client) DeleteCustomer(ctx context.Context, email string) (*APIStatus, error) {
	if err := requireArg("email", email); err != nil {
		return nil, err
	}

	var status APIStatus
	rd := newRequest("DeleteCustomer", http.MethodDelete, resourcePath("customers", email))
	if err := c.do(ctx, rd, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetCustomerLogs returns the delivery logs of a customer. q may be nil.
func (c *Client) GetCustomerLogs(ctx context.Context, email string, q *CustomerLogsQuery) (*CustomerEmailLogsResponse, error) {
	if err := requireArg("email", email); err != nil {
		return nil, err
	}

	rd := newRequest("GetCustomerLogs", http.MethodGet, resourcePath("customers", email, "logs"))
	if q != nil {
		var err error
		if rd, err = rd.withQuery(q); err != nil {
			return nil, err
		}
	}

	var resp CustomerEmailLogsResponse
	if err := c.do(ctx, rd, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddCustomerToGroup adds a customer to a customer group.
func (c *Client) AddCustomerToGroup(ctx context.Context, email, groupID string) (*APIStatus, error) {
	return c.customerGroupMembership(ctx, "AddCustomerToGroup", http.MethodPost, email, groupID)
}

// RemoveCustomerFromGroup removes a customer from a customer group.
func (c *Client) RemoveCustomerFromGroup(ctx context.Context, email, groupID string) (*APIStatus, error) {
	return c.customerGroupMembership(ctx, "RemoveCustomerFromGroup", http.MethodDelete, email, groupID)
}

func (c *Client) customerGroupMembership(ctx context.Context, op, method, email, groupID string) (*APIStatus, error) {
	if err := requireArg("email", email); err != nil {
		return nil, err
	}
	if err := requireArg("group_id", groupID); err != nil {
		return nil, err
	}

	var status APIStatus
	rd := newRequest(op, method, resourcePath("customers", email, "groups", groupID))
	if err := c.do(ctx, rd, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
