package sendwithus

import (
	"context"
	"net/http"
)

type dripDeactivation struct {
	RecipientAddress string `json:"recipient_address"`
}

// ListDripCampaigns returns every drip campaign of the account.
func (c *Client) ListDripCampaigns(ctx context.Context) ([]DripCampaign, error) {
	var campaigns []DripCampaign
	if err := c.do(ctx, newRequest("ListDripCampaigns", http.MethodGet, "drip_campaigns"), &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// GetDripCampaign returns a drip campaign and its steps.
func (c *Client) GetDripCampaign(ctx context.Context, campaignID string) (*DripCampaign, error) {
	if err := requireArg("campaign_id", campaignID); err != nil {
		return nil, err
	}

	var campaign DripCampaign
	rd := newRequest("GetDripCampaign", http.MethodGet, resourcePath("drip_campaigns", campaignID))
	if err := c.do(ctx, rd, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

// ActivateDripCampaign starts a drip campaign for the recipient in act.
func (c *Client) ActivateDripCampaign(ctx context.Context, campaignID string, act *DripCampaignActivation) (*DripCampaignResponse, error) {
	if err := requireArg("campaign_id", campaignID); err != nil {
		return nil, err
	}
	if act == nil {
		return nil, NewValidationError("activation", "activation is required")
	}
	if err := requireArg("recipient.address", act.Recipient.Address); err != nil {
		return nil, err
	}

	var resp DripCampaignResponse
	rd := newRequest("ActivateDripCampaign", http.MethodPost, resourcePath("drip_campaigns", campaignID, "activate")).withBody(act)
	if err := c.do(ctx, rd, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeactivateDripCampaign removes a recipient from one drip campaign.
func (c *Client) DeactivateDripCampaign(ctx context.Context, campaignID, recipientAddress string) (*DripCampaignDeactivateResponse, error) {
	if err := requireArg("campaign_id", campaignID); err != nil {
		return nil, err
	}
	return c.deactivateDrip(ctx, "DeactivateDripCampaign", resourcePath("drip_campaigns", campaignID, "deactivate"), recipientAddress)
}

// DeactivateAllDripCampaigns removes a recipient from every drip campaign.
func (c *Client) DeactivateAllDripCampaigns(ctx context.Context, recipientAddress string) (*DripCampaignDeactivateResponse, error) {
	return c.deactivateDrip(ctx, "DeactivateAllDripCampaigns", "drip_campaigns/deactivate", recipientAddress)
}

func (c *Client) deactivateDrip(ctx context.Context, op, path, recipientAddress string) (*DripCampaignDeactivateResponse, error) {
	if err := requireArg("recipient_address", recipientAddress); err != nil {
		return nil, err
	}

	var resp DripCampaignDeactivateResponse
	rd := newRequest(op, http.MethodPost, path).withBody(dripDeactivation{RecipientAddress: recipientAddress})
	if err := c.do(ctx, rd, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
