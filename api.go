package sendwithus

import (
	"context"
)

// Public interfaces for the sendwithus client, one per resource family.
// *Client implements all of them; depend on the narrowest one you need.
type (
	// Templates manages templates and their versions and locales.
	// An empty locale argument selects the path without a locale segment.
	Templates interface {
		ListTemplates(ctx context.Context) ([]Template, error)
		GetTemplate(ctx context.Context, templateID, locale string) (*Template, error)
		ListTemplateVersions(ctx context.Context, templateID, locale string) ([]TemplateVersion, error)
		GetTemplateVersion(ctx context.Context, templateID, locale, versionID string) (*TemplateVersion, error)
		UpdateTemplateVersion(ctx context.Context, templateID, locale, versionID string, version *TemplateVersion) (*TemplateVersion, error)
		CreateTemplate(ctx context.Context, version *TemplateVersion) (*Template, error)
		AddTemplateLocale(ctx context.Context, templateID, locale string, version *TemplateVersion) (*Template, error)
		CreateTemplateVersion(ctx context.Context, templateID, locale string, version *TemplateVersion) (*TemplateVersion, error)
		DeleteTemplate(ctx context.Context, templateID, locale string) (*APIStatus, error)
		RenderTemplate(ctx context.Context, req *RenderRequest) (*RenderResponse, error)
	}

	// Sender sends templated emails.
	// A send retried after a 5xx or a timeout may be delivered twice.
	Sender interface {
		Send(ctx context.Context, email *Email) (*EmailResponse, error)
	}

	// Customers manages customers and their group membership.
	Customers interface {
		GetCustomer(ctx context.Context, email string) (*CustomerResponse, error)
		CreateOrUpdateCustomer(ctx context.Context, customer *Customer) (*APIStatus, error)
		DeleteCustomer(ctx context.Context, email string) (*APIStatus, error)
		GetCustomerLogs(ctx context.Context, email string, q *CustomerLogsQuery) (*CustomerEmailLogsResponse, error)
		AddCustomerToGroup(ctx context.Context, email, groupID string) (*APIStatus, error)
		RemoveCustomerFromGroup(ctx context.Context, email, groupID string) (*APIStatus, error)
	}

	// CustomerGroups manages customer groups.
	CustomerGroups interface {
		ListCustomerGroups(ctx context.Context) (*CustomerGroupsResponse, error)
		CreateCustomerGroup(ctx context.Context, name, description string) (*CustomerGroupResponse, error)
		UpdateCustomerGroup(ctx context.Context, groupID string, update CustomerGroupUpdate) (*CustomerGroupResponse, error)
		DeleteCustomerGroup(ctx context.Context, groupID string) (*APIStatus, error)
	}

	// Logs reads delivery logs and resends logged emails.
	Logs interface {
		ListLogs(ctx context.Context, q *LogQuery) ([]Log, error)
		GetLog(ctx context.Context, logID string) (*Log, error)
		GetLogEvents(ctx context.Context, logID string) ([]LogEvent, error)
		ResendLog(ctx context.Context, logID string) (*LogResendResponse, error)
	}

	// EspAccounts manages the email service provider accounts sendwithus delivers through.
	EspAccounts interface {
		ListEspAccounts(ctx context.Context, espType string) ([]EspAccount, error)
		AddEspAccount(ctx context.Context, req *EspAccountRequest) (*EspAccountResponse, error)
		SetDefaultEspAccount(ctx context.Context, espAccountID string) (*EspAccount, error)
	}

	// DripCampaigns starts and stops drip campaigns for recipients.
	DripCampaigns interface {
		ListDripCampaigns(ctx context.Context) ([]DripCampaign, error)
		GetDripCampaign(ctx context.Context, campaignID string) (*DripCampaign, error)
		ActivateDripCampaign(ctx context.Context, campaignID string, act *DripCampaignActivation) (*DripCampaignResponse, error)
		DeactivateDripCampaign(ctx context.Context, campaignID, recipientAddress string) (*DripCampaignDeactivateResponse, error)
		DeactivateAllDripCampaigns(ctx context.Context, recipientAddress string) (*DripCampaignDeactivateResponse, error)
	}

	// API is the complete sendwithus API surface.
	API interface {
		Templates
		Sender
		Customers
		CustomerGroups
		Logs
		EspAccounts
		DripCampaigns

		// Ping checks that the API is reachable and the API key is accepted.
		Ping(ctx context.Context) error
	}
)

var _ API = (*Client)(nil)
