package backend

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) CreateContact(ctx context.Context, token string, in ContactInput) (*Contact, error) {
	var ct Contact
	if err := c.do(ctx, http.MethodPost, "/api/contacts", token, in, &ct, "contact", "data"); err != nil {
		return nil, err
	}
	return &ct, nil
}

func (c *Client) ListContacts(ctx context.Context, token string) ([]Contact, error) {
	var contacts []Contact
	if err := c.do(ctx, http.MethodGet, "/api/contacts", token, nil, &contacts, "contacts", "data"); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (c *Client) UpdateContactStatus(ctx context.Context, token, id, status string) (*Contact, error) {
	return c.patchContact(ctx, token, id, "status", map[string]string{"status": status})
}

func (c *Client) MarkContactRead(ctx context.Context, token, id string) (*Contact, error) {
	return c.patchContact(ctx, token, id, "read", nil)
}

func (c *Client) RespondContact(ctx context.Context, token, id, response string) (*Contact, error) {
	return c.patchContact(ctx, token, id, "respond", map[string]string{"adminResponse": response})
}

func (c *Client) DeleteContact(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/contacts/"+url.PathEscape(id), token, nil, nil)
}

func (c *Client) patchContact(ctx context.Context, token, id, action string, body interface{}) (*Contact, error) {
	var ct Contact
	path := "/api/contacts/" + url.PathEscape(id) + "/" + action
	if err := c.do(ctx, http.MethodPatch, path, token, body, &ct, "contact", "data"); err != nil {
		return nil, err
	}
	return &ct, nil
}
