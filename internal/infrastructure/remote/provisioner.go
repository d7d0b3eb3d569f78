package remote

import (
	"context"
	"fmt"
)

// Provisioner seeds demo data for a freshly logged in user:
// POST <moduleBase>/<seedPath> with an empty JSON object and the bearer token.
type Provisioner struct {
	client     *Client
	moduleBase string
	seedPath   string
}

func NewProvisioner(client *Client, moduleBase, seedPath string) *Provisioner {
	return &Provisioner{client: client, moduleBase: moduleBase, seedPath: seedPath}
}

func (p *Provisioner) Provision(ctx context.Context, token string) error {
	url, err := endpoint(p.moduleBase, p.seedPath)
	if err != nil {
		return err
	}

	resp, err := p.client.R(ctx).
		SetAuthToken(token).
		SetBody(map[string]any{}).
		Post(url)
	if err != nil {
		return fmt.Errorf("seed demo: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("seed demo: %w", rejection(resp.StatusCode(), resp.Body()))
	}
	return nil
}
