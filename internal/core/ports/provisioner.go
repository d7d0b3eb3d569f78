package ports

import "context"

// Provisioner performs the post-login provisioning call (demo data seeding).
type Provisioner interface {
	Provision(ctx context.Context, token string) error
}

// ProvisionRequest is one best-effort provisioning job.
type ProvisionRequest struct {
	UserID string
	Token  string
}

// ProvisionQueue accepts provisioning jobs without blocking the caller.
type ProvisionQueue interface {
	Enqueue(req ProvisionRequest)
}
