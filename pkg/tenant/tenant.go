package tenant

import (
	"context"

	"github.com/google/uuid"
)

// DefaultLocale backfills missing language settings on deployments whose
// schema predates the settings column.
const DefaultLocale = "en"

// Settings keys this layer reads.
const (
	SettingAdminLanguage = "admin_language"
	SettingStoreLanguage = "store_language"
)

// Tenant is a single store, addressable by subdomain and optionally by a
// custom domain. Read-only from the gateway's perspective; tenant management
// lives elsewhere.
type Tenant struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Subdomain string            `json:"subdomain"`
	Domain    string            `json:"domain,omitempty"` // empty when no custom domain is configured
	Active    bool              `json:"active"`
	OwnerID   uuid.UUID         `json:"owner_id"`
	Settings  map[string]string `json:"settings,omitempty"`
}

// Setting returns the named settings value or the fallback when unset.
func (t *Tenant) Setting(key, fallback string) string {
	if t == nil || t.Settings == nil {
		return fallback
	}
	if v, ok := t.Settings[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Membership is a staff access record for a (tenant, user) pair. The owner
// needs no membership row; absence of an active row for anyone else means no
// admin access.
type Membership struct {
	TenantID    uuid.UUID `json:"tenant_id"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	Active      bool      `json:"active"`
}

// Store loads tenants and memberships from the backing store. All lookups
// are active-only: inactive rows behave as absent.
type Store interface {
	// GetBySubdomain returns the active tenant owning the subdomain.
	// Returns ErrTenantNotFound when no such tenant exists.
	GetBySubdomain(ctx context.Context, subdomain string) (*Tenant, error)

	// GetByDomain returns the active tenant owning the custom domain.
	// Returns ErrTenantNotFound when no such tenant exists.
	GetByDomain(ctx context.Context, domain string) (*Tenant, error)

	// GetMembership returns the active membership for the pair.
	// Returns ErrMembershipNotFound when none exists.
	GetMembership(ctx context.Context, tenantID, userID uuid.UUID) (*Membership, error)
}
