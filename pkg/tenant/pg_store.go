package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the store needs. Satisfied by
// *pgxpool.Pool and by pgxmock pools in tests.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore implements Store over PostgreSQL.
//
// Older deployments lack the tenants.settings column. When a lookup fails
// with undefined_column (SQLSTATE 42703), the store retries once with the
// reduced column set and backfills the language settings with DefaultLocale.
// The fallback is structural (error code, not message text) and bounded to
// one retry per lookup.
type PGStore struct {
	db DB
}

// NewPGStore creates a tenant store over an established connection pool.
func NewPGStore(db DB) *PGStore {
	return &PGStore{db: db}
}

const undefinedColumnCode = "42703"

const (
	tenantColumns        = `id, name, subdomain, domain, is_active, owner_id, settings`
	tenantColumnsReduced = `id, name, subdomain, domain, is_active, owner_id`
)

// GetBySubdomain implements Store.
func (s *PGStore) GetBySubdomain(ctx context.Context, subdomain string) (*Tenant, error) {
	return s.getTenant(ctx, `subdomain = $1`, subdomain)
}

// GetByDomain implements Store.
func (s *PGStore) GetByDomain(ctx context.Context, domain string) (*Tenant, error) {
	return s.getTenant(ctx, `domain = $1`, domain)
}

func (s *PGStore) getTenant(ctx context.Context, where string, arg any) (*Tenant, error) {
	t, err := s.scanTenant(ctx, tenantColumns, where, arg, true)
	if err == nil {
		return t, nil
	}
	if isUndefinedColumn(err) {
		return s.scanTenant(ctx, tenantColumnsReduced, where, arg, false)
	}
	return nil, err
}

func (s *PGStore) scanTenant(ctx context.Context, columns, where string, arg any, withSettings bool) (*Tenant, error) {
	query := fmt.Sprintf(`SELECT %s FROM tenants WHERE %s AND is_active = true`, columns, where)
	row := s.db.QueryRow(ctx, query, arg)

	var (
		t        Tenant
		domain   *string
		settings []byte
	)

	dest := []any{&t.ID, &t.Name, &t.Subdomain, &domain, &t.Active, &t.OwnerID}
	if withSettings {
		dest = append(dest, &settings)
	}

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		if isUndefinedColumn(err) {
			return nil, err
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}

	if domain != nil {
		t.Domain = *domain
	}

	t.Settings = map[string]string{
		SettingAdminLanguage: DefaultLocale,
		SettingStoreLanguage: DefaultLocale,
	}
	if len(settings) > 0 {
		parsed := map[string]string{}
		if err := json.Unmarshal(settings, &parsed); err != nil {
			return nil, errors.Join(ErrStoreFailure, err)
		}
		for k, v := range parsed {
			if v != "" {
				t.Settings[k] = v
			}
		}
	}

	return &t, nil
}

// GetMembership implements Store.
func (s *PGStore) GetMembership(ctx context.Context, tenantID, userID uuid.UUID) (*Membership, error) {
	const query = `SELECT tenant_id, user_id, role, permissions, is_active
		FROM tenant_users
		WHERE tenant_id = $1 AND user_id = $2 AND is_active = true`

	var m Membership
	err := s.db.QueryRow(ctx, query, tenantID, userID).
		Scan(&m.TenantID, &m.UserID, &m.Role, &m.Permissions, &m.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMembershipNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return &m, nil
}

func isUndefinedColumn(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == undefinedColumnCode
}
