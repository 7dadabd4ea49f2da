package tenant_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluro/storegate/pkg/tenant"
)

const (
	selectTenantBySubdomain = `SELECT id, name, subdomain, domain, is_active, owner_id, settings FROM tenants WHERE subdomain = $1 AND is_active = true`
	selectTenantByDomain    = `SELECT id, name, subdomain, domain, is_active, owner_id, settings FROM tenants WHERE domain = $1 AND is_active = true`
	selectTenantReduced     = `SELECT id, name, subdomain, domain, is_active, owner_id FROM tenants WHERE subdomain = $1 AND is_active = true`
	selectMembership        = `SELECT tenant_id, user_id, role, permissions, is_active
		FROM tenant_users
		WHERE tenant_id = $1 AND user_id = $2 AND is_active = true`
)

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *tenant.PGStore) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, tenant.NewPGStore(mock)
}

func tenantColumns() []string {
	return []string{"id", "name", "subdomain", "domain", "is_active", "owner_id", "settings"}
}

func TestPGStoreGetBySubdomain(t *testing.T) {
	t.Parallel()

	t.Run("returns tenant with settings", func(t *testing.T) {
		t.Parallel()

		mock, store := newMockStore(t)
		id, ownerID := uuid.New(), uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(selectTenantBySubdomain)).
			WithArgs("shop1").
			WillReturnRows(pgxmock.NewRows(tenantColumns()).
				AddRow(id, "Shop One", "shop1", nil, true, ownerID, []byte(`{"admin_language":"de","store_language":"fr"}`)))

		got, err := store.GetBySubdomain(context.Background(), "shop1")
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "Shop One", got.Name)
		assert.Equal(t, "shop1", got.Subdomain)
		assert.Empty(t, got.Domain)
		assert.Equal(t, ownerID, got.OwnerID)
		assert.Equal(t, "de", got.Settings[tenant.SettingAdminLanguage])
		assert.Equal(t, "fr", got.Settings[tenant.SettingStoreLanguage])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("backfills default locale when settings are null", func(t *testing.T) {
		t.Parallel()

		mock, store := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectTenantBySubdomain)).
			WithArgs("shop1").
			WillReturnRows(pgxmock.NewRows(tenantColumns()).
				AddRow(uuid.New(), "Shop One", "shop1", nil, true, uuid.New(), nil))

		got, err := store.GetBySubdomain(context.Background(), "shop1")
		require.NoError(t, err)
		assert.Equal(t, tenant.DefaultLocale, got.Settings[tenant.SettingAdminLanguage])
		assert.Equal(t, tenant.DefaultLocale, got.Settings[tenant.SettingStoreLanguage])
	})

	t.Run("retries with reduced columns on undefined_column", func(t *testing.T) {
		t.Parallel()

		mock, store := newMockStore(t)
		id, ownerID := uuid.New(), uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(selectTenantBySubdomain)).
			WithArgs("shop1").
			WillReturnError(&pgconn.PgError{Code: "42703", Message: `column "settings" does not exist`})
		mock.ExpectQuery(regexp.QuoteMeta(selectTenantReduced)).
			WithArgs("shop1").
			WillReturnRows(pgxmock.NewRows(tenantColumns()[:6]).
				AddRow(id, "Shop One", "shop1", nil, true, ownerID))

		got, err := store.GetBySubdomain(context.Background(), "shop1")
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, tenant.DefaultLocale, got.Settings[tenant.SettingAdminLanguage])
		assert.Equal(t, tenant.DefaultLocale, got.Settings[tenant.SettingStoreLanguage])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no retry loop when the reduced query fails too", func(t *testing.T) {
		t.Parallel()

		mock, store := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectTenantBySubdomain)).
			WithArgs("shop1").
			WillReturnError(&pgconn.PgError{Code: "42703"})
		mock.ExpectQuery(regexp.QuoteMeta(selectTenantReduced)).
			WithArgs("shop1").
			WillReturnError(errors.New("connection reset"))

		_, err := store.GetBySubdomain(context.Background(), "shop1")
		assert.ErrorIs(t, err, tenant.ErrStoreFailure)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing tenant", func(t *testing.T) {
		t.Parallel()

		mock, store := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectTenantBySubdomain)).
			WithArgs("unknown").
			WillReturnError(pgx.ErrNoRows)

		_, err := store.GetBySubdomain(context.Background(), "unknown")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("other failures wrap ErrStoreFailure", func(t *testing.T) {
		t.Parallel()

		mock, store := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectTenantBySubdomain)).
			WithArgs("shop1").
			WillReturnError(errors.New("connection reset"))

		_, err := store.GetBySubdomain(context.Background(), "shop1")
		assert.ErrorIs(t, err, tenant.ErrStoreFailure)
		assert.NotErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}

func TestPGStoreGetByDomain(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)
	id, ownerID := uuid.New(), uuid.New()
	domain := "mystore.com"

	mock.ExpectQuery(regexp.QuoteMeta(selectTenantByDomain)).
		WithArgs("mystore.com").
		WillReturnRows(pgxmock.NewRows(tenantColumns()).
			AddRow(id, "My Store", "mystore", &domain, true, ownerID, nil))

	got, err := store.GetByDomain(context.Background(), "mystore.com")
	require.NoError(t, err)
	assert.Equal(t, "mystore.com", got.Domain)
	assert.Equal(t, "mystore", got.Subdomain)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGStoreGetMembership(t *testing.T) {
	t.Parallel()

	t.Run("returns active membership", func(t *testing.T) {
		t.Parallel()

		mock, store := newMockStore(t)
		tenantID, userID := uuid.New(), uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(selectMembership)).
			WithArgs(tenantID, userID).
			WillReturnRows(pgxmock.NewRows([]string{"tenant_id", "user_id", "role", "permissions", "is_active"}).
				AddRow(tenantID, userID, "staff", []string{"products:write"}, true))

		got, err := store.GetMembership(context.Background(), tenantID, userID)
		require.NoError(t, err)
		assert.Equal(t, "staff", got.Role)
		assert.Equal(t, []string{"products:write"}, got.Permissions)
		assert.True(t, got.Active)
	})

	t.Run("missing membership", func(t *testing.T) {
		t.Parallel()

		mock, store := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectMembership)).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(pgx.ErrNoRows)

		_, err := store.GetMembership(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, tenant.ErrMembershipNotFound)
	})

	t.Run("lookup failure wraps ErrStoreFailure", func(t *testing.T) {
		t.Parallel()

		mock, store := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectMembership)).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(errors.New("timeout"))

		_, err := store.GetMembership(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, tenant.ErrStoreFailure)
	})
}
