package gateway

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ProductionDomain   string `env:"GATE_PRODUCTION_DOMAIN,required"`              // ProductionDomain is the platform root domain, e.g. "aluro.shop".
	PreviewSuffix      string `env:"GATE_PREVIEW_SUFFIX" envDefault:".vercel.app"` // PreviewSuffix is the deployment-preview host suffix.
	DevHost            string `env:"GATE_DEV_HOST" envDefault:"localhost"`         // DevHost is the local development host.
	PlatformAdminEmail string `env:"GATE_PLATFORM_ADMIN_EMAIL,required"`           // PlatformAdminEmail is the only account allowed on platform routes.

	LoginPath             string `env:"GATE_LOGIN_PATH" envDefault:"/login"`                           // LoginPath is where unauthenticated users are sent.
	UnauthorizedPath      string `env:"GATE_UNAUTHORIZED_PATH" envDefault:"/unauthorized"`             // UnauthorizedPath is for authenticated non-operators on platform routes.
	AdminUnauthorizedPath string `env:"GATE_ADMIN_UNAUTHORIZED_PATH" envDefault:"/admin/unauthorized"` // AdminUnauthorizedPath is for non-members on tenant admin routes.
	TenantNotFoundPath    string `env:"GATE_TENANT_NOT_FOUND_PATH" envDefault:"/tenant-not-found"`     // TenantNotFoundPath is served on the main domain when no tenant matches.

	AdminPathPrefix    string `env:"GATE_ADMIN_PATH_PREFIX" envDefault:"/admin"`       // AdminPathPrefix marks store-management routes on tenant hosts.
	PlatformPathPrefix string `env:"GATE_PLATFORM_PATH_PREFIX" envDefault:"/platform"` // PlatformPathPrefix marks operator routes on the main domain.

	ProtectedPaths []string `env:"GATE_PROTECTED_PATHS" envSeparator:"," envDefault:"/account"`                             // ProtectedPaths are storefront path prefixes requiring a signed-in customer.
	SkipPaths      []string `env:"GATE_SKIP_PATHS" envSeparator:"," envDefault:"/_next/static,/_next/image,/favicon.ico"`   // SkipPaths bypass the gateway entirely.
	SkipExtensions []string `env:"GATE_SKIP_EXTENSIONS" envSeparator:"," envDefault:".svg,.png,.jpg,.jpeg,.gif,.webp,.ico"` // SkipExtensions bypass the gateway by file extension.
	SkipPathsFile  string   `env:"GATE_SKIP_PATHS_FILE"`                                                                    // SkipPathsFile optionally points at a YAML file extending the two lists above.

	ExposeErrorDetail bool          `env:"GATE_EXPOSE_ERROR_DETAIL" envDefault:"false"` // ExposeErrorDetail echoes store error detail in 500 bodies; keep off in production.
	TenantCacheTTL    time.Duration `env:"GATE_TENANT_CACHE_TTL" envDefault:"5m"`       // TenantCacheTTL bounds how long resolved tenants are served from cache.
}

var (
	// ErrMissingConfig indicates required gateway configuration is absent.
	ErrMissingConfig = errors.New("gateway: missing required configuration")

	// ErrSkipPathsFile wraps failures loading the optional skip-paths file.
	ErrSkipPathsFile = errors.New("gateway: failed to load skip paths file")
)

// Validate checks the fields the gateway cannot operate without.
func (c Config) Validate() error {
	if c.ProductionDomain == "" {
		return fmt.Errorf("%w: production domain", ErrMissingConfig)
	}
	if c.PlatformAdminEmail == "" {
		return fmt.Errorf("%w: platform admin email", ErrMissingConfig)
	}
	return nil
}

// skipPathsFile is the on-disk shape of the optional exclusion file.
type skipPathsFile struct {
	SkipPaths      []string `yaml:"skip_paths"`
	SkipExtensions []string `yaml:"skip_extensions"`
}

// LoadSkipPathsFile merges the YAML exclusion file referenced by
// SkipPathsFile into the config. A config without the field set is returned
// unchanged.
func (c Config) LoadSkipPathsFile() (Config, error) {
	if c.SkipPathsFile == "" {
		return c, nil
	}

	raw, err := os.ReadFile(c.SkipPathsFile)
	if err != nil {
		return c, errors.Join(ErrSkipPathsFile, err)
	}

	var file skipPathsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return c, errors.Join(ErrSkipPathsFile, err)
	}

	c.SkipPaths = append(c.SkipPaths, file.SkipPaths...)
	c.SkipExtensions = append(c.SkipExtensions, file.SkipExtensions...)
	return c, nil
}
