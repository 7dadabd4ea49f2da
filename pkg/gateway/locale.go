package gateway

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/aluro/storegate/pkg/tenant"
)

// ResolveLocale derives the locale to expose for a request: the tenant's
// admin language on store-management paths, its storefront language
// everywhere else. Values are normalized as BCP 47 tags; anything
// unparsable degrades to the default locale. Pure, no I/O.
func ResolveLocale(t *tenant.Tenant, path, adminPrefix string) string {
	key := tenant.SettingStoreLanguage
	if adminPrefix != "" && strings.HasPrefix(path, adminPrefix) {
		key = tenant.SettingAdminLanguage
	}
	return normalizeLocale(t.Setting(key, tenant.DefaultLocale))
}

func normalizeLocale(v string) string {
	tag, err := language.Parse(v)
	if err != nil {
		return tenant.DefaultLocale
	}
	return tag.String()
}
