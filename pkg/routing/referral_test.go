package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aluro/storegate/pkg/routing"
)

func TestIsSelfReferral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		host    string
		path    string
		referer string
		want    bool
	}{
		{
			name:    "same host and path",
			host:    "shop1.aluro.shop",
			path:    "/admin",
			referer: "https://shop1.aluro.shop/admin",
			want:    true,
		},
		{
			name:    "different path",
			host:    "shop1.aluro.shop",
			path:    "/admin",
			referer: "https://shop1.aluro.shop/login",
			want:    false,
		},
		{
			name:    "different host",
			host:    "shop1.aluro.shop",
			path:    "/admin",
			referer: "https://shop2.aluro.shop/admin",
			want:    false,
		},
		{
			name:    "no referer",
			host:    "shop1.aluro.shop",
			path:    "/admin",
			referer: "",
			want:    false,
		},
		{
			name:    "unparsable referer",
			host:    "shop1.aluro.shop",
			path:    "/admin",
			referer: "://not-a-url",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, routing.IsSelfReferral(tt.host, tt.path, tt.referer))
		})
	}
}

func TestRewriteLegacyCategoryPath(t *testing.T) {
	t.Parallel()

	t.Run("rewrites legacy category path", func(t *testing.T) {
		t.Parallel()

		got, ok := routing.RewriteLegacyCategoryPath("/products/category/shoes")
		assert.True(t, ok)
		assert.Equal(t, "/products?category=shoes", got)
	})

	t.Run("escapes the category slug", func(t *testing.T) {
		t.Parallel()

		got, ok := routing.RewriteLegacyCategoryPath("/products/category/summer sale")
		assert.True(t, ok)
		assert.Equal(t, "/products?category=summer+sale", got)
	})

	t.Run("trailing slash is tolerated", func(t *testing.T) {
		t.Parallel()

		got, ok := routing.RewriteLegacyCategoryPath("/products/category/shoes/")
		assert.True(t, ok)
		assert.Equal(t, "/products?category=shoes", got)
	})

	t.Run("non-legacy paths pass through", func(t *testing.T) {
		t.Parallel()

		got, ok := routing.RewriteLegacyCategoryPath("/products")
		assert.False(t, ok)
		assert.Equal(t, "/products", got)
	})

	t.Run("empty slug does not rewrite", func(t *testing.T) {
		t.Parallel()

		_, ok := routing.RewriteLegacyCategoryPath("/products/category/")
		assert.False(t, ok)
	})
}
