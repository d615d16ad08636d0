package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceBySlug(t *testing.T) {
	t.Run("known slug", func(t *testing.T) {
		s := ServiceBySlug("cloud-transformation")
		assert.NotNil(t, s)
		assert.Equal(t, "Cloud Transformation", s.Title)
		assert.Equal(t, "cloud", s.Category)
	})

	t.Run("unknown slug", func(t *testing.T) {
		assert.Nil(t, ServiceBySlug("no-such-service"))
	})
}

func TestServices_ReturnsCopy(t *testing.T) {
	a := Services()
	assert.NotEmpty(t, a)

	a[0].Title = "mutated"
	b := Services()
	assert.NotEqual(t, "mutated", b[0].Title)
}

func TestServicesByCategory(t *testing.T) {
	cloud := ServicesByCategory("cloud")
	assert.Len(t, cloud, 2)
	for _, s := range cloud {
		assert.Equal(t, "cloud", s.Category)
	}

	assert.Empty(t, ServicesByCategory("nonexistent"))
}
