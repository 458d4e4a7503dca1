package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "vendor", Slugify("Vendor"))
	assert.Equal(t, "open-source-tool", Slugify("  Open Source / Tool "))
	assert.Equal(t, "sprint-planning", Slugify("Sprint Planning"))
	assert.Equal(t, "", Slugify("!!!"))
}
