package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"brewheaven-api/models"
)

func TestMenuFilter_Match(t *testing.T) {
	hidden := models.MenuItem{Name: "Seasonal", Available: false, IsBestseller: true}
	plain := models.MenuItem{Name: "Tea", Available: true}
	star := models.MenuItem{Name: "Latte", Available: true, IsBestseller: true}

	menu := MenuFilter{AvailableOnly: true}
	assert.False(t, menu.Match(hidden))
	assert.True(t, menu.Match(plain))

	best := MenuFilter{AvailableOnly: true, BestsellersOnly: true}
	assert.False(t, best.Match(plain))
	assert.True(t, best.Match(star))
	assert.False(t, best.Match(hidden))

	assert.True(t, MenuFilter{}.Match(hidden))
}
