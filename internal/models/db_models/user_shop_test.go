package db_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShopStatusValid(t *testing.T) {
	assert.True(t, StatusWant.Valid())
	assert.True(t, StatusVisited.Valid())
	assert.True(t, StatusFavorite.Valid())

	assert.False(t, ShopStatus("").Valid())
	assert.False(t, ShopStatus("want").Valid(), "status values are case-sensitive")
	assert.False(t, ShopStatus("EATEN").Valid())
}

func TestShopStatusMarksVisited(t *testing.T) {
	assert.False(t, StatusWant.MarksVisited())
	assert.True(t, StatusVisited.MarksVisited())
	assert.True(t, StatusFavorite.MarksVisited())
}
