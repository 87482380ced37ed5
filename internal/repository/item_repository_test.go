package repository

import (
	"testing"

	"Repokit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByBoxID_RespectsDeletedItems(t *testing.T) {
	db := setupTestDB(t)
	box := NewBoxRepository(db, testOptions()).Create(&models.Box{Name: "box"}, nil).ResultObject
	items := NewItemRepository(db, testOptions())
	created := items.CreateMany([]*models.Item{
		{BoxID: box.ID, Name: "live", Type: "file"},
		{BoxID: box.ID, Name: "gone", Type: "file"},
	}, nil).ResultObject
	require.True(t, items.Delete(created[1], nil, true).Succeeded())

	live := items.FindByBoxID(box.ID, false)
	require.True(t, live.Succeeded())
	require.Len(t, live.ResultObject, 1)
	assert.Equal(t, "live", live.ResultObject[0].Name)

	all := items.FindByBoxID(box.ID, true)
	assert.Len(t, all.ResultObject, 2)
}
