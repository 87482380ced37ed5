package repository

import (
	"fmt"
	"testing"

	"Repokit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkCreate_AssignsIdentities(t *testing.T) {
	db := setupTestDB(t)
	inserts := countInserts(t, db)
	opts := testOptions()
	opts.BulkBatchSize = 2
	repo := NewBoxRepository(db, opts)

	boxes := newBoxes("a", "b", "c", "d", "e")
	res := repo.BulkCreate(boxes, actor(5))
	require.True(t, res.Succeeded(), res.Errors)
	assert.Equal(t, 3, *inserts)

	seen := map[int64]bool{}
	for _, box := range boxes {
		assert.Greater(t, box.ID, int64(0))
		assert.False(t, seen[box.ID])
		seen[box.ID] = true
		assert.Equal(t, int64(5), *box.CreatedByID)
	}
	count := repo.Count(QueryOptions{})
	assert.Equal(t, int64(5), count.ResultObject)
}

func TestBulkCreate_RollsBackEveryBatch(t *testing.T) {
	db := setupTestDB(t)
	opts := testOptions()
	opts.BulkBatchSize = 2
	repo := NewBoxRepository(db, opts)

	boxes := newBoxes("a", "b", "c", "a")
	res := repo.BulkCreate(boxes, nil)
	require.True(t, res.HasErrors())
	assert.Contains(t, res.Errors[0].Message, "bulk insert of Box rows 2-4")

	count := repo.Count(QueryOptions{IgnoreQueryFilters: true})
	require.True(t, count.Succeeded())
	assert.Equal(t, int64(0), count.ResultObject)
	for _, box := range boxes {
		assert.Zero(t, box.ID)
	}
}

func TestBulkCreate_EmptyAndNil(t *testing.T) {
	db := setupTestDB(t)
	inserts := countInserts(t, db)
	repo := NewBoxRepository(db, testOptions())

	res := repo.BulkCreate(nil, nil)
	require.True(t, res.Succeeded())
	assert.Empty(t, res.ResultObject)

	res = repo.BulkCreate([]*models.Box{nil, {Name: "only"}, nil}, nil)
	require.True(t, res.Succeeded(), res.Errors)
	assert.Len(t, res.ResultObject, 1)
	assert.Equal(t, 1, *inserts)
}

func TestBulkCreateDistinct(t *testing.T) {
	repo := NewBoxRepository(setupTestDB(t), testOptions())

	res := repo.BulkCreateDistinct(newBoxes("a", "b", "a", "c", "b"),
		func(b *models.Box) string { return b.Name }, nil)
	require.True(t, res.Succeeded(), res.Errors)
	assert.Len(t, res.ResultObject, 3)

	count := repo.Count(QueryOptions{})
	assert.Equal(t, int64(3), count.ResultObject)
}

func TestBulkCreate_LargerThanOneBatch(t *testing.T) {
	repo := NewItemRepository(setupTestDB(t), testOptions())

	items := make([]*models.Item, 0, 2500)
	for i := 0; i < 2500; i++ {
		items = append(items, &models.Item{BoxID: 1, Name: fmt.Sprintf("item-%d", i), Type: "file"})
	}
	res := repo.BulkCreate(items, nil)
	require.True(t, res.Succeeded(), res.Errors)

	count := repo.Count(QueryOptions{})
	assert.Equal(t, int64(2500), count.ResultObject)
}

func TestBulkUpdate(t *testing.T) {
	repo := NewBoxRepository(setupTestDB(t), testOptions())
	boxes := repo.BulkCreate(newBoxes("a", "b"), nil).ResultObject

	for _, box := range boxes {
		box.Name = box.Name + "2"
	}
	unsaved := &models.Box{Name: "unsaved"}
	res := repo.BulkUpdate(append(boxes, unsaved, nil), actor(8))
	require.True(t, res.Succeeded(), res.Errors)
	assert.Zero(t, unsaved.ID)

	var names []string
	require.NoError(t, repo.Query(QueryOptions{OrderBy: []string{"name"}}).Pluck("name", &names).Error)
	assert.Equal(t, []string{"a2", "b2"}, names)

	found := repo.FindByID(boxes[0].ID, false)
	require.True(t, found.Succeeded())
	require.NotNil(t, found.ResultObject.UpdatedByID)
	assert.Equal(t, int64(8), *found.ResultObject.UpdatedByID)

	assert.True(t, repo.BulkUpdate(nil, nil).ResultObject)
}

func TestBulkUpdate_NeverResurrectsDeletedRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBoxRepository(db, testOptions())
	boxes := repo.BulkCreate(newBoxes("gone", "kept"), nil).ResultObject
	inserts := countInserts(t, db)

	require.True(t, repo.Delete(boxes[0], nil, false).Succeeded())
	for _, box := range boxes {
		box.Name = box.Name + "-renamed"
	}
	res := repo.BulkUpdate(boxes, actor(2))
	require.True(t, res.Succeeded(), res.Errors)
	assert.Zero(t, *inserts)

	all := repo.FindAll(QueryOptions{IgnoreQueryFilters: true})
	require.True(t, all.Succeeded())
	require.Len(t, all.ResultObject, 1)
	assert.Equal(t, "kept-renamed", all.ResultObject[0].Name)
}

func TestBulkUpdate_WritesSoftDeletedRows(t *testing.T) {
	repo := NewBoxRepository(setupTestDB(t), testOptions())
	boxes := repo.BulkCreate(newBoxes("a"), nil).ResultObject
	require.True(t, repo.Delete(boxes[0], actor(3), true).Succeeded())

	boxes[0].Name = "a2"
	require.True(t, repo.BulkUpdate(boxes, nil).Succeeded())

	found := repo.FindByID(boxes[0].ID, true)
	require.True(t, found.Succeeded(), found.Errors)
	assert.Equal(t, "a2", found.ResultObject.Name)
	assert.True(t, found.ResultObject.IsDeleted())
}

func TestBulkDelete_SoftAndHard(t *testing.T) {
	opts := testOptions()
	opts.BulkBatchSize = 2
	repo := NewBoxRepository(setupTestDB(t), opts)
	boxes := repo.BulkCreate(newBoxes("a", "b", "c"), nil).ResultObject

	res := repo.BulkDelete(boxes, actor(4), true)
	require.True(t, res.Succeeded(), res.Errors)
	for _, box := range boxes {
		assert.True(t, box.IsDeleted())
	}
	visible := repo.Count(QueryOptions{})
	assert.Equal(t, int64(0), visible.ResultObject)

	deleted := repo.FindAll(QueryOptions{IgnoreQueryFilters: true})
	require.True(t, deleted.Succeeded())
	require.Len(t, deleted.ResultObject, 3)
	for _, box := range deleted.ResultObject {
		assert.True(t, box.IsDeleted())
		assert.Equal(t, int64(4), *box.DeletedByID)
	}

	res = repo.BulkDelete(boxes, nil, false)
	require.True(t, res.Succeeded(), res.Errors)
	all := repo.Count(QueryOptions{IgnoreQueryFilters: true})
	assert.Equal(t, int64(0), all.ResultObject)
}

func TestBulkDelete_SkipsNotDeletable(t *testing.T) {
	repo := NewLabelRepository(setupTestDB(t), testOptions())
	labels := repo.BulkCreate([]*models.Label{{Name: "a"}}, nil).ResultObject

	res := repo.BulkDelete(labels, nil, false)
	require.True(t, res.Succeeded())
	count := repo.Count(QueryOptions{})
	assert.Equal(t, int64(1), count.ResultObject)

	assert.True(t, repo.BulkDelete(nil, nil, true).ResultObject)
}
