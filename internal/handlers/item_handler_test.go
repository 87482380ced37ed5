package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Repokit/internal/models"
	"Repokit/internal/result"
	"Repokit/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) CreateItem(item *models.Item, actorID *int64) *result.Result[*models.Item] {
	args := m.Called(item, actorID)
	return args.Get(0).(*result.Result[*models.Item])
}

func (m *MockItemService) CreateItems(items []*models.Item, actorID *int64) *result.Result[[]*models.Item] {
	args := m.Called(items, actorID)
	return args.Get(0).(*result.Result[[]*models.Item])
}

func (m *MockItemService) ImportItems(items []*models.Item, actorID *int64) *result.Result[[]*models.Item] {
	args := m.Called(items, actorID)
	return args.Get(0).(*result.Result[[]*models.Item])
}

func (m *MockItemService) GetItemByID(id int64, includeDeleted bool) *result.Result[*models.Item] {
	args := m.Called(id, includeDeleted)
	return args.Get(0).(*result.Result[*models.Item])
}

func (m *MockItemService) GetItemsByBox(boxID int64, includeDeleted bool) *result.Result[[]*models.Item] {
	args := m.Called(boxID, includeDeleted)
	return args.Get(0).(*result.Result[[]*models.Item])
}

func (m *MockItemService) UpdateItem(item *models.Item, actorID *int64) *result.Result[bool] {
	args := m.Called(item, actorID)
	return args.Get(0).(*result.Result[bool])
}

func (m *MockItemService) UpdateItems(items []*models.Item, actorID *int64) *result.Result[bool] {
	args := m.Called(items, actorID)
	return args.Get(0).(*result.Result[bool])
}

func (m *MockItemService) DeleteItem(id int64, actorID *int64, hard bool) *result.Result[bool] {
	args := m.Called(id, actorID, hard)
	return args.Get(0).(*result.Result[bool])
}

func (m *MockItemService) DeleteItems(items []*models.Item, actorID *int64, hard bool) *result.Result[bool] {
	args := m.Called(items, actorID, hard)
	return args.Get(0).(*result.Result[bool])
}

func (m *MockItemService) RestoreItem(id int64) *result.Result[bool] {
	args := m.Called(id)
	return args.Get(0).(*result.Result[bool])
}

func (m *MockItemService) ListItems(q services.ListQuery) *result.Result[*services.Page[models.Item]] {
	args := m.Called(q)
	return args.Get(0).(*result.Result[*services.Page[models.Item]])
}

func (m *MockItemService) PurgeDeleted(before time.Time) *result.Result[int] {
	args := m.Called(before)
	return args.Get(0).(*result.Result[int])
}

func TestCreateItem(t *testing.T) {
	app := fiber.New()
	mockService := new(MockItemService)
	handler := NewItemHandler(mockService)

	app.Post("/items", handler.CreateItem)

	tests := []struct {
		name         string
		input        map[string]interface{}
		expectedCode int
		setupMock    func()
	}{
		{
			name: "Create file item",
			input: map[string]interface{}{
				"name":       "test.txt",
				"type":       "file",
				"size":       1024,
				"box_id":     1,
				"properties": map[string]interface{}{"key": "value"},
			},
			expectedCode: http.StatusCreated,
			setupMock: func() {
				mockService.On("CreateItem", mock.MatchedBy(func(item *models.Item) bool {
					return item.Name == "test.txt" && item.Type == "file" && item.Size == 1024 && item.BoxID == 1
				}), (*int64)(nil)).Return(result.New(&models.Item{Base: models.Base{ID: 9}})).Once()
			},
		},
		{
			name: "Missing box",
			input: map[string]interface{}{
				"name":   "orphan.txt",
				"type":   "file",
				"box_id": 42,
			},
			expectedCode: http.StatusNotFound,
			setupMock: func() {
				mockService.On("CreateItem", mock.MatchedBy(func(item *models.Item) bool {
					return item.BoxID == 42
				}), (*int64)(nil)).Return(result.Fail[*models.Item](result.EntityNotFound, "No Box identified by 42 was found")).Once()
			},
		},
		{
			name:         "Missing name",
			input:        map[string]interface{}{"box_id": 1},
			expectedCode: http.StatusBadRequest,
			setupMock:    func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()
			body, err := json.Marshal(tt.input)
			assert.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.StatusCode)
		})
	}
	mockService.AssertExpectations(t)
}

func TestCreateItems(t *testing.T) {
	app := fiber.New()
	mockService := new(MockItemService)
	handler := NewItemHandler(mockService)

	app.Post("/items/bulk", handler.CreateItems)

	mockService.On("ImportItems", mock.MatchedBy(func(items []*models.Item) bool {
		return len(items) == 2
	}), int64Ptr(3)).Return(result.Fail[[]*models.Item]("PgError", "duplicate key value violates unique constraint"))

	req := httptest.NewRequest(http.MethodPost, "/items/bulk",
		bytes.NewReader([]byte(`[{"name":"a","box_id":1},{"name":"b","box_id":1}]`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "3")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	errs := decodeErrors(t, resp)
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "PgError", errs[0].Key)
	}
	mockService.AssertExpectations(t)
}

func TestUpdateItem(t *testing.T) {
	app := fiber.New()
	mockService := new(MockItemService)
	handler := NewItemHandler(mockService)

	app.Put("/items/:id", handler.UpdateItem)

	existing := &models.Item{Base: models.Base{ID: 5}, BoxID: 1, Name: "old.txt", Type: "file"}
	mockService.On("GetItemByID", int64(5), false).Return(result.New(existing))
	mockService.On("UpdateItem", mock.MatchedBy(func(item *models.Item) bool {
		return item.ID == 5 && item.Name == "new.txt" && item.Type == "file"
	}), (*int64)(nil)).Return(result.New(true))
	mockService.On("GetItemByID", int64(6), false).
		Return(result.Fail[*models.Item](result.EntityNotFound, "No Item identified by 6 was found"))

	req := httptest.NewRequest(http.MethodPut, "/items/5", bytes.NewReader([]byte(`{"name":"new.txt"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPut, "/items/6", bytes.NewReader([]byte(`{"name":"new.txt"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	mockService.AssertExpectations(t)
}

func TestDeleteAndRestoreItem(t *testing.T) {
	app := fiber.New()
	mockService := new(MockItemService)
	handler := NewItemHandler(mockService)

	app.Delete("/items/:id", handler.DeleteItem)
	app.Post("/items/:id/restore", handler.RestoreItem)

	mockService.On("DeleteItem", int64(1), (*int64)(nil), false).Return(result.New(true))
	mockService.On("RestoreItem", int64(1)).Return(result.New(true))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/items/1", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/items/1/restore", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockService.AssertExpectations(t)
}

func TestListItems(t *testing.T) {
	app := fiber.New()
	mockService := new(MockItemService)
	handler := NewItemHandler(mockService)

	app.Get("/items", handler.ListItems)
	app.Get("/boxes/:id/items", handler.ListBoxItems)

	page := &services.Page[models.Item]{Total: 1, Items: []*models.Item{{Name: "a"}}}
	mockService.On("ListItems", services.ListQuery{Filter: "box_id eq 1", Take: intPtr(5)}).Return(result.New(page))
	mockService.On("GetItemsByBox", int64(1), true).Return(result.New([]*models.Item{{Name: "a"}}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items?filter=box_id%20eq%201&take=5", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boxes/1/items?deleted=true", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockService.AssertExpectations(t)
}
