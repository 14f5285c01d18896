package catalog

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/mytheresa/product-form/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// --- Mock Repo ---

type MockProductRepo struct {
	SourceProducts []models.Product
	Err            error

	// Fields to capture call arguments
	lastCalledOffset int
	lastCalledLimit  int
	lastCalledID     int64
}

func (m *MockProductRepo) GetPage(offset, limit int) ([]models.Product, int) {
	m.lastCalledOffset = offset
	m.lastCalledLimit = limit

	total := len(m.SourceProducts)
	start := min(offset, total)
	end := start + min(limit, total-start)
	return m.SourceProducts[start:end], total
}

func (m *MockProductRepo) GetByID(id int64) (*models.Product, error) {
	m.lastCalledID = id

	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.SourceProducts {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, models.ErrProductNotFound
}

var mockProducts = []models.Product{
	{ID: 1, Name: "Pen", Price: decimal.NewFromFloat(1.5), Description: "blue"},
	{ID: 2, Name: "Ink", Price: decimal.NewFromFloat(4)},
	{ID: 3, Name: "Pad", Price: decimal.NewFromFloat(2.25)},
}

// --- Tests: GET /api/products ---

func TestHandleGet(t *testing.T) {
	testCases := []struct {
		name           string
		query          string
		expectedOffset int
		expectedLimit  int
		expectedIDs    []int64
	}{
		{
			name:           "Defaults",
			query:          "",
			expectedOffset: 0,
			expectedLimit:  10,
			expectedIDs:    []int64{1, 2, 3},
		},
		{
			name:           "Offset and limit",
			query:          "?offset=1&limit=1",
			expectedOffset: 1,
			expectedLimit:  1,
			expectedIDs:    []int64{2},
		},
		{
			name:           "Limit clamped to 1",
			query:          "?limit=0",
			expectedOffset: 0,
			expectedLimit:  1,
			expectedIDs:    []int64{1},
		},
		{
			name:           "Limit clamped to 100",
			query:          "?limit=500",
			expectedOffset: 0,
			expectedLimit:  100,
			expectedIDs:    []int64{1, 2, 3},
		},
		{
			name:           "Invalid offset ignored",
			query:          "?offset=-3",
			expectedOffset: 0,
			expectedLimit:  10,
			expectedIDs:    []int64{1, 2, 3},
		},
		{
			name:           "Offset past the end",
			query:          "?offset=10",
			expectedOffset: 10,
			expectedLimit:  10,
			expectedIDs:    []int64{},
		},
		{
			name:           "Offset at max int",
			query:          "?offset=" + strconv.Itoa(math.MaxInt) + "&limit=10",
			expectedOffset: math.MaxInt,
			expectedLimit:  10,
			expectedIDs:    []int64{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := &MockProductRepo{SourceProducts: mockProducts}
			handler := NewCatalogHandler(mockRepo)
			req := httptest.NewRequest("GET", "/api/products"+tc.query, nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGet(rec, req)

			// Assert
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.expectedOffset, mockRepo.lastCalledOffset)
			assert.Equal(t, tc.expectedLimit, mockRepo.lastCalledLimit)

			var resp Response
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, 3, resp.Total)
			ids := make([]int64, len(resp.Products))
			for i, p := range resp.Products {
				ids[i] = p.ID
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

func TestHandleGetWithRepository(t *testing.T) {
	repo := models.NewProductsRepository()
	for _, p := range mockProducts {
		assert.NoError(t, repo.Create(p))
	}
	handler := NewCatalogHandler(repo)
	req := httptest.NewRequest("GET", "/api/products?offset="+strconv.Itoa(math.MaxInt)+"&limit=10", nil)
	rec := httptest.NewRecorder()

	handler.HandleGet(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp Response
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Total)
	assert.Empty(t, resp.Products)
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()

	writeJSON(rec, http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Header().Get("Content-Type"), "application/json")
}

// --- Tests: GET /api/products/{id} ---

func TestHandleGetProduct(t *testing.T) {
	testCases := []struct {
		name               string
		productID          string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:      "Success",
			productID: "1",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: mockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Product
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, int64(1), resp.ID)
				assert.Equal(t, "Pen", resp.Name)
				assert.Equal(t, 1.5, resp.Price)
				assert.Equal(t, "blue", resp.Description)
			},
		},
		{
			name:      "Product not found",
			productID: "99",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: mockProducts}
			},
			expectedStatusCode: http.StatusNotFound,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
				assert.Equal(t, "Product not found", errResp["error"])
			},
		},
		{
			name:      "Malformed id",
			productID: "abc",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: mockProducts}
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:      "Repository internal error",
			productID: "1",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Err: errors.New("boom")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
				assert.Equal(t, "Failed to retrieve product", errResp["error"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewCatalogHandler(mockRepo)
			req := httptest.NewRequest("GET", "/api/products/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGetProduct(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}
