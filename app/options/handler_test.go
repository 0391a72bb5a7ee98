package options

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mytheresa/go-assortment/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Mock Repository ---

type MockDictionary struct {
	Options    []*models.Option
	Properties []*models.Property
	Err        error
}

func (m *MockDictionary) GetAllOptions() ([]*models.Option, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Options, nil
}

func (m *MockDictionary) GetAllProperties() ([]*models.Property, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Properties, nil
}

// --- Tests ---

func TestHandleGetOptions(t *testing.T) {
	testCases := []struct {
		name               string
		repo               *MockDictionary
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Options with values",
			repo: &MockDictionary{Options: []*models.Option{
				{ID: 1, Name: "size", Presentation: "Size", Values: []*models.OptionValue{{ID: 10, Value: "S"}, {ID: 11, Value: "M"}}},
				{ID: 2, Name: "color", Presentation: "Color"},
			}},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []OptionResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				require.Len(t, resp, 2)
				assert.Equal(t, "size", resp[0].Name)
				assert.Equal(t, []ValueResponse{{ID: 10, Value: "S"}, {ID: 11, Value: "M"}}, resp[0].Values)
				assert.Empty(t, resp[1].Values)
			},
		},
		{
			name:               "Empty dictionary",
			repo:               &MockDictionary{},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `[]`, rec.Body.String())
			},
		},
		{
			name:               "Repository error",
			repo:               &MockDictionary{Err: errors.New("db down")},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"error":"failed to fetch options"}`, rec.Body.String())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			handler := NewOptionHandler(tc.repo, zap.NewNop())
			req := httptest.NewRequest("GET", "/options", nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGetOptions(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			tc.checkResponse(t, rec)
		})
	}
}

func TestHandleGetProperties(t *testing.T) {
	// Arrange
	repo := &MockDictionary{Properties: []*models.Property{{ID: 1, Name: "material", Presentation: "Material"}}}
	handler := NewOptionHandler(repo, zap.NewNop())
	req := httptest.NewRequest("GET", "/properties", nil)
	rec := httptest.NewRecorder()

	// Act
	handler.HandleGetProperties(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"material","presentation":"Material"}]`, rec.Body.String())
}

func TestHandleGetPropertiesError(t *testing.T) {
	handler := NewOptionHandler(&MockDictionary{Err: errors.New("db down")}, zap.NewNop())
	rec := httptest.NewRecorder()

	handler.HandleGetProperties(rec, httptest.NewRequest("GET", "/properties", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to fetch properties"}`, rec.Body.String())
}
