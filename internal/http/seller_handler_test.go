package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"booksale/internal/entity"
	"booksale/internal/store/mocks"
	"booksale/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSeller = entity.Seller{
	ID:        1,
	FirstName: "Ivan",
	LastName:  "Petrov",
	EMail:     "ivan.petrov@example.com",
	Password:  "super-secret",
	Books:     []entity.Book{},
}

func validRegisterBody() map[string]any {
	return map[string]any{
		"first_name": "Ivan",
		"last_name":  "Petrov",
		"e_mail":     "ivan.petrov@example.com",
		"password":   "super-secret",
	}
}

func TestSellerHandler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockSellerRepository(ctrl)
	handler := NewSellerHandler(mockRepo)

	tests := []struct {
		name           string
		body           map[string]any
		setupMock      func()
		expectedStatus int
	}{
		{
			name: "success",
			body: validRegisterBody(),
			setupMock: func() {
				mockRepo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *entity.Seller) error {
						s.ID = 1
						s.Books = []entity.Book{}
						return nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing first name",
			body: map[string]any{
				"last_name": "Petrov",
				"e_mail":    "ivan.petrov@example.com",
				"password":  "super-secret",
			},
			setupMock:      func() {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "malformed email",
			body: func() map[string]any {
				b := validRegisterBody()
				b["e_mail"] = "not-an-email"
				return b
			}(),
			setupMock:      func() {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "email already taken",
			body: validRegisterBody(),
			setupMock: func() {
				mockRepo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(usecase.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "server error",
			body: validRegisterBody(),
			setupMock: func() {
				mockRepo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(context.DeadlineExceeded)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			w := httptest.NewRecorder()
			r := newJSONRequest(t, http.MethodPost, "/seller/", tt.body)

			handler.Register(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestSellerHandler_Register_ResponseShape(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockSellerRepository(ctrl)
	handler := NewSellerHandler(mockRepo)

	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *entity.Seller) error {
			s.ID = 42
			s.Books = []entity.Book{}
			return nil
		})

	w := httptest.NewRecorder()
	handler.Register(w, newJSONRequest(t, http.MethodPost, "/seller/", validRegisterBody()))

	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))

	assert.Equal(t, float64(42), body["id"])
	assert.Equal(t, "Ivan", body["first_name"])
	assert.Equal(t, "ivan.petrov@example.com", body["e_mail"])
	assert.Equal(t, []any{}, body["books"])
	// The password must never appear on the wire.
	_, hasPassword := body["password"]
	assert.False(t, hasPassword)
}

func TestSellerHandler_Register_BadJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	handler := NewSellerHandler(mocks.NewMockSellerRepository(ctrl))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/seller/", nil)
	handler.Register(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSellerHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockSellerRepository(ctrl)
	handler := NewSellerHandler(mockRepo)

	withBooks := testSeller
	withBooks.Books = []entity.Book{{ID: 7, Title: "Go in Action", Author: "W. Kennedy", Year: 2022, Pages: 300, SellerID: 1}}

	mockRepo.EXPECT().
		List(gomock.Any()).
		Return([]entity.Seller{withBooks}, nil)

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/seller/", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body, 1)

	books, ok := body[0]["books"].([]any)
	require.True(t, ok)
	require.Len(t, books, 1)
	book := books[0].(map[string]any)
	assert.Equal(t, "Go in Action", book["title"])
	assert.Equal(t, float64(1), book["seller_id"])
}

func TestSellerHandler_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockSellerRepository(ctrl)
	handler := NewSellerHandler(mockRepo)

	tests := []struct {
		name           string
		id             string
		setupMock      func()
		expectedStatus int
		emptyBody      bool
	}{
		{
			name: "success",
			id:   "1",
			setupMock: func() {
				mockRepo.EXPECT().
					GetByID(gomock.Any(), int64(1)).
					Return(testSeller, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			id:   "999",
			setupMock: func() {
				mockRepo.EXPECT().
					GetByID(gomock.Any(), int64(999)).
					Return(entity.Seller{}, usecase.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			emptyBody:      true,
		},
		{
			name:           "non-numeric id",
			id:             "abc",
			setupMock:      func() {},
			expectedStatus: http.StatusNotFound,
			emptyBody:      true,
		},
		{
			name: "server error",
			id:   "1",
			setupMock: func() {
				mockRepo.EXPECT().
					GetByID(gomock.Any(), int64(1)).
					Return(entity.Seller{}, context.DeadlineExceeded)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/seller/"+tt.id, nil)
			r.SetPathValue("id", tt.id)

			handler.GetByID(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.emptyBody {
				assert.Empty(t, w.Body.Bytes())
			}
		})
	}
}

func TestSellerHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockSellerRepository(ctrl)
	handler := NewSellerHandler(mockRepo)

	updateBody := map[string]any{
		"first_name": "Anna",
		"last_name":  "Petrova",
		"e_mail":     "anna.petrova@example.com",
	}

	tests := []struct {
		name           string
		id             string
		body           map[string]any
		setupMock      func()
		expectedStatus int
	}{
		{
			name: "success",
			id:   "1",
			body: updateBody,
			setupMock: func() {
				updated := entity.Seller{
					ID:        1,
					FirstName: "Anna",
					LastName:  "Petrova",
					EMail:     "anna.petrova@example.com",
					Books:     []entity.Book{{ID: 7, Title: "Go in Action", Author: "W. Kennedy", Year: 2022, Pages: 300, SellerID: 1}},
				}
				mockRepo.EXPECT().
					Update(gomock.Any(), int64(1), "Anna", "Petrova", "anna.petrova@example.com").
					Return(updated, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			id:   "999",
			body: updateBody,
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), int64(999), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(entity.Seller{}, usecase.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "email taken",
			id:   "1",
			body: updateBody,
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), int64(1), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(entity.Seller{}, usecase.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "validation error",
			id:   "1",
			body: map[string]any{
				"first_name": "Anna",
				"last_name":  "Petrova",
				"e_mail":     "broken",
			},
			setupMock:      func() {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			w := httptest.NewRecorder()
			r := newJSONRequest(t, http.MethodPut, "/seller/"+tt.id, tt.body)
			r.SetPathValue("id", tt.id)

			handler.Update(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestSellerHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockSellerRepository(ctrl)
	handler := NewSellerHandler(mockRepo)

	tests := []struct {
		name           string
		id             string
		setupMock      func()
		expectedStatus int
	}{
		{
			name: "success",
			id:   "1",
			setupMock: func() {
				mockRepo.EXPECT().
					Delete(gomock.Any(), int64(1)).
					Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "not found",
			id:   "999",
			setupMock: func() {
				mockRepo.EXPECT().
					Delete(gomock.Any(), int64(999)).
					Return(usecase.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodDelete, "/seller/"+tt.id, nil)
			r.SetPathValue("id", tt.id)

			handler.Delete(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Empty(t, w.Body.Bytes())
		})
	}
}
