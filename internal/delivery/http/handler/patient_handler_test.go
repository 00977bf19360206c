package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/usecase"
	"github.com/deringirish/PHMS/pkg/response"
	"github.com/deringirish/PHMS/pkg/validator"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPatientHandlerCreatePatient(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		uc := new(mockPatientUsecase)
		h := NewPatientHandler(uc, validator.NewValidator())

		uc.On("CreatePatient", mock.Anything, mock.MatchedBy(func(req *dto.CreatePatientRequest) bool {
			return req.FullName == "Priya Sharma" && req.Gender == "Female"
		})).Return(&dto.PatientResponse{ID: uuid.New(), FullName: "Priya Sharma"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(`{"full_name":"Priya Sharma","gender":"Female","age":34}`))
		rec := httptest.NewRecorder()
		h.CreatePatient(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, decodeResponse(t, rec).Success)
		uc.AssertExpectations(t)
	})

	t.Run("Missing Name Fails Validation", func(t *testing.T) {
		uc := new(mockPatientUsecase)
		h := NewPatientHandler(uc, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(`{"gender":"Female"}`))
		rec := httptest.NewRecorder()
		h.CreatePatient(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeResponse(t, rec)
		assert.Equal(t, "Validation failed", body.Message)
		assert.Contains(t, body.Error, "full_name")
		uc.AssertNotCalled(t, "CreatePatient", mock.Anything, mock.Anything)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		h := NewPatientHandler(new(mockPatientUsecase), validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		h.CreatePatient(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", decodeResponse(t, rec).Message)
	})
}

func TestPatientHandlerGetPatient(t *testing.T) {
	t.Run("Invalid ID", func(t *testing.T) {
		h := NewPatientHandler(new(mockPatientUsecase), validator.NewValidator())

		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/patients/abc", nil), map[string]string{"id": "abc"})
		rec := httptest.NewRecorder()
		h.GetPatient(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		uc := new(mockPatientUsecase)
		h := NewPatientHandler(uc, validator.NewValidator())
		id := uuid.New()

		uc.On("GetPatientDetail", mock.Anything, id).Return(nil, usecase.ErrPatientNotFound)

		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/patients/"+id.String(), nil), map[string]string{"id": id.String()})
		rec := httptest.NewRecorder()
		h.GetPatient(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Patient not found", decodeResponse(t, rec).Message)
	})

	t.Run("Unexpected Error", func(t *testing.T) {
		uc := new(mockPatientUsecase)
		h := NewPatientHandler(uc, validator.NewValidator())
		id := uuid.New()

		uc.On("GetPatientDetail", mock.Anything, id).Return(nil, errors.New("connection reset"))

		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": id.String()})
		rec := httptest.NewRecorder()
		h.GetPatient(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestPatientHandlerListPatients(t *testing.T) {
	uc := new(mockPatientUsecase)
	h := NewPatientHandler(uc, validator.NewValidator())

	uc.On("ListPatients", mock.Anything, "sharma").Return(&dto.PatientListResponse{
		Patients: []dto.PatientResponse{{ID: uuid.New(), FullName: "Amit Sharma"}},
		Total:    1,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients?search=sharma", nil)
	rec := httptest.NewRecorder()
	h.ListPatients(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestPatientHandlerDeletePatient(t *testing.T) {
	uc := new(mockPatientUsecase)
	h := NewPatientHandler(uc, validator.NewValidator())
	id := uuid.New()

	uc.On("DeletePatient", mock.Anything, id).Return(nil)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/", nil), map[string]string{"id": id.String()})
	rec := httptest.NewRecorder()
	h.DeletePatient(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Patient deleted successfully", decodeResponse(t, rec).Message)
}
