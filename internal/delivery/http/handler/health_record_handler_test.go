package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/usecase"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthRecordHandlerCreateRecord(t *testing.T) {
	t.Run("Timestamp Split From Values", func(t *testing.T) {
		uc := new(mockHealthRecordUsecase)
		h := NewHealthRecordHandler(uc)
		patientID := uuid.New()

		uc.On("CreateManualRecord", mock.Anything, patientID, mock.MatchedBy(func(in *dto.RecordInput) bool {
			_, hasTimestamp := in.Values["timestamp"]
			return in.Timestamp == "2024-03-01T09:30" && !hasTimestamp && in.Values["bpSystolic"] == float64(120)
		})).Return(&dto.HealthRecordResponse{ID: uuid.New(), PatientID: patientID}, nil)

		body := `{"bpSystolic":120,"notes":"after walk","timestamp":"2024-03-01T09:30"}`
		req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), map[string]string{"id": patientID.String()})
		rec := httptest.NewRecorder()
		h.CreateRecord(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		uc.AssertExpectations(t)
	})

	t.Run("No Metrics", func(t *testing.T) {
		uc := new(mockHealthRecordUsecase)
		h := NewHealthRecordHandler(uc)
		patientID := uuid.New()

		uc.On("CreateManualRecord", mock.Anything, patientID, mock.Anything).Return(nil, usecase.ErrMissingMetric)

		req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"notes":"only notes"}`)), map[string]string{"id": patientID.String()})
		rec := httptest.NewRecorder()
		h.CreateRecord(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Please enter at least one health metric", decodeResponse(t, rec).Message)
	})
}

func TestHealthRecordHandlerListRecords(t *testing.T) {
	t.Run("Date Range Covers Whole End Day", func(t *testing.T) {
		uc := new(mockHealthRecordUsecase)
		h := NewHealthRecordHandler(uc)
		patientID := uuid.New()

		uc.On("ListRecords", mock.Anything, patientID, mock.MatchedBy(func(f *entity.RecordFilter) bool {
			return f.From != nil && f.To != nil &&
				f.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
				f.To.After(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC))
		})).Return(&dto.HealthRecordListResponse{}, nil)

		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/?from=2024-01-01&to=2024-01-31", nil), map[string]string{"id": patientID.String()})
		rec := httptest.NewRecorder()
		h.ListRecords(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Malformed Date", func(t *testing.T) {
		h := NewHealthRecordHandler(new(mockHealthRecordUsecase))

		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/?from=01-01-2024", nil), map[string]string{"id": uuid.NewString()})
		rec := httptest.NewRecorder()
		h.ListRecords(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthRecordHandlerGetChartHTML(t *testing.T) {
	patientID := uuid.New()
	vars := map[string]string{"id": patientID.String(), "group": "vitals"}

	t.Run("Rendered Page", func(t *testing.T) {
		uc := new(mockHealthRecordUsecase)
		h := NewHealthRecordHandler(uc)
		uc.On("GetChartHTML", mock.Anything, patientID, "vitals").Return([]byte("<html></html>"), nil)

		rec := httptest.NewRecorder()
		h.GetChartHTML(rec, mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), vars))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "<html></html>", rec.Body.String())
	})

	t.Run("Empty Group", func(t *testing.T) {
		uc := new(mockHealthRecordUsecase)
		h := NewHealthRecordHandler(uc)
		uc.On("GetChartHTML", mock.Anything, patientID, "vitals").Return(nil, usecase.ErrNoChartData)

		rec := httptest.NewRecorder()
		h.GetChartHTML(rec, mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), vars))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestHealthRecordHandlerDeleteRecord(t *testing.T) {
	uc := new(mockHealthRecordUsecase)
	h := NewHealthRecordHandler(uc)
	recordID, patientID := uuid.New(), uuid.New()

	uc.On("DeleteRecord", mock.Anything, recordID).Return(patientID, nil)

	rec := httptest.NewRecorder()
	h.DeleteRecord(rec, mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/", nil), map[string]string{"recordId": recordID.String()}))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	data, ok := body.Data.(map[string]interface{})
	if assert.True(t, ok) {
		assert.Equal(t, patientID.String(), data["patient_id"])
	}
}
