package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/deringirish/PHMS/internal/domain/entity"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var errInvalidDateRange = errors.New("invalid date range")

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// pathUUID reads a UUID route variable.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

// recordFilter reads optional from/to query dates (YYYY-MM-DD). The to date
// is inclusive of the whole day.
func recordFilter(r *http.Request) (*entity.RecordFilter, error) {
	filter := &entity.RecordFilter{}
	query := r.URL.Query()

	if from := strings.TrimSpace(query.Get("from")); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, errInvalidDateRange
		}
		filter.From = &t
	}
	if to := strings.TrimSpace(query.Get("to")); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, errInvalidDateRange
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	return filter, nil
}

// recordPayload splits a raw record body into metric values and the
// optional timestamp.
func recordPayload(r *http.Request) (map[string]interface{}, string, error) {
	var body map[string]interface{}
	if err := decodeJSON(r, &body); err != nil {
		return nil, "", err
	}
	timestamp, _ := body["timestamp"].(string)
	delete(body, "timestamp")
	return body, timestamp, nil
}
