package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	WriteJSON(w, http.StatusCreated, map[string]string{"hello": "world"})

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))

	var decoded map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&decoded))
	assert.Equal(t, "world", decoded["hello"])
}

func TestErrorHelpersShareShape(t *testing.T) {
	tests := []struct {
		name   string
		write  func(http.ResponseWriter)
		status int
		msg    string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "invalid file type") }, http.StatusBadRequest, "invalid file type"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "image not found") }, http.StatusNotFound, "image not found"},
		{"too large", func(w http.ResponseWriter) { TooLarge(w, "too big") }, http.StatusRequestEntityTooLarge, "too big"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)

			assert.Equal(t, tt.status, w.Code)

			var raw map[string]interface{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&raw))
			assert.Len(t, raw, 1)
			assert.Equal(t, tt.msg, raw["error"])
		})
	}
}

func TestInternalErrorRedactsCause(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/images/a.png", nil)

	InternalError(w, r, errors.New("open /secret/path: permission denied"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body ErrorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Contains(t, body.Error, "internal error (ref ")
	assert.NotContains(t, body.Error, "permission denied")
	assert.NotContains(t, body.Error, "/secret/path")
}
