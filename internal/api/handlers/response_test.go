package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondConflict(rec, "стол занят")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: 409, Message: "стол занят"}, body)
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var dest struct {
		PartySize int `json:"partySize"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"partySize":4,"vip":true}`))
	assert.Error(t, DecodeJSON(req, &dest))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"partySize":4}`))
	require.NoError(t, DecodeJSON(req, &dest))
	assert.Equal(t, 4, dest.PartySize)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("15")
	require.NoError(t, err)
	assert.Equal(t, int64(15), id)

	_, err = ParseID("0")
	assert.Error(t, err)

	_, err = ParseID("abc")
	assert.Error(t, err)
}
