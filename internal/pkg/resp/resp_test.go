package resp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"batepapo/internal/pkg/errs"
)

func TestRespondError_ValidationBody(t *testing.T) {
	req := require.New(t)
	rec := httptest.NewRecorder()

	RespondError(rec, httptest.NewRequest(http.MethodPost, "/", nil),
		errs.NewValidationError([]string{`"to" is required`, `"text" is required`}))

	req.Equal(http.StatusUnprocessableEntity, rec.Code)
	req.Equal("application/json", rec.Header().Get("Content-Type"))

	var body []string
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	req.Equal([]string{`"to" is required`, `"text" is required`}, body)
}

func TestRespondError_BareStatus(t *testing.T) {
	req := require.New(t)
	rec := httptest.NewRecorder()

	RespondError(rec, httptest.NewRequest(http.MethodPost, "/", nil), errs.NewError(errs.ErrParticipantExists))

	req.Equal(http.StatusConflict, rec.Code)
	req.Empty(rec.Body.Bytes())
}

func TestRespondError_NilIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRespondSuccess_EncodesPayload(t *testing.T) {
	req := require.New(t)
	rec := httptest.NewRecorder()

	RespondSuccess(rec, httptest.NewRequest(http.MethodGet, "/", nil), []map[string]string{{"name": "alice"}})

	req.Equal(http.StatusOK, rec.Code)
	req.JSONEq(`[{"name":"alice"}]`, rec.Body.String())
}
