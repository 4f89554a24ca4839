package respond

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteNotFound_Body(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteNotFound(rr, "Estudo não encontrado")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Estudo não encontrado","code":404}`, rr.Body.String())
}

func TestWriteBadRequest_IncludesDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteBadRequest(rr, "JSON inválido", "unexpected EOF")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"JSON inválido","code":400,"message":"unexpected EOF"}`, rr.Body.String())
}
