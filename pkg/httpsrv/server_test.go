package httpsrv

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func TestUnitDecodeBody(t *testing.T) {
	var dst struct {
		ID string `json:"id"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":"abc"}`))
	require.NoError(t, DecodeBody(httptest.NewRecorder(), req, &dst))
	require.Equal(t, "abc", dst.ID)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":`))
	require.Error(t, DecodeBody(httptest.NewRecorder(), req, &dst))

	big := `{"id":"` + strings.Repeat("a", maxBodySize) + `"}`
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	require.Error(t, DecodeBody(httptest.NewRecorder(), req, &dst))
}

func TestUnitWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusForbidden, "unauthorized")

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
}

func TestUnitMetricsMiddleware(t *testing.T) {
	router := mux.NewRouter()
	router.Use(MetricsMiddleware)
	router.HandleFunc("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "0xabc", Caller(r))
		WriteJSON(w, http.StatusCreated, mux.Vars(r)["id"])
	})

	req := httptest.NewRequest(http.MethodGet, "/items/1", nil)
	req.Header.Set(CallerHeader, "0xabc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `"1"`, rec.Body.String())
}
