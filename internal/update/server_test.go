package update

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/goverland-labs/goverland-grant-updates/pkg/httpsrv"
)

func newTestRouter(env *testEnv) *mux.Router {
	router := mux.NewRouter()
	NewServer(env.service).Register(router)

	return router
}

func doRequest(t *testing.T, router http.Handler, method, path, caller string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if caller != "" {
		req.Header.Set(httpsrv.CallerHeader, caller)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestUnitServerGetProposalUpdates(t *testing.T) {
	env := newTestEnv(t, baseTime)
	router := newTestRouter(env)

	u := scheduled("next", baseTime.Add(time.Hour))
	require.NoError(t, env.repo.Create(context.Background(), &u))

	rec := doRequest(t, router, http.MethodGet, "/proposals/proposal/updates", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		PublicUpdates  []Update `json:"publicUpdates"`
		PendingUpdates []Update `json:"pendingUpdates"`
		NextUpdate     *Update  `json:"nextUpdate"`
		CurrentUpdate  *Update  `json:"currentUpdate"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Empty(t, res.PublicUpdates)
	require.Len(t, res.PendingUpdates, 1)
	require.Equal(t, "next", res.NextUpdate.ID)
	require.Nil(t, res.CurrentUpdate)
}

func TestUnitServerStatusCodes(t *testing.T) {
	env := newTestEnv(t, baseTime)
	router := newTestRouter(env)
	ctx := context.Background()

	overdue := scheduled("overdue", baseTime.Add(-DefaultLateThreshold-time.Hour))
	require.NoError(t, env.repo.Create(ctx, &overdue))

	pending := scheduled("pending", baseTime.Add(time.Hour))
	require.NoError(t, env.repo.Create(ctx, &pending))

	for name, tc := range map[string]struct {
		method string
		path   string
		caller string
		body   any
		code   int
	}{
		"unknown update": {
			method: http.MethodGet,
			path:   "/updates/unknown",
			code:   http.StatusNotFound,
		},
		"existing update": {
			method: http.MethodGet,
			path:   "/updates/pending",
			code:   http.StatusOK,
		},
		"submit is not on time": {
			method: http.MethodPatch,
			path:   "/proposals/proposal/update",
			caller: authorAddress,
			body:   submitRequest{ID: "overdue", Content: validContent(authorAddress)},
			code:   http.StatusBadRequest,
		},
		"submit without id": {
			method: http.MethodPatch,
			path:   "/proposals/proposal/update",
			caller: authorAddress,
			body:   submitRequest{Content: validContent(authorAddress)},
			code:   http.StatusBadRequest,
		},
		"submit by stranger": {
			method: http.MethodPatch,
			path:   "/proposals/proposal/update",
			caller: strangerAddress,
			body:   submitRequest{ID: "pending", Content: validContent(strangerAddress)},
			code:   http.StatusForbidden,
		},
		"delete pending update": {
			method: http.MethodDelete,
			path:   "/proposals/proposal/update",
			caller: authorAddress,
			body:   deleteRequest{ID: "pending"},
			code:   http.StatusBadRequest,
		},
		"funds of unknown proposal": {
			method: http.MethodGet,
			path:   "/proposals/unknown/updates/funds",
			code:   http.StatusNotFound,
		},
	} {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(t, router, tc.method, tc.path, tc.caller, tc.body)
			require.Equal(t, tc.code, rec.Code, rec.Body.String())
		})
	}
}

func TestUnitServerSubmitAndCreate(t *testing.T) {
	env := newTestEnv(t, baseTime)
	router := newTestRouter(env)

	u := scheduled("pending", baseTime.Add(time.Hour))
	require.NoError(t, env.repo.Create(context.Background(), &u))

	rec := doRequest(t, router, http.MethodPatch, "/proposals/proposal/update", authorAddress,
		submitRequest{ID: "pending", Content: validContent(authorAddress)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var submitted Update
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitted))
	require.Equal(t, StatusDone, submitted.Status)

	rec = doRequest(t, router, http.MethodPost, "/proposals/proposal/update", coauthorAddress, validContent(coauthorAddress))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodDelete, "/proposals/proposal/update", authorAddress, deleteRequest{ID: "pending"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestUnitServerCannotSchedule(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, baseTime)
	router := newTestRouter(env)

	rec := doRequest(t, router, http.MethodPost, "/proposals/no-vesting/updates/schedule", "",
		GrantEnactedEvent{EnactedAt: baseTime, Months: 1})
	require.Equal(t, http.StatusNotFound, rec.Code)

	stored, err := env.repo.FindByProposal(ctx, "no-vesting")
	require.NoError(t, err)
	require.Empty(t, stored)

	c := NewConsumer(nil, env.service, "grant_updates")
	require.NoError(t, c.handle(ctx, GrantEnactedEvent{ProposalID: "no-vesting", EnactedAt: baseTime, Months: 12}))

	stored, err = env.repo.FindByProposal(ctx, "no-vesting")
	require.NoError(t, err)
	require.Len(t, stored, 12)
}
