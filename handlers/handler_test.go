package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UmangSachdeva/StaffPortal/logging"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthz(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		state  string
	}{
		{"healthy", nil, http.StatusOK, "ok"},
		{"store down", errors.New("connection refused"), http.StatusServiceUnavailable, "degraded"},
	}

	for _, tc := range cases {
		h := New(nil, nil, nil, stubPinger{tc.err}, logging.Discard())

		rec := httptest.NewRecorder()
		h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, tc.status, rec.Code, tc.name)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, tc.state, body["status"], tc.name)
		require.NotContains(t, rec.Body.String(), "connection refused")
	}
}

func TestHandlersRequireIdentity(t *testing.T) {
	h := New(nil, nil, nil, nil, logging.Discard())

	for name, fn := range map[string]http.HandlerFunc{
		"create":  h.CreateTransaction,
		"list":    h.GetTransactions,
		"get":     h.GetTransaction,
		"review":  h.ReviewTransaction,
		"logout":  h.Logout,
		"staff":   h.GetEmployees,
		"destroy": h.DeleteStaffMember,
	} {
		rec := httptest.NewRecorder()
		fn(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}
