package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crm-relay.io/relay/internal/config"
	"crm-relay.io/relay/internal/domain"
	apperrors "crm-relay.io/relay/internal/pkg/errors"
	"crm-relay.io/relay/internal/pkg/logger"
)

func init() {
	_ = logger.Init("error", "json")
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.BackendConfig{
		BaseURL:      srv.URL,
		Timeout:      5 * time.Second,
		MaxIdleConns: 4,
	})
}

func TestLeadClient_Get(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/leads/42", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		_ = json.NewEncoder(w).Encode(domain.Lead{ID: 42, Title: "Acme rollout", Status: "qualified"})
	}))

	lead, err := client.Leads().Get(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, int64(42), lead.ID)
	require.Equal(t, "qualified", lead.Status)
}

func TestClient_NotFoundMapsToSentinel(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := client.Deals().Get(context.Background(), 7)
	require.Error(t, err)
	require.True(t, apperrors.IsNotFound(err))
}

func TestClient_ServerErrorIsStatusError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"INTERNAL"}`, http.StatusInternalServerError)
	}))

	_, err := client.Customers().Get(context.Background(), 1)
	require.Error(t, err)
	require.False(t, apperrors.IsNotFound(err))

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusInternalServerError, statusErr.Status)
}

func TestAssigneeClient_ListByRelation_Query(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/assignees", r.URL.Path)
		require.Equal(t, "lead", r.URL.Query().Get("relation_type"))
		require.Equal(t, "42", r.URL.Query().Get("relation_id"))
		_ = json.NewEncoder(w).Encode([]domain.Assignee{
			{ID: 1, Relation: domain.Ref(domain.RelationLead, 42), UserEmail: "ana@example.com", Role: domain.RoleOwner},
			{ID: 2, Relation: domain.Ref(domain.RelationLead, 42), UserEmail: "bo@example.com", Role: domain.RoleFollower},
		})
	}))

	assignees, err := client.Assignees().ListByRelation(context.Background(), domain.Ref(domain.RelationLead, 42))
	require.NoError(t, err)
	require.Len(t, assignees, 2)
}

func TestClient_EmptyListDecodesToEmptySlice(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	addresses, err := client.Addresses().ListByRelation(context.Background(), domain.Ref(domain.RelationContact, 9))
	require.NoError(t, err)
	require.NotNil(t, addresses)
	require.Empty(t, addresses)
}

func TestLeadClient_CreateWithActivity(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/leads/with-activity", r.URL.Path)
		var payload struct {
			Lead     *domain.Lead     `json:"lead"`
			Activity *domain.Activity `json:"activity"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "Acme rollout", payload.Lead.Title)
		require.Equal(t, domain.CategoryCall, payload.Activity.Category)

		activityID := int64(900)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"primary_id":  101,
			"activity_id": activityID,
		})
	}))

	out, err := client.Leads().CreateWithActivity(context.Background(),
		&domain.Lead{Title: "Acme rollout"},
		&domain.Activity{Subject: "Intro call", Category: domain.CategoryCall},
	)
	require.NoError(t, err)
	require.Equal(t, int64(101), out.PrimaryID)
	require.NotNil(t, out.ActivityID)
	require.Equal(t, int64(900), *out.ActivityID)
}

func TestTokenSource_SingleFlightRefresh(t *testing.T) {
	var refreshes atomic.Int32
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshes.Add(1)
		time.Sleep(20 * time.Millisecond) // widen the race window
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "opaque-token",
			"expires_in":   3600,
		})
	}))
	defer tokenSrv.Close()

	var sawAuth atomic.Int32
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer opaque-token" {
			sawAuth.Add(1)
		}
		_ = json.NewEncoder(w).Encode([]domain.Customer{})
	}))
	defer apiSrv.Close()

	client := New(config.BackendConfig{
		BaseURL:      apiSrv.URL,
		Timeout:      5 * time.Second,
		TokenURL:     tokenSrv.URL,
		ClientID:     "relay",
		ClientSecret: "secret",
		MaxIdleConns: 8,
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Customers().List(context.Background())
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), refreshes.Load(), "concurrent callers must share one refresh")
	require.Equal(t, int32(8), sawAuth.Load(), "every call must carry the bearer token")
}

func TestTokenExpiry_PrefersJWTClaim(t *testing.T) {
	// Opaque token falls back to expires_in.
	exp := tokenExpiry("not-a-jwt", 60)
	require.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	// Missing expires_in falls back to the conservative default.
	exp = tokenExpiry("not-a-jwt", 0)
	require.WithinDuration(t, time.Now().Add(5*time.Minute), exp, 5*time.Second)
}
