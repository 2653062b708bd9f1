package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_SyncCategories(t *testing.T) {
	var gotAuth string
	var gotBody CategorySyncRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/categories/sync", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		rid := int64(7)
		_ = json.NewEncoder(w).Encode(CategorySyncResponse{
			State: StateCategoriesSynced,
			Categories: []CategoryOutcome{
				{State: "id-not-provided", ClientID: 1, RemoteID: &rid},
			},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret", time.Second)
	resp, err := c.SyncCategories(context.Background(), []CategoryPush{{ClientID: 1, Name: "Work"}})
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	require.Len(t, gotBody.Categories, 1)
	assert.Equal(t, "Work", gotBody.Categories[0].Name)
	assert.Equal(t, StateCategoriesSynced, resp.State)
	require.Len(t, resp.Categories, 1)
	require.NotNil(t, resp.Categories[0].RemoteID)
	assert.Equal(t, int64(7), *resp.Categories[0].RemoteID)
}

func TestHTTPClient_FetchCategories_UnexpectedMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(CategoriesResponse{Message: "nope"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", time.Second)
	_, err := c.FetchCategories(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response message")
}

func TestHTTPClient_FetchNotes_ExceptsFilter(t *testing.T) {
	var gotExcepts string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/notes", r.URL.Path)
		gotExcepts = r.URL.Query().Get("excepts")
		_ = json.NewEncoder(w).Encode(NotesResponse{Notes: []RemoteNote{{RemoteID: 900, Title: "remote"}}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", time.Second)
	notes, err := c.FetchNotes(context.Background(), []int64{3, 5, 900})
	require.NoError(t, err)

	assert.Equal(t, "3,5,900", gotExcepts)
	require.Len(t, notes, 1)
	assert.Equal(t, int64(900), notes[0].RemoteID)
}

func TestHTTPClient_FetchNotes_NoFilterWhenEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("excepts"))
		_ = json.NewEncoder(w).Encode(NotesResponse{})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", time.Second)
	_, err := c.FetchNotes(context.Background(), nil)
	require.NoError(t, err)
}

func TestHTTPClient_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", time.Second)
	_, err := c.SyncNotes(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestHTTPClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", 20*time.Millisecond)
	_, err := c.FetchCategories(context.Background())
	require.Error(t, err)
}
