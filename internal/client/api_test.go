package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/contactbook/internal/common"
)

func TestRegister(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/users", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test1", body["username"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"username":"test1","name":"Test One"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	user, err := c.Register(context.Background(), "test1", "secret", "Test One")
	require.NoError(t, err)
	assert.Equal(t, "test1", user.Username)
}

func TestLogin_ReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"username":"test1","name":"Test One","token":"token-123"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	user, err := c.Login(context.Background(), "test1", "secret")
	require.NoError(t, err)
	assert.Equal(t, "token-123", user.Token)
}

func TestCurrentUser_SendsRawToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "token-123", r.Header.Get(common.AuthorizationHeaderName))
		w.Write([]byte(`{"data":{"username":"test1","name":"Test One"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "token-123")
	_, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusBadRequest, common.ErrorValidation},
		{http.StatusUnauthorized, common.ErrorUnauthorized},
		{http.StatusNotFound, common.ErrorNotFound},
		{http.StatusConflict, common.ErrorAlreadyExists},
		{http.StatusInternalServerError, common.ErrorInternal},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.code)
			w.Write([]byte(`{"errors":"nope"}`))
		}))

		c := New(srv.URL, "token")
		_, err := c.CurrentUser(context.Background())
		require.ErrorIs(t, err, tt.want, "status %d", tt.code)
		srv.Close()
	}
}

func TestSearchContacts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "es", q.Get("name"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "5", q.Get("size"))

		w.Write([]byte(`{
			"data":[{"id":6,"first_name":"test","last_name":"1"}],
			"paging":{"current_page":2,"size":5,"total_page":3}
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "token")
	items, paging, err := c.SearchContacts(context.Background(), SearchQuery{Name: "es", Page: 2, Size: 5})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(6), items[0].ID)
	require.NotNil(t, paging)
	assert.Equal(t, 3, paging.TotalPage)
}

func TestListAddresses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/contacts/7/addresses", r.URL.Path)
		w.Write([]byte(`{"data":[{"id":1,"street":"Main st"},{"id":2}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "token")
	items, err := c.ListAddresses(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Street)
	assert.Equal(t, "Main st", *items[0].Street)
}
