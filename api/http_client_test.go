package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestHTTPClient_Get_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/things" {
			t.Errorf("Expected path /things, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("name") != "abc" {
			t.Errorf("Expected name=abc, got %s", r.URL.Query().Get("name"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL + "/")

	params := url.Values{}
	params.Set("name", "abc")

	var response map[string]string
	status, err := client.Get("things", params, nil, &response)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}
	if response["status"] != "ok" {
		t.Errorf("Unexpected response: %v", response)
	}
}

func TestHTTPClient_Get_BasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL + "/")

	var response map[string]string
	status, err := client.Get("things", nil, &BasicAuth{Username: "user", Password: "secret"}, &response)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}
}

func TestHTTPClient_Get_NonOKSkipsDecode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL + "/")

	var response map[string]string
	status, err := client.Get("things", nil, nil, &response)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if status != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", status)
	}
	if response != nil {
		t.Errorf("Expected response to stay nil, got %v", response)
	}
}

func TestHTTPClient_Get_TransportError(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1/")

	var response map[string]string
	_, err := client.Get("things", nil, nil, &response)
	if err == nil {
		t.Fatal("Expected a transport error")
	}
}
