package epidata

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epiportal-server/api"
	"epiportal-server/models"
)

func newTestClient(server *httptest.Server) *EpidataApiClient {
	client := NewEpidataApiClient(api.NewHTTPClient(server.URL + "/"))
	client.SetCredentials("test-key")
	return client
}

func TestFetchCovidcast_Success(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/covidcast", r.URL.Path)
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result":  1,
			"message": "success",
			"epidata": []map[string]interface{}{
				{"time_value": 20200105, "value": 1.5, "geo_value": "pa", "signal": "cases", "time_type": "day"},
				{"time_value": 20200106, "value": nil, "geo_value": "pa", "signal": "cases", "time_type": "day"},
			},
		})
	}))
	defer server.Close()

	rows := newTestClient(server).FetchCovidcast(CovidcastParams{
		Source:    "jhu-csse",
		Signal:    "cases",
		TimeType:  "day",
		GeoType:   "state",
		GeoValue:  "PA",
		StartDate: "2020-01-01",
		EndDate:   "2020-01-31",
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "20200105", rows[0].TimeValue)
	require.NotNil(t, rows[0].Value)
	assert.Equal(t, 1.5, *rows[0].Value)
	assert.Nil(t, rows[1].Value)

	assert.Equal(t, "2020-01-01--2020-01-31", gotQuery["time_values"])
	assert.Equal(t, "pa", gotQuery["geo_values"], "state geo values are lower-cased")
	assert.Equal(t, "test-key", gotQuery["api_key"])
}

func TestWithAPIKey_DoesNotTouchSharedCredentials(t *testing.T) {
	var keys []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.URL.Query().Get("api_key"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result":  1,
			"epidata": []map[string]interface{}{{"time_value": 20200105, "value": 1.0}},
		})
	}))
	defer server.Close()

	shared := newTestClient(server)
	params := CovidcastParams{
		Source: "src", Signal: "sig", TimeType: "day",
		StartDate: "2020-01-01", EndDate: "2020-01-31",
	}

	shared.WithAPIKey("caller-key").FetchCovidcast(params)
	shared.FetchCovidcast(params)

	// The scoped copy carried the caller's key; the shared client still
	// sends its configured one afterwards.
	require.Equal(t, []string{"caller-key", "test-key"}, keys)
}

func TestWithAPIKey_EmptyKeyReturnsReceiver(t *testing.T) {
	client := NewEpidataApiClient(api.NewHTTPClient("http://example.test/"))
	assert.Same(t, client, client.WithAPIKey(""))
}

func TestFetchCovidcast_WeeklyTimeValues(t *testing.T) {
	var timeValues string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timeValues = r.URL.Query().Get("time_values")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result":  1,
			"epidata": []map[string]interface{}{{"time_value": 202001, "value": 2.0}},
		})
	}))
	defer server.Close()

	rows := newTestClient(server).FetchCovidcast(CovidcastParams{
		Source:    "fluview",
		Signal:    "wili",
		TimeType:  "week",
		GeoType:   "nation",
		GeoValue:  "US",
		StartDate: "2020-01-01",
		EndDate:   "2020-03-15",
	})

	require.Len(t, rows, 1)
	// 2020-01-01 is epiweek 202001, 2020-03-15 is epiweek 202012.
	assert.Equal(t, "202001-202012", timeValues)
	// Row omitted signal/time_type, so the request's values fill in.
	assert.Equal(t, "wili", rows[0].Signal)
	assert.Equal(t, "week", rows[0].TimeType)
}

func TestFetchCovidcast_UpstreamErrorsYieldEmpty(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"result": -2, "message": "unauthenticated"}`))
		}))
		rows := newTestClient(server).FetchCovidcast(CovidcastParams{
			Source: "src", Signal: "sig", TimeType: "day",
			StartDate: "2020-01-01", EndDate: "2020-01-31",
		})
		assert.Empty(t, rows, "status %d must yield no rows, not an error", status)
		server.Close()
	}
}

func TestFetchCovidcast_TransportErrorYieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(server)
	server.Close() // connection refused from here on

	rows := client.FetchCovidcast(CovidcastParams{
		Source: "src", Signal: "sig", TimeType: "day",
		StartDate: "2020-01-01", EndDate: "2020-01-31",
	})
	assert.Empty(t, rows)
}

func TestFetchCovidcast_EmptyEpidataYieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": -2, "message": "no results", "epidata": []}`))
	}))
	defer server.Close()

	rows := newTestClient(server).FetchCovidcast(CovidcastParams{
		Source: "src", Signal: "sig", TimeType: "day",
		StartDate: "2020-01-01", EndDate: "2020-01-31",
	})
	assert.Empty(t, rows)
}

func TestFetchLegacy_ReshapesRecords(t *testing.T) {
	var gotPath, gotRegions, gotWeeks string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRegions = r.URL.Query().Get("regions")
		gotWeeks = r.URL.Query().Get("epiweeks")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result": 1,
			"epidata": []map[string]interface{}{
				{"epiweek": 202001, "region": "nat", "wili": 2.3},
				{"epiweek": 202002, "region": "nat", "wili": nil},
				{"region": "nat", "wili": 9.9}, // no epiweek: dropped
			},
		})
	}))
	defer server.Close()

	rows := newTestClient(server).FetchLegacy("fluview", "wili", "US", 202001, 202004)

	assert.Equal(t, "/fluview", gotPath)
	assert.Equal(t, "nat", gotRegions, "US resolves through the static location mapping")
	assert.Equal(t, "202001-202004", gotWeeks)

	require.Len(t, rows, 2)
	assert.Equal(t, models.DataRow{
		TimeValue: "202001", Value: rows[0].Value, Signal: "wili", GeoValue: "nat", TimeType: "week",
	}, rows[0])
	require.NotNil(t, rows[0].Value)
	assert.Equal(t, 2.3, *rows[0].Value)
	assert.Nil(t, rows[1].Value, "missing indicator field becomes a null value")
}

func TestFetchLegacy_UnmappedLocationPassesThrough(t *testing.T) {
	var gotLocations string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocations = r.URL.Query().Get("locations")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result":  1,
			"epidata": []map[string]interface{}{{"epiweek": 202001, "location": "CA", "rate_overall": 1.0}},
		})
	}))
	defer server.Close()

	rows := newTestClient(server).FetchLegacy("flusurv", "rate_overall", "CA", 202001, 202004)

	// flusurv addresses geographies with "locations", not "regions".
	assert.Equal(t, "CA", gotLocations)
	require.Len(t, rows, 1)
	assert.Equal(t, "CA", rows[0].GeoValue)
}

func TestFetchLegacy_Non200YieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	rows := newTestClient(server).FetchLegacy("fluview", "wili", "nat", 202001, 202004)
	assert.Empty(t, rows)
}

func TestFetchGeoCoverage_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "epidata", user)
		assert.Equal(t, "test-key", pass)
		assert.Equal(t, "/covidcast/geo_indicator_coverage", r.URL.Path)
		assert.Equal(t, "sig_a,sig_b", r.URL.Query().Get("signals"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result":  1,
			"epidata": []string{"state:pa", "state:ny", "nation:us"},
		})
	}))
	defer server.Close()

	tokens := newTestClient(server).FetchGeoCoverage("jhu-csse", "sig_a,sig_b")
	assert.Equal(t, []string{"state:pa", "state:ny", "nation:us"}, tokens)
}

func TestFetchGeoCoverage_FailureYieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	tokens := newTestClient(server).FetchGeoCoverage("jhu-csse", "sig_a")
	assert.Empty(t, tokens)
}
