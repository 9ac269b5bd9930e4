package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFallback(t *testing.T) {
	assert.Equal(t, "25.285400, 51.531000", Fallback(25.2854, 51.5310))
	assert.Equal(t, "-6.208800, 106.845600", Fallback(-6.2088, 106.8456))
}

func TestNominatim_Reverse_Success(t *testing.T) {
	var gotUA, gotPath string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"format":         r.URL.Query().Get("format"),
			"lat":            r.URL.Query().Get("lat"),
			"lon":            r.URL.Query().Get("lon"),
			"zoom":           r.URL.Query().Get("zoom"),
			"addressdetails": r.URL.Query().Get("addressdetails"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"place_id": 1, "display_name": "West Bay, Doha, Qatar"}`))
	}))
	defer srv.Close()

	n := NewNominatim(srv.URL, "", time.Second)
	got := n.Reverse(context.Background(), 25.2854, 51.531)

	assert.Equal(t, "West Bay, Doha, Qatar", got)
	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Equal(t, "/reverse", gotPath)
	assert.Equal(t, map[string]string{
		"format":         "json",
		"lat":            "25.2854",
		"lon":            "51.531",
		"zoom":           "18",
		"addressdetails": "1",
	}, gotQuery)
}

func TestNominatim_Reverse_FailsSoft(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{not json`))
			},
		},
		{
			name: "missing display name",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"place_id": 1}`))
			},
		},
		{
			name: "lookup error payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"error": "Unable to geocode"}`))
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			n := NewNominatim(srv.URL, "test-agent", time.Second)
			assert.Equal(t, "1.000900, 1.000000", n.Reverse(context.Background(), 1.0009, 1.0))
		})
	}
}

func TestNominatim_Reverse_TimeoutFallsBackWithoutRetry(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	n := NewNominatim(srv.URL, "", 50*time.Millisecond)
	got := n.Reverse(context.Background(), 1.0, 1.0)

	assert.Equal(t, "1.000000, 1.000000", got)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestNominatim_Reverse_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	n := NewNominatim(url, "", time.Second)
	assert.Equal(t, "1.000000, 2.000000", n.Reverse(context.Background(), 1, 2))
}

func TestFake(t *testing.T) {
	f := &Fake{Address: "Office Tower"}
	assert.Equal(t, "Office Tower", f.Reverse(context.Background(), 1, 1))

	f.Fail = true
	assert.Equal(t, "1.000000, 1.000000", f.Reverse(context.Background(), 1, 1))
	assert.Equal(t, 2, f.Calls())
}

func TestCoordinates(t *testing.T) {
	var g ReverseGeocoder = Coordinates{}
	assert.Equal(t, "-6.200000, 106.816666", g.Reverse(context.Background(), -6.2, 106.816666))
}
