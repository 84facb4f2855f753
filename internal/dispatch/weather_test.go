// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wttrFixture = `{
  "current_condition": [{
    "temp_C": "12", "FeelsLikeC": "10", "humidity": "81",
    "weatherDesc": [{"value": "Partly cloudy"}]
  }],
  "nearest_area": [{"areaName": [{"value": "Lyon"}], "country": [{"value": "France"}]}]
}`

func TestWeatherSkill(t *testing.T) {
	var gotPath, gotFormat, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotFormat, gotUA = r.URL.Path, r.URL.Query().Get("format"), r.Header.Get("User-Agent")
		w.Write([]byte(wttrFixture))
	}))
	defer srv.Close()

	s := WeatherSkill{Client: srv.Client(), BaseURL: srv.URL, Location: "Delhi", UserAgent: "omnimind/test"}

	t.Run("place from the request", func(t *testing.T) {
		out, err := s.Run(context.Background(), Decide("what is the weather in New York?"))
		require.NoError(t, err)
		assert.Equal(t, "Weather in New York: Partly cloudy, 12°C (feels like 10°C), Humidity: 81%", out)
		assert.Equal(t, "/New York", gotPath)
		assert.Equal(t, "j1", gotFormat)
		assert.Equal(t, "omnimind/test", gotUA)
	})

	t.Run("configured location", func(t *testing.T) {
		out, err := s.Run(context.Background(), Decide("weather forecast"))
		require.NoError(t, err)
		assert.Contains(t, out, "Weather in Delhi:")
		assert.Equal(t, "/Delhi", gotPath)
	})

	t.Run("service picks the area", func(t *testing.T) {
		anywhere := s
		anywhere.Location = ""
		out, err := anywhere.Run(context.Background(), Decide("weather"))
		require.NoError(t, err)
		assert.Contains(t, out, "Weather in Lyon, France:")
		assert.Equal(t, "/", gotPath)
	})
}

func TestWeatherSkillFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"status", http.StatusInternalServerError, "", "HTTP 500"},
		{"malformed", http.StatusOK, "<html>", "parsing weather"},
		{"no conditions", http.StatusOK, `{"current_condition": []}`, "no current conditions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := WeatherSkill{Client: srv.Client(), BaseURL: srv.URL}.Run(context.Background(), Decide("weather in Oslo"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
