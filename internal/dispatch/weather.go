// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/omnimind/internal/httputil"
)

// DefaultWeatherURL is the wttr.in service; it needs no API key.
const DefaultWeatherURL = "https://wttr.in"

// WeatherSkill reports current conditions from wttr.in's j1 JSON format.
// With no place in the request and no Location set, the service picks one
// from the caller's address.
type WeatherSkill struct {
	Client    *http.Client
	BaseURL   string
	Location  string
	UserAgent string
	Timeout   time.Duration
}

// Run fetches conditions for d.Query, or for Location when the request
// names no place.
func (s WeatherSkill) Run(ctx context.Context, d Decision) (string, error) {
	place := strings.TrimSpace(d.Query)
	if place == "" {
		place = s.Location
	}
	cond, err := s.fetch(ctx, place)
	if err != nil {
		return "", err
	}
	if place == "" {
		place = cond.area()
	}
	if place == "" {
		place = "your area"
	}
	return fmt.Sprintf("Weather in %s: %s, %s°C (feels like %s°C), Humidity: %s%%",
		place, cond.description(), cond.TempC, cond.FeelsLikeC, cond.Humidity), nil
}

func (s WeatherSkill) fetch(ctx context.Context, place string) (weatherReport, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	base := s.BaseURL
	if base == "" {
		base = DefaultWeatherURL
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := strings.TrimRight(base, "/") + "/" + url.PathEscape(place) + "?format=j1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return weatherReport{}, fmt.Errorf("creating weather request: %w", err)
	}
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return weatherReport{}, fmt.Errorf("fetching weather: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return weatherReport{}, fmt.Errorf("fetching weather: HTTP %d", resp.StatusCode)
	}

	var doc wttrDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return weatherReport{}, fmt.Errorf("parsing weather: %w", err)
	}
	if len(doc.Current) == 0 {
		return weatherReport{}, errors.New("parsing weather: no current conditions")
	}
	r := weatherReport{wttrCondition: doc.Current[0]}
	if len(doc.Area) > 0 {
		r.nearest = doc.Area[0]
	}
	return r, nil
}

// wttr.in j1 structures; every number arrives as a string.
type wttrDoc struct {
	Current []wttrCondition `json:"current_condition"`
	Area    []wttrArea      `json:"nearest_area"`
}

type wttrCondition struct {
	TempC       string      `json:"temp_C"`
	FeelsLikeC  string      `json:"FeelsLikeC"`
	Humidity    string      `json:"humidity"`
	WeatherDesc []wttrValue `json:"weatherDesc"`
}

type wttrArea struct {
	AreaName []wttrValue `json:"areaName"`
	Country  []wttrValue `json:"country"`
}

type wttrValue struct {
	Value string `json:"value"`
}

type weatherReport struct {
	wttrCondition
	nearest wttrArea
}

func (r weatherReport) description() string {
	if len(r.WeatherDesc) == 0 || r.WeatherDesc[0].Value == "" {
		return "conditions unknown"
	}
	return r.WeatherDesc[0].Value
}

func (r weatherReport) area() string {
	if len(r.nearest.AreaName) == 0 {
		return ""
	}
	name := r.nearest.AreaName[0].Value
	if len(r.nearest.Country) > 0 && r.nearest.Country[0].Value != "" {
		name += ", " + r.nearest.Country[0].Value
	}
	return name
}
