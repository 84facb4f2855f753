// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/omnimind/internal/httputil"
	"github.com/pdiddy/omnimind/internal/logging"
	"github.com/pdiddy/omnimind/pkg/types"
)

// NewAdapters builds the enabled adapters in fixed priority order:
// SearXNG, Wikipedia, YaCy, arXiv. An enabled engine with no base URL is
// excluded for the life of the returned list and logged once here.
func NewAdapters(cfg types.SearchConfig, client *http.Client, log *zap.Logger) []Adapter {
	log = logging.OrNop(log)
	httpCfg := adapterHTTPConfig(cfg)

	type entry struct {
		id    types.EngineID
		ec    types.EngineConfig
		build func(types.EngineConfig) Adapter
	}
	entries := []entry{
		{types.EngineSearXNG, cfg.SearXNG, func(ec types.EngineConfig) Adapter {
			return NewSearXNGAdapter(client, httpCfg, ec.URLs, httputil.NewLimiter(ec.Rate))
		}},
		{types.EngineWikipedia, cfg.Wikipedia, func(ec types.EngineConfig) Adapter {
			return NewWikipediaAdapter(client, httpCfg, ec.URLs[0], httputil.NewLimiter(ec.Rate))
		}},
		{types.EngineYaCy, cfg.YaCy, func(ec types.EngineConfig) Adapter {
			return NewYaCyAdapter(client, httpCfg, ec.URLs, httputil.NewLimiter(ec.Rate))
		}},
		{types.EngineArxiv, cfg.Arxiv, func(ec types.EngineConfig) Adapter {
			return NewArxivAdapter(client, httpCfg, ec.URLs[0], httputil.NewLimiter(ec.Rate))
		}},
	}

	var adapters []Adapter
	for _, e := range entries {
		if !e.ec.Enabled {
			log.Debug("engine disabled", zap.String("engine", string(e.id)))
			continue
		}
		if len(e.ec.URLs) == 0 {
			log.Warn("engine excluded: no base URL configured",
				zap.String("engine", string(e.id)),
				zap.String("hint", "set engines."+string(e.id)+".urls"))
			continue
		}
		adapters = append(adapters, e.build(e.ec))
	}
	return adapters
}

// adapterHTTPConfig clamps the per-adapter timeout below the aggregator
// deadline minus SchedulingSlack.
func adapterHTTPConfig(cfg types.SearchConfig) types.HTTPConfig {
	hc := cfg.HTTPConfig
	overall := cfg.OverallTimeout
	if overall <= 0 {
		overall = DefaultOverallTimeout
	}
	limit := overall - SchedulingSlack
	if limit <= 0 {
		limit = overall
	}
	if hc.Timeout <= 0 || hc.Timeout > limit {
		hc.Timeout = limit
	}
	return hc
}
