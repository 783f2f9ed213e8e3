package events

import "github.com/atomicstack/tmux-emoji-popup/internal/logging"

type CatalogTracer struct{}

var Catalog = CatalogTracer{}

func (CatalogTracer) Fetch(label, locator string) {
	logging.Trace("catalog.fetch", map[string]interface{}{"category": label, "locator": locator})
}

func (CatalogTracer) Loaded(label string, count int) {
	logging.Trace("catalog.loaded", map[string]interface{}{"category": label, "count": count})
}

func (CatalogTracer) Skip(label, reason string) {
	logging.Trace("catalog.skip", map[string]interface{}{"category": label, "reason": reason})
}

func (CatalogTracer) LoadFailed(label string, err error) {
	payload := map[string]interface{}{"category": label}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("catalog.load-failed", payload)
}

func (CatalogTracer) Settled(requested, loaded int) {
	logging.Trace("catalog.settled", map[string]interface{}{"requested": requested, "loaded": loaded})
}
