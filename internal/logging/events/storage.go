package events

import "github.com/atomicstack/tmux-emoji-popup/internal/logging"

type StorageTracer struct{}

var Storage = StorageTracer{}

func (StorageTracer) Set(keys []string) {
	logging.Trace("storage.set", map[string]interface{}{"keys": keys})
}

func (StorageTracer) Changed(keys []string) {
	logging.Trace("storage.changed", map[string]interface{}{"keys": keys})
}

func (StorageTracer) Migrated(keys []string) {
	logging.Trace("storage.migrated", map[string]interface{}{"keys": keys})
}

func (StorageTracer) Failed(op string, err error) {
	if err == nil {
		return
	}
	logging.Trace("storage.failed", map[string]interface{}{"op": op, "error": err.Error()})
}
