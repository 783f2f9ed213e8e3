package events

import "github.com/atomicstack/tmux-emoji-popup/internal/logging"

type InsertTracer struct{}

var Insert = InsertTracer{}

func (InsertTracer) Clipboard(text string, err error) {
	payload := map[string]interface{}{"text": text}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("insert.clipboard", payload)
}

func (InsertTracer) Pane(target, text string) {
	logging.Trace("insert.pane", map[string]interface{}{"target": target, "text": text})
}

func (InsertTracer) Fallback(target string, err error) {
	payload := map[string]interface{}{"target": target}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("insert.fallback", payload)
}
