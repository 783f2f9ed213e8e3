package events

import "github.com/atomicstack/tmux-emoji-popup/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Tab(tab string) {
	logging.Trace("ui.tab", map[string]interface{}{"tab": tab})
}

func (UITracer) Category(tab, category string) {
	logging.Trace("ui.category", map[string]interface{}{"tab": tab, "category": category})
}

func (UITracer) Focus(index int) {
	logging.Trace("ui.focus", map[string]interface{}{"index": index})
}

func (UITracer) Scroll(offset int) {
	logging.Trace("ui.scroll", map[string]interface{}{"offset": offset})
}

func (UITracer) Render(token uint64, total, start, end int) {
	logging.Trace("ui.render", map[string]interface{}{
		"token": token,
		"total": total,
		"start": start,
		"end":   end,
	})
}

func (UITracer) StaleRender(token, current uint64) {
	logging.Trace("ui.render.stale", map[string]interface{}{"token": token, "current": current})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Cleared(view string) {
	logging.Trace("filter.clear", map[string]interface{}{"view": view})
}

func (FilterTracer) WordBackspace(view, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"view": view, "filter": filter})
}

func (FilterTracer) Cursor(view string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"view": view, "cursor": pos})
}

func (FilterTracer) CursorWord(view string, pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"view": view, "cursor": pos})
}

func (FilterTracer) Append(view, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"view": view, "filter": filter})
}

func (FilterTracer) Backspace(view, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"view": view, "filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
