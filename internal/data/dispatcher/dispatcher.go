package dispatcher

import (
	"github.com/atomicstack/tmux-emoji-popup/internal/backend"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging"
	"github.com/atomicstack/tmux-emoji-popup/internal/prefs"
	"github.com/atomicstack/tmux-emoji-popup/internal/syncstore"
)

// Result tells the UI what an event touched.
type Result struct {
	NeedRender      bool
	ThemeChanged    bool
	LanguageChanged bool

	TargetChanged   bool
	TargetAvailable bool
}

// Updated reports whether the UI has anything to refresh.
func (r Result) Updated() bool {
	return r.NeedRender || r.ThemeChanged || r.LanguageChanged || r.TargetChanged
}

type Dispatcher struct {
	prefs *prefs.Service
}

func New(p *prefs.Service) *Dispatcher {
	return &Dispatcher{prefs: p}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	switch evt.Kind {
	case backend.KindStorage:
		if evt.Err != nil {
			logging.Error(evt.Err)
			return res
		}
		if changes, ok := evt.Data.(syncstore.ChangeSet); ok && d.prefs != nil {
			fx := d.prefs.ApplyChanges(changes)
			res.NeedRender = fx.NeedRender
			res.ThemeChanged = fx.ThemeChanged
			res.LanguageChanged = fx.LanguageChanged
		}
	case backend.KindTarget:
		if available, ok := evt.Data.(bool); ok {
			res.TargetChanged = true
			res.TargetAvailable = available && evt.Err == nil
		}
	}
	return res
}
