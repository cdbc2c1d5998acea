package watcher

import (
	"sitemap-manager/core/reconcile"

	"github.com/fsnotify/fsnotify"
)

type change struct {
	op      reconcile.EventOp
	oldPath string
}

type movedOut struct {
	path string
	// born marks a file created and moved away within the same batch,
	// as editors do with temporary files on save.
	born bool
}

// batch folds raw fsnotify events for one debounce window into file events.
// A Rename is the old name of a move; the Create that follows is paired with it.
type batch struct {
	order   []string
	changes map[string]*change
	moved   []movedOut
}

func newBatch() *batch {
	return &batch{changes: make(map[string]*change)}
}

// record adds one event. existed reports whether the path was a known file
// before the event.
func (b *batch) record(ev fsnotify.Event, existed bool) {
	name := ev.Name
	prev := b.changes[name]

	switch {
	case ev.Has(fsnotify.Create):
		if len(b.moved) > 0 {
			from := b.moved[0]
			b.moved = b.moved[1:]
			b.drop(from.path)
			if !from.born {
				b.set(name, &change{op: reconcile.EventRenamed, oldPath: from.path})
				return
			}
		}
		switch {
		case prev == nil && existed:
			b.set(name, &change{op: reconcile.EventSaved})
		case prev == nil:
			b.set(name, &change{op: reconcile.EventCreated})
		case prev.op == reconcile.EventDeleted:
			b.set(name, &change{op: reconcile.EventSaved})
		}

	case ev.Has(fsnotify.Write):
		if prev == nil {
			b.set(name, &change{op: reconcile.EventSaved})
		}

	case ev.Has(fsnotify.Remove):
		b.remove(name, prev)

	case ev.Has(fsnotify.Rename):
		born := prev != nil && prev.op == reconcile.EventCreated
		b.remove(name, prev)
		b.moved = append(b.moved, movedOut{path: name, born: born})
	}
}

func (b *batch) remove(name string, prev *change) {
	switch {
	case prev == nil:
		b.set(name, &change{op: reconcile.EventDeleted})
	case prev.op == reconcile.EventCreated:
		b.drop(name)
	case prev.op == reconcile.EventRenamed:
		b.drop(name)
		b.set(prev.oldPath, &change{op: reconcile.EventDeleted})
	default:
		b.set(name, &change{op: reconcile.EventDeleted})
	}
}

func (b *batch) set(name string, c *change) {
	if _, ok := b.changes[name]; !ok {
		b.order = append(b.order, name)
	}
	b.changes[name] = c
}

func (b *batch) drop(name string) {
	delete(b.changes, name)
}

func (b *batch) empty() bool {
	return len(b.changes) == 0
}

// flush returns the folded events in first-seen order and resets the batch.
func (b *batch) flush() []reconcile.FileEvent {
	var out []reconcile.FileEvent
	seen := make(map[string]bool, len(b.order))
	for _, name := range b.order {
		c, ok := b.changes[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, reconcile.FileEvent{Op: c.op, Path: name, OldPath: c.oldPath})
	}
	b.order = nil
	b.changes = make(map[string]*change)
	b.moved = nil
	return out
}
