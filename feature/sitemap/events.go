package sitemap

import (
	"fmt"

	"sitemap-manager/core/reconcile"
)

// validateEvent checks that an event names the files its kind needs.
func validateEvent(ev reconcile.FileEvent) error {
	switch ev.Op {
	case reconcile.EventCreated, reconcile.EventDeleted, reconcile.EventSaved:
		if ev.Path == "" {
			return fmt.Errorf("%s event needs a path", ev.Op)
		}
	case reconcile.EventRenamed:
		if ev.Path == "" || ev.OldPath == "" {
			return fmt.Errorf("renamed event needs path and old_path")
		}
	default:
		return fmt.Errorf("unknown event op %q", ev.Op)
	}
	return nil
}

// ParseEvent builds an event from a command line: an op followed by one path,
// or two paths (old, new) for renames.
func ParseEvent(op string, paths []string) (reconcile.FileEvent, error) {
	ev := reconcile.FileEvent{Op: reconcile.EventOp(op)}
	switch ev.Op {
	case reconcile.EventRenamed:
		if len(paths) != 2 {
			return ev, fmt.Errorf("renamed takes the old and the new path")
		}
		ev.OldPath, ev.Path = paths[0], paths[1]
	default:
		if len(paths) != 1 {
			return ev, fmt.Errorf("%s takes exactly one path", op)
		}
		ev.Path = paths[0]
	}
	return ev, validateEvent(ev)
}
