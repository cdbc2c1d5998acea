package reconcile

import (
	"context"
	"fmt"
	"path/filepath"

	"sitemap-manager/core/scanner"
	"sitemap-manager/core/settings"
	"sitemap-manager/core/urls"
)

// PlanEvent turns a host file event into the actions it implies for every
// auto-updating sitemap in snap. A file only affects a sitemap when its extension
// is included, it lies under the sitemap root and no exclude pattern matches it.
// A change to the settings file itself yields a single ActionRefresh.
//
// Renames are resolved per sitemap: both paths in scope is a rename, only the old
// path is a removal, only the new path is a removal of the old entry plus an add.
func PlanEvent(workspaceRoot string, snap settings.Snapshot, settingsPath string, ev FileEvent) []Action {
	if isSettingsFile(ev, settingsPath) {
		return []Action{{Type: ActionRefresh, Path: settingsPath, Reason: "settings file changed"}}
	}

	var actions []Action
	for _, name := range snap.AutoUpdate() {
		s := snap.Get(name)
		newIn := scanner.InScope(workspaceRoot, s, ev.Path)

		switch ev.Op {
		case EventCreated:
			if newIn {
				actions = append(actions, Action{Type: ActionAdd, Sitemap: name, Path: ev.Path, Reason: "file created"})
			}
		case EventDeleted:
			if newIn {
				actions = append(actions, Action{Type: ActionRemove, Sitemap: name, Path: ev.Path, Reason: "file deleted"})
			}
		case EventSaved:
			if newIn {
				actions = append(actions, Action{Type: ActionTouch, Sitemap: name, Path: ev.Path, Reason: "file saved"})
			}
		case EventRenamed:
			oldIn := scanner.InScope(workspaceRoot, s, ev.OldPath)
			switch {
			case oldIn && newIn:
				actions = append(actions, Action{Type: ActionRename, Sitemap: name, Path: ev.Path, OldPath: ev.OldPath, Reason: "file renamed"})
			case oldIn:
				actions = append(actions, Action{Type: ActionRemove, Sitemap: name, Path: ev.OldPath, Reason: "file moved out of scope"})
			case newIn:
				// An old path outside the root cannot have an entry.
				if _, underRoot := urls.RelativePath(workspaceRoot, s, ev.OldPath); underRoot {
					actions = append(actions, Action{Type: ActionRemove, Sitemap: name, Path: ev.OldPath, Reason: "file moved into scope"})
				}
				actions = append(actions, Action{Type: ActionAdd, Sitemap: name, Path: ev.Path, Reason: "file moved into scope"})
			}
		}
	}
	return actions
}

func isSettingsFile(ev FileEvent, settingsPath string) bool {
	if settingsPath == "" {
		return false
	}
	same := func(p string) bool { return p != "" && filepath.Clean(p) == filepath.Clean(settingsPath) }
	return same(ev.Path) || (ev.Op == EventRenamed && same(ev.OldPath))
}

// Dispatch executes a single event action. ActionRefresh is not an engine
// operation and must be handled by the caller.
func (e *Engine) Dispatch(ctx context.Context, a Action, s settings.Settings) (*Outcome, error) {
	switch a.Type {
	case ActionAdd:
		return e.OnFileAdded(ctx, a.Sitemap, s, a.Path)
	case ActionRemove:
		return e.OnFileRemoved(ctx, a.Sitemap, s, a.Path)
	case ActionTouch:
		return e.OnFileSaved(ctx, a.Sitemap, s, a.Path)
	case ActionRename:
		return e.OnFileRenamed(ctx, a.Sitemap, s, a.OldPath, a.Path)
	default:
		return nil, fmt.Errorf("action %q cannot be dispatched to the engine", a.Type)
	}
}
