package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/frameless/internal/actionlog"
	"github.com/1broseidon/frameless/internal/ipc"
)

// Action is what the user asked to do with the chosen window.
type Action int

const (
	// ActionToggle flips the window's decorations.
	ActionToggle Action = iota
	// ActionAuto flips always-borderless for the window's process.
	ActionAuto
)

// Choice is a picked window and the requested action.
type Choice struct {
	Window ipc.WindowData
	Action Action
}

// ErrNoWindows is returned when there is nothing to pick from.
var ErrNoWindows = errors.New("no windows to pick from")

const pickHint = "Enter: toggle borderless    Alt+Return: always borderless"

// WindowItems renders windows as launcher rows. Borderless windows are
// highlighted as active and always-borderless ones as urgent.
func WindowItems(windows []ipc.WindowData) []Item {
	items := make([]Item, 0, len(windows))
	for _, w := range windows {
		label := fmt.Sprintf("%s  ·  %s", actionlog.Truncate(w.Title, 60), w.Process)
		var tags []string
		if w.Borderless {
			tags = append(tags, "borderless")
		}
		if w.Auto {
			tags = append(tags, "auto")
		}
		if len(tags) > 0 {
			label += "  [" + strings.Join(tags, ", ") + "]"
		}
		items = append(items, Item{
			Label:    label,
			Icon:     strings.ToLower(w.Process),
			Key:      strconv.FormatUint(w.ID, 10),
			Meta:     w.Process,
			IsActive: w.Borderless,
			IsUrgent: w.Auto,
		})
	}
	return items
}

// Pick shows windows in b and returns the user's choice.
func Pick(b Backend, windows []ipc.WindowData) (Choice, error) {
	if len(windows) == 0 {
		return Choice{}, ErrNoWindows
	}

	res, err := b.Show("frameless", WindowItems(windows), pickHint)
	if err != nil {
		return Choice{}, err
	}

	id, err := strconv.ParseUint(res.Item.Key, 10, 64)
	if err != nil {
		return Choice{}, fmt.Errorf("palette: bad row key %q", res.Item.Key)
	}
	for _, w := range windows {
		if w.ID != id {
			continue
		}
		action := ActionToggle
		if res.ExitCode == ExitAlternate {
			action = ActionAuto
		}
		return Choice{Window: w, Action: action}, nil
	}
	return Choice{}, fmt.Errorf("palette: window %#x is gone", id)
}
