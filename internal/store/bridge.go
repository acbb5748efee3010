package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/theirongolddev/deskpad/internal/metrics"
	"github.com/theirongolddev/deskpad/internal/model"

	"go.uber.org/zap"
)

// Layout selects how a snapshot is laid out in its slot. Each app variant
// owns one key.
type Layout string

const (
	// LayoutMulti stores {"subjects":[],"expenses":[],"habits":[]} under "multiSPA".
	LayoutMulti Layout = "multi"
	// LayoutStudy stores the bare subjects array under "studyPlanner".
	LayoutStudy Layout = "study"
)

// Key returns the slot key owned by the layout.
func (l Layout) Key() string {
	switch l {
	case LayoutStudy:
		return "studyPlanner"
	default:
		return "multiSPA"
	}
}

// ParseLayout validates a variant name.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case LayoutMulti, LayoutStudy:
		return Layout(s), nil
	}
	return "", fmt.Errorf("unknown variant %q (want multi or study)", s)
}

// Bridge mirrors a snapshot to one key of a Slot.
type Bridge struct {
	slot   Slot
	layout Layout
	log    *zap.Logger
}

// NewBridge returns a bridge over slot using layout's key.
func NewBridge(slot Slot, layout Layout, log *zap.Logger) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bridge{slot: slot, layout: layout, log: log}
}

// Key is the slot key this bridge reads and writes.
func (b *Bridge) Key() string { return b.layout.Key() }

// Layout is the layout this bridge serializes with.
func (b *Bridge) Layout() Layout { return b.layout }

// Load reads the snapshot at the bridge's key. A missing, unreadable or
// unparsable value yields an empty snapshot; the failure is logged and
// never returned.
func (b *Bridge) Load(ctx context.Context) model.Snapshot {
	raw, ok, err := b.slot.Get(ctx, b.Key())
	if err != nil {
		b.log.Warn("slot unreadable, starting empty", zap.String("key", b.Key()), zap.Error(err))
		return model.Empty()
	}
	if !ok {
		return model.Empty()
	}

	snap, err := Decode(b.layout, raw)
	if err != nil {
		b.log.Warn("slot unparsable, starting empty", zap.String("key", b.Key()), zap.Error(err))
		return model.Empty()
	}
	return snap
}

// Save serializes the full snapshot and overwrites the slot.
func (b *Bridge) Save(ctx context.Context, snap model.Snapshot) error {
	raw, err := Encode(b.layout, snap)
	if err != nil {
		return err
	}
	if err := b.slot.Put(ctx, b.Key(), raw); err != nil {
		return err
	}
	b.log.Debug("snapshot saved", zap.String("key", b.Key()), zap.Int("bytes", len(raw)))
	return nil
}

// Encode serializes snap in the given layout.
func Encode(layout Layout, snap model.Snapshot) ([]byte, error) {
	snap = snap.Clone()
	snap.Normalize()

	var (
		raw []byte
		err error
	)
	if layout == LayoutStudy {
		raw, err = json.Marshal(snap.Subjects)
	} else {
		raw, err = json.Marshal(snap)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return raw, nil
}

// Decode parses raw in the given layout. Nil collections are normalised and
// cached completion percentages recomputed from the goals.
func Decode(layout Layout, raw []byte) (model.Snapshot, error) {
	var snap model.Snapshot
	if layout == LayoutStudy {
		if err := json.Unmarshal(raw, &snap.Subjects); err != nil {
			return model.Snapshot{}, fmt.Errorf("decoding subjects: %w", err)
		}
	} else {
		// A JSON null decodes without error into the zero snapshot, which
		// Normalize turns into the empty one.
		if err := json.Unmarshal(raw, &snap); err != nil {
			return model.Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
		}
	}

	snap.Normalize()
	for i := range snap.Subjects {
		snap.Subjects[i].CompletionPercent = metrics.CompletionPercent(snap.Subjects[i].Goals)
	}
	return snap, nil
}
