// Package donburiaudio mounts a boombox.Manager in a donburi world as a
// singleton component, with an update system that drives it at the host's
// tick rate.
//
// Gameplay systems that shouldn't hold a manager reference queue one-shots
// with Enqueue; the update system drains the queue, then advances fades and
// channel reclaim.
package donburiaudio

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/boombox"
)

// Data is the singleton audio state.
type Data struct {
	Manager *boombox.Manager

	// pendingSFX queues one-shot names played on the next Update.
	pendingSFX []string
}

var Component = donburi.NewComponentType[Data]()

// Attach creates the singleton audio entity holding m.
func Attach(w donburi.World, m *boombox.Manager) *donburi.Entry {
	entry := w.Entry(w.Create(Component))
	Component.SetValue(entry, Data{
		Manager:    m,
		pendingSFX: make([]string, 0, 8),
	})
	return entry
}

// Get returns the manager attached to w, or nil when there is none. A nil
// manager is safe to call; playback methods log and no-op.
func Get(w donburi.World) *boombox.Manager {
	entry, ok := Component.First(w)
	if !ok {
		return nil
	}
	return Component.Get(entry).Manager
}

// Enqueue schedules a one-shot sound for the next Update. Without an audio
// entity the request is dropped.
func Enqueue(w donburi.World, name string) {
	entry, ok := Component.First(w)
	if !ok {
		return
	}
	data := Component.Get(entry)
	data.pendingSFX = append(data.pendingSFX, name)
}

// Update drains queued one-shots and advances the manager by one tick.
// Register it with the host's ecs update systems.
func Update(e *ecs.ECS) {
	entry, ok := Component.First(e.World)
	if !ok {
		return
	}
	data := Component.Get(entry)
	m := data.Manager
	if m == nil {
		return
	}
	for _, name := range data.pendingSFX {
		m.Play(name)
	}
	data.pendingSFX = data.pendingSFX[:0]
	m.Update(tick())
}

// tick is the wall-clock length of one update at the current tick rate.
func tick() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}
