package boombox

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/automoto/boombox/prefs"
)

// reclaimGuard pads the scheduled reclaim of a one-shot channel past the
// clip length, so a source is never torn down while its tail is audible.
const reclaimGuard = 100 * time.Millisecond

// Stats is a snapshot of the manager's pools and counters.
type Stats struct {
	SFXSize   int // channels currently in the effect pool
	SFXBusy   int
	VoiceSize int
	VoiceBusy int

	MusicPlaying bool

	Played  uint64 // playback requests that reached a source
	Dropped uint64 // playback requests dropped on an exhausted pool
}

// musicSlot is the single non-pooled music channel.
type musicSlot struct {
	src    Source
	asset  string
	gain   float64
	paused bool
}

// reclaimJob returns a one-shot channel to its pool once the clip length
// plus reclaimGuard has passed. The generation check keeps a job from
// releasing a channel that was stopped and re-acquired in the meantime.
type reclaimJob struct {
	pool      *channelPool
	ch        *channel
	gen       uint64
	remaining time.Duration
}

// Manager owns the volume state, the channel pools and the music slot.
// It is single-threaded by design: drive it from the host's game loop and
// call every method from that same goroutine.
type Manager struct {
	out Output
	cfg Config
	lib *Library
	rng *rand.Rand

	vol   volumeState
	fades fader
	muted bool

	sfx      *channelPool
	voice    *channelPool
	music    musicSlot
	reclaims []reclaimJob

	played  uint64
	dropped uint64
}

// New creates a manager playing on out. With no config the defaults apply;
// a supplied config is copied and sanitized, so the caller's struct is
// never modified.
func New(out Output, cfg ...*Config) (*Manager, error) {
	if out == nil {
		return nil, ErrNoOutput
	}
	conf := *DefaultConfig()
	if len(cfg) > 0 && cfg[0] != nil {
		conf = *cfg[0]
	}
	conf.sanitize()

	m := &Manager{
		out:   out,
		cfg:   conf,
		rng:   conf.Rand,
		sfx:   newChannelPool("sfx", conf.SFXChannels, conf.MaxSFXChannels),
		voice: newChannelPool("voice", conf.VoiceChannels, conf.MaxVoiceChannels),
	}
	m.vol.set(Master, conf.MasterVolume)
	m.vol.set(Music, conf.MusicVolume)
	m.vol.set(SFX, conf.SFXVolume)
	m.vol.set(Voice, conf.VoiceVolume)
	return m, nil
}

// ok guards every playback method against a nil manager: the call is
// logged and dropped instead of panicking, so a host whose audio failed to
// initialize keeps running silently.
func (m *Manager) ok(op string) bool {
	if m == nil {
		logf("boombox: Warning: %s on nil manager, ignoring", op)
		return false
	}
	return true
}

// Update advances fades and channel reclaim by one tick. Call it once per
// frame with the frame delta. Fades apply in the order they were started;
// reclaim timers run on wall-clock time and keep counting while a channel
// is paused.
func (m *Manager) Update(dt time.Duration) {
	if !m.ok("Update") {
		return
	}
	if dt < 0 {
		dt = 0
	}
	m.fades.advance(dt, m.applyFadeLevel)
	if len(m.reclaims) == 0 {
		return
	}
	kept := m.reclaims[:0]
	for _, job := range m.reclaims {
		job.remaining -= dt
		if job.remaining > 0 {
			kept = append(kept, job)
			continue
		}
		if job.ch.gen == job.gen && job.ch.busy {
			job.pool.release(job.ch)
		}
	}
	m.reclaims = kept
}

// SetLibrary swaps the symbolic-name catalog. Sounds already playing keep
// playing; only new lookups see the new library. A nil library makes every
// lookup miss.
func (m *Manager) SetLibrary(lib *Library) {
	if !m.ok("SetLibrary") {
		return
	}
	m.lib = lib
}

// Library returns the current catalog.
func (m *Manager) Library() *Library {
	if m == nil {
		return nil
	}
	return m.lib
}

// SetVolume stores the clamped level for cat and pushes the new effective
// volume to every live source in that category. Setting Master re-pushes
// all categories. An out-of-range category is a programming error and
// panics.
func (m *Manager) SetVolume(cat Category, v float64) {
	if !m.ok("SetVolume") {
		return
	}
	if !cat.valid() {
		panic(fmt.Sprintf("boombox: invalid category %d", int(cat)))
	}
	m.vol.set(cat, v)
	m.push(cat)
}

// Volume returns the stored level for cat. An out-of-range category
// panics.
func (m *Manager) Volume(cat Category) float64 {
	if m == nil {
		return 0
	}
	if !cat.valid() {
		panic(fmt.Sprintf("boombox: invalid category %d", int(cat)))
	}
	return m.vol.get(cat)
}

// Fade starts a linear fade of cat's volume to target over d, replacing
// any fade already running on that category. Only music and voice are
// fadeable; other categories log a warning and are left alone. A
// non-positive duration snaps to the target on the next Update.
func (m *Manager) Fade(cat Category, target float64, d time.Duration) {
	if !m.ok("Fade") {
		return
	}
	if !cat.valid() {
		panic(fmt.Sprintf("boombox: invalid category %d", int(cat)))
	}
	if !cat.fadeable() {
		logf("boombox: Warning: %s volume is not fadeable, ignoring", cat)
		return
	}
	m.fades.start(cat, m.vol.get(cat), clamp01(target), d)
}

// SetMuted silences every live source without touching the stored volumes,
// or restores them. Playback keeps running while muted.
func (m *Manager) SetMuted(muted bool) {
	if !m.ok("SetMuted") {
		return
	}
	if m.muted == muted {
		return
	}
	m.muted = muted
	m.push(Master)
}

// Muted reports whether output is muted.
func (m *Manager) Muted() bool {
	return m != nil && m.muted
}

// Play starts a one-shot playback of the named sound on the effect pool,
// picking a random variant. The claimed channel returns to the pool once
// the clip length plus a short guard has passed.
func (m *Manager) Play(name string) {
	if !m.ok("Play") {
		return
	}
	m.playPooled(m.sfx, SFX, name, false)
}

// PlayLoop starts a looping playback of the named sound on the effect
// pool. Looping channels are never reclaimed on their own; stop them with
// Stop or StopAll.
func (m *Manager) PlayLoop(name string) {
	if !m.ok("PlayLoop") {
		return
	}
	m.playPooled(m.sfx, SFX, name, true)
}

// PlayVoice starts a one-shot playback on the voice pool. It requires
// Config.EnableVoice; with the voice pool disabled the request is logged
// and dropped.
func (m *Manager) PlayVoice(name string) {
	if !m.ok("PlayVoice") {
		return
	}
	if !m.cfg.EnableVoice {
		logf("boombox: Warning: voice playback disabled, dropping %q", name)
		return
	}
	m.playPooled(m.voice, Voice, name, false)
}

// Stop releases every pool channel currently playing the named sound.
func (m *Manager) Stop(name string) {
	if !m.ok("Stop") {
		return
	}
	canonical := SanitizeName(name)
	match := func(ch *channel) bool { return ch.asset == canonical }
	m.sfx.releaseWhere(match)
	m.voice.releaseWhere(match)
}

// StopAll stops the music and releases every pool channel.
func (m *Manager) StopAll() {
	if !m.ok("StopAll") {
		return
	}
	m.StopMusic()
	all := func(*channel) bool { return true }
	m.sfx.releaseWhere(all)
	m.voice.releaseWhere(all)
	m.reclaims = m.reclaims[:0]
}

// PlayMusic swaps the music slot to the named sound, looping. Variant sets
// resolve deterministically to their first recording. Requesting the sound
// that is already playing is a no-op.
func (m *Manager) PlayMusic(name string) {
	if !m.ok("PlayMusic") {
		return
	}
	asset, ok := m.lib.Lookup(name)
	if !ok {
		logf("boombox: Warning: unknown sound %q", name)
		return
	}
	if m.music.src != nil && m.music.asset == asset.Name {
		return
	}
	variant, ok := asset.Resolve(m.rng, false)
	if !ok || variant.Clip == nil {
		logf("boombox: Warning: sound %q has no playable recording", name)
		return
	}
	src, err := m.out.NewSource(variant.Clip, true)
	if err != nil {
		logf("boombox: Warning: could not start music %q: %v", name, err)
		return
	}
	m.StopMusic()
	m.music = musicSlot{src: src, asset: asset.Name, gain: clamp01(variant.Gain)}
	src.SetVolume(clamp01(m.pushLevel(Music) * m.music.gain))
	src.Play()
}

// StopMusic stops and releases the current music, if any.
func (m *Manager) StopMusic() {
	if !m.ok("StopMusic") {
		return
	}
	if m.music.src == nil {
		return
	}
	m.music.src.Stop()
	_ = m.music.src.Close()
	m.music = musicSlot{}
}

// PauseMusic suspends the music keeping its position.
func (m *Manager) PauseMusic() {
	if !m.ok("PauseMusic") {
		return
	}
	if m.music.src != nil && !m.music.paused {
		m.music.src.Pause()
		m.music.paused = true
	}
}

// ResumeMusic resumes music paused by PauseMusic.
func (m *Manager) ResumeMusic() {
	if !m.ok("ResumeMusic") {
		return
	}
	if m.music.src != nil && m.music.paused {
		m.music.src.Play()
		m.music.paused = false
	}
}

// CurrentMusic returns the symbolic name of the playing music, or "" when
// the slot is empty.
func (m *Manager) CurrentMusic() string {
	if m == nil {
		return ""
	}
	return m.music.asset
}

// PauseAll suspends the music and every busy pool channel. Reclaim timers
// keep counting while paused.
func (m *Manager) PauseAll() {
	if !m.ok("PauseAll") {
		return
	}
	m.PauseMusic()
	m.sfx.pauseAll()
	m.voice.pauseAll()
}

// ResumeAll resumes everything PauseAll suspended.
func (m *Manager) ResumeAll() {
	if !m.ok("ResumeAll") {
		return
	}
	m.ResumeMusic()
	m.sfx.resumeAll()
	m.voice.resumeAll()
}

// LoadSettings applies volumes persisted in store. A store with nothing
// saved leaves the configured values untouched. Loaded values are clamped
// on the way in.
func (m *Manager) LoadSettings(store prefs.Store) error {
	if m == nil {
		return ErrNoManager
	}
	v, ok, err := store.Load()
	if err != nil {
		return fmt.Errorf("boombox: load settings: %w", err)
	}
	if !ok {
		return nil
	}
	m.vol.set(Master, v.Master)
	m.vol.set(Music, v.Music)
	m.vol.set(SFX, v.SFX)
	m.vol.set(Voice, v.Voice)
	m.muted = v.Muted
	m.push(Master)
	return nil
}

// SaveSettings snapshots the current volumes and mute state into store.
func (m *Manager) SaveSettings(store prefs.Store) error {
	if m == nil {
		return ErrNoManager
	}
	v := prefs.Volumes{
		Master: m.vol.get(Master),
		Music:  m.vol.get(Music),
		SFX:    m.vol.get(SFX),
		Voice:  m.vol.get(Voice),
		Muted:  m.muted,
	}
	if err := store.Save(v); err != nil {
		return fmt.Errorf("boombox: save settings: %w", err)
	}
	return nil
}

// Stats returns a snapshot of pool sizes and playback counters.
func (m *Manager) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	return Stats{
		SFXSize:      m.sfx.size(),
		SFXBusy:      m.sfx.busyCount(),
		VoiceSize:    m.voice.size(),
		VoiceBusy:    m.voice.busyCount(),
		MusicPlaying: m.music.src != nil && !m.music.paused,
		Played:       m.played,
		Dropped:      m.dropped,
	}
}

// Close stops all playback and releases every source. The manager must not
// be used afterwards.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	m.StopAll()
	m.fades.jobs = nil
	return nil
}

// playPooled claims a channel from pool and starts the named sound on it,
// scheduling the reclaim for one-shots.
func (m *Manager) playPooled(pool *channelPool, cat Category, name string, loop bool) {
	asset, ok := m.lib.Lookup(name)
	if !ok {
		logf("boombox: Warning: unknown sound %q", name)
		return
	}
	variant, ok := asset.Resolve(m.rng, true)
	if !ok || variant.Clip == nil {
		logf("boombox: Warning: sound %q has no playable recording", name)
		return
	}
	// An inaudible one-shot never claims a channel. Loops still start so
	// the sound is heard when the volume comes back up.
	if !loop && m.pushLevel(cat)*variant.Gain <= 0 {
		return
	}
	ch := pool.acquire()
	if ch == nil {
		m.dropped++
		logf("boombox: Warning: %s pool exhausted (%d/%d busy), dropping %q",
			pool.name, pool.busyCount(), pool.max, name)
		return
	}
	src, err := m.out.NewSource(variant.Clip, loop)
	if err != nil {
		pool.release(ch)
		logf("boombox: Warning: could not start %q: %v", name, err)
		return
	}
	ch.src = src
	ch.asset = asset.Name
	ch.gain = clamp01(variant.Gain)
	ch.looping = loop
	src.SetVolume(clamp01(m.pushLevel(cat) * ch.gain))
	src.Play()
	m.played++

	if loop {
		// No reclaim for loops: a looping clip never finishes on its own,
		// so a dynamic channel playing one stays in the pool until
		// stopped explicitly.
		return
	}
	remaining := time.Duration(0)
	if length := variant.Clip.Length(); length > 0 {
		remaining = length + reclaimGuard
	}
	m.reclaims = append(m.reclaims, reclaimJob{
		pool:      pool,
		ch:        ch,
		gen:       ch.gen,
		remaining: remaining,
	})
}

// applyFadeLevel is the fader's per-tick sink: store the interpolated
// level and push it to the category's live sources.
func (m *Manager) applyFadeLevel(cat Category, v float64) {
	m.vol.set(cat, v)
	m.push(cat)
}

// pushLevel is the volume actually sent to sources of cat right now.
func (m *Manager) pushLevel(cat Category) float64 {
	if m.muted {
		return 0
	}
	return m.vol.effective(cat)
}

// push re-applies the effective volume to every live source of cat.
func (m *Manager) push(cat Category) {
	switch cat {
	case Master:
		m.pushMusic()
		m.sfx.setVolume(m.pushLevel(SFX))
		m.voice.setVolume(m.pushLevel(Voice))
	case Music:
		m.pushMusic()
	case SFX:
		m.sfx.setVolume(m.pushLevel(SFX))
	case Voice:
		m.voice.setVolume(m.pushLevel(Voice))
	}
}

func (m *Manager) pushMusic() {
	if m.music.src != nil {
		m.music.src.SetVolume(clamp01(m.pushLevel(Music) * m.music.gain))
	}
}
