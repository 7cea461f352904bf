package boombox

// channel is one slot of a pool. A channel owns at most one source at a
// time: the source is created when a play claims the channel and closed
// when the channel is released.
type channel struct {
	src     Source
	asset   string
	gain    float64
	dynamic bool
	busy    bool
	paused  bool
	looping bool

	// gen changes on every acquire and release, so a reclaim job scheduled
	// for an earlier playback cannot release a re-acquired channel.
	gen uint64
}

// channelPool hands out reusable playback channels. The initial channels
// exist for the pool's whole life; channels added past them are dynamic and
// leave the pool again when released.
type channelPool struct {
	name     string // for log messages
	channels []*channel
	initial  int
	max      int // 0 = unlimited
}

func newChannelPool(name string, initial, max int) *channelPool {
	if initial < 0 {
		initial = 0
	}
	if max > 0 && max < initial {
		max = initial
	}
	p := &channelPool{name: name, initial: initial, max: max}
	for i := 0; i < initial; i++ {
		p.channels = append(p.channels, &channel{})
	}
	return p
}

// acquire claims the first idle channel in slot order, growing the pool by
// one dynamic channel when all are busy and the cap allows it. Returns nil
// when the pool is exhausted.
func (p *channelPool) acquire() *channel {
	for _, ch := range p.channels {
		if !ch.busy {
			ch.busy = true
			ch.gen++
			return ch
		}
	}
	if p.max > 0 && len(p.channels) >= p.max {
		return nil
	}
	ch := &channel{dynamic: true, busy: true, gen: 1}
	p.channels = append(p.channels, ch)
	return ch
}

// release stops and closes the channel's source, then returns the channel
// to the pool: an initial channel goes idle, a dynamic one is removed.
func (p *channelPool) release(ch *channel) {
	ch.gen++
	ch.busy = false
	ch.paused = false
	ch.looping = false
	ch.asset = ""
	ch.gain = 0
	if ch.src != nil {
		ch.src.Stop()
		_ = ch.src.Close()
		ch.src = nil
	}
	if !ch.dynamic {
		return
	}
	for i, c := range p.channels {
		if c == ch {
			p.channels = append(p.channels[:i], p.channels[i+1:]...)
			return
		}
	}
}

// releaseWhere releases every busy channel matching pred and reports how
// many it released. Iterates a snapshot because releasing a dynamic channel
// mutates the slice.
func (p *channelPool) releaseWhere(pred func(*channel) bool) int {
	snapshot := append([]*channel(nil), p.channels...)
	n := 0
	for _, ch := range snapshot {
		if ch.busy && pred(ch) {
			p.release(ch)
			n++
		}
	}
	return n
}

func (p *channelPool) pauseAll() {
	for _, ch := range p.channels {
		if ch.busy && !ch.paused && ch.src != nil {
			ch.src.Pause()
			ch.paused = true
		}
	}
}

func (p *channelPool) resumeAll() {
	for _, ch := range p.channels {
		if ch.busy && ch.paused && ch.src != nil {
			ch.src.Play()
			ch.paused = false
		}
	}
}

// setVolume pushes the effective level to every busy channel, scaled by
// each channel's variant gain.
func (p *channelPool) setVolume(effective float64) {
	for _, ch := range p.channels {
		if ch.busy && ch.src != nil {
			ch.src.SetVolume(clamp01(effective * ch.gain))
		}
	}
}

func (p *channelPool) size() int {
	return len(p.channels)
}

func (p *channelPool) busyCount() int {
	n := 0
	for _, ch := range p.channels {
		if ch.busy {
			n++
		}
	}
	return n
}
