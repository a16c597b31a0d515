package chip8

import "time"

/// Tick is the period of the delay timer (60 Hz).
///
const Tick = time.Second / 60

/// Timer is a 60 Hz countdown that is never decremented. Instead, the
/// time it was set is remembered and the current value is derived from
/// the elapsed time when read.
///
type Timer struct {
	/// Value is the byte the timer was last set to.
	///
	Value byte

	/// Set is the time (in ns) the timer was last set.
	///
	Set int64
}

/// Load the timer with a value at time now (ns).
///
func (t *Timer) Load(value byte, now int64) {
	t.Value = value
	t.Set = now
}

/// Read returns the effective value of the timer at time now (ns).
///
func (t *Timer) Read(now int64) byte {
	elapsed := now - t.Set
	if elapsed < 0 {
		return t.Value
	}

	ticks := elapsed / int64(Tick)
	if ticks >= int64(t.Value) {
		return 0
	}

	return t.Value - byte(ticks)
}
