package game

import (
	"sync"
	"time"

	"github.com/mateline/rules-server/pkg/chess"
)

// Clock accumulates thinking time per side. It never decides a game:
// timeout forfeits and draw rules are out of scope, the session only
// publishes its ticks so clients can display elapsed time.
type Clock struct {
	whiteMs int64
	blackMs int64

	activeColor chess.Color

	startTime time.Time
	isRunning bool

	mutex sync.RWMutex

	tickChan chan Tick
}

// Tick is one periodic snapshot of both elapsed times.
type Tick struct {
	WhiteMs     int64
	BlackMs     int64
	ActiveColor chess.Color
}

// NewClock creates a stopped clock with White as the active side.
func NewClock() *Clock {
	return &Clock{
		activeColor: chess.White,
		tickChan:    make(chan Tick, 10),
	}
}

// Start begins accumulating time for the active side.
func (c *Clock) Start() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.isRunning {
		return
	}

	c.startTime = time.Now()
	c.isRunning = true

	go c.tickRoutine()
}

// Stop freezes both counters and ends the tick routine.
func (c *Clock) Stop() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.isRunning {
		return
	}

	c.flushElapsed()
	c.isRunning = false
}

// Reset zeroes both counters and makes White the active side again. The
// running state is preserved.
func (c *Clock) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.whiteMs = 0
	c.blackMs = 0
	c.activeColor = chess.White
	c.startTime = time.Now()
}

// Switch books the elapsed time onto the active side and hands the clock
// to the opponent. Called once per applied move.
func (c *Clock) Switch() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.isRunning {
		c.flushElapsed()
		c.startTime = time.Now()
	}
	c.activeColor = c.activeColor.Opp()
}

// flushElapsed moves the time since startTime onto the active counter.
// Callers hold the mutex.
func (c *Clock) flushElapsed() {
	elapsed := time.Since(c.startTime).Milliseconds()
	if c.activeColor == chess.White {
		c.whiteMs += elapsed
	} else {
		c.blackMs += elapsed
	}
	c.startTime = time.Now()
}

// Elapsed returns the total thinking time booked so far for both sides,
// including the running span of the active side.
func (c *Clock) Elapsed() (white, black int64) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	white, black = c.whiteMs, c.blackMs
	if c.isRunning {
		running := time.Since(c.startTime).Milliseconds()
		if c.activeColor == chess.White {
			white += running
		} else {
			black += running
		}
	}
	return white, black
}

// Ticks returns a channel that provides periodic clock snapshots.
func (c *Clock) Ticks() <-chan Tick {
	return c.tickChan
}

// tickRoutine sends periodic snapshots while the clock runs.
func (c *Clock) tickRoutine() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.RLock()
		running := c.isRunning
		active := c.activeColor
		c.mutex.RUnlock()

		if !running {
			return
		}

		white, black := c.Elapsed()
		select {
		case c.tickChan <- Tick{WhiteMs: white, BlackMs: black, ActiveColor: active}:
		default:
			// Channel buffer is full
		}
	}
}
