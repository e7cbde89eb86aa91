package game

import (
	"fmt"
	"time"
)

// Uptime measures elapsed wall-clock time since a Game started, and
// formats as H:MM:SS for GAMES_LIST_QUERY titles.
type Uptime struct {
	start time.Time
}

func NewUptime() *Uptime { return &Uptime{start: time.Now()} }

func (u *Uptime) Duration() time.Duration { return time.Since(u.start) }

func (u *Uptime) Seconds() uint32 { return uint32(u.Duration().Seconds()) }

func (u *Uptime) String() string {
	total := int64(u.Duration().Seconds())
	s := total % 60
	total /= 60
	m := total % 60
	total /= 60
	h := total % 24
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
