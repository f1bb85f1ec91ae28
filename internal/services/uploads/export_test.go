package uploads

import "time"

func (s *Storage) SetClock(now func() time.Time) {
	s.now = now
}
