package service

import "time"

// timeNow exists so tests can pin the clock.
var timeNow = func() time.Time { return time.Now().UTC() }
