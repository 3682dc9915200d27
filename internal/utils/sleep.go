package utils

import (
	"sync"
	"time"
)

var (
	sleepFunc func(time.Duration)
	mu        sync.Mutex
)

func init() {
	ResetSleepFunc()
}

// Sleep blocks for d using the current sleep function. Only the mongo
// transaction backoff uses it, every saga wait goes through PollUntil.
func Sleep(d time.Duration) {
	mu.Lock()
	f := sleepFunc
	mu.Unlock()
	f(d)
}

// SetSleepFunc overrides the sleep function in tests.
func SetSleepFunc(f func(time.Duration)) {
	mu.Lock()
	sleepFunc = f
	mu.Unlock()
}

func ResetSleepFunc() {
	SetSleepFunc(time.Sleep)
}
