package main

import (
	"fmt"
	"strings"
	"time"
)

// parseInterval reads a Go duration such as "1m" and returns whole milliseconds.
func parseInterval(raw string) (uint64, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative interval %s", d)
	}
	return uint64(d / time.Millisecond), nil
}
