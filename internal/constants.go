package internal

import "time"

// Shared timeouts for database and cache round trips.
const (
	OneSecond   = 1 * time.Second
	FiveSeconds = 5 * time.Second
	TenSeconds  = 10 * time.Second
)
