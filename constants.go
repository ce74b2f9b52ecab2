package server

import "time"

const (
	writeWait         = 10 * time.Second
	defaultTickRate   = 30 // world updates per second
	heartbeatInterval = 2 * time.Second
	disconnectAfter   = 3 * heartbeatInterval
)
