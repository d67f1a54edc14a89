package proto

import "time"

// Version is the version of the Announcement record written by this package.
const Version = 1

// Announcement is what a running counter publishes in its announce file.
type Announcement struct {
	Version   int32     `json:"version"`
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
}
