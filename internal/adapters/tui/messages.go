package tui

import (
	"time"

	"go.trai.ch/courseware/internal/core/domain"
)

// MsgSnapshot reports the first read of a collection.
type MsgSnapshot struct {
	Resource  string
	Count     int
	Version   uint64
	FromCache bool
	At        time.Time
}

// MsgChange reports a refresh that observed new data.
type MsgChange struct {
	Resource string
	Count    int
	Version  uint64
	At       time.Time
}

// MsgLiveUpdate carries one dispatched live feed message.
type MsgLiveUpdate struct {
	Update domain.LiveUpdate
	At     time.Time
}

// MsgRequest reports a completed backend request.
type MsgRequest struct {
	Name     string
	Duration time.Duration
	Err      error
	At       time.Time
}

type msgTick time.Time
