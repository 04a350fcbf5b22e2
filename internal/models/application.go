package models

import (
	"time"

	"gorm.io/datatypes"
)

// ApplicationStatus tracks where an application sits in the selection pipeline.
type ApplicationStatus string

// Pipeline statuses. The interview rounds are ordered; rejected can be reached
// from any non-terminal state, accepted/declined only from offered.
const (
	StatusApplied     ApplicationStatus = "applied"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRound1      ApplicationStatus = "round1"
	StatusRound2      ApplicationStatus = "round2"
	StatusRound3      ApplicationStatus = "round3"
	StatusRound4      ApplicationStatus = "round4"
	StatusRound5      ApplicationStatus = "round5"
	StatusRound6      ApplicationStatus = "round6"
	StatusHRRound     ApplicationStatus = "hr_round"
	StatusOffered     ApplicationStatus = "offered"
	StatusRejected    ApplicationStatus = "rejected"
	StatusAccepted    ApplicationStatus = "accepted"
	StatusDeclined    ApplicationStatus = "declined"
)

var statusOrder = map[ApplicationStatus]int{
	StatusApplied:     0,
	StatusShortlisted: 1,
	StatusRound1:      2,
	StatusRound2:      3,
	StatusRound3:      4,
	StatusRound4:      5,
	StatusRound5:      6,
	StatusRound6:      7,
	StatusHRRound:     8,
	StatusOffered:     9,
}

// Known reports whether the status belongs to the pipeline vocabulary.
func (s ApplicationStatus) Known() bool {
	if _, ok := statusOrder[s]; ok {
		return true
	}
	return s == StatusRejected || s == StatusAccepted || s == StatusDeclined
}

// Terminal reports whether no further transition is permitted.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusRejected || s == StatusAccepted || s == StatusDeclined
}

// CanTransitionTo enforces the one-directional pipeline: forward moves only,
// rejection from any non-terminal state, offer responses only from offered.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s.Terminal() || !next.Known() || next == s {
		return false
	}

	switch next {
	case StatusRejected:
		return true
	case StatusAccepted, StatusDeclined:
		return s == StatusOffered
	}

	from, fromOK := statusOrder[s]
	to, toOK := statusOrder[next]
	return fromOK && toOK && to > from
}

// RoundStatus is the state of a single selection round within an application.
type RoundStatus string

// Round states.
const (
	RoundPending   RoundStatus = "pending"
	RoundScheduled RoundStatus = "scheduled"
	RoundPassed    RoundStatus = "passed"
	RoundFailed    RoundStatus = "failed"
)

// ApplicationRound is one entry in an application's rounds list, seeded from
// the drive's selection process at apply time.
type ApplicationRound struct {
	RoundName   string      `json:"round_name"`
	Status      RoundStatus `json:"status"`
	ScheduledAt *time.Time  `json:"scheduled_at,omitempty"`
}

// Application links one student to one drive for the lifetime of a selection
// process.
type Application struct {
	ID        uint                                  `gorm:"primaryKey" json:"id"`
	DriveID   uint                                  `gorm:"not null;index:idx_app_drive_student,unique" json:"drive_id"`
	StudentID uint                                  `gorm:"not null;index:idx_app_drive_student,unique" json:"student_id"`
	Status    ApplicationStatus                     `gorm:"size:32;not null;default:applied;index" json:"status"`
	Rounds    datatypes.JSONSlice[ApplicationRound] `json:"rounds"`
	Feedback  string                                `gorm:"type:text" json:"feedback,omitempty"`
	Drive     Drive                                 `gorm:"foreignKey:DriveID" json:"-"`
	CreatedAt time.Time                             `json:"created_at"`
	UpdatedAt time.Time                             `json:"updated_at"`
}
