package domain

import "time"

// InterviewSlot is a bookable interview time within a cycle.
type InterviewSlot struct {
	ID             int32     `json:"id"`
	CycleID        int32     `json:"cycle_id"`
	ApplicationID  *int32    `json:"application_id,omitempty"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Location       string    `json:"location"`
	VirtualLink    string    `json:"virtual_link"`
	InterviewerIDs []int32   `json:"interviewer_ids"`
	CreatedOn      time.Time `json:"created_on"`
}

func (s *InterviewSlot) IsBooked() bool {
	return s.ApplicationID != nil
}
