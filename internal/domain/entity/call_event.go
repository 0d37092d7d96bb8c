package entity

import "time"

// CallEvent registro de una llamada atendida por el call center.
type CallEvent struct {
	ID                string
	AgentName         string
	CallerName        string
	CallerNumber      string
	CallSource        string
	ProductOfInterest string
	CustomerLocation  string
	ReasonForCall     string
	Action            string
	FollowUpNeeded    bool
	FollowUpDate      *time.Time
	CallStatus        string
	FollowUpStage     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
