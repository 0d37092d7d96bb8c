package dto

import "time"

// CallEventRequest alta o reemplazo de un registro de llamada.
type CallEventRequest struct {
	AgentName         string     `json:"agentName" validate:"required,max=200"`
	CallerName        string     `json:"callerName" validate:"required,max=200"`
	CallerNumber      string     `json:"callerNumber" validate:"required,max=30"`
	CallSource        string     `json:"callSource" validate:"omitempty,max=100"`
	ProductOfInterest string     `json:"productOfInterest" validate:"omitempty,max=200"`
	CustomerLocation  string     `json:"customerLocation" validate:"omitempty,max=200"`
	ReasonForCall     string     `json:"reasonForCall" validate:"omitempty,max=1000"`
	Action            string     `json:"action" validate:"omitempty,max=1000"`
	FollowUpNeeded    bool       `json:"followUpNeeded"`
	FollowUpDate      *time.Time `json:"followUpDate" validate:"required_if=FollowUpNeeded true"`
	CallStatus        string     `json:"callStatus" validate:"omitempty,max=50"`
	FollowUpStage     string     `json:"followUpStage" validate:"omitempty,max=50"`
}

// CallStatusRequest cambio del estado de una llamada sin tocar el resto del registro.
type CallStatusRequest struct {
	CallStatus string `json:"callStatus" validate:"required,max=50"`
}

// CallEventResponse salida de un registro de llamada.
type CallEventResponse struct {
	ID                string     `json:"id"`
	AgentName         string     `json:"agentName"`
	CallerName        string     `json:"callerName"`
	CallerNumber      string     `json:"callerNumber"`
	CallSource        string     `json:"callSource,omitempty"`
	ProductOfInterest string     `json:"productOfInterest,omitempty"`
	CustomerLocation  string     `json:"customerLocation,omitempty"`
	ReasonForCall     string     `json:"reasonForCall,omitempty"`
	Action            string     `json:"action,omitempty"`
	FollowUpNeeded    bool       `json:"followUpNeeded"`
	FollowUpDate      *time.Time `json:"followUpDate"`
	CallStatus        string     `json:"callStatus,omitempty"`
	FollowUpStage     string     `json:"followUpStage,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// CallEventListResponse listado paginado.
type CallEventListResponse struct {
	Items []CallEventResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
