package request

import "time"

// State of a service request.
type State string

const (
	StatePending   State = "PENDIENTE"
	StateAccepted  State = "ACEPTADA"
	StateRejected  State = "RECHAZADA"
	StateCancelled State = "CANCELADA"
	StateCompleted State = "FINALIZADO"
)

// transitions lists every allowed move. Terminal states have no entry.
var transitions = map[State][]State{
	StatePending:  {StateCancelled, StateAccepted, StateRejected, StateCompleted},
	StateAccepted: {StateCompleted},
}

// CanTransition reports whether from -> to is a legal move.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsOpen reports whether the request still blocks a new one for the same service.
func (s State) IsOpen() bool {
	return s == StatePending || s == StateAccepted
}

// ServiceRequest is a client's contact about one service of one worker.
type ServiceRequest struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ServiceID int64     `gorm:"column:service_id;index;not null" json:"service_id"`
	ClientID  int64     `gorm:"column:client_id;index;not null" json:"client_id"`
	WorkerID  int64     `gorm:"column:worker_id;index;not null" json:"worker_id"`
	Message   string    `gorm:"column:message;not null" json:"message"`
	State     State     `gorm:"column:state;index;not null" json:"state"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ServiceRequest) TableName() string { return "service_requests" }

func (r *ServiceRequest) IsParticipant(personID int64) bool {
	return personID == r.ClientID || personID == r.WorkerID
}

func Models() []any {
	return []any{&ServiceRequest{}}
}
