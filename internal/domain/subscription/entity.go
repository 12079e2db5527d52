package subscription

import "time"

// State of a membership row
type State string

const (
	StateActive    State = "ACTIVA"
	StateCancelled State = "CANCELADA"
	StateExpired   State = "VENCIDA"
)

// Unlimited disables a plan cap.
const Unlimited = -1

// MembershipTerm is fixed; Plan.PublicationDurationDays does not affect it.
const MembershipTerm = 30 * 24 * time.Hour

// Plan is a named tier defining publication and portfolio caps.
type Plan struct {
	ID                      int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	Name                    string    `gorm:"column:name;uniqueIndex;not null" json:"name" yaml:"name"`
	Price                   float64   `gorm:"column:price;not null;default:0" json:"price" yaml:"price"`
	MaxPublications         int       `gorm:"column:max_publications;not null" json:"max_publications" yaml:"max_publications"`
	MaxPortfolioItems       int       `gorm:"column:max_portfolio_items;not null" json:"max_portfolio_items" yaml:"max_portfolio_items"`
	PublicationDurationDays int       `gorm:"column:publication_duration_days" json:"publication_duration_days" yaml:"publication_duration_days"`
	Description             string    `gorm:"column:description" json:"description" yaml:"description"`
	CreatedAt               time.Time `gorm:"column:created_at" json:"-" yaml:"-"`
}

func (Plan) TableName() string { return "plans" }

// Membership ties a worker to a plan for a time window.
type Membership struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"column:user_id;index;not null" json:"user_id"`
	PlanID    int64     `gorm:"column:plan_id;not null" json:"plan_id"`
	StartDate time.Time `gorm:"column:start_date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date;not null" json:"end_date"`
	State     State     `gorm:"column:state;index;not null" json:"state"`
	Plan      *Plan     `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Membership) TableName() string { return "memberships" }

// DaysRemaining returns whole days until EndDate, never negative.
func (m *Membership) DaysRemaining(now time.Time) int {
	remaining := m.EndDate.Sub(now)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Hours() / 24)
}

// Decision is the outcome of a quota check.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Limit   int    `json:"limit"`
	Current int64  `json:"current"`
}

func Models() []any {
	return []any{&Plan{}, &Membership{}}
}
