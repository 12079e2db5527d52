package subscription

import "time"

type SubscribeRequest struct {
	PlanID int64 `json:"plan_id" validate:"required,gt=0"`
}

type MembershipResponse struct {
	Membership    *Membership `json:"membership"`
	DaysRemaining int         `json:"days_remaining"`
}

func toMembershipResponse(m *Membership, now time.Time) MembershipResponse {
	return MembershipResponse{Membership: m, DaysRemaining: m.DaysRemaining(now)}
}
