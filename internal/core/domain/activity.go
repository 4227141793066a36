package domain

import "time"

// Activity is an audit entry recorded after sensitive mutations
// (order capture, role elevation, account removal).
type Activity struct {
	Email     string    `json:"email"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	ActivityOrderPaid      = "order_paid"
	ActivityRoleElevated   = "role_elevated"
	ActivityAccountRemoved = "account_removed"
)
