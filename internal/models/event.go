package models

// MemberStatus is a member's response to an event invitation.
type MemberStatus string

const (
	MemberInvited   MemberStatus = "invited"
	MemberConfirmed MemberStatus = "confirmed"
	MemberDeclined  MemberStatus = "declined"
)

// MemberRole is a member's role within an event.
type MemberRole string

const (
	RoleOrganizer   MemberRole = "organizer"
	RoleCoOrganizer MemberRole = "co_organizer"
	RoleMember      MemberRole = "member"
)

// Event is a dining event that bills are attached to.
type Event struct {
	ID   string
	Name string

	// OrganizerID owns the event and may finalize any of its bills.
	OrganizerID string

	RestaurantName string
	Location       string

	// EventTime is the Unix timestamp of the meal.
	EventTime int64

	// Status is "planning" on creation.
	Status string

	CreatedAt int64

	// Members is only populated by GetEvent.
	Members []EventMember
}

// EventMember links a user to an event.
type EventMember struct {
	EventID  string
	UserID   string
	Status   MemberStatus
	Role     MemberRole
	JoinedAt int64

	// UserName and UserPhone are joined from the users table on read.
	UserName  string
	UserPhone string
}

// CanManage reports whether the member may invite others.
func (m *EventMember) CanManage() bool {
	return m.Role == RoleOrganizer || m.Role == RoleCoOrganizer
}
