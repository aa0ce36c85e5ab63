package api

type Event struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	OrganizerID    string         `json:"organizer_id"`
	RestaurantName string         `json:"restaurant_name,omitempty"`
	Location       string         `json:"location,omitempty"`
	EventTime      int64          `json:"event_time,omitempty"`
	Status         string         `json:"status"`
	CreatedAt      int64          `json:"created_at"`
	Members        []*EventMember `json:"members,omitempty"`
}

type EventMember struct {
	EventID  string `json:"event_id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Status   string `json:"status"`
	Role     string `json:"role"`
	JoinedAt int64  `json:"joined_at"`
}

type CreateEventRequest struct {
	Name           string `json:"name"`
	RestaurantName string `json:"restaurant_name,omitempty"`
	Location       string `json:"location,omitempty"`
	EventTime      int64  `json:"event_time,omitempty"`
}

type CreateEventResponse struct {
	Event *Event `json:"event"`
}

type GetEventRequest struct {
	EventID string `json:"event_id"`
}

type GetEventResponse struct {
	Event *Event `json:"event"`
}

// AddEventMemberRequest invites UserID. Role is "member" when empty.
type AddEventMemberRequest struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	Role    string `json:"role,omitempty"`
}

type AddEventMemberResponse struct {
	Member *EventMember `json:"member"`
}

type RespondToInvitationRequest struct {
	EventID string `json:"event_id"`
	Accept  bool   `json:"accept"`
}

type RespondToInvitationResponse struct {
	Member *EventMember `json:"member"`
}
