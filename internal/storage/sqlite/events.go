package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dinelink/dinelink/internal/models"
)

// CreateEvent persists a new dining event.
func (q *queries) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt == 0 {
		event.CreatedAt = time.Now().Unix()
	}
	if event.Status == "" {
		event.Status = "planning"
	}

	_, err := q.db.ExecContext(ctx,
		`INSERT INTO dining_events (id, name, organizer_id, restaurant_name, location, event_time, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Name, event.OrganizerID, event.RestaurantName, event.Location,
		event.EventTime, event.Status, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// GetEvent retrieves an event and its members.
func (q *queries) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	event := &models.Event{}
	err := q.db.QueryRowContext(ctx,
		`SELECT id, name, organizer_id, restaurant_name, location, event_time, status, created_at
		 FROM dining_events WHERE id = ?`,
		eventID,
	).Scan(&event.ID, &event.Name, &event.OrganizerID, &event.RestaurantName, &event.Location,
		&event.EventTime, &event.Status, &event.CreatedAt)
	if isNoRows(err) {
		return nil, notFound("event", eventID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	rows, err := q.db.QueryContext(ctx,
		`SELECT m.event_id, m.user_id, m.status, m.role, m.joined_at,
		        COALESCE(u.name, ''), COALESCE(u.phone, '')
		 FROM event_members m
		 LEFT JOIN users u ON u.id = m.user_id
		 WHERE m.event_id = ?
		 ORDER BY m.joined_at, m.rowid`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get event members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.EventMember
		if err := rows.Scan(&m.EventID, &m.UserID, &m.Status, &m.Role, &m.JoinedAt, &m.UserName, &m.UserPhone); err != nil {
			return nil, fmt.Errorf("failed to scan event member: %w", err)
		}
		event.Members = append(event.Members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event members: %w", err)
	}

	return event, nil
}

// AddEventMember inserts a member row for an event.
func (q *queries) AddEventMember(ctx context.Context, member *models.EventMember) error {
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO event_members (event_id, user_id, status, role, joined_at) VALUES (?, ?, ?, ?, ?)`,
		member.EventID, member.UserID, member.Status, member.Role, member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event member: %w", err)
	}
	return nil
}

// GetEventMember retrieves one user's membership in an event.
func (q *queries) GetEventMember(ctx context.Context, eventID, userID string) (*models.EventMember, error) {
	m := &models.EventMember{}
	err := q.db.QueryRowContext(ctx,
		`SELECT event_id, user_id, status, role, joined_at FROM event_members WHERE event_id = ? AND user_id = ?`,
		eventID, userID,
	).Scan(&m.EventID, &m.UserID, &m.Status, &m.Role, &m.JoinedAt)
	if isNoRows(err) {
		return nil, notFound("event member", eventID+"/"+userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event member: %w", err)
	}
	return m, nil
}

// UpdateEventMemberStatus changes a member's invitation status.
func (q *queries) UpdateEventMemberStatus(ctx context.Context, eventID, userID string, status models.MemberStatus) error {
	result, err := q.db.ExecContext(ctx,
		`UPDATE event_members SET status = ? WHERE event_id = ? AND user_id = ?`,
		status, eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event member: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return notFound("event member", eventID+"/"+userID)
	}
	return nil
}
