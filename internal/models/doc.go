// Package models defines the core domain records for DineLink bill settlement.
//
// # Records
//
//   - Bill: one settlement attempt for a dining event (draft, then finalized)
//   - BillItem: one receipt line owned by a bill
//   - ItemAssignment: a member's fractional share of one item
//   - Payment: a member's claimed contribution toward a bill
//   - BillSummary: per-member balances derived on demand, never stored
//   - Event, EventMember: the dining event a bill belongs to and its members
//   - User: a registered account identified by phone number
//   - Notification: an in-app message for one user
//
// # Conventions
//
// Money and portions are decimal.Decimal and are never converted to float64
// inside the core. Timestamps are Unix seconds. Relationships use ID strings
// instead of pointers to avoid cycles; Bill.Items and BillItem.Assignments are
// only populated by reads that ask for them.
package models
