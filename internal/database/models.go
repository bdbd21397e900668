package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Order is an order header row.
type Order struct {
	ID             uuid.UUID
	OrderNumber    string
	DispatcherName string
	CustomerName   string
	OrderStatus    string
	Team           pgtype.Text
	CreatedBy      pgtype.Text
	TotalAmount    pgtype.Numeric
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderItem is one flattened component row of an order. ItemIndex/RowIndex
// preserve the only ordering guarantee the form gives: position. Category
// decides which detail columns are meaningful; Tracking is the jsonb
// team-tracking record.
type OrderItem struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	ItemIndex     int32
	ItemName      string
	Category      string
	RowIndex      int32
	ComponentName string
	Weight        pgtype.Text
	NeckSize      pgtype.Text
	Decoration    pgtype.Text
	DecorationNo  pgtype.Text
	Process       pgtype.Text
	Material      pgtype.Text
	ApprovalCode  pgtype.Text
	NeckType      pgtype.Text
	Quantity      int32
	Rate          pgtype.Numeric
	Team          string
	Status        string
	Tracking      []byte
}

// User is an order-entry user. Team scopes which production team the user
// creates team orders for.
type User struct {
	ID             uuid.UUID
	Username       string
	FullName       string
	HashedPassword string
	Team           string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Accessory is one live-catalog accessory record.
type Accessory struct {
	ID        uuid.UUID
	Name      string
	IsActive  bool
	CreatedAt time.Time
}
