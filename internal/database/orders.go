package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createOrder = `
INSERT INTO orders (order_number, dispatcher_name, customer_name, order_status, team, created_by, total_amount)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, order_number, dispatcher_name, customer_name, order_status, team, created_by, total_amount, created_at, updated_at
`

// CreateOrderParams are the columns written on order insert.
type CreateOrderParams struct {
	OrderNumber    string
	DispatcherName string
	CustomerName   string
	OrderStatus    string
	Team           pgtype.Text
	CreatedBy      pgtype.Text
	TotalAmount    pgtype.Numeric
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder,
		arg.OrderNumber, arg.DispatcherName, arg.CustomerName, arg.OrderStatus,
		arg.Team, arg.CreatedBy, arg.TotalAmount)
	var o Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.DispatcherName, &o.CustomerName,
		&o.OrderStatus, &o.Team, &o.CreatedBy, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

const getOrderByNumber = `
SELECT id, order_number, dispatcher_name, customer_name, order_status, team, created_by, total_amount, created_at, updated_at
FROM orders
WHERE order_number = $1
`

func (q *Queries) GetOrderByNumber(ctx context.Context, orderNumber string) (Order, error) {
	row := q.db.QueryRow(ctx, getOrderByNumber, orderNumber)
	var o Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.DispatcherName, &o.CustomerName,
		&o.OrderStatus, &o.Team, &o.CreatedBy, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

const listOrders = `
SELECT id, order_number, dispatcher_name, customer_name, order_status, team, created_by, total_amount, created_at, updated_at
FROM orders
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`

// ListOrdersParams page through orders, newest first.
type ListOrdersParams struct {
	Limit  int32
	Offset int32
}

func (q *Queries) ListOrders(ctx context.Context, arg ListOrdersParams) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrders, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.DispatcherName, &o.CustomerName,
			&o.OrderStatus, &o.Team, &o.CreatedBy, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

const createOrderItem = `
INSERT INTO order_items (
	order_id, item_index, item_name, category, row_index, component_name,
	weight, neck_size, decoration, decoration_no, process, material,
	approval_code, neck_type, quantity, rate, team, status, tracking
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
RETURNING id, order_id, item_index, item_name, category, row_index, component_name,
	weight, neck_size, decoration, decoration_no, process, material,
	approval_code, neck_type, quantity, rate, team, status, tracking
`

// CreateOrderItemParams are the columns written per component row.
type CreateOrderItemParams struct {
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

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRow(ctx, createOrderItem,
		arg.OrderID, arg.ItemIndex, arg.ItemName, arg.Category, arg.RowIndex, arg.ComponentName,
		arg.Weight, arg.NeckSize, arg.Decoration, arg.DecorationNo, arg.Process, arg.Material,
		arg.ApprovalCode, arg.NeckType, arg.Quantity, arg.Rate, arg.Team, arg.Status, arg.Tracking)
	return scanOrderItem(row)
}

const listOrderItemsByOrder = `
SELECT id, order_id, item_index, item_name, category, row_index, component_name,
	weight, neck_size, decoration, decoration_no, process, material,
	approval_code, neck_type, quantity, rate, team, status, tracking
FROM order_items
WHERE order_id = $1
ORDER BY item_index, category, row_index
`

func (q *Queries) ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error) {
	rows, err := q.db.Query(ctx, listOrderItemsByOrder, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrderItem(row scanner) (OrderItem, error) {
	var it OrderItem
	err := row.Scan(&it.ID, &it.OrderID, &it.ItemIndex, &it.ItemName, &it.Category,
		&it.RowIndex, &it.ComponentName, &it.Weight, &it.NeckSize, &it.Decoration,
		&it.DecorationNo, &it.Process, &it.Material, &it.ApprovalCode, &it.NeckType,
		&it.Quantity, &it.Rate, &it.Team, &it.Status, &it.Tracking)
	return it, err
}
