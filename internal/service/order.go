package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/glasspack/api/internal/database"
	"github.com/glasspack/api/internal/draft"
	"github.com/glasspack/api/internal/enum"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Errors returned by the order service.
var (
	ErrEmptyItems      = errors.New("order has no items")
	ErrDuplicateNumber = errors.New("order number already exists")
	ErrOrderNotFound   = errors.New("order not found")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods needed to create and read orders.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (database.Order, error)
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error)
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
}

// NewOrderStore scopes an OrderStore to a transaction.
type NewOrderStore func(tx pgx.Tx) OrderStore

// OrderService persists submitted orders and serves duplicate lookups.
type OrderService struct {
	pool     TxBeginner
	store    OrderStore
	newStore NewOrderStore
}

// NewOrderService creates a new OrderService. store runs reads against the
// pool; newStore scopes writes to a transaction.
func NewOrderService(pool TxBeginner, store OrderStore, newStore NewOrderStore) *OrderService {
	return &OrderService{pool: pool, store: store, newStore: newStore}
}

// CreateOrder stores a wire order and its flattened component rows in one
// transaction, returning the stored shape with server-assigned fields.
func (s *OrderService) CreateOrder(ctx context.Context, wo draft.WireOrder) (draft.WireOrder, error) {
	if len(wo.Items) == 0 {
		return draft.WireOrder{}, ErrEmptyItems
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return draft.WireOrder{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		OrderNumber:    wo.OrderNumber,
		DispatcherName: wo.DispatcherName,
		CustomerName:   wo.CustomerName,
		OrderStatus:    enum.OrderStatusPending,
		Team:           optText(wo.Team),
		CreatedBy:      optText(wo.CreatedBy),
		TotalAmount:    decimalToNumeric(wireTotal(wo)),
	})
	if err != nil {
		if isOrderNumberConflict(err) {
			return draft.WireOrder{}, ErrDuplicateNumber
		}
		return draft.WireOrder{}, fmt.Errorf("create order: %w", err)
	}

	for i, wi := range wo.Items {
		for _, c := range enum.Categories {
			for j, wr := range wi.Rows(c) {
				tracking, err := json.Marshal(wr.Tracking)
				if err != nil {
					return draft.WireOrder{}, fmt.Errorf("marshal tracking: %w", err)
				}
				if _, err := store.CreateOrderItem(ctx, itemParams(order.ID, i, wi.Name, c, j, wr, tracking)); err != nil {
					return draft.WireOrder{}, fmt.Errorf("create order item: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return draft.WireOrder{}, fmt.Errorf("commit tx: %w", err)
	}

	wo.OrderStatus = order.OrderStatus
	return wo, nil
}

// GetOrderByNumber reassembles a stored order into the wire shape, row
// lists grouped per item and category in stored position order.
func (s *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (draft.WireOrder, error) {
	order, err := s.store.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return draft.WireOrder{}, ErrOrderNotFound
		}
		return draft.WireOrder{}, fmt.Errorf("get order: %w", err)
	}

	items, err := s.store.ListOrderItemsByOrder(ctx, order.ID)
	if err != nil {
		return draft.WireOrder{}, fmt.Errorf("list order items: %w", err)
	}

	wo := draft.WireOrder{
		OrderNumber:    order.OrderNumber,
		DispatcherName: order.DispatcherName,
		CustomerName:   order.CustomerName,
		OrderStatus:    order.OrderStatus,
	}
	if order.Team.Valid {
		wo.Team = order.Team.String
	}
	if order.CreatedBy.Valid {
		wo.CreatedBy = order.CreatedBy.String
	}

	// Group rows back into items by stored item index. Indexes are dense
	// on write, so a position-keyed map rebuilds the original order.
	byIndex := map[int32]*draft.WireItem{}
	var indexes []int32
	for _, it := range items {
		wi, ok := byIndex[it.ItemIndex]
		if !ok {
			wi = &draft.WireItem{Name: it.ItemName}
			byIndex[it.ItemIndex] = wi
			indexes = append(indexes, it.ItemIndex)
		}
		appendWireRow(wi, it)
	}
	for i := int32(0); i < int32(len(indexes)); i++ {
		if wi, ok := byIndex[i]; ok {
			wo.Items = append(wo.Items, *wi)
		}
	}
	return wo, nil
}

// ListRecentOrders reads the newest stored orders, header fields only. Used
// to rebuild the recent-orders cache after a restart.
func (s *OrderService) ListRecentOrders(ctx context.Context, limit int) ([]draft.WireOrder, error) {
	orders, err := s.store.ListOrders(ctx, database.ListOrdersParams{Limit: int32(limit)})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := make([]draft.WireOrder, 0, len(orders))
	for _, o := range orders {
		wo := draft.WireOrder{
			OrderNumber:    o.OrderNumber,
			DispatcherName: o.DispatcherName,
			CustomerName:   o.CustomerName,
			OrderStatus:    o.OrderStatus,
		}
		if o.Team.Valid {
			wo.Team = o.Team.String
		}
		if o.CreatedBy.Valid {
			wo.CreatedBy = o.CreatedBy.String
		}
		out = append(out, wo)
	}
	return out, nil
}

// --- Helpers ---

func itemParams(orderID uuid.UUID, itemIndex int, itemName, category string, rowIndex int, wr draft.WireRow, tracking []byte) database.CreateOrderItemParams {
	p := database.CreateOrderItemParams{
		OrderID:       orderID,
		ItemIndex:     int32(itemIndex),
		ItemName:      itemName,
		Category:      category,
		RowIndex:      int32(rowIndex),
		ComponentName: wr.Name(),
		Weight:        optText(wr.Weight),
		NeckSize:      optText(wr.NeckSize),
		Decoration:    optText(wr.Decoration),
		DecorationNo:  optText(wr.DecorationNo),
		Process:       optText(wr.Process),
		Material:      optText(wr.Material),
		ApprovalCode:  optText(wr.ApprovalCode),
		NeckType:      optText(wr.NeckType),
		Quantity:      int32(wr.Quantity),
		Team:          wr.Team,
		Status:        wr.Status,
		Tracking:      tracking,
	}
	if rate, err := decimal.NewFromString(wr.Rate); err == nil {
		p.Rate = decimalToNumeric(rate)
	}
	return p
}

func appendWireRow(wi *draft.WireItem, it database.OrderItem) {
	wr := draft.WireRow{
		Weight:       it.Weight.String,
		NeckSize:     it.NeckSize.String,
		Decoration:   it.Decoration.String,
		DecorationNo: it.DecorationNo.String,
		Process:      it.Process.String,
		Material:     it.Material.String,
		ApprovalCode: it.ApprovalCode.String,
		NeckType:     it.NeckType.String,
		Quantity:     int(it.Quantity),
		Team:         it.Team,
		Status:       it.Status,
		Tracking:     draft.NewTeamTracking(),
	}
	if it.Rate.Valid {
		wr.Rate = numericToString(it.Rate)
	}
	if len(it.Tracking) > 0 {
		// Tracking that fails to decode keeps the zero record.
		_ = json.Unmarshal(it.Tracking, &wr.Tracking)
	}

	switch it.Category {
	case enum.CategoryGlass:
		wr.GlassName = it.ComponentName
		wi.Glass = append(wi.Glass, wr)
	case enum.CategoryCaps:
		wr.CapName = it.ComponentName
		wi.Caps = append(wi.Caps, wr)
	case enum.CategoryBoxes:
		wr.BoxName = it.ComponentName
		wi.Boxes = append(wi.Boxes, wr)
	case enum.CategoryPumps:
		wr.PumpName = it.ComponentName
		wi.Pumps = append(wi.Pumps, wr)
	case enum.CategoryAccessories:
		wr.AccessoriesName = it.ComponentName
		wi.Accessories = append(wi.Accessories, wr)
	}
}

// wireTotal recomputes the order total from the stored per-thousand rate
// convention.
func wireTotal(wo draft.WireOrder) decimal.Decimal {
	perThousand := decimal.NewFromInt(1000)
	total := decimal.Zero
	for _, wi := range wo.Items {
		for _, c := range enum.Categories {
			for _, wr := range wi.Rows(c) {
				rate, err := decimal.NewFromString(wr.Rate)
				if err != nil {
					continue
				}
				q := decimal.NewFromInt(int64(wr.Quantity))
				total = total.Add(q.Mul(rate).Div(perThousand))
			}
		}
	}
	return total
}

// isOrderNumberConflict checks for a unique constraint violation on the
// order number (pgconn error code 23505).
func isOrderNumberConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "orders_order_number_key"
	}
	return false
}

// optText maps an empty string to a NULL column value.
func optText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}

func numericToString(n pgtype.Numeric) string {
	if !n.Valid {
		return ""
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return ""
	}
	s, ok := val.(string)
	if !ok {
		return ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ""
	}
	return d.String()
}
