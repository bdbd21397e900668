package database

import "context"

const listAccessories = `
SELECT name
FROM accessories
WHERE is_active = TRUE
ORDER BY name
`

// ListAccessories returns the display names of the live accessories
// catalog.
func (q *Queries) ListAccessories(ctx context.Context) ([]string, error) {
	rows, err := q.db.Query(ctx, listAccessories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

const createAccessory = `
INSERT INTO accessories (name)
VALUES ($1)
ON CONFLICT (name) DO NOTHING
`

// CreateAccessory inserts a catalog accessory, ignoring duplicates.
func (q *Queries) CreateAccessory(ctx context.Context, name string) error {
	_, err := q.db.Exec(ctx, createAccessory, name)
	return err
}
