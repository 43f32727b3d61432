package orders

const (
	queryCreateTable = `
		CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			reference TEXT NOT NULL,
			customer TEXT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			status TEXT NOT NULL DEFAULT 'open',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			CONSTRAINT orders_reference_key UNIQUE (reference)
		);
		CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer);
	`

	queryCreate = `
		INSERT INTO orders (reference, customer, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, reference, customer, quantity, status, created_at
	`

	queryGet = `
		SELECT id, reference, customer, quantity, status, created_at
		FROM orders
		WHERE id = $1
	`

	queryList = `
		SELECT id, reference, customer, quantity, status, created_at
		FROM orders
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`

	queryCount = `SELECT COUNT(*) FROM orders`

	queryUpdateStatus = `
		UPDATE orders
		SET status = $1
		WHERE id = $2
		RETURNING id, reference, customer, quantity, status, created_at
	`

	queryDelete = `DELETE FROM orders WHERE id = $1`
)
