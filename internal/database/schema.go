package database

import (
	"context"
	"database/sql"
)

// schema holds one CREATE TABLE IF NOT EXISTS statement per table, in
// dependency order so foreign keys always reference an existing table.
// order_items restricts product deletion: a product referenced by an
// order cannot be removed until those orders are gone.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            CHAR(36)     NOT NULL PRIMARY KEY,
		name          VARCHAR(255) NOT NULL,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(50)  NOT NULL DEFAULT 'Farmer',
		created_at    DATETIME     NOT NULL,
		updated_at    DATETIME     NOT NULL
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS farms (
		id         CHAR(36)     NOT NULL PRIMARY KEY,
		name       VARCHAR(255) NOT NULL,
		location   VARCHAR(255) NOT NULL,
		size       DOUBLE       NOT NULL,
		owner_id   CHAR(36)     NOT NULL,
		created_at DATETIME     NOT NULL,
		updated_at DATETIME     NOT NULL,
		FOREIGN KEY (owner_id) REFERENCES users(id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS crops (
		id           CHAR(36)     NOT NULL PRIMARY KEY,
		farm_id      CHAR(36)     NOT NULL,
		name         VARCHAR(255) NOT NULL,
		area         DOUBLE       NOT NULL,
		status       VARCHAR(50)  NOT NULL DEFAULT 'Planning',
		planted_date DATE         NULL,
		harvest_date DATE         NULL,
		created_at   DATETIME     NOT NULL,
		updated_at   DATETIME     NOT NULL,
		FOREIGN KEY (farm_id) REFERENCES farms(id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS soil_records (
		id             CHAR(36) NOT NULL PRIMARY KEY,
		farm_id        CHAR(36) NOT NULL,
		ph             DOUBLE   NOT NULL,
		nitrogen       DOUBLE   NOT NULL,
		phosphorus     DOUBLE   NOT NULL,
		potassium      DOUBLE   NOT NULL,
		organic_matter DOUBLE   NOT NULL,
		record_date    DATE     NOT NULL,
		created_at     DATETIME NOT NULL,
		FOREIGN KEY (farm_id) REFERENCES farms(id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS equipment (
		id               CHAR(36)     NOT NULL PRIMARY KEY,
		farm_id          CHAR(36)     NOT NULL,
		name             VARCHAR(255) NOT NULL,
		status           VARCHAR(50)  NOT NULL DEFAULT 'Operational',
		last_maintenance DATE         NULL,
		next_maintenance DATE         NULL,
		created_at       DATETIME     NOT NULL,
		updated_at       DATETIME     NOT NULL,
		FOREIGN KEY (farm_id) REFERENCES farms(id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS products (
		id             CHAR(36)     NOT NULL PRIMARY KEY,
		name           VARCHAR(255) NOT NULL,
		description    TEXT         NULL,
		price          DOUBLE       NOT NULL,
		category       VARCHAR(100) NOT NULL,
		stock_quantity INT          NOT NULL DEFAULT 0,
		image_url      VARCHAR(255) NULL,
		created_at     DATETIME     NOT NULL,
		updated_at     DATETIME     NOT NULL
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS orders (
		id            CHAR(36)    NOT NULL PRIMARY KEY,
		user_id       CHAR(36)    NOT NULL,
		status        VARCHAR(50) NOT NULL DEFAULT 'Pending',
		total_amount  DOUBLE      NOT NULL,
		order_date    DATETIME    NOT NULL,
		delivery_date DATETIME    NULL,
		created_at    DATETIME    NOT NULL,
		updated_at    DATETIME    NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id         CHAR(36) NOT NULL PRIMARY KEY,
		order_id   CHAR(36) NOT NULL,
		product_id CHAR(36) NOT NULL,
		quantity   INT      NOT NULL,
		price      DOUBLE   NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(id),
		FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE RESTRICT
	) ENGINE=InnoDB`,
}

// EnsureSchema creates any missing tables. It is safe to run on every
// startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
