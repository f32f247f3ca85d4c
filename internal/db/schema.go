package db

import (
	"context"
	"fmt"
)

type Dialect string

const (
	MySQL  Dialect = "mysql"
	SQLite Dialect = "sqlite"
)

// EnsureSchema creates the CRM tables when they are missing. It never alters
// existing tables.
func EnsureSchema(ctx context.Context, conn DBTX, dialect Dialect) error {
	var stmts []string
	switch dialect {
	case MySQL:
		stmts = mysqlSchema
	case SQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}
	for _, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		organization_id BIGINT NOT NULL DEFAULT 1,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NULL,
		phone VARCHAR(20) NULL,
		mobile VARCHAR(20) NULL,
		date_of_birth DATE NULL,
		address_street VARCHAR(200) NULL,
		address_city VARCHAR(100) NULL,
		address_postal_code VARCHAR(10) NULL,
		address_country VARCHAR(50) NULL DEFAULT 'Deutschland',
		insurance_provider VARCHAR(100) NULL,
		insurance_type VARCHAR(20) NULL,
		insurance_number VARCHAR(50) NULL,
		last_exam_date DATE NULL,
		next_appointment DATETIME NULL,
		prescription_sphere_right DECIMAL(5,2) NULL,
		prescription_sphere_left DECIMAL(5,2) NULL,
		prescription_cylinder_right DECIMAL(5,2) NULL,
		prescription_cylinder_left DECIMAL(5,2) NULL,
		prescription_axis_right SMALLINT NULL,
		prescription_axis_left SMALLINT NULL,
		prescription_addition DECIMAL(4,2) NULL,
		prescription_pd DECIMAL(4,1) NULL,
		allergies VARCHAR(500) NULL,
		medical_notes TEXT NULL,
		frame_preferences VARCHAR(500) NULL,
		contact_preference VARCHAR(50) NULL DEFAULT 'email',
		status VARCHAR(20) NOT NULL DEFAULT 'interessent',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_customers_org_email (organization_id, email),
		KEY idx_customers_org_status (organization_id, status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		organization_id BIGINT NOT NULL DEFAULT 1,
		product_type VARCHAR(20) NOT NULL,
		sku VARCHAR(50) NULL,
		name VARCHAR(200) NOT NULL,
		brand VARCHAR(100) NULL,
		model VARCHAR(100) NULL,
		frame_size VARCHAR(20) NULL,
		frame_color VARCHAR(50) NULL,
		lens_material VARCHAR(100) NULL,
		lens_coating JSON NULL,
		details JSON NULL,
		current_price DECIMAL(12,2) NOT NULL,
		vat_rate DECIMAL(5,4) NOT NULL DEFAULT 0.19,
		insurance_eligible BOOLEAN NOT NULL DEFAULT FALSE,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_products_org_sku (organization_id, sku),
		KEY idx_products_org_type (organization_id, product_type)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		organization_id BIGINT NOT NULL DEFAULT 1,
		customer_id BIGINT NOT NULL,
		invoice_number VARCHAR(30) NULL,
		invoice_date DATE NOT NULL,
		due_date DATE NULL,
		prescription_snapshot JSON NULL,
		insurance_provider VARCHAR(100) NULL,
		insurance_claim_number VARCHAR(50) NULL,
		insurance_coverage_amount DECIMAL(12,2) NULL,
		patient_copay_amount DECIMAL(12,2) NULL,
		subtotal DECIMAL(12,2) NOT NULL,
		vat_amount DECIMAL(12,2) NOT NULL,
		total DECIMAL(12,2) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'draft',
		payment_method VARCHAR(50) NULL,
		notes TEXT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_invoices_number (invoice_number),
		KEY idx_invoices_org_date (organization_id, invoice_date),
		CONSTRAINT fk_invoices_customer FOREIGN KEY (customer_id) REFERENCES customers(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS invoice_items (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		invoice_id BIGINT NOT NULL,
		product_id BIGINT NULL,
		product_snapshot JSON NOT NULL,
		prescription_values JSON NULL,
		quantity INT NOT NULL DEFAULT 1,
		unit_price DECIMAL(12,2) NOT NULL,
		discount_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
		vat_rate DECIMAL(5,4) NOT NULL,
		line_total DECIMAL(12,2) NOT NULL,
		insurance_covered BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_invoice_items_invoice (invoice_id),
		CONSTRAINT fk_invoice_items_invoice FOREIGN KEY (invoice_id) REFERENCES invoices(id) ON DELETE CASCADE,
		CONSTRAINT fk_invoice_items_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE SET NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// SQLite keeps money in NUMERIC columns so ordering stays numeric; values
// are bound as decimal text.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		organization_id INTEGER NOT NULL DEFAULT 1,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		mobile TEXT,
		date_of_birth DATE,
		address_street TEXT,
		address_city TEXT,
		address_postal_code TEXT,
		address_country TEXT DEFAULT 'Deutschland',
		insurance_provider TEXT,
		insurance_type TEXT,
		insurance_number TEXT,
		last_exam_date DATE,
		next_appointment DATETIME,
		prescription_sphere_right REAL,
		prescription_sphere_left REAL,
		prescription_cylinder_right REAL,
		prescription_cylinder_left REAL,
		prescription_axis_right INTEGER,
		prescription_axis_left INTEGER,
		prescription_addition REAL,
		prescription_pd REAL,
		allergies TEXT,
		medical_notes TEXT,
		frame_preferences TEXT,
		contact_preference TEXT DEFAULT 'email',
		status TEXT NOT NULL DEFAULT 'interessent',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (organization_id, email)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_org_status ON customers (organization_id, status)`,
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		organization_id INTEGER NOT NULL DEFAULT 1,
		product_type TEXT NOT NULL,
		sku TEXT,
		name TEXT NOT NULL,
		brand TEXT,
		model TEXT,
		frame_size TEXT,
		frame_color TEXT,
		lens_material TEXT,
		lens_coating TEXT,
		details TEXT,
		current_price NUMERIC NOT NULL,
		vat_rate NUMERIC NOT NULL DEFAULT 0.19,
		insurance_eligible INTEGER NOT NULL DEFAULT 0,
		active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (organization_id, sku)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_org_type ON products (organization_id, product_type)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		organization_id INTEGER NOT NULL DEFAULT 1,
		customer_id INTEGER NOT NULL REFERENCES customers(id),
		invoice_number TEXT UNIQUE,
		invoice_date DATE NOT NULL,
		due_date DATE,
		prescription_snapshot TEXT,
		insurance_provider TEXT,
		insurance_claim_number TEXT,
		insurance_coverage_amount NUMERIC,
		patient_copay_amount NUMERIC,
		subtotal NUMERIC NOT NULL,
		vat_amount NUMERIC NOT NULL,
		total NUMERIC NOT NULL,
		status TEXT NOT NULL DEFAULT 'draft',
		payment_method TEXT,
		notes TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_org_date ON invoices (organization_id, invoice_date)`,
	`CREATE TABLE IF NOT EXISTS invoice_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		invoice_id INTEGER NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
		product_id INTEGER REFERENCES products(id) ON DELETE SET NULL,
		product_snapshot TEXT NOT NULL,
		prescription_values TEXT,
		quantity INTEGER NOT NULL DEFAULT 1,
		unit_price NUMERIC NOT NULL,
		discount_amount NUMERIC NOT NULL DEFAULT 0,
		vat_rate NUMERIC NOT NULL,
		line_total NUMERIC NOT NULL,
		insurance_covered INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items (invoice_id)`,
}
