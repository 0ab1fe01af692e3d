// Package db provides embedded database schema and catalog seed data.
package db

import _ "embed"

// Schema contains the DDL statements for all application tables.
//
//go:embed migrations/001_schema.sql
var Schema string

// SeedProducts is the mock product catalog, also used as the in-memory
// catalog source when the API runs without a products table.
//
//go:embed seed/products.json
var SeedProducts []byte
