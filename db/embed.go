// Package db provides the embedded database schema and sample data.
package db

import _ "embed"

// Schema contains the DDL statements for the catalog tables.
//
//go:embed migrations/001_schema.sql
var Schema string

// SeedProducts is the sample catalog as a JSON array of product inputs.
//
//go:embed seed/products.json
var SeedProducts []byte
