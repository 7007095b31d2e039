// Package postgres provides PostgreSQL implementations of the store
// interfaces. Queries go through database/sql with the pgx stdlib driver,
// and PostgreSQL error codes are mapped to store errors.
package postgres
