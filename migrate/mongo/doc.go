// Package mongo implements the destination document collection against
// MongoDB, with unordered bulk inserts and partial-acceptance accounting.
package mongo
