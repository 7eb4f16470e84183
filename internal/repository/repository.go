// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist, or
// update data, abstracting SQL logic away from the service layer.
// Each repository binds one entity type to one table; every call is a
// self-contained round trip on the shared pool, and no entity
// references are retained across calls.
package repository
