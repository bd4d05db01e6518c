//go:build tools

// Package tools pins command-line tools used during development.
//
// New migrations are created with:
//
//	go run github.com/pressly/goose/v3/cmd/goose -dir internal/adapters/postgres/migrations create <name> sql
//
// The HTTP API types are regenerated from internal/api/openapi.yaml with:
//
//	go generate ./internal/adapters/http
package tools

import (
	_ "github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen"
	_ "github.com/pressly/goose/v3/cmd/goose"
)
