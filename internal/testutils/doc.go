// Package testutils holds helpers shared by HTTP-level tests: a ready JWT
// service with a test-only secret, bearer header construction and error
// response assertions.
package testutils
