// Package mock provides test doubles for the ai interfaces.
// The mocks are deterministic by default and allow behavior injection
// via function fields.
package mock
