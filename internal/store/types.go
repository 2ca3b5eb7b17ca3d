package store

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when an insert would duplicate a unique key.
	ErrConflict = errors.New("record already exists")
)

// Fixture is the seed file layout: users plus clients with their vehicles.
type Fixture struct {
	Users   []UserFixture   `yaml:"users"`
	Clients []ClientFixture `yaml:"clients"`
}

// UserFixture describes one account to seed.
type UserFixture struct {
	Name   string `yaml:"name"`
	Email  string `yaml:"email"`
	Role   string `yaml:"role"`
	Active *bool  `yaml:"active"`
}

// ClientFixture describes a client and the vehicles it owns.
type ClientFixture struct {
	Name     string           `yaml:"name"`
	Phone    string           `yaml:"phone"`
	Email    string           `yaml:"email"`
	Vehicles []VehicleFixture `yaml:"vehicles"`
}

// VehicleFixture describes one vehicle to seed.
type VehicleFixture struct {
	Plate    string `yaml:"plate"`
	Type     string `yaml:"type"`
	Brand    string `yaml:"brand"`
	Model    string `yaml:"model"`
	Cylinder *int   `yaml:"cylinder"`
}

// SeedResult counts what a seed run created and skipped.
type SeedResult struct {
	UsersCreated    int
	UsersSkipped    int
	ClientsCreated  int
	VehiclesCreated int
	VehiclesSkipped int
}
