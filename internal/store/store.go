package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"workshop-backend/internal/model"
	"workshop-backend/internal/parse"
)

// Store defines the reference data operations: vehicles, clients and users.
type Store interface {
	VehicleExists(ctx context.Context, vehicleID uint) (bool, error)
	FindUser(ctx context.Context, userID uint) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	CreateVehicle(ctx context.Context, vehicle *model.Vehicle) error
	Seed(ctx context.Context, fx *Fixture) (SeedResult, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// VehicleExists reports whether a vehicle with the given id is registered.
func (s *gormStore) VehicleExists(ctx context.Context, vehicleID uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Vehicle{}).Where("id = ?", vehicleID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up vehicle %d: %w", vehicleID, err)
	}
	return count > 0, nil
}

// FindUser loads a user by id, returning ErrNotFound when there is none.
func (s *gormStore) FindUser(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	return &user, nil
}

// CreateUser inserts a user after checking that its email is free.
func (s *gormStore) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createUser(tx, user)
	})
}

// CreateVehicle inserts a vehicle after checking that its plate is free.
func (s *gormStore) CreateVehicle(ctx context.Context, vehicle *model.Vehicle) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createVehicle(tx, vehicle)
	})
}

// Seed loads a fixture in one transaction. Users and vehicles whose unique
// key is already taken are skipped; clients are matched by email.
func (s *gormStore) Seed(ctx context.Context, fx *Fixture) (SeedResult, error) {
	var res SeedResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, uf := range fx.Users {
			user, err := userFromFixture(uf)
			if err != nil {
				return err
			}
			if err := createUser(tx, user); err != nil {
				if errors.Is(err, ErrConflict) {
					res.UsersSkipped++
					continue
				}
				return err
			}
			res.UsersCreated++
		}

		for _, cf := range fx.Clients {
			client, created, err := findOrCreateClient(tx, cf)
			if err != nil {
				return err
			}
			if created {
				res.ClientsCreated++
			}

			for _, vf := range cf.Vehicles {
				vehicle := vehicleFromFixture(vf, client.ID)
				if err := createVehicle(tx, vehicle); err != nil {
					if errors.Is(err, ErrConflict) {
						res.VehiclesSkipped++
						continue
					}
					return err
				}
				res.VehiclesCreated++
			}
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	log.Printf("Seeded %d users (%d skipped), %d clients, %d vehicles (%d skipped)",
		res.UsersCreated, res.UsersSkipped, res.ClientsCreated, res.VehiclesCreated, res.VehiclesSkipped)
	return res, nil
}

func createUser(tx *gorm.DB, user *model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" {
		return fmt.Errorf("user %q has no email", user.Name)
	}
	if !user.Role.Valid() {
		return fmt.Errorf("user %s has unknown role %q", user.Email, user.Role)
	}

	var count int64
	if err := tx.Model(&model.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check email %s: %w", user.Email, err)
	}
	if count > 0 {
		return fmt.Errorf("user %s: %w", user.Email, ErrConflict)
	}

	if err := tx.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.Email, err)
	}
	return nil
}

func createVehicle(tx *gorm.DB, vehicle *model.Vehicle) error {
	plate, err := parse.Plate(vehicle.Plate)
	if err != nil {
		return err
	}
	vehicle.Plate = plate

	var count int64
	if err := tx.Model(&model.Vehicle{}).Where("plate = ?", vehicle.Plate).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check plate %s: %w", vehicle.Plate, err)
	}
	if count > 0 {
		return fmt.Errorf("vehicle %s: %w", vehicle.Plate, ErrConflict)
	}

	if err := tx.Create(vehicle).Error; err != nil {
		return fmt.Errorf("failed to create vehicle %s: %w", vehicle.Plate, err)
	}
	return nil
}

func findOrCreateClient(tx *gorm.DB, cf ClientFixture) (*model.Client, bool, error) {
	email := strings.ToLower(strings.TrimSpace(cf.Email))
	if email != "" {
		var existing model.Client
		err := tx.Where("email = ?", email).First(&existing).Error
		if err == nil {
			return &existing, false, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("failed to look up client %s: %w", email, err)
		}
	}

	client := model.Client{Name: cf.Name, Phone: cf.Phone, Email: email}
	if err := tx.Create(&client).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create client %q: %w", cf.Name, err)
	}
	return &client, true, nil
}

func userFromFixture(uf UserFixture) (*model.User, error) {
	role := model.Role(strings.ToUpper(uf.Role))
	if role == "" {
		role = model.RoleTechnician
	}
	if !role.Valid() {
		return nil, fmt.Errorf("user %s has unknown role %q", uf.Email, uf.Role)
	}
	active := true
	if uf.Active != nil {
		active = *uf.Active
	}
	return &model.User{Name: uf.Name, Email: uf.Email, Role: role, Active: active}, nil
}

func vehicleFromFixture(vf VehicleFixture, clientID uint) *model.Vehicle {
	typ := strings.ToUpper(vf.Type)
	if typ == "" {
		typ = "MOTORCYCLE"
	}
	return &model.Vehicle{
		Plate:       vf.Plate,
		TypeVehicle: typ,
		Brand:       vf.Brand,
		Model:       vf.Model,
		Cylinder:    vf.Cylinder,
		ClientID:    clientID,
	}
}
