package config

import (
	"context"

	"pustakahub/internal/adapters/persistence/models"
	"pustakahub/internal/adapters/persistence/repositories"
	"pustakahub/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	userRepo repositories.UserRepository
	cfg      *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{userRepo: repositories.NewUserRepository(db), cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	return s.seedLibrarian()
}

// seedLibrarian creates the librarian account on first boot. The instance
// serves one small institution; there is no self-service registration.
func (s *Seeder) seedLibrarian() error {
	ctx := context.Background()

	exists, err := s.userRepo.ExistsByRole(ctx, "LIBRARIAN")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashedPassword, err := password.Hash(s.cfg.Librarian.Password)
	if err != nil {
		return err
	}

	return s.userRepo.Create(ctx, &models.User{
		Username: s.cfg.Librarian.Username,
		Email:    s.cfg.Librarian.Email,
		Password: hashedPassword,
		Role:     "LIBRARIAN",
		IsActive: true,
	})
}
