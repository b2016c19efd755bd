package bootstrap

import (
	"errors"
	"fmt"
	"os"

	"fleet-management-backend/internal/auth"
	"fleet-management-backend/internal/authz"
	"fleet-management-backend/internal/database/models"
	"fleet-management-backend/internal/logger"
	"fleet-management-backend/internal/repository"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// SeedAccount describes one account from the seed file
type SeedAccount struct {
	Name      string `yaml:"name"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Role      string `yaml:"role"`
	CompanyID string `yaml:"company_id"`
}

// SeedFile is the on-disk format of config/admin.yaml
type SeedFile struct {
	Accounts []SeedAccount `yaml:"accounts"`
}

// SeedAdmins creates the accounts listed in the seed file when they do
// not exist yet. Existing accounts are left untouched, so the seed file
// cannot reset a changed password.
func SeedAdmins(users repository.UserRepositoryInterface, path string, log *logger.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", path).Info("no seed file, skipping bootstrap")
			return nil
		}
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	for _, account := range seed.Accounts {
		if err := seedAccount(users, account, log); err != nil {
			return err
		}
	}
	return nil
}

func seedAccount(users repository.UserRepositoryInterface, account SeedAccount, log *logger.Logger) error {
	if account.Username == "" || account.Password == "" {
		return fmt.Errorf("seed account %q is missing username or password", account.Name)
	}
	role := authz.Role(account.Role)
	if !role.IsValid() {
		return fmt.Errorf("seed account %q has unknown role %q", account.Username, account.Role)
	}

	existing, err := users.GetByUsername(account.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check seed account %q: %w", account.Username, err)
	}
	if existing != nil {
		log.WithField("username", account.Username).Debug("seed account already exists")
		return nil
	}

	hash, err := auth.HashPassword(account.Password)
	if err != nil {
		return err
	}

	companyID := account.CompanyID
	if companyID == "" {
		companyID = models.DefaultCompanyID
	}
	user := &models.User{
		Name:       account.Name,
		Username:   account.Username,
		Role:       role,
		Status:     models.UserStatusActive,
		IsVerified: true,
		CompanyID:  companyID,
		Auth:       models.UserAuth{PasswordHash: hash},
	}
	if err := users.Create(user); err != nil {
		return fmt.Errorf("failed to create seed account %q: %w", account.Username, err)
	}

	log.WithFields(map[string]interface{}{
		"username": account.Username,
		"role":     account.Role,
	}).Info("seeded account")
	return nil
}
