package document

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

type seedFile struct {
	Users []seedUser    `yaml:"users"`
	Tasks []domain.Task `yaml:"tasks"`
}

type seedUser struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	Username string    `yaml:"username"`
	Password string    `yaml:"password"`
	Role     string    `yaml:"role"`
	JoinedAt time.Time `yaml:"joined_at"`
}

// LoadSeed reads a YAML file overriding the initial users and task catalogue.
// Sections left out of the file keep the built-in defaults.
func LoadSeed(path string) (domain.AppState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.AppState{}, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a seed document.
func ParseSeed(data []byte) (domain.AppState, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.AppState{}, fmt.Errorf("parse seed file: %w", err)
	}

	var users []domain.User
	if len(f.Users) > 0 {
		users = make([]domain.User, 0, len(f.Users))
		seen := make(map[string]struct{}, len(f.Users))
		admins := 0
		for i, u := range f.Users {
			role := domain.Role(u.Role)
			if u.ID == "" || u.Username == "" || !role.Valid() {
				return domain.AppState{}, fmt.Errorf("parse seed file: users[%d]: id, username and a valid role are required", i)
			}
			if _, dup := seen[u.Username]; dup {
				return domain.AppState{}, fmt.Errorf("parse seed file: users[%d]: duplicate username %q", i, u.Username)
			}
			seen[u.Username] = struct{}{}
			if role == domain.RoleAdmin {
				admins++
			}
			users = append(users, domain.User{
				ID:       u.ID,
				Name:     u.Name,
				Username: u.Username,
				Password: u.Password,
				Role:     role,
				JoinedAt: u.JoinedAt.UTC(),
			})
		}
		if admins != 1 {
			return domain.AppState{}, fmt.Errorf("parse seed file: exactly one %s user is required, got %d", domain.RoleAdmin, admins)
		}
	}

	var tasks []domain.Task
	if len(f.Tasks) > 0 {
		tasks = f.Tasks
	}
	return domain.SeedState(users, tasks), nil
}
