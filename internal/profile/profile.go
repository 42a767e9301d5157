// Package profile loads and validates the candidate profile file. Profile
// problems are input errors: they abort the run before any round executes.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/errors"
)

// Experience is one prior role supplied by the candidate.
type Experience struct {
	Title      string   `yaml:"title"`
	Company    string   `yaml:"company"`
	Dates      string   `yaml:"dates"`
	Highlights []string `yaml:"highlights"`
}

// Project is one prior project supplied by the candidate.
type Project struct {
	Name       string   `yaml:"name"`
	Highlights []string `yaml:"highlights"`
}

// Education is one education entry.
type Education struct {
	Degree      string `yaml:"degree"`
	Institution string `yaml:"institution"`
	Year        string `yaml:"year"`
}

// Profile is the candidate's raw material: contact details plus the
// experience, projects, skills and education the generator may draw on.
type Profile struct {
	Name       string              `yaml:"name"`
	Email      string              `yaml:"email"`
	Phone      string              `yaml:"phone"`
	Experience []Experience        `yaml:"experience"`
	Projects   []Project           `yaml:"projects"`
	Skills     map[string][]string `yaml:"skills"`
	Education  []Education         `yaml:"education"`
}

// Load reads and validates a YAML profile file.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates profile YAML.
func Parse(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, errors.NewInputError("profile", "invalid YAML: %v", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks the fields the renderer and generator require.
func (p Profile) Validate() error {
	if p.Name == "" {
		return errors.NewInputError("profile.name", "must not be empty")
	}
	if p.Email == "" {
		return errors.NewInputError("profile.email", "must not be empty")
	}
	if len(p.Experience) == 0 && len(p.Projects) == 0 {
		return errors.NewInputError("profile", "needs at least one experience or project entry")
	}
	if len(p.Skills) == 0 {
		return errors.NewInputError("profile.skills", "must list at least one skill group")
	}
	return nil
}
