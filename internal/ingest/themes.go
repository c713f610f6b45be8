package ingest

import (
	"fmt"
	"os"

	"github.com/ternarybob/painscope/internal/models"
	"github.com/ternarybob/painscope/internal/services/viability"
	"gopkg.in/yaml.v3"
)

// ThemesFile is the YAML document holding externally derived pain themes
type ThemesFile struct {
	Themes []models.Theme `yaml:"themes" validate:"dive"`
}

// DimensionsFile is the YAML document holding the non-pain dimension scores.
// A dimension left out of the file is treated as unavailable.
type DimensionsFile struct {
	Market      *models.DimensionInput `yaml:"market"`
	Competition *models.DimensionInput `yaml:"competition"`
	Timing      *models.DimensionInput `yaml:"timing"`
}

// Inputs returns the dimension scores as viability inputs with Pain left unset
func (d *DimensionsFile) Inputs() viability.Inputs {
	return viability.Inputs{
		Market:      d.Market,
		Competition: d.Competition,
		Timing:      d.Timing,
	}
}

// LoadThemes reads a themes YAML file
func LoadThemes(path string) ([]models.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes file: %w", err)
	}

	var file ThemesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse themes YAML: %w", err)
	}

	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("invalid themes file %s: %w", path, err)
	}

	return file.Themes, nil
}

// LoadDimensions reads market, competition and timing scores from a YAML file
func LoadDimensions(path string) (*DimensionsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dimensions file: %w", err)
	}

	var file DimensionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse dimensions YAML: %w", err)
	}

	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("invalid dimensions file %s: %w", path, err)
	}

	return &file, nil
}
