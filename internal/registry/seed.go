package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/danger_zones/internal/models"
	"github.com/shenikar/danger_zones/pkg/geo"
)

// SeedZone - запись зоны в файле сида
type SeedZone struct {
	ID                 string  `json:"id,omitempty" validate:"omitempty,uuid"`
	Name               string  `json:"name" validate:"required,min=2,max=255"`
	Latitude           float64 `json:"latitude" validate:"latitude"`
	Longitude          float64 `json:"longitude" validate:"longitude"`
	ConfirmedIncidents int     `json:"confirmed_incidents" validate:"gte=0"`
}

// ZoneID возвращает ID из файла или детерминированный UUID по имени зоны,
// чтобы идентичность переживала перезапуски
func (s SeedZone) ZoneID() uuid.UUID {
	if s.ID != "" {
		return uuid.MustParse(s.ID)
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("zone:"+strings.ToLower(strings.TrimSpace(s.Name))))
}

// LoadSeedFile читает JSON-файл с начальным списком зон
func LoadSeedFile(path string) ([]models.Zone, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return ParseSeed(f)
}

// ParseSeed разбирает и валидирует список зон
func ParseSeed(r io.Reader) ([]models.Zone, error) {
	var records []SeedZone
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode seed zones: %w", err)
	}

	validate := validator.New()
	zones := make([]models.Zone, 0, len(records))
	for i, rec := range records {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("seed zone #%d (%q) is invalid: %w", i, rec.Name, err)
		}
		zones = append(zones, models.Zone{
			ID:                 rec.ZoneID(),
			Name:               rec.Name,
			Location:           geo.Coordinate{Lat: rec.Latitude, Lon: rec.Longitude},
			ConfirmedIncidents: rec.ConfirmedIncidents,
		})
	}
	return zones, nil
}
