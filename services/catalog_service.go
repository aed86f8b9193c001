package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Vanshhsoni/kissan/models"
)

// CatalogEntry is one row of the crop catalog CSV: the care parameters
// a new crop gets prefilled with.
type CatalogEntry struct {
	Name             string          `json:"name"` // Malayalam name
	EnglishName      string          `json:"english_name"`
	ImageURL         string          `json:"image_url"`
	Fertilizer       string          `json:"fertilizer"`
	Pesticide        string          `json:"pesticide"`
	IrrigationLiters string          `json:"irrigation_liters"`
	SunlightHours    string          `json:"sunlight_hours"`
	SowingMonths     models.MonthSet `json:"sowing_months"`
	HarvestingMonths models.MonthSet `json:"harvesting_months"`
}

type CropCatalog struct {
	entries []CatalogEntry
	byName  map[string]*CatalogEntry
}

// LoadCropCatalog reads the catalog CSV. Headers are matched loosely
// (case, spaces, BOM) since the dataset has been edited by hand.
func LoadCropCatalog(path string) (*CropCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return nil, err
	}

	norm := func(s string) string {
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, "\ufeff") // BOM
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, " ", "_")
		return s
	}
	hmap := map[string]int{}
	for i, h := range head {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cName := findAny("crop", "name", "malayalam", "malayalam_name")
	cEnglish := findAny("english_name", "english")
	cImage := findAny("image_url", "image")
	cFert := findAny("fertilizer", "fertilizers")
	cPest := findAny("pesticide", "pesticides")
	cIrr := findAny("irrigation_liters", "irrigation")
	cSun := findAny("sunlight_hours", "sunlight")
	cSow := findAny("sowing_months", "sowing")
	cHarvest := findAny("harvesting_months", "harvesting", "harvest_months")

	if cName == -1 {
		return nil, fmt.Errorf("crop catalog missing a name column, headers: %v", head)
	}

	catalog := &CropCatalog{byName: map[string]*CatalogEntry{}}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}

		name := get(cName)
		if name == "" {
			continue
		}

		sowing, err := models.ParseMonthSet(get(cSow))
		if err != nil {
			return nil, fmt.Errorf("crop %s: %w", name, err)
		}
		harvesting, err := models.ParseMonthSet(get(cHarvest))
		if err != nil {
			return nil, fmt.Errorf("crop %s: %w", name, err)
		}

		entry := CatalogEntry{
			Name:             name,
			EnglishName:      get(cEnglish),
			ImageURL:         get(cImage),
			Fertilizer:       get(cFert),
			Pesticide:        get(cPest),
			IrrigationLiters: get(cIrr),
			SunlightHours:    get(cSun),
			SowingMonths:     sowing,
			HarvestingMonths: harvesting,
		}
		catalog.entries = append(catalog.entries, entry)
		catalog.byName[name] = &catalog.entries[len(catalog.entries)-1]
		if entry.EnglishName != "" {
			catalog.byName[strings.ToLower(entry.EnglishName)] = &catalog.entries[len(catalog.entries)-1]
		}
	}
	if len(catalog.entries) == 0 {
		return nil, errors.New("crop catalog is empty")
	}
	return catalog, nil
}

func (c *CropCatalog) Entries() []CatalogEntry {
	return c.entries
}

// Lookup matches by Malayalam name or (case-insensitive) English name.
func (c *CropCatalog) Lookup(name string) (*CatalogEntry, bool) {
	if e, ok := c.byName[name]; ok {
		return e, true
	}
	e, ok := c.byName[strings.ToLower(name)]
	return e, ok
}
