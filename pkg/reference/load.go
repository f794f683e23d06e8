package reference

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sources names the files tables are loaded from. An XLSX workbook wins over
// the CSV trio; with nothing configured the built-in Defaults are used.
type Sources struct {
	SoilCSV     string
	CropCSV     string
	LocationCSV string
	XLSX        string
}

func (s Sources) empty() bool {
	return s.SoilCSV == "" && s.CropCSV == "" && s.LocationCSV == "" && s.XLSX == ""
}

func Load(src Sources) (*Tables, error) {
	var (
		t   *Tables
		err error
	)
	switch {
	case src.XLSX != "":
		t, err = LoadXLSX(src.XLSX)
	case src.empty():
		log.Printf("[ref] no table sources configured, using built-in defaults")
		t = Defaults()
	default:
		t, err = loadCSVs(src)
	}
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	log.Printf("[ref] loaded %d crops %v, %d soils %v", len(t.Crops), t.CropNames(), len(t.Soils), t.SoilNames())
	return t, nil
}

// loadCSVs fills any table whose CSV is not configured from the defaults.
func loadCSVs(src Sources) (*Tables, error) {
	t := Defaults()
	if src.SoilCSV != "" {
		soils, err := LoadSoilCSV(src.SoilCSV)
		if err != nil {
			return nil, err
		}
		t.Soils = soils
	}
	if src.CropCSV != "" {
		crops, err := LoadCropCSV(src.CropCSV)
		if err != nil {
			return nil, err
		}
		t.Crops = crops
	}
	if src.LocationCSV != "" {
		loc, err := LoadLocationCSV(src.LocationCSV)
		if err != nil {
			return nil, err
		}
		t.Location = loc
	}
	return t, nil
}

func readCSV(path string) (*sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // short rows are read as blanks
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return newSheet(filepath.Base(path), rows)
}

func LoadSoilCSV(path string) (map[string]SoilProfile, error) {
	s, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	return parseSoils(s)
}

func LoadCropCSV(path string) (map[string]CropProfile, error) {
	s, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	return parseCrops(s)
}

func LoadLocationCSV(path string) (Location, error) {
	s, err := readCSV(path)
	if err != nil {
		return Location{}, err
	}
	return parseLocation(s)
}

// LoadXLSX reads the "soil", "crop" and "location" sheets of one workbook.
// Sheet names are matched case-insensitively; a missing location sheet keeps
// the default location.
func LoadXLSX(path string) (*Tables, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	sheets := map[string]string{}
	for _, name := range x.GetSheetList() {
		sheets[strings.ToLower(strings.TrimSpace(name))] = name
	}
	read := func(key string) (*sheet, error) {
		name, ok := sheets[key]
		if !ok {
			return nil, nil
		}
		rows, err := x.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%s: sheet %s: %w", path, name, err)
		}
		return newSheet(filepath.Base(path)+"#"+name, rows)
	}

	t := Defaults()
	soilSheet, err := read("soil")
	if err != nil {
		return nil, err
	}
	cropSheet, err := read("crop")
	if err != nil {
		return nil, err
	}
	if soilSheet == nil || cropSheet == nil {
		return nil, fmt.Errorf("%s: workbook needs both soil and crop sheets, found %v", path, x.GetSheetList())
	}
	if t.Soils, err = parseSoils(soilSheet); err != nil {
		return nil, err
	}
	if t.Crops, err = parseCrops(cropSheet); err != nil {
		return nil, err
	}
	locSheet, err := read("location")
	if err != nil {
		return nil, err
	}
	if locSheet != nil {
		if t.Location, err = parseLocation(locSheet); err != nil {
			return nil, err
		}
	}
	return t, nil
}
