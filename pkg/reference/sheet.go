package reference

import (
	"fmt"
	"strconv"
	"strings"
)

// sheet is a header-indexed table shared by the CSV and XLSX loaders.
type sheet struct {
	name string
	head map[string]int
	rows [][]string
}

// Build normalized header keys so "Kc Mid-Season", "kc_mid_season" and
// "KcMidSeason" all resolve to the same column.
func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func newSheet(name string, rows [][]string) (*sheet, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty table", name)
	}
	head := map[string]int{}
	for i, h := range rows[0] {
		head[norm(h)] = i
	}
	return &sheet{name: name, head: head, rows: rows[1:]}, nil
}

func (s *sheet) need(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := s.head[norm(c)]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing required columns %v", s.name, missing)
	}
	return nil
}

// each calls fn for every non-blank row. Line numbers are 1-based and count
// the header.
func (s *sheet) each(fn func(r *record) error) error {
	for i, cells := range s.rows {
		r := &record{sh: s, cells: cells, line: i + 2}
		if r.blank() {
			continue
		}
		if err := fn(r); err != nil {
			return err
		}
		if r.err != nil {
			return r.err
		}
	}
	return nil
}

// record reads typed cells; the first conversion failure sticks in err.
type record struct {
	sh    *sheet
	cells []string
	line  int
	err   error
}

func (r *record) blank() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (r *record) str(col string) string {
	idx, ok := r.sh.head[norm(col)]
	if !ok || idx >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[idx])
}

func (r *record) float(col string) float64 {
	v := r.str(col)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("%s line %d: column %s: %q is not a number", r.sh.name, r.line, col, v)
	}
	return f
}

func (r *record) integer(col string) int {
	v := r.str(col)
	n, err := strconv.Atoi(v)
	if err != nil {
		// "30.0" style exports from spreadsheets
		if f, ferr := strconv.ParseFloat(v, 64); ferr == nil && f == float64(int(f)) {
			return int(f)
		}
		if r.err == nil {
			r.err = fmt.Errorf("%s line %d: column %s: %q is not an integer", r.sh.name, r.line, col, v)
		}
	}
	return n
}

func (r *record) stageValues(prefix string) StageValues {
	return StageValues{
		Initial:     r.float(prefix + "_initial"),
		Development: r.float(prefix + "_development"),
		MidSeason:   r.float(prefix + "_mid_season"),
		LateSeason:  r.float(prefix + "_late_season"),
	}
}

func splitList(s string) []string {
	s = strings.Trim(strings.TrimSpace(s), `"`)
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitInts(s string) ([]int, error) {
	var out []int
	for _, p := range splitList(s) {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", p)
		}
		out = append(out, n)
	}
	return out, nil
}

var soilColumns = []string{
	"soil_type", "water_holding_capacity", "field_capacity", "wilting_point",
	"infiltration_rate", "bulk_density", "sand", "silt", "clay",
}

func parseSoils(s *sheet) (map[string]SoilProfile, error) {
	if err := s.need(soilColumns...); err != nil {
		return nil, err
	}
	out := map[string]SoilProfile{}
	err := s.each(func(r *record) error {
		name := r.str("soil_type")
		if name == "" {
			return nil
		}
		out[name] = SoilProfile{
			Name:                 name,
			WaterHoldingCapacity: r.float("water_holding_capacity"),
			FieldCapacity:        r.float("field_capacity"),
			WiltingPoint:         r.float("wilting_point"),
			InfiltrationRate:     r.float("infiltration_rate"),
			BulkDensity:          r.float("bulk_density"),
			Texture: Texture{
				Sand: r.integer("sand"),
				Silt: r.integer("silt"),
				Clay: r.integer("clay"),
			},
		}
		return nil
	})
	return out, err
}

var cropColumns = []string{
	"crop",
	"kc_initial", "kc_development", "kc_mid_season", "kc_late_season",
	"stage_initial_days", "stage_development_days", "stage_mid_season_days", "stage_late_season_days",
	"root_initial", "root_development", "root_mid_season", "root_late_season",
	"depletion_initial", "depletion_development", "depletion_mid_season", "depletion_late_season",
	"water_sensitivity", "typical_yield",
}

func parseCrops(s *sheet) (map[string]CropProfile, error) {
	if err := s.need(cropColumns...); err != nil {
		return nil, err
	}
	out := map[string]CropProfile{}
	err := s.each(func(r *record) error {
		name := r.str("crop")
		if name == "" {
			return nil
		}
		out[name] = CropProfile{
			Name: name,
			Kc:   r.stageValues("kc"),
			Durations: StageDays{
				Initial:     r.integer("stage_initial_days"),
				Development: r.integer("stage_development_days"),
				MidSeason:   r.integer("stage_mid_season_days"),
				LateSeason:  r.integer("stage_late_season_days"),
			},
			RootDepth:         r.stageValues("root"),
			CriticalDepletion: r.stageValues("depletion"),
			WaterSensitivity:  r.float("water_sensitivity"),
			TypicalYield:      r.float("typical_yield"),
			GrowingSeasons:    splitList(r.str("growing_seasons")),
		}
		return nil
	})
	return out, err
}

// parseLocation reads parameter/value rows. Unknown parameters are ignored,
// absent ones keep their zero value except reference_et (5.0).
func parseLocation(s *sheet) (Location, error) {
	loc := Location{ReferenceET: 5.0}
	if err := s.need("parameter", "value"); err != nil {
		return loc, err
	}
	err := s.each(func(r *record) error {
		param := strings.ToLower(r.str("parameter"))
		switch param {
		case "monsoon_months", "dry_months", "hottest_months", "coolest_months":
			months, err := splitInts(r.str("value"))
			if err != nil {
				return fmt.Errorf("%s line %d: %s: %v", s.name, r.line, param, err)
			}
			switch param {
			case "monsoon_months":
				loc.Rainfall.MonsoonMonths = months
			case "dry_months":
				loc.Rainfall.DryMonths = months
			case "hottest_months":
				loc.Temperature.HottestMonths = months
			default:
				loc.Temperature.CoolestMonths = months
			}
		case "latitude":
			loc.Latitude = r.float("value")
		case "longitude":
			loc.Longitude = r.float("value")
		case "elevation":
			loc.Elevation = r.float("value")
		case "reference_et":
			loc.ReferenceET = r.float("value")
		case "annual_rainfall":
			loc.Rainfall.Annual = r.float("value")
		case "annual_min_temp":
			loc.Temperature.AnnualMin = r.float("value")
		case "annual_max_temp":
			loc.Temperature.AnnualMax = r.float("value")
		}
		return nil
	})
	return loc, err
}
