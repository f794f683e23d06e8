package reference

import "strings"

// Tamil names farmers use for the canonical soils and crops.
var (
	tamilSoils = map[string]string{
		"சிவப்பு மண்":    "Red Soil",
		"கருப்பு களிமண்": "Black Clayey Soil",
		"பழுப்பு மண்":    "Brown Soil",
		"வண்டல் மண்":    "Alluvial Soil",
	}
	tamilCrops = map[string]string{
		"நெல்":      "Rice",
		"கரும்பு":   "Sugarcane",
		"நிலக்கடலை": "Groundnut",
		"பருத்தி":   "Cotton",
		"வாழை":      "Banana",
	}
)

// CanonicalCrop maps a user supplied crop name (Tamil or any casing of the
// English key) to a key of t.Crops. ok is false when nothing matches; name is
// then returned trimmed so callers can still report what was asked for.
func (t *Tables) CanonicalCrop(name string) (string, bool) {
	return canonical(name, tamilCrops, t.CropNames())
}

func (t *Tables) CanonicalSoil(name string) (string, bool) {
	return canonical(name, tamilSoils, t.SoilNames())
}

func canonical(name string, local map[string]string, keys []string) (string, bool) {
	name = strings.TrimSpace(name)
	if en, ok := local[name]; ok {
		name = en
	}
	for _, k := range keys {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return name, false
}

// CropAliases lists every name CanonicalCrop resolves exactly: table keys and
// their local names.
func (t *Tables) CropAliases() []string {
	return aliases(t.CropNames(), tamilCrops, t.Crops)
}

func (t *Tables) SoilAliases() []string {
	return aliases(t.SoilNames(), tamilSoils, t.Soils)
}

func aliases[V any](keys []string, local map[string]string, table map[string]V) []string {
	out := append([]string(nil), keys...)
	for _, name := range sortedKeys(local) {
		if _, ok := table[local[name]]; ok {
			out = append(out, name)
		}
	}
	return out
}
