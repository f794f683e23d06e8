package reference

// Defaults returns the built-in tables for the Krishnan Kovil region. They are
// used when no CSV/XLSX source is configured.
func Defaults() *Tables {
	return &Tables{
		Soils: map[string]SoilProfile{
			"Red Soil": {
				Name: "Red Soil", WaterHoldingCapacity: 12, FieldCapacity: 22, WiltingPoint: 10,
				InfiltrationRate: 25, BulkDensity: 1.45, Texture: Texture{Sand: 65, Silt: 15, Clay: 20},
			},
			"Black Clayey Soil": {
				Name: "Black Clayey Soil", WaterHoldingCapacity: 18, FieldCapacity: 40, WiltingPoint: 22,
				InfiltrationRate: 5, BulkDensity: 1.30, Texture: Texture{Sand: 20, Silt: 25, Clay: 55},
			},
			"Brown Soil": {
				Name: "Brown Soil", WaterHoldingCapacity: 15, FieldCapacity: 30, WiltingPoint: 15,
				InfiltrationRate: 15, BulkDensity: 1.40, Texture: Texture{Sand: 40, Silt: 30, Clay: 30},
			},
			"Alluvial Soil": {
				Name: "Alluvial Soil", WaterHoldingCapacity: 16, FieldCapacity: 32, WiltingPoint: 16,
				InfiltrationRate: 12, BulkDensity: 1.35, Texture: Texture{Sand: 35, Silt: 40, Clay: 25},
			},
		},
		Crops: map[string]CropProfile{
			"Rice": {
				Name:              "Rice",
				Kc:                StageValues{1.05, 1.10, 1.20, 0.90},
				Durations:         StageDays{30, 30, 40, 20},
				RootDepth:         StageValues{0.30, 0.40, 0.50, 0.50},
				CriticalDepletion: StageValues{0.20, 0.20, 0.20, 0.25},
				WaterSensitivity:  0.9, TypicalYield: 4.5,
				GrowingSeasons: []string{"Kuruvai", "Samba", "Thaladi"},
			},
			"Sugarcane": {
				Name:              "Sugarcane",
				Kc:                StageValues{0.40, 0.80, 1.25, 0.75},
				Durations:         StageDays{35, 60, 180, 90},
				RootDepth:         StageValues{0.30, 0.60, 1.00, 1.20},
				CriticalDepletion: StageValues{0.50, 0.55, 0.65, 0.65},
				WaterSensitivity:  0.7, TypicalYield: 100,
				GrowingSeasons: []string{"Adsali", "Suru"},
			},
			"Groundnut": {
				Name:              "Groundnut",
				Kc:                StageValues{0.40, 0.75, 1.15, 0.60},
				Durations:         StageDays{25, 35, 45, 25},
				RootDepth:         StageValues{0.30, 0.50, 0.60, 0.60},
				CriticalDepletion: StageValues{0.45, 0.50, 0.50, 0.55},
				WaterSensitivity:  0.6, TypicalYield: 2.5,
				GrowingSeasons: []string{"Kharif", "Rabi"},
			},
			"Cotton": {
				Name:              "Cotton",
				Kc:                StageValues{0.35, 0.75, 1.15, 0.70},
				Durations:         StageDays{30, 50, 60, 55},
				RootDepth:         StageValues{0.30, 0.70, 1.00, 1.20},
				CriticalDepletion: StageValues{0.50, 0.60, 0.65, 0.65},
				WaterSensitivity:  0.5, TypicalYield: 2.0,
				GrowingSeasons: []string{"Kharif"},
			},
			"Banana": {
				Name:              "Banana",
				Kc:                StageValues{0.50, 0.80, 1.10, 1.00},
				Durations:         StageDays{40, 80, 120, 60},
				RootDepth:         StageValues{0.30, 0.50, 0.60, 0.60},
				CriticalDepletion: StageValues{0.35, 0.35, 0.35, 0.35},
				WaterSensitivity:  0.8, TypicalYield: 40,
				GrowingSeasons: []string{"Year-round"},
			},
		},
		Location: Location{
			Latitude:    9.2088,
			Longitude:   77.2561,
			Elevation:   150,
			ReferenceET: 5.0,
			Rainfall: RainfallPattern{
				Annual:        850,
				MonsoonMonths: []int{9, 10, 11, 12},
				DryMonths:     []int{1, 2, 3, 4, 5},
			},
			Temperature: TemperaturePattern{
				AnnualMin:     22,
				AnnualMax:     36,
				HottestMonths: []int{4, 5},
				CoolestMonths: []int{11, 12},
			},
		},
	}
}
