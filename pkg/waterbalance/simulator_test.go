package waterbalance

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"cropwater/pkg/climate"
	"cropwater/pkg/reference"
)

func newSim() *Simulator {
	return NewSimulator(reference.Defaults(), "Rice", "Red Soil")
}

func ptr(v float64) *float64 { return &v }

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestRiceRedSoilSeason(t *testing.T) {
	res, err := newSim().Run(Request{Crop: "Rice", Soil: "Red Soil", PlantingDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.TotalDays != 120 || len(res.Days) != 120 {
		t.Fatalf("total days = %d, trace = %d", res.TotalDays, len(res.Days))
	}
	if res.IrrigationCount != 55 || len(res.Events) != 55 {
		t.Errorf("irrigation count = %d, want 55", res.IrrigationCount)
	}
	if !near(res.TotalMM, 679.5972133960007, 1e-6) {
		t.Errorf("total mm = %v", res.TotalMM)
	}
	if !near(res.DailyAvgMM, 5.663310111633339, 1e-9) {
		t.Errorf("daily avg = %v", res.DailyAvgMM)
	}

	first := res.Events[0]
	if first.DayNum != 2 || first.Date != "2024-01-02" || first.Stage != reference.StageInitial {
		t.Errorf("first event = %+v", first)
	}
	if !near(first.AmountMM, 10.046604389313238, 1e-9) || !near(first.AmountLitersPerHa, first.AmountMM*10000, 1e-6) {
		t.Errorf("first event amount = %+v", first)
	}
	last := res.Events[len(res.Events)-1]
	if last.DayNum != 118 || last.Date != "2024-04-27" || last.Stage != reference.StageLateSeason {
		t.Errorf("last event = %+v", last)
	}

	early := 0
	for _, ev := range res.Events {
		if ev.DayNum <= 30 {
			early++
		}
	}
	if early == 0 {
		t.Error("expected at least one event in the first 30 days")
	}
	if !near(res.TotalLitersPerAcre, res.TotalLitersPerHa/LitersPerAcreDivisor, 1e-6) {
		t.Errorf("acre conversion %v vs %v", res.TotalLitersPerAcre, res.TotalLitersPerHa)
	}
	if len(res.Substitutions) != 0 {
		t.Errorf("unexpected substitutions %v", res.Substitutions)
	}
}

func TestIrrigationRefillsToCapacity(t *testing.T) {
	res, err := newSim().Run(Request{Crop: "Sugarcane", Soil: "Black Clayey Soil", PlantingDate: "2023-06-15"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	byDay := map[int]Event{}
	for _, ev := range res.Events {
		byDay[ev.DayNum] = ev
	}
	for i, d := range res.Days {
		ev, irrigated := byDay[d.DayNum]
		if irrigated != d.Irrigated {
			t.Fatalf("day %d: trace and events disagree", d.DayNum)
		}
		if !irrigated {
			continue
		}
		if !near(d.Storage+ev.AmountMM, d.AWMax, 1e-9) {
			t.Errorf("day %d: storage %v + %v != awmax %v", d.DayNum, d.Storage, ev.AmountMM, d.AWMax)
		}
		// next day starts from a full root zone
		if i+1 < len(res.Days) {
			next := res.Days[i+1]
			if next.Stage == d.Stage && !near(next.Storage, d.AWMax-next.ETc, 1e-9) {
				t.Errorf("day %d: storage %v, want %v", next.DayNum, next.Storage, d.AWMax-next.ETc)
			}
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	sim := newSim()
	req := Request{
		Crop: "Groundnut", Soil: "Alluvial Soil", PlantingDate: "2024-02-29",
		Weather: []DailyWeather{
			{TempMin: ptr(18), TempMax: ptr(31), Humidity: ptr(70), WindSpeed: ptr(1.2)},
			{TempMax: ptr(40)},
			{},
		},
	}
	a, err := sim.Run(req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := sim.Run(req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs with identical input differ")
	}
}

func TestObservedWeatherChangesEarlyDays(t *testing.T) {
	sim := newSim()
	base, err := sim.Run(Request{Crop: "Rice", Soil: "Red Soil", PlantingDate: "2024-01-01"})
	if err != nil {
		t.Fatal(err)
	}
	cool, err := sim.Run(Request{
		Crop: "Rice", Soil: "Red Soil", PlantingDate: "2024-01-01",
		Weather: []DailyWeather{{TempMin: ptr(15), TempMax: ptr(24), Humidity: ptr(85)}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if cool.Days[0].ET0 >= base.Days[0].ET0 {
		t.Errorf("cool day ET0 %v should be below default %v", cool.Days[0].ET0, base.Days[0].ET0)
	}
	if cool.Days[1].ET0 != base.Days[1].ET0 {
		t.Error("day 2 has no observation and should use defaults")
	}
}

func TestUnknownKeysFallBack(t *testing.T) {
	res, err := newSim().Run(Request{Crop: "Wheat", Soil: "Peat", PlantingDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Crop != "Rice" || res.Soil != "Red Soil" {
		t.Errorf("used %s/%s", res.Crop, res.Soil)
	}
	want := []Substitution{
		{Kind: "crop", Requested: "Wheat", Used: "Rice"},
		{Kind: "soil", Requested: "Peat", Used: "Red Soil"},
	}
	if !reflect.DeepEqual(res.Substitutions, want) {
		t.Errorf("substitutions = %+v", res.Substitutions)
	}
	if res.TotalMM <= 0 {
		t.Error("fallback run should still produce water use")
	}
}

func TestCanonicalNamesAreNotSubstitutions(t *testing.T) {
	res, err := newSim().Run(Request{Crop: "நெல்", Soil: "red soil", PlantingDate: "2024-01-01"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Crop != "Rice" || res.Soil != "Red Soil" || len(res.Substitutions) != 0 {
		t.Errorf("got %s/%s %v", res.Crop, res.Soil, res.Substitutions)
	}
}

func TestPartialNamesFallBack(t *testing.T) {
	res, err := newSim().Run(Request{Crop: "Ba", Soil: "B", PlantingDate: "2024-01-01"})
	if err != nil {
		t.Fatal(err)
	}
	want := []Substitution{
		{Kind: "crop", Requested: "Ba", Used: "Rice"},
		{Kind: "soil", Requested: "B", Used: "Red Soil"},
	}
	if res.Crop != "Rice" || !reflect.DeepEqual(res.Substitutions, want) {
		t.Errorf("got %s with %+v", res.Crop, res.Substitutions)
	}
}

func TestMissingDefaultIsAnError(t *testing.T) {
	sim := NewSimulator(reference.Defaults(), "Millet", "Red Soil")
	if _, err := sim.Run(Request{Crop: "Wheat", Soil: "Red Soil", PlantingDate: "2024-01-01"}); !errors.Is(err, ErrUnknownReference) {
		t.Fatalf("err = %v, want ErrUnknownReference", err)
	}
}

func TestMalformedDates(t *testing.T) {
	for _, d := range []string{"", "2024-1-01", "01-01-2024", "2024-02-30", "2024-13-01", "2024-01-01T00:00:00Z", " 2024-01-01"} {
		if _, err := newSim().Run(Request{Crop: "Rice", Soil: "Red Soil", PlantingDate: d}); !errors.Is(err, ErrMalformedDate) {
			t.Errorf("%q: err = %v, want ErrMalformedDate", d, err)
		}
	}
}

func TestDomainErrorNamesTheDay(t *testing.T) {
	sim := newSim()
	polar := reference.Defaults().Location
	polar.Latitude = 80
	_, err := sim.Run(Request{Crop: "Rice", Soil: "Red Soil", PlantingDate: "2024-01-01", Location: &polar})
	var de *DayError
	if !errors.As(err, &de) || de.Day != 1 || de.Date != "2024-01-01" {
		t.Fatalf("err = %v, want DayError for day 1", err)
	}
	if !errors.Is(err, climate.ErrNumericDomain) {
		t.Errorf("err = %v should wrap ErrNumericDomain", err)
	}

	_, err = sim.Run(Request{
		Crop: "Rice", Soil: "Red Soil", PlantingDate: "2024-01-01",
		Weather: []DailyWeather{{}, {}, {TempMin: ptr(30), TempMax: ptr(20)}},
	})
	if !errors.As(err, &de) || de.Day != 3 || de.Date != "2024-01-03" {
		t.Fatalf("err = %v, want DayError for day 3", err)
	}
}

func TestNonFiniteTableFailsTheDay(t *testing.T) {
	tables := reference.Defaults()
	rice := tables.Crops["Rice"]
	rice.Kc.Initial = math.NaN()
	tables.Crops["Rice"] = rice

	_, err := NewSimulator(tables, "Rice", "Red Soil").Run(Request{Crop: "Rice", Soil: "Red Soil", PlantingDate: "2024-01-01"})
	var de *DayError
	if !errors.As(err, &de) || de.Day != 1 {
		t.Fatalf("err = %v, want DayError for day 1", err)
	}
	if !errors.Is(err, climate.ErrNumericDomain) {
		t.Errorf("err = %v should wrap ErrNumericDomain", err)
	}
}

func TestRunBatchKeepsOrder(t *testing.T) {
	sim := newSim()
	soils := sim.Tables().SoilNames()
	reqs := make([]Request, len(soils))
	for i, s := range soils {
		reqs[i] = Request{Crop: "Cotton", Soil: s, PlantingDate: "2024-07-01"}
	}
	got, err := RunBatch(context.Background(), sim, reqs)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	for i, res := range got {
		want, err := sim.Run(reqs[i])
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(res, want) {
			t.Errorf("result %d (%s) differs from a sequential run", i, soils[i])
		}
	}
}

func TestRunBatchFails(t *testing.T) {
	reqs := []Request{
		{Crop: "Rice", Soil: "Red Soil", PlantingDate: "2024-01-01"},
		{Crop: "Rice", Soil: "Red Soil", PlantingDate: "bad"},
	}
	if _, err := RunBatch(context.Background(), newSim(), reqs); !errors.Is(err, ErrMalformedDate) {
		t.Fatalf("err = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunBatch(ctx, newSim(), reqs[:1]); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
