// Package climate computes daily reference evapotranspiration (ET0) with the
// FAO-56 Penman-Monteith equation at daily resolution.
package climate

import (
	"errors"
	"fmt"
	"math"
)

// ErrNumericDomain marks inputs for which the equation is undefined.
var ErrNumericDomain = errors.New("numeric domain error")

// DomainError names the step of the computation that failed.
type DomainError struct {
	Step   string
	Detail string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("et0 %s: %s", e.Step, e.Detail)
}

func (e *DomainError) Is(target error) bool { return target == ErrNumericDomain }

// ET0Input is one day of forcing. Humidity is given as the daily band
// rh_min/rh_max in percent; wind speed is at 2 m.
type ET0Input struct {
	TempMin   float64 // °C
	TempMax   float64 // °C
	Elevation float64 // m
	Latitude  float64 // degrees, north positive
	DayOfYear int
	WindSpeed float64 // m/s
	RHMin     float64
	RHMax     float64
}

const (
	solarConstant   = 0.0820   // MJ m-2 min-1
	stefanBoltzmann = 4.903e-9 // MJ K-4 m-2 day-1
	albedo          = 0.23
)

// satVP is the saturation vapour pressure (kPa) at temperature t (°C).
func satVP(t float64) float64 {
	return 0.6108 * math.Exp(17.27*t/(t+237.3))
}

// ET0 returns the daily reference evapotranspiration in mm/day, floored at
// zero. Inputs that make any step undefined return a *DomainError rather
// than NaN or a silent zero.
func ET0(in ET0Input) (float64, error) {
	fields := []struct {
		name string
		v    float64
	}{
		{"temp_min", in.TempMin}, {"temp_max", in.TempMax}, {"elevation", in.Elevation},
		{"latitude", in.Latitude}, {"wind_speed", in.WindSpeed}, {"rh_min", in.RHMin}, {"rh_max", in.RHMax},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return 0, &DomainError{Step: "input", Detail: fmt.Sprintf("%s is %v", f.name, f.v)}
		}
	}
	if in.TempMin > in.TempMax {
		return 0, &DomainError{Step: "input", Detail: fmt.Sprintf("temp_min %.2f exceeds temp_max %.2f", in.TempMin, in.TempMax)}
	}
	if in.DayOfYear < 1 || in.DayOfYear > 366 {
		return 0, &DomainError{Step: "input", Detail: fmt.Sprintf("day of year %d outside 1..366", in.DayOfYear)}
	}

	lat := in.Latitude * math.Pi / 180
	tmean := (in.TempMax + in.TempMin) / 2

	esMin := satVP(in.TempMin)
	esMax := satVP(in.TempMax)
	es := (esMin + esMax) / 2
	// tmin pairs with rh_max and tmax with rh_min
	ea := (esMin*in.RHMax/100 + esMax*in.RHMin/100) / 2

	delta := 4098 * es / math.Pow(tmean+237.3, 2)
	pressure := 101.3 * math.Pow((293-0.0065*in.Elevation)/293, 5.26)
	gamma := 0.665e-3 * pressure

	doy := float64(in.DayOfYear)
	dr := 1 + 0.033*math.Cos(2*math.Pi*doy/365)
	decl := 0.409 * math.Sin(2*math.Pi*doy/365-1.39)

	arg := -math.Tan(lat) * math.Tan(decl)
	if math.IsNaN(arg) || arg < -1 || arg > 1 {
		return 0, &DomainError{
			Step:   "sunset hour angle",
			Detail: fmt.Sprintf("acos argument %.4f out of range at latitude %.4f, day %d", arg, in.Latitude, in.DayOfYear),
		}
	}
	ws := math.Acos(arg)

	ra := (24 * 60 / math.Pi) * solarConstant * dr *
		(ws*math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Sin(ws))
	rso := (0.75 + 2e-5*in.Elevation) * ra
	if rso <= 0 {
		return 0, &DomainError{Step: "clear-sky radiation", Detail: fmt.Sprintf("Rso %.4f is not positive", rso)}
	}
	rs := 0.5 * ra // estimated from Ra without sunshine hours

	rns := (1 - albedo) * rs
	tmaxK := math.Pow(in.TempMax+273.16, 4)
	tminK := math.Pow(in.TempMin+273.16, 4)
	rnl := stefanBoltzmann * (tmaxK + tminK) / 2 * (0.34 - 0.14*math.Sqrt(ea)) * (1.35*rs/rso - 0.35)
	rn := rns - rnl

	num := 0.408*delta*rn + gamma*(900/(tmean+273))*in.WindSpeed*(es-ea)
	den := delta + gamma*(1+0.34*in.WindSpeed)
	et0 := num / den
	if math.IsNaN(et0) || math.IsInf(et0, 0) {
		return 0, &DomainError{Step: "result", Detail: fmt.Sprintf("ET0 is %v", et0)}
	}
	return math.Max(et0, 0), nil
}
