// Command calc runs one season simulation and prints the water report.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"cropwater/config"
	"cropwater/pkg/reference"
	"cropwater/pkg/summary"
	"cropwater/pkg/waterbalance"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := config.Load()
	crop := flag.String("crop", cfg.DefaultCrop, "crop name (English or Tamil)")
	soil := flag.String("soil", cfg.DefaultSoil, "soil name (English or Tamil)")
	planted := flag.String("planted", time.Now().Format("2006-01-02"), "planting date YYYY-MM-DD")
	today := flag.String("today", "", "date the current stage is reported for, default today")
	weatherFile := flag.String("weather", "", "JSON file with daily observations from the planting date")
	asJSON := flag.Bool("json", false, "print the rounded result as JSON")
	flag.Parse()

	tables, err := reference.Load(cfg.Sources())
	if err != nil {
		log.Fatalf("[ref] %v", err)
	}
	req := waterbalance.Request{Crop: *crop, Soil: *soil, PlantingDate: *planted}
	if *weatherFile != "" {
		b, err := os.ReadFile(*weatherFile)
		if err != nil {
			log.Fatal(err)
		}
		if err := json.Unmarshal(b, &req.Weather); err != nil {
			log.Fatalf("%s: %v", *weatherFile, err)
		}
	}

	now := time.Now()
	if *today != "" {
		if now, err = waterbalance.ParseDate(*today); err != nil {
			log.Fatal(err)
		}
	}

	start := time.Now()
	res, err := waterbalance.NewSimulator(tables, cfg.DefaultCrop, cfg.DefaultSoil).Run(req)
	if err != nil {
		log.Fatalf("[sim] %v", err)
	}
	out := summary.Summarize(res)
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			log.Fatal(err)
		}
		return
	}

	fmt.Println("=== CROP WATER REQUIREMENTS ===")
	fmt.Printf("Crop: %s\n", res.Crop)
	fmt.Printf("Soil Type: %s\n", res.Soil)
	for _, s := range res.Substitutions {
		fmt.Printf("Note: %s\n", s)
	}
	fmt.Printf("Season: %d days from %s\n", res.TotalDays, res.PlantingDate)
	fmt.Printf("Total Water: %.1f mm\n", out.TotalWaterMM)
	fmt.Printf("Total Water Volume: %s liters per hectare\n", humanize.Comma(int64(out.TotalWaterLitersPerHa)))
	fmt.Printf("Total Water Volume: %s liters per acre\n", humanize.Comma(int64(out.TotalWaterLitersAcre)))
	fmt.Printf("Irrigation Events: %d\n", out.IrrigationCount)

	cropProfile, _ := tables.Crop(res.Crop)
	ins, err := summary.BuildInstruction(res, cropProfile, now)
	if err != nil {
		log.Fatal(err)
	}
	if ins.NextWaterDate != "" {
		fmt.Printf("Next Water Date: %s\n", ins.NextWaterDate)
	}
	fmt.Printf("Current Growth Stage: %s\n", ins.CurrentStage)
	fmt.Printf("Water Guidance: %s\n", ins.Guidance)
	fmt.Println(ins.SimpleInstruction)
	fmt.Println(ins.VolumeNote)
	log.Printf("[sim] done in %s", time.Since(start))
}
