// Command omrgrade grades scanned answer-sheet pages against an answer key.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"omr-grader/internal/grade"
	"omr-grader/internal/pipeline"
	"omr-grader/internal/render"
	"omr-grader/internal/report"
	"omr-grader/internal/roster"
	"omr-grader/internal/scanio"
	"omr-grader/internal/table"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	pagesDir := flag.String("pages", "", "Directory with scanned page images (PNG, JPEG, or TIFF), one per student")
	answers := flag.String("answers", "", "Comma-separated correct answer indices, 0-based (e.g. 2,0,3,1)")
	choices := flag.Int("choices", 0, "Number of answer choices per question")
	format := flag.String("format", "columns=questions", "Table format: columns=questions or rows=questions")
	correctPts := flag.Float64("correct", 1.0, "Points for a correct answer")
	incorrectPts := flag.Float64("incorrect", -0.25, "Points for an incorrect answer")
	noAnswerPts := flag.Float64("no-answer", 0.0, "Points for a blank answer")
	inkThreshold := flag.Float64("ink-threshold", 0.15, "Ink density fraction at which a cell counts as filled")
	peakFrac := flag.Float64("peak-frac", 0.30, "Separator peak threshold as a fraction of the signal maximum")
	mergeGap := flag.Int("merge-gap", 5, "Maximum pixel gap merged into one separator")
	guided := flag.Bool("guided", false, "Use uniform-spacing separator search instead of peak detection")
	useOCR := flag.Bool("ocr", false, "Read student identity strips with OCR")
	debug := flag.Bool("debug", false, "Write per-page debug overlay images")
	outDir := flag.String("out", "./outputs", "Output directory")
	outFile := flag.String("out-file", "grades.csv", "Output CSV filename")
	workers := flag.Int("workers", 0, "Page-level parallelism (0 = number of CPUs)")
	flag.Parse()

	if *pagesDir == "" || *answers == "" || *choices <= 0 {
		fmt.Println("Usage: omrgrade -pages <dir> -answers 2,0,3,1 -choices 4 [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	key, err := parseKey(*answers)
	if err != nil {
		log.Fatalf("Invalid -answers: %v", err)
	}

	orientation, err := table.ParseOrientation(*format)
	if err != nil {
		log.Fatalf("Invalid -format: %v", err)
	}

	shape := table.Shape{Questions: len(key), Choices: *choices, Orientation: orientation}

	cfg := pipeline.NewConfig(shape, key)
	cfg.Rule = grade.Rule{CorrectPoints: *correctPts, IncorrectPoints: *incorrectPts, NoAnswerPoints: *noAnswerPts}
	cfg.Answer = cfg.Answer.WithInkThreshold(*inkThreshold)
	cfg.Table = cfg.Table.WithPeakFrac(*peakFrac).WithMergeGap(*mergeGap)
	cfg.Guided = *guided
	cfg.KeepRectified = *debug
	cfg.Workers = *workers

	processor, err := pipeline.NewProcessor(cfg)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	paths, err := scanio.ListPages(*pagesDir)
	if err != nil {
		log.Fatalf("Failed to list pages: %v", err)
	}
	log.Printf("Processing %d pages from %s", len(paths), *pagesDir)

	pages := make([]pipeline.Page, 0, len(paths))
	for i, path := range paths {
		mat, err := scanio.LoadMat(path)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", path, err)
		}
		pages = append(pages, pipeline.Page{ID: fmt.Sprintf("student_%03d", i+1), Image: mat})
	}
	defer func() {
		for i := range pages {
			pages[i].Image.Close()
		}
	}()

	results := processor.ProcessAll(pages)

	if *useOCR {
		readIdentities(pages, results)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	if *debug {
		debugDir := filepath.Join(*outDir, "debug_images")
		if err := os.MkdirAll(debugDir, 0755); err != nil {
			log.Fatalf("Failed to create debug directory: %v", err)
		}
		for i := range results {
			if err := render.SaveOverlay(debugDir, results[i], shape); err != nil {
				log.Printf("Debug overlay for %s: %v", results[i].ID, err)
			}
			results[i].Close()
		}
	}

	csvPath := filepath.Join(*outDir, *outFile)
	if err := report.SaveCSV(csvPath, results, shape.Questions); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	printSummary(results, csvPath)
}

func parseKey(s string) (grade.Key, error) {
	parts := strings.Split(s, ",")
	key := make(grade.Key, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad answer index %q: %w", p, err)
		}
		key = append(key, v)
	}
	return key, nil
}

// readIdentities replaces positional page ids with OCR'd identity strips
// where recognition succeeds.
func readIdentities(pages []pipeline.Page, results []pipeline.PageResult) {
	engine, err := roster.NewEngine()
	if err != nil {
		log.Printf("OCR unavailable, keeping positional ids: %v", err)
		return
	}
	defer engine.Close()

	for i := range results {
		if results[i].Status != pipeline.StatusOK {
			continue
		}
		id, err := engine.ReadIdentity(pages[i].Image, results[i].Quad)
		if err != nil {
			log.Printf("OCR failed for %s: %v", results[i].ID, err)
			continue
		}
		if id != "" {
			results[i].ID = id
		}
	}
}

func printSummary(results []pipeline.PageResult, csvPath string) {
	var totals []float64
	flagged := 0
	for _, r := range results {
		if r.Status == pipeline.StatusOK {
			totals = append(totals, r.Total)
		}
		if r.HasIssues() {
			flagged++
		}
	}

	summary := grade.Summarize(totals)
	summary.Pages = len(results)

	fmt.Printf("\nProcessed %d pages (%d graded, %d flagged)\n",
		summary.Pages, summary.Graded, flagged)
	if summary.Graded > 0 {
		fmt.Printf("Scores: mean %.2f, stddev %.2f, min %.2f, max %.2f\n",
			summary.Mean, summary.StdDev, summary.Min, summary.Max)
	}
	fmt.Printf("Results saved to %s\n", csvPath)
}
