// Command runnode executes one workflow node batch from the command line.
// Records and parameters come from JSON files; results go to a JSON, CSV,
// or XLSX file chosen by the output extension.
// Usage: runnode -node ocr -records records.json -params params.json -out results.csv
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"docbridge/internal/config"
	"docbridge/internal/domain"
	"docbridge/internal/export"
	"docbridge/internal/model/bedrock"
	"docbridge/internal/node"
	"docbridge/internal/ocr"
	"docbridge/internal/recognition/textract"
	s3storage "docbridge/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		nodeName       = flag.String("node", "", "node to run (required)")
		recordsPath    = flag.String("records", "", "path to the input records JSON file (required)")
		paramsPath     = flag.String("params", "", "path to the node parameters JSON file")
		outPath        = flag.String("out", "results.json", "output file path; .json, .csv, or .xlsx")
		continueOnFail = flag.Bool("continue-on-fail", false, "keep going after record failures")
	)
	flag.Parse()

	if *nodeName == "" {
		return fmt.Errorf("-node is required; available: %v", node.Names())
	}
	if *recordsPath == "" {
		return fmt.Errorf("-records is required")
	}

	var records []domain.Record
	if err := readJSONFile(*recordsPath, &records); err != nil {
		return fmt.Errorf("reading records: %w", err)
	}

	params := node.Params{}
	if *paramsPath != "" {
		if err := readJSONFile(*paramsPath, &params); err != nil {
			return fmt.Errorf("reading parameters: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	s3Client, err := s3storage.NewS3Client(&cfg.AWS)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	textractClient, err := textract.NewTextractClient(&cfg.AWS)
	if err != nil {
		return fmt.Errorf("failed to initialize Textract client: %w", err)
	}
	bedrockClient, err := bedrock.NewBedrockClient(&cfg.AWS)
	if err != nil {
		return fmt.Errorf("failed to initialize Bedrock client: %w", err)
	}

	n, err := node.New(*nodeName, node.Deps{
		Engine:   ocr.NewEngine(s3Client, textractClient),
		Invoker:  bedrockClient,
		OCR:      cfg.OCR,
		Converse: cfg.Converse,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, runErr := n.Run(ctx, node.Execution{
		Params:         params,
		Records:        records,
		ContinueOnFail: *continueOnFail,
	})

	// An aborted batch still writes the records processed so far.
	if err := export.WriteFile(*outPath, results); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	log.Printf("Wrote %d records to %s", len(results), *outPath)

	if runErr != nil {
		return fmt.Errorf("batch aborted: %w", runErr)
	}
	return nil
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
