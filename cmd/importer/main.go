package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"address-api/internal/config"
	"address-api/internal/geo"
	"address-api/internal/logging"
	"address-api/internal/models"
	"address-api/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

var csvHeader = []string{"name", "address", "latitude", "longitude"}

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	flag.Parse()

	logging.Setup("info", "console")

	if *file == "" {
		log.Fatal().Msg("--file flag is required")
	}

	log.Info().Str("file", *file).Msg("starting import")

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open file")
	}
	defer f.Close()

	records, err := parseCSV(f)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse CSV")
	}

	log.Info().Int("records", len(records)).Msg("parsed")

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	if cfg.StoreDriver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.StoreDriver).Msg("importer requires the postgres store")
	}

	ctx := context.Background()

	// Connect to DB
	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to database")
	}
	defer conn.Close(ctx)

	if err := repository.EnsureSchema(ctx, conn); err != nil {
		log.Fatal().Err(err).Msg("cannot create table")
	}

	before, err := countAddresses(ctx, conn)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot count addresses")
	}

	if err := insertRecords(ctx, conn, records); err != nil {
		log.Fatal().Err(err).Msg("cannot insert records")
	}

	after, err := countAddresses(ctx, conn)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot count addresses")
	}
	if after-before != len(records) {
		log.Fatal().Int("expected", len(records)).Int("got", after-before).Msg("record count mismatch")
	}

	log.Info().Int("records", len(records)).Msg("import finished")
}

// parseCSV reads name,address,latitude,longitude rows after a header line.
func parseCSV(r io.Reader) ([]models.Address, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, col := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return nil, fmt.Errorf("unexpected header column %d: %q, want %q", i+1, header[i], col)
		}
	}

	var records []models.Address
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		line, _ := reader.FieldPos(0)

		lat, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid latitude: %s", line, record[2])
		}

		lon, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid longitude: %s", line, record[3])
		}

		if err := geo.ValidateCoordinate(lat, lon); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if record[0] == "" || record[1] == "" {
			return nil, fmt.Errorf("line %d: name and address are required", line)
		}

		records = append(records, models.Address{
			Name:      record[0],
			Address:   record[1],
			Latitude:  lat,
			Longitude: lon,
		})
	}

	return records, nil
}

func insertRecords(ctx context.Context, conn *pgx.Conn, records []models.Address) error {
	// Use CopyFrom for bulk insert
	_, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"addresses"},
		[]string{"name", "address", "latitude", "longitude"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{r.Name, r.Address, r.Latitude, r.Longitude}, nil
		}),
	)
	return err
}

func countAddresses(ctx context.Context, conn *pgx.Conn) (int, error) {
	var count int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM addresses").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}
