package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"go.uber.org/zap"

	"bullyguard/internal/models"
	"bullyguard/internal/normalizer"
)

const defaultTestFraction = 0.2

// LoadError is returned when the labeled corpus cannot be turned into a
// usable train/test split: missing or unreadable file, malformed CSV,
// missing required columns, or zero rows left after filtering.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Options controls loading and splitting.
type Options struct {
	// TestFraction is the share of rows assigned to the test partition.
	// Values outside (0, 1) fall back to 0.2.
	TestFraction float64
	// Seed drives the shuffle before splitting, so runs are reproducible.
	Seed int64
}

// Split holds the disjoint train/test partitions covering every usable row.
type Split struct {
	Train []models.Sample
	Test  []models.Sample
}

// Load reads a CSV corpus with Text and Label columns, drops rows with a
// missing text or label, normalizes and encodes the rest, and splits them
// into train/test partitions.
func Load(path string, opts Options, logger *zap.Logger) (*Split, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("read header: %w", err)}
	}

	textCol, labelCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "text":
			textCol = i
		case "label":
			labelCol = i
		}
	}
	if textCol < 0 || labelCol < 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("required columns Text and Label not found in header %v", header)}
	}

	var samples []models.Sample
	dropped := 0
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("read line %d: %w", line+1, err)}
		}
		line++

		if textCol >= len(record) || labelCol >= len(record) {
			dropped++
			continue
		}
		text := record[textCol]
		label := record[labelCol]
		if strings.TrimSpace(text) == "" || strings.TrimSpace(label) == "" {
			dropped++
			continue
		}

		samples = append(samples, models.Sample{
			Text:  normalizer.Normalize(text),
			Label: normalizer.EncodeLabel(label),
		})
	}

	if len(samples) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("no usable rows after dropping %d incomplete rows", dropped)}
	}

	logger.Info("Dataset loaded",
		zap.String("path", path),
		zap.Int("rows", len(samples)),
		zap.Int("dropped", dropped),
	)

	return split(samples, opts), nil
}

// split shuffles the samples with the seeded source and partitions them.
// Every sample lands in exactly one partition.
func split(samples []models.Sample, opts Options) *Split {
	fraction := opts.TestFraction
	if fraction <= 0 || fraction >= 1 {
		fraction = defaultTestFraction
	}

	shuffled := append([]models.Sample(nil), samples...)
	rng := rand.New(rand.NewSource(opts.Seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	testSize := int(float64(len(shuffled)) * fraction)
	if testSize == 0 && len(shuffled) > 1 {
		testSize = 1
	}

	return &Split{
		Train: shuffled[testSize:],
		Test:  shuffled[:testSize],
	}
}
