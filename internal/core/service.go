package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/vcfcsv/internal/csvout"
	"github.com/JonMunkholm/vcfcsv/internal/fsutil"
	"github.com/JonMunkholm/vcfcsv/internal/logging"
	"github.com/JonMunkholm/vcfcsv/internal/vcard"
)

// Service runs vCard to CSV conversions. It holds no per-conversion state
// and is safe for concurrent use.
type Service struct {
	newRunID func() string
	now      func() time.Time
}

// NewService creates a conversion service.
func NewService() *Service {
	return &Service{
		newRunID: func() string { return uuid.New().String() },
		now:      time.Now,
	}
}

// FileInfo describes an input file before conversion.
type FileInfo struct {
	Path      string
	Size      int64
	Estimated int // BEGIN:VCARD lines, see vcard.EstimateCount
}

// Result summarizes one conversion.
type Result struct {
	Input     string // input path, empty for stream conversions
	Output    string // written CSV path, empty for stream conversions
	Processed int
	Skipped   int
	Skips     []vcard.Skip
	BytesRead int64
	RunID     string
	Duration  time.Duration
}

// Locate returns the first file in dir ending with ext. ErrNoInput is
// returned when there is none.
func (s *Service) Locate(dir, ext string) (string, error) {
	path, err := fsutil.FindFirst(dir, ext)
	if errors.Is(err, fsutil.ErrNotFound) {
		return "", ErrNoInput
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// Inspect stats path and estimates how many cards it holds.
func (s *Service) Inspect(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("stat input: %w", err)
	}

	estimated, err := vcard.EstimateFileCount(path)
	if err != nil {
		return FileInfo{}, err
	}

	return FileInfo{Path: path, Size: info.Size(), Estimated: estimated}, nil
}

// Convert parses vCard data from r and writes the CSV table to w.
func (s *Service) Convert(ctx context.Context, r io.Reader, w io.Writer) (Result, error) {
	res := Result{RunID: s.newRunID()}
	ctx = logging.WithRunID(ctx, res.RunID)
	logger := logging.FromContext(ctx)
	start := s.now()

	logger.Info("conversion started")

	parsed, err := s.parse(ctx, r, &res)
	if err != nil {
		return res, err
	}
	if err := csvout.Write(w, parsed.Contacts); err != nil {
		return res, fmt.Errorf("write csv: %w", err)
	}

	res.Duration = s.now().Sub(start)
	logFinished(logger, res)
	return res, nil
}

// ConvertFile converts the vCard file at path into a CSV file next to it.
// The output name comes from fsutil.UniqueOutputPath, so an existing CSV is
// never overwritten.
func (s *Service) ConvertFile(ctx context.Context, path string) (Result, error) {
	res := Result{Input: path, RunID: s.newRunID()}
	ctx = logging.WithRunID(ctx, res.RunID)
	logger := logging.WithFields(ctx, "input", path)
	start := s.now()

	f, err := os.Open(path)
	if err != nil {
		return res, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		logger.Info("conversion started", "size", info.Size())
	}

	parsed, err := s.parse(ctx, f, &res)
	if err != nil {
		return res, err
	}

	output, err := fsutil.UniqueOutputPath(path)
	if err != nil {
		return res, err
	}
	if err := csvout.WriteFile(output, parsed.Contacts); err != nil {
		return res, err
	}
	res.Output = output

	res.Duration = s.now().Sub(start)
	logFinished(logger.With("output", output), res)
	return res, nil
}

func (s *Service) parse(ctx context.Context, r io.Reader, res *Result) (vcard.Result, error) {
	in := wrapInput(ctx, r)

	parsed, err := vcard.Parse(in)
	res.BytesRead = in.bytesRead
	if err != nil {
		return parsed, fmt.Errorf("parse vcard: %w", err)
	}

	res.Processed = len(parsed.Contacts)
	res.Skipped = parsed.Skipped
	res.Skips = parsed.Skips

	logger := logging.FromContext(ctx)
	for _, skip := range parsed.Skips {
		logger.Debug("skipped malformed vcard", "line", skip.Line, "reason", skip.Reason)
	}
	return parsed, nil
}

func logFinished(logger *slog.Logger, res Result) {
	logger.Info("conversion finished",
		"processed", res.Processed,
		"skipped", res.Skipped,
		"bytes", res.BytesRead,
		"duration", res.Duration,
	)
}
