package sampledata

import "os"

// ShowHelp prints usage information for the sample reports tool.
func ShowHelp() {
	os.Stdout.WriteString(`Scoresheet Sample Reports
=========================

Generates a reproducible volleyball division and renders its reports:
the division workbook, a standings table and one score sheet per match.

Usage:
  go run ./cmd/sample-reports [options]

Options:
  -seed int
        Generator seed; the same seed gives the same division (default 1)
  -teams int
        Number of teams in the round robin, 2 to 32 (default 6)
  -kind string
        INDOOR, INDOOR_4X4, BEACH or SNOW (default "INDOOR")
  -division string
        Division name, also the workbook name (default "Sample Division")
  -out string
        Output directory (default "sample-reports")
  -template string
        Score sheet template, legacy or current (default "current")
  -timezone string
        IANA zone for printed dates and times (default "UTC")
  -help
        Show this help message

Examples:
  go run ./cmd/sample-reports -teams 8 -seed 42
  go run ./cmd/sample-reports -kind BEACH -division "Beach Open" -out beach
`)
}
