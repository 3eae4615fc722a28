// Package model defines shared data structures.
package model

import "time"

// Candidate is one brute-force decryption attempt and its heuristic score.
type Candidate struct {
	Key   int
	Text  string
	Score int
}

// Config defines resolved CLI settings.
type Config struct {
	Key          int
	PreviewWidth int
	OutputFile   string
	ExportFile   string
	History      bool
	LogLevel     string
}

// Run modes recorded in history.
const (
	ModeEncrypt = "encrypt"
	ModeDecrypt = "decrypt"
	ModeBrute   = "brute"
)

// Run captures metadata about a completed operation. Text is never stored.
type Run struct {
	ID         int64
	CreatedAt  time.Time
	Mode       string
	Key        int
	InputChars int
	BestKey    int
	BestScore  int
}
