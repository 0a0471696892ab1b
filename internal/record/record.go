// Package record keeps the log of recognised plates as a two-column CSV
// file.
//
// Every file starts with the header row "date,v_number". Each recognition
// adds one row holding the local timestamp in asctime layout
// (Mon Jan _2 15:04:05 2006) and the cleaned plate text, which may be empty.
//
// # Write Modes
//
//   - ModeAppend: create the file with its header when it is missing or
//     empty, otherwise append one row. A file whose first row is not the
//     expected header is left untouched and ErrHeaderMismatch is returned.
//   - ModeReplace: truncate the file and write the header plus one row.
package record

import (
	"errors"
	"fmt"
	"time"
)

// TimeLayout formats the date column.
const TimeLayout = time.ANSIC

// Header is the first row of every record file.
var Header = []string{"date", "v_number"}

// ErrHeaderMismatch is returned when an existing file does not start with
// Header.
var ErrHeaderMismatch = errors.New("existing file has a different header")

// Mode selects how Write treats an existing file.
type Mode int

const (
	ModeAppend Mode = iota
	ModeReplace
)

// ParseMode maps "append" or "replace" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "append", "":
		return ModeAppend, nil
	case "replace":
		return ModeReplace, nil
	default:
		return ModeAppend, fmt.Errorf("unknown write mode %q (want append or replace)", s)
	}
}

// String returns the flag spelling of m.
func (m Mode) String() string {
	if m == ModeReplace {
		return "replace"
	}
	return "append"
}

// Record is one recognised plate.
type Record struct {
	Time  time.Time
	Plate string
}

// row renders r as CSV fields.
func (r Record) row() []string {
	return []string{r.Time.Format(TimeLayout), r.Plate}
}
