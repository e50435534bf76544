package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Row is one parsed line of a training-log CSV export.
type Row struct {
	Date      time.Time
	Exercise  string
	SetNumber int
	Reps      *int
	Weight    *float64
	Rpe       *float64
	Notes     string
}

// SessionGroup is one historical session: all rows sharing a date, with
// exercises in first-appearance order and sets in set-number order.
type SessionGroup struct {
	Date      time.Time
	Exercises []ExerciseGroup
}

// ExerciseGroup is one exercise's sets within a session group.
type ExerciseGroup struct {
	Name string
	Sets []Row
}

// expected CSV header, in order
var header = []string{"date", "exercise", "set_number", "reps", "weight", "rpe", "notes"}

// ParseCSV reads a training-log CSV. Columns: date (YYYY-MM-DD), exercise,
// set_number, reps, weight, rpe, notes. Empty reps/weight/rpe cells stay
// unset; the derived metrics for such sets are null downstream.
func ParseCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	for i, want := range header {
		if i >= len(records[0]) || !strings.EqualFold(strings.TrimSpace(records[0][i]), want) {
			return nil, fmt.Errorf("unexpected header: want %v", header)
		}
	}

	var rows []Row
	for lineNo, rec := range records[1:] {
		if len(rec) < len(header) {
			return nil, fmt.Errorf("line %d: %d columns, want %d", lineNo+2, len(rec), len(header))
		}

		date, err := time.Parse("2006-01-02", rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad date %q: %w", lineNo+2, rec[0], err)
		}
		setNumber, err := strconv.Atoi(rec[2])
		if err != nil || setNumber < 1 {
			return nil, fmt.Errorf("line %d: bad set_number %q", lineNo+2, rec[2])
		}

		row := Row{
			Date:      date,
			Exercise:  strings.TrimSpace(rec[1]),
			SetNumber: setNumber,
			Notes:     rec[6],
		}
		if row.Exercise == "" {
			return nil, fmt.Errorf("line %d: empty exercise name", lineNo+2)
		}
		if rec[3] != "" {
			reps, err := strconv.Atoi(rec[3])
			if err != nil || reps < 0 {
				return nil, fmt.Errorf("line %d: bad reps %q", lineNo+2, rec[3])
			}
			row.Reps = &reps
		}
		if rec[4] != "" {
			weight, err := strconv.ParseFloat(rec[4], 64)
			if err != nil || weight < 0 {
				return nil, fmt.Errorf("line %d: bad weight %q", lineNo+2, rec[4])
			}
			row.Weight = &weight
		}
		if rec[5] != "" {
			rpe, err := strconv.ParseFloat(rec[5], 64)
			if err != nil || rpe < 0 || rpe > 10 {
				return nil, fmt.Errorf("line %d: bad rpe %q", lineNo+2, rec[5])
			}
			row.Rpe = &rpe
		}

		rows = append(rows, row)
	}
	return rows, nil
}

// GroupSessions buckets rows into one session per calendar date, oldest
// first, preserving first-appearance exercise order and sorting sets by
// set number within each exercise.
func GroupSessions(rows []Row) []SessionGroup {
	byDate := make(map[time.Time]*SessionGroup)
	var dates []time.Time

	for _, row := range rows {
		g, ok := byDate[row.Date]
		if !ok {
			g = &SessionGroup{Date: row.Date}
			byDate[row.Date] = g
			dates = append(dates, row.Date)
		}

		idx := -1
		for i := range g.Exercises {
			if g.Exercises[i].Name == row.Exercise {
				idx = i
				break
			}
		}
		if idx == -1 {
			g.Exercises = append(g.Exercises, ExerciseGroup{Name: row.Exercise})
			idx = len(g.Exercises) - 1
		}
		g.Exercises[idx].Sets = append(g.Exercises[idx].Sets, row)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := make([]SessionGroup, 0, len(dates))
	for _, d := range dates {
		g := byDate[d]
		for i := range g.Exercises {
			sets := g.Exercises[i].Sets
			sort.Slice(sets, func(a, b int) bool { return sets[a].SetNumber < sets[b].SetNumber })
		}
		out = append(out, *g)
	}
	return out
}
