package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PresentValue is stored in end-date fields of ongoing records.
const PresentValue = "Present"

var monthYear = regexp.MustCompile(`^(\d{1,2})[/-](\d{4})$`)

// Date is a month/year field value.
type Date struct {
	Month   int
	Year    int
	Present bool
}

// ParseDate reads MM/YYYY, M/YYYY, MM-YYYY or "present" in any case.
func ParseDate(raw string) (Date, bool) {
	t := strings.TrimSpace(raw)
	if strings.EqualFold(t, PresentValue) {
		return Date{Present: true}, true
	}
	m := monthYear.FindStringSubmatch(t)
	if m == nil {
		return Date{}, false
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return Date{}, false
	}
	return Date{Month: month, Year: year}, true
}

func (d Date) String() string {
	if d.Present {
		return PresentValue
	}
	if d.Month == 0 || d.Year == 0 {
		return ""
	}
	return fmt.Sprintf("%02d/%04d", d.Month, d.Year)
}

// NormalizeDate rewrites raw into its stored form. Unparseable input, and
// "present" where it is not allowed, become empty.
func NormalizeDate(raw string, allowPresent bool) string {
	d, ok := ParseDate(raw)
	if !ok || (d.Present && !allowPresent) {
		return ""
	}
	return d.String()
}

// ScoreMode is the notation of an academic score.
type ScoreMode string

const (
	ScoreGPA        ScoreMode = "gpa"
	ScoreMarks      ScoreMode = "marks"
	ScorePercentage ScoreMode = "percentage"
)

var (
	percentValue = regexp.MustCompile(`^\d+(\.\d+)?%$`)
	scoreLabel   = regexp.MustCompile(`(?i)^(cgpa|gpa|marks|percentage)[:\s]*`)
)

// Score is the structured form of an education score field. A hidden score
// keeps the field in place but renders nothing; it is stored as HiddenValue.
type Score struct {
	Mode     ScoreMode
	Obtained string
	OutOf    string
	Hidden   bool
}

// ParseScore reads stored score content such as "CGPA: 3.8/4",
// "Marks: 420/500", "85%" or HiddenValue. An explicit label decides the
// mode; unlabelled content is classified by the size of its numbers.
func ParseScore(content string) Score {
	raw := strings.TrimSpace(content)
	switch {
	case raw == "":
		return Score{Mode: ScoreGPA}
	case raw == HiddenValue:
		return Score{Mode: ScoreGPA, Hidden: true}
	}
	var mode ScoreMode
	if m := scoreLabel.FindStringSubmatch(raw); m != nil {
		mode = labelModes[strings.ToLower(m[1])]
	}
	cleaned := strings.TrimSpace(scoreLabel.ReplaceAllString(raw, ""))
	if mode == ScorePercentage || (mode == "" && percentValue.MatchString(cleaned)) {
		return Score{Mode: ScorePercentage, Obtained: strings.TrimSpace(strings.TrimSuffix(cleaned, "%"))}
	}
	parts := strings.Split(cleaned, "/")
	if len(parts) == 2 {
		a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if mode == "" {
			mode = ScoreMarks
			if atMost(b, 5) || atMost(a, 5) {
				mode = ScoreGPA
			}
		}
		return Score{Mode: mode, Obtained: a, OutOf: b}
	}
	if mode == "" {
		mode = ScoreGPA
	}
	return Score{Mode: mode, Obtained: cleaned}
}

var labelModes = map[string]ScoreMode{
	"cgpa":       ScoreGPA,
	"gpa":        ScoreGPA,
	"marks":      ScoreMarks,
	"percentage": ScorePercentage,
}

// String formats s for storage.
func (s Score) String() string {
	if s.Hidden {
		return HiddenValue
	}
	if s.Mode == ScorePercentage {
		if s.Obtained == "" {
			return ""
		}
		return "Percentage: " + s.Obtained + "%"
	}
	label := "CGPA"
	if s.Mode == ScoreMarks {
		label = "Marks"
	}
	switch {
	case s.Obtained != "" && s.OutOf != "":
		return label + ": " + s.Obtained + "/" + s.OutOf
	case s.Obtained != "":
		return label + ": " + s.Obtained
	}
	return ""
}

// NormalizeScore parses and reformats stored score content.
func NormalizeScore(content string) string {
	return ParseScore(content).String()
}

func atMost(s string, limit float64) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f <= limit
}
