package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// buddhistEraOffset converts a Gregorian year to the Thai academic calendar.
const buddhistEraOffset = 543

type Education struct {
	StudentID      string `json:"studentId,omitempty"`
	Major          string `json:"major,omitempty"`
	EnrollmentYear string `json:"enrollmentYear,omitempty"`
	SchoolID       string `json:"schoolId,omitempty"`
	SchoolProvince string `json:"schoolProvince,omitempty"`
	AdvisorID      string `json:"advisorId,omitempty"`
}

// Student is one roster entry. Numeric fields arrive as numbers or strings
// depending on the roster backend, so they are kept as text.
type Student struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Firstname  string     `json:"firstname,omitempty"`
	Lastname   string     `json:"lastname,omitempty"`
	Email      string     `json:"email,omitempty"`
	Image      string     `json:"image,omitempty"`
	Role       string     `json:"role,omitempty"`
	Type       string     `json:"type,omitempty"`
	Confirmed  bool       `json:"confirmed"`
	Education  *Education `json:"education,omitempty"`
	Department string     `json:"department,omitempty"`
	Class      string     `json:"class,omitempty"`
	Year       string     `json:"year,omitempty"`
}

// DisplayName falls back from name to first and last name to the student number.
func (s Student) DisplayName() string {
	if n := strings.TrimSpace(s.Name); n != "" {
		return n
	}
	if n := strings.TrimSpace(s.Firstname + " " + s.Lastname); n != "" {
		return n
	}
	if s.Education != nil && s.Education.StudentID != "" {
		return "Student " + s.Education.StudentID
	}
	return "Unknown Student"
}

// flexString accepts a JSON string, number or null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*f = flexString(n.String())
	}
	return nil
}

type rawEducation struct {
	StudentID      flexString `json:"studentId"`
	Major          string     `json:"major"`
	EnrollmentYear flexString `json:"enrollmentYear"`
	SchoolID       flexString `json:"schoolId"`
	SchoolProvince string     `json:"schoolProvince"`
	AdvisorID      flexString `json:"advisorId"`
}

type rawStudent struct {
	ID         flexString    `json:"id"`
	MongoID    flexString    `json:"_id"`
	Name       string        `json:"name"`
	Firstname  string        `json:"firstname"`
	Lastname   string        `json:"lastname"`
	Email      string        `json:"email"`
	Image      string        `json:"image"`
	Role       string        `json:"role"`
	Type       string        `json:"type"`
	Confirmed  bool          `json:"confirmed"`
	Education  *rawEducation `json:"education"`
	Department string        `json:"department"`
	Class      flexString    `json:"class"`
	Year       flexString    `json:"year"`
}

func (r rawStudent) student() Student {
	s := Student{
		ID:         string(r.ID),
		Name:       r.Name,
		Firstname:  r.Firstname,
		Lastname:   r.Lastname,
		Email:      r.Email,
		Image:      r.Image,
		Role:       r.Role,
		Type:       r.Type,
		Confirmed:  r.Confirmed,
		Department: r.Department,
		Class:      string(r.Class),
		Year:       string(r.Year),
	}
	if s.ID == "" {
		s.ID = string(r.MongoID)
	}
	if e := r.Education; e != nil {
		s.Education = &Education{
			StudentID:      string(e.StudentID),
			Major:          e.Major,
			EnrollmentYear: string(e.EnrollmentYear),
			SchoolID:       string(e.SchoolID),
			SchoolProvince: e.SchoolProvince,
			AdvisorID:      string(e.AdvisorID),
		}
	}
	return s
}

// decodeRoster accepts {"data":[...]}, a bare [...] or {"students":[...]}.
func decodeRoster(raw []byte) ([]Student, error) {
	raw = bytes.TrimSpace(raw)
	var list []rawStudent
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
	} else {
		var wrapped struct {
			Data     []rawStudent `json:"data"`
			Students []rawStudent `json:"students"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, err
		}
		list = wrapped.Data
		if list == nil {
			list = wrapped.Students
		}
	}
	out := make([]Student, 0, len(list))
	for _, r := range list {
		out = append(out, r.student())
	}
	return out, nil
}

// BuddhistYear returns the Buddhist-era year for a Gregorian year.
func BuddhistYear(gregorian int) int {
	return gregorian + buddhistEraOffset
}

// StudentsByYear lists the roster for a Buddhist-era academic year.
func (c *Client) StudentsByYear(ctx context.Context, year string) ([]Student, error) {
	year = strings.TrimSpace(year)
	if year == "" {
		return nil, fmt.Errorf("students by year: empty year")
	}
	raw, err := c.send(ctx, request{
		op:     "students by year",
		method: http.MethodGet,
		url:    c.rosterURL + "/class/" + url.PathEscape(year),
		roster: true,
	})
	if err != nil {
		return nil, err
	}
	students, err := decodeRoster(raw)
	if err != nil {
		return nil, fmt.Errorf("students by year: decode roster: %w", err)
	}
	return students, nil
}

func (c *Client) CurrentYearStudents(ctx context.Context) ([]Student, error) {
	return c.StudentsByYear(ctx, strconv.Itoa(BuddhistYear(c.now().Year())))
}
