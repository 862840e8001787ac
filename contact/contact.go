// Package contact receives contact-form submissions from published landing
// pages and exposes them to the site owner.
package contact

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a submission id does not exist.
var ErrNotFound = errors.New("contact: submission not found")

// StatusReceived is the status of every new submission.
const StatusReceived = "received"

// MinMessageLen is the shortest accepted message, after trimming.
const MinMessageLen = 10

// Input is the body of a contact form post.
type Input struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// Submission is a stored contact request.
type Submission struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
	Status    string `json:"status"`
	IPAddress string `json:"ipAddress"`
	UserAgent string `json:"userAgent"`
}

// Time returns the submission time.
func (s Submission) Time() time.Time { return time.UnixMilli(s.Timestamp) }

var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate returns the human-readable problems with in, or nil.
func Validate(in Input) []string {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "Name is required")
	}
	switch email := strings.TrimSpace(in.Email); {
	case email == "":
		errs = append(errs, "Email is required")
	case !reEmail.MatchString(email):
		errs = append(errs, "Invalid email format")
	}
	if strings.TrimSpace(in.Subject) == "" {
		errs = append(errs, "Subject is required")
	}
	if len([]rune(strings.TrimSpace(in.Message))) < MinMessageLen {
		errs = append(errs, fmt.Sprintf("Message must be at least %d characters long", MinMessageLen))
	}
	return errs
}

// NewSubmission builds a trimmed submission from a validated input.
func NewSubmission(in Input, now time.Time, ip, userAgent string) Submission {
	if userAgent == "" {
		userAgent = "Unknown"
	}
	return Submission{
		ID:        NewID(now),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   strings.TrimSpace(in.Message),
		Timestamp: now.UnixMilli(),
		Status:    StatusReceived,
		IPAddress: ip,
		UserAgent: userAgent,
	}
}

// NewID returns contact_<ms>_<random>.
func NewID(now time.Time) string {
	r := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("contact_%d_%s", now.UnixMilli(), r[:13])
}

// Store persists submissions. List returns newest first.
type Store interface {
	Add(ctx context.Context, s Submission) error
	List(ctx context.Context) ([]Submission, error)
	Get(ctx context.Context, id string) (Submission, error)
	Delete(ctx context.Context, id string) error
	PurgeBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// Stats summarises the stored submissions.
type Stats struct {
	Total          int    `json:"total"`
	Today          int    `json:"today"`
	ThisWeek       int    `json:"thisWeek"`
	LastSubmission *int64 `json:"lastSubmission"`
}

// ComputeStats counts subs relative to now. "Today" is the calendar day of
// now in now's location; "this week" is the trailing seven days.
func ComputeStats(subs []Submission, now time.Time) Stats {
	st := Stats{Total: len(subs)}
	y, m, d := now.Date()
	weekAgo := now.Add(-7 * 24 * time.Hour).UnixMilli()
	for _, s := range subs {
		sy, sm, sd := s.Time().In(now.Location()).Date()
		if sy == y && sm == m && sd == d {
			st.Today++
		}
		if s.Timestamp > weekAgo {
			st.ThisWeek++
		}
		if st.LastSubmission == nil || s.Timestamp > *st.LastSubmission {
			ts := s.Timestamp
			st.LastSubmission = &ts
		}
	}
	return st
}
