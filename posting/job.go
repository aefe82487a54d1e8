package posting

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/iw2rmb/inkwell/document"
	"github.com/iw2rmb/inkwell/internal/grapheme"
)

// ErrInvalidJob marks every validation problem of a Job.
var ErrInvalidJob = errors.New("invalid job")

// MaxTitleLen is the longest accepted title, in grapheme clusters.
const MaxTitleLen = 120

// Job is a job posting. Description holds editor markup.
type Job struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location,omitempty"`
	Remote      bool     `json:"remote"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description"`
}

// Validate reports every problem with j. The returned error is a multierr
// combination; each problem matches ErrInvalidJob.
func (j Job) Validate() error {
	var err error
	if strings.TrimSpace(j.Title) == "" {
		err = multierr.Append(err, fmt.Errorf("%w: title is required", ErrInvalidJob))
	} else if n := grapheme.Count(j.Title); n > MaxTitleLen {
		err = multierr.Append(err, fmt.Errorf("%w: title is %d characters, max %d", ErrInvalidJob, n, MaxTitleLen))
	}
	if strings.TrimSpace(j.Company) == "" {
		err = multierr.Append(err, fmt.Errorf("%w: company is required", ErrInvalidJob))
	}
	if j.Location == "" && !j.Remote {
		err = multierr.Append(err, fmt.Errorf("%w: location is required unless remote", ErrInvalidJob))
	}
	for i, tag := range j.Tags {
		if strings.TrimSpace(tag) == "" {
			err = multierr.Append(err, fmt.Errorf("%w: tag %d is blank", ErrInvalidJob, i))
		}
	}

	doc, perr := document.Parse(j.Description)
	switch {
	case perr != nil:
		err = multierr.Append(err, fmt.Errorf("%w: description: %w", ErrInvalidJob, perr))
	case doc.IsEmpty():
		err = multierr.Append(err, fmt.Errorf("%w: description is empty", ErrInvalidJob))
	}
	return err
}

// Normalized returns j with trimmed fields, deduplicated tags and the
// description in canonical markup. Invalid markup is left as is.
func (j Job) Normalized() Job {
	out := j
	out.Title = strings.TrimSpace(j.Title)
	out.Company = strings.TrimSpace(j.Company)
	out.Location = strings.TrimSpace(j.Location)

	out.Tags = nil
	seen := make(map[string]bool, len(j.Tags))
	for _, tag := range j.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out.Tags = append(out.Tags, tag)
	}

	if doc, err := document.Parse(j.Description); err == nil {
		out.Description = document.Serialize(doc)
	}
	return out
}

// Summary returns the first n grapheme clusters of the description text,
// with line breaks folded to spaces.
func (j Job) Summary(n int) string {
	doc, err := document.Parse(j.Description)
	if err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(doc.Text()), " ")
	if grapheme.Count(text) <= n {
		return text
	}
	head, _ := grapheme.Cut(text, n)
	return strings.TrimRight(head, " ") + "…"
}
