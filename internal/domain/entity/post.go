// Package entity defines the core domain entities for the publishing
// pipeline: channel posts, newsletter digests, and the rich-content block
// model they are built from.
package entity

import "time"

// Status is the publication lifecycle state of a post.
//
// A post moves Completed -> UnNewsletter (when sent to the channel) ->
// Published (when the newsletter that includes it is published). The
// transition is never reversed; dry runs leave the status untouched.
type Status string

const (
	// StatusCompleted marks a post that is ready to be sent to the channel.
	StatusCompleted Status = "Completed"
	// StatusUnNewsletter marks a post that has been sent to the channel but
	// not yet rolled into a newsletter.
	StatusUnNewsletter Status = "UnNewsletter"
	// StatusPublished marks a post whose newsletter has been published.
	StatusPublished Status = "Published"
)

// Post is one unit of source content stored as a document-store page,
// destined for the chat channel.
type Post struct {
	ID        string
	Title     []RichText
	TitleLink string
	IconEmoji string
	Category  string
	Tags      []string

	// Covers holds the ordered cover image URLs. At most 10 are allowed
	// at send time (album limit of the chat platform).
	Covers []string

	HideTitle     bool
	HideCopyright bool

	Status Status

	// PubPriority breaks ties when several posts are planned for the same
	// day; the highest value wins.
	PubPriority float64
	// NLGenPriority reorders posts inside a generated newsletter; the
	// highest value comes first.
	NLGenPriority float64

	// PlanningPublish is the day the post is scheduled for.
	PlanningPublish time.Time
	// RealPubTime is the moment the post was actually delivered to the
	// channel. Zero until the post has been sent.
	RealPubTime time.Time
}

// PlainTitle returns the title spans joined as unstyled text.
func (p *Post) PlainTitle() string {
	return PlainText(p.Title)
}

// Digest is a periodically generated document that compiles multiple
// already-sent posts into one page (a newsletter issue).
type Digest struct {
	ID    string
	Title string

	// No is the issue number as stored. Fractional back-issues (e.g. 3.5)
	// are allowed; numbering of a new issue floors the maximum published
	// number before incrementing.
	No float64

	IconEmoji      string
	RelatedPostIDs []string
	Published      bool
	CreatedAt      time.Time
	RealPubTime    time.Time
}

// DigestDraft carries everything needed to create a new newsletter page.
type DigestDraft struct {
	Title          string
	No             float64
	IconEmoji      string
	RelatedPostIDs []string
	CreatedAt      time.Time
}

// NextIssueNo computes the issue number for a new digest given the issue
// numbers of all already-published digests: floor(max) + 1, or 1 when no
// digest has been published yet. Unpublished digests must not be passed in.
func NextIssueNo(published []float64) int {
	var max float64
	for _, no := range published {
		if no > max {
			max = no
		}
	}
	return int(max) + 1
}
