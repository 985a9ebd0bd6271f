package notifier

import (
	"fmt"
	"io"
	"os"
)

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to stdout
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{out: os.Stdout}
}

// Notify prints the post that would be published
func (n *DryRunNotifier) Notify(a Announcement) error {
	post := formatAnnouncement(a)
	fmt.Fprintln(n.out, "--- Post ---")
	fmt.Fprintln(n.out, post)
	fmt.Fprintf(n.out, "\n(Length: %d characters)\n", len(post))
	return nil
}

// WithWriter redirects the printed post to w
func (n *DryRunNotifier) WithWriter(w io.Writer) *DryRunNotifier {
	n.out = w
	return n
}
