package notifier

import (
	"fmt"
	"os"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
)

// TwitterNotifier posts announcements to Twitter
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)

	return &TwitterNotifier{client: twitter.NewClient(httpClient)}, nil
}

// Notify posts one tweet for the announcement
func (n *TwitterNotifier) Notify(a Announcement) error {
	if _, _, err := n.client.Statuses.Update(formatAnnouncement(a), nil); err != nil {
		return fmt.Errorf("failed to post announcement for %s: %w", a.Start.Format("2006-01-02"), err)
	}
	return nil
}
