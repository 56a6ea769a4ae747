package cli

import (
	"context"
	"time"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Token Status ===")
	c.io.Println()

	cred := c.session.Credential()
	if cred.AccessToken == "" && cred.RefreshToken == "" {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'stravadash login' to authenticate.")
		return nil
	}

	c.io.Println("Status: Authenticated")

	switch {
	case cred.ExpiresAt == 0:
		c.io.Println("Token expires: unknown")
	case c.session.IsExpired():
		c.io.Printf("Token expires: %s\n", formatUnix(cred.ExpiresAt))
		if cred.RefreshToken != "" {
			c.io.Println("⚠️  Access token is expired or about to expire; it will be refreshed on the next request.")
		} else {
			c.io.Println("⚠️  Access token is expired and there is no refresh token. Please login again.")
		}
	default:
		c.io.Printf("Token expires: %s\n", formatUnix(cred.ExpiresAt))
	}

	last, err := c.data.LastFetch(ctx)
	if err != nil {
		// не прерываем status из-за метаданных
		c.io.Printf("\nWarning: failed to read last fetch time: %v\n", err)
		return nil
	}

	c.io.Println()
	if last.IsZero() {
		c.io.Println("Activities were never fetched in full. Run 'stravadash activities -all'.")
	} else {
		c.io.Printf("Last full fetch: %s\n", last.Format(time.RFC3339))
	}
	return nil
}
