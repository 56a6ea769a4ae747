package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/iudanet/stravadash/internal/client/auth"
)

// errStateMismatch means the pasted redirect belongs to another authorization attempt
var errStateMismatch = errors.New("state in redirect URL does not match")

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	state := uuid.NewString()

	c.io.Println("Open this URL in a browser and authorize stravadash:")
	c.io.Println()
	c.io.Println("  " + c.auth.AuthCodeURL(state))
	c.io.Println()
	c.io.Println("Strava then redirects to a page that may fail to load; copy its full URL.")

	input, err := c.io.ReadInput("Redirect URL or code: ")
	if err != nil {
		return fmt.Errorf("failed to read code: %w", err)
	}

	if err := checkState(input, state); err != nil {
		return err
	}

	code, err := auth.ParseCode(input)
	if err != nil {
		return err
	}

	c.io.Println("Exchanging code...")

	result, err := c.auth.Login(ctx, code)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	if result.Athlete != nil {
		c.io.Printf("Athlete: %s (id %d)\n", result.Athlete.FullName(), result.Athlete.ID)
	}
	if result.Credential.ExpiresAt != 0 {
		c.io.Printf("Access token expires: %s\n", formatUnix(result.Credential.ExpiresAt))
	}
	return nil
}

// checkState сверяет state, если пользователь вставил URL целиком
func checkState(input, state string) error {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, "://") {
		return nil
	}
	u, err := url.Parse(input)
	if err != nil {
		// ParseCode сообщит об ошибке формата
		return nil
	}
	if got := u.Query().Get("state"); got != "" && got != state {
		return errStateMismatch
	}
	return nil
}
