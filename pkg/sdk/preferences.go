package solrdesk

import (
	"context"
	"fmt"
)

// Preferences returns the saved preferences of a profile ("" means default).
func (c *Client) Preferences(ctx context.Context, profile string) (Preferences, error) {
	p, err := c.prefsSvc.Load(ctx, profile)
	if err != nil {
		return Preferences{}, fmt.Errorf("load preferences: %w", err)
	}
	return fromInternalPreferences(p), nil
}

// SavePreferences overwrites the preferences of a profile and returns what was stored.
func (c *Client) SavePreferences(ctx context.Context, profile string, p Preferences) (Preferences, error) {
	saved, err := c.prefsSvc.Save(ctx, profile, toInternalPreferences(p))
	if err != nil {
		return Preferences{}, fmt.Errorf("save preferences: %w", err)
	}
	return fromInternalPreferences(saved), nil
}

// ResetPreferences forgets everything saved for a profile.
func (c *Client) ResetPreferences(ctx context.Context, profile string) error {
	if err := c.prefsSvc.Reset(ctx, profile); err != nil {
		return fmt.Errorf("reset preferences: %w", err)
	}
	return nil
}
