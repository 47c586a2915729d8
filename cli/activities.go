// ABOUTME: Activity CLI commands
// ABOUTME: Logs outreach touches against contacts
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/harperreed/outreach/store"
)

// LogActivityCommand records an outreach touch.
func LogActivityCommand(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("log-activity", flag.ExitOnError)
	contactID := fs.String("contact", "", "Contact ID (required)")
	kind := fs.String("type", "email", "Activity type (email, call, meeting, ...)")
	notes := fs.String("notes", "", "What happened")
	followUp := fs.String("follow-up", "", "Follow-up date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	if *contactID == "" {
		return fmt.Errorf("--contact is required")
	}
	date, err := parseDate("follow-up", *followUp)
	if err != nil {
		return err
	}

	activity, err := s.LogActivity(ctx, *contactID, *kind, *notes, date)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	fmt.Fprintf(stdout, "✓ Logged %s for %s\n", activity.Type, activity.ContactID)
	if activity.FollowUpDate != nil {
		fmt.Fprintf(stdout, "  Follow up: %s\n", formatDate(activity.FollowUpDate))
	}
	return nil
}

// DeleteActivityCommand removes one logged activity.
func DeleteActivityCommand(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("delete-activity", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("activity ID required")
	}
	if err := s.DeleteActivity(ctx, fs.Arg(0)); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Deleted activity %s\n", fs.Arg(0))
	return nil
}
