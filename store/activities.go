// ABOUTME: Activity log operations on the record store
// ABOUTME: Logs immutable outreach touches and hides orphaned entries at read time
package store

import (
	"context"
	"crypto/rand"
	"sort"
	"time"

	"github.com/harperreed/outreach/models"
	"github.com/oklog/ulid/v2"
)

// LogActivity records an outreach touch against a contact, updating the
// contact's last contact time and follow-up date.
func (s *Store) LogActivity(ctx context.Context, contactID, activityType, notes string, followUp *time.Time) (models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.contactIndex(contactID)
	if i < 0 {
		return models.Activity{}, ErrNotFound
	}

	now := s.now()
	a := models.Activity{
		ID:           ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		ContactID:    contactID,
		Type:         activityType,
		Notes:        notes,
		Date:         now,
		FollowUpDate: followUp,
	}
	s.state.Activities = append(s.state.Activities, a)

	s.state.Contacts[i].LastContact = &now
	if followUp != nil {
		fu := *followUp
		s.state.Contacts[i].FollowUpDate = &fu
	}

	if err := s.commitLocked(ctx); err != nil {
		return models.Activity{}, err
	}
	return a, nil
}

// DeleteActivity removes one activity. The parent contact is untouched.
func (s *Store) DeleteActivity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Activities {
		if s.state.Activities[i].ID == id {
			s.state.Activities = append(s.state.Activities[:i], s.state.Activities[i+1:]...)
			return s.commitLocked(ctx)
		}
	}
	return ErrNotFound
}

// VisibleActivities returns activities whose contact still exists, most
// recent first. Orphans stay stored but are not shown.
func (s *Store) VisibleActivities() []models.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]struct{}, len(s.state.Contacts))
	for _, c := range s.state.Contacts {
		known[c.ID] = struct{}{}
	}

	var out []models.Activity
	for _, a := range s.state.Activities {
		if _, ok := known[a.ContactID]; ok {
			out = append(out, a)
		}
	}
	sortActivities(out)
	return out
}

// ActivitiesFor returns the activities of one contact, most recent first.
func (s *Store) ActivitiesFor(contactID string) []models.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Activity
	for _, a := range s.state.Activities {
		if a.ContactID == contactID {
			out = append(out, a)
		}
	}
	sortActivities(out)
	return out
}

func sortActivities(activities []models.Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date.After(activities[j].Date)
	})
}
