// ABOUTME: JSON encoding of the whole record store
// ABOUTME: Decodes legacy project entries and fills missing collections
package store

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/models"
)

// storedState mirrors models.State but keeps projects raw so legacy
// string entries can be promoted.
type storedState struct {
	Contacts     []models.Contact     `json:"contacts"`
	Activities   []models.Activity    `json:"activities"`
	Scripts      []models.Script      `json:"scripts"`
	Tags         []models.Tag         `json:"tags"`
	CustomFields []models.CustomField `json:"customFields"`
	Tasks        []models.Task        `json:"tasks"`
	Projects     []json.RawMessage    `json:"projects"`
}

// EncodeState serializes the state.
func EncodeState(state *models.State) ([]byte, error) {
	return json.Marshal(state)
}

// DecodeState parses a stored state, normalizing projects and replacing
// missing collections with empty ones. A nil newID uses random uuids.
func DecodeState(data []byte, newID func() string) (models.State, error) {
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	var raw storedState
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.State{}, fmt.Errorf("failed to decode state: %w", err)
	}

	state := emptyState()
	if raw.Contacts != nil {
		state.Contacts = raw.Contacts
	}
	if raw.Activities != nil {
		state.Activities = raw.Activities
	}
	if raw.Scripts != nil {
		state.Scripts = raw.Scripts
	}
	if raw.Tags != nil {
		state.Tags = raw.Tags
	}
	if raw.CustomFields != nil {
		state.CustomFields = raw.CustomFields
	}
	if raw.Tasks != nil {
		state.Tasks = raw.Tasks
	}
	state.Projects = normalizeProjects(raw.Projects, newID)

	for i := range state.Contacts {
		if state.Contacts[i].Tags == nil {
			state.Contacts[i].Tags = []string{}
		}
	}

	return state, nil
}
