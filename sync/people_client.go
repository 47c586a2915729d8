// ABOUTME: Google People API client for contacts sync
// ABOUTME: Creates the authenticated service and pages through connections
package sync

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"
)

const personFields = "names,emailAddresses,phoneNumbers,organizations,urls,biographies"

// NewPeopleClient creates a new Google People API client.
func NewPeopleClient(ctx context.Context, token *oauth2.Token) (*people.Service, error) {
	if token == nil {
		return nil, fmt.Errorf("token cannot be nil")
	}

	client := NewOAuthConfig().Client(ctx, token)
	service, err := people.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create People service: %w", err)
	}
	return service, nil
}

// PageFetcher returns one page of connections for a page token.
type PageFetcher func(ctx context.Context, pageToken string) (*people.ListConnectionsResponse, error)

// ServicePages fetches connection pages from the People API.
func ServicePages(service *people.Service) PageFetcher {
	return func(ctx context.Context, pageToken string) (*people.ListConnectionsResponse, error) {
		call := service.People.Connections.List("people/me").
			PageSize(1000).
			PersonFields(personFields).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		return call.Do()
	}
}

// FetchAll follows page tokens until the last page.
func FetchAll(ctx context.Context, fetch PageFetcher) ([]*people.Person, error) {
	var all []*people.Person
	pageToken := ""
	for {
		response, err := fetch(ctx, pageToken)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch contacts: %w", err)
		}
		if response == nil {
			break
		}
		all = append(all, response.Connections...)
		if response.NextPageToken == "" {
			break
		}
		pageToken = response.NextPageToken
	}
	return all, nil
}
