// ABOUTME: Sync CLI commands
// ABOUTME: Google OAuth setup and Google Contacts import into the store
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"

	"github.com/harperreed/outreach/store"
	"github.com/harperreed/outreach/sync"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// SyncGoogleCommand imports Google Contacts, running the OAuth flow first
// when no token is stored.
func SyncGoogleCommand(ctx context.Context, s *store.Store, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("sync google", flag.ExitOnError)
	reauth := fs.Bool("reauth", false, "Run the OAuth flow even if a token exists")
	dryRun := fs.Bool("dry-run", false, "Show what would be imported without saving")
	_ = fs.Parse(args)

	token, err := sync.LoadToken()
	if err != nil || *reauth {
		if token, err = authorizeGoogle(ctx); err != nil {
			return err
		}
	}

	service, err := sync.NewPeopleClient(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to create People client: %w", err)
	}

	fmt.Fprintln(stdout, "Syncing Google Contacts...")
	if *dryRun {
		persons, err := sync.FetchAll(ctx, sync.ServicePages(service))
		if err != nil {
			return err
		}
		printPreview(sync.Preview(s, persons))
		fmt.Fprintln(stdout, "\nDry run. Nothing was saved.")
		return nil
	}

	preview, added, err := sync.ImportContacts(ctx, s, sync.ServicePages(service), log)
	if err != nil {
		return fmt.Errorf("google contacts sync failed: %w", err)
	}
	fmt.Fprintf(stdout, "✓ %s\n", sync.Summary(preview, added))
	return nil
}

// authorizeGoogle runs the browser OAuth flow and stores the token.
func authorizeGoogle(ctx context.Context) (*oauth2.Token, error) {
	config, err := sync.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get OAuth config: %w", err)
	}

	callbackChan := make(chan *oauth2.Token, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code received")
			return
		}

		token, err := config.Exchange(ctx, code)
		if err != nil {
			errChan <- fmt.Errorf("failed to exchange code: %w", err)
			return
		}

		callbackChan <- token
		_, _ = fmt.Fprintf(w, "Authorization successful! You can close this window.")
	})

	server := &http.Server{Addr: ":8080", Handler: mux}
	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	defer func() { _ = server.Shutdown(context.Background()) }()

	authURL := config.AuthCodeURL("state", oauth2.AccessTypeOffline)

	fmt.Fprintln(stdout, "Opening browser for Google OAuth...")
	fmt.Fprintf(stdout, "\nIf browser doesn't open, visit this URL:\n%s\n\n", authURL)
	_ = openBrowser(authURL)

	select {
	case token := <-callbackChan:
		if err := sync.SaveToken(token); err != nil {
			return nil, fmt.Errorf("failed to save token: %w", err)
		}
		fmt.Fprintf(stdout, "✓ Authenticated successfully\n")
		fmt.Fprintf(stdout, "✓ Tokens saved to %s\n\n", sync.TokenPath())
		return token, nil
	case err := <-errChan:
		return nil, fmt.Errorf("OAuth flow failed: %w", err)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// openBrowser attempts to open URL in default browser
func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}

	return exec.Command(cmd, args...).Start()
}
