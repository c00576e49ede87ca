package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	httpclient "github.com/astro-web3/dashboard-authgate/pkg/http"
)

const unauthorizedPath = "/unauthorized"

type logoutResponse struct {
	Message string `json:"message"`
}

// Usage: probe <base-url> <token> [identity-json]
//
// Runs a gated request and a logout against a running gateway and prints
// what came back.
func main() {
	if len(os.Args) < 3 {
		log.Fatalf("Usage: %s <base-url> <token> [identity-json]", os.Args[0])
	}

	baseURL := strings.TrimRight(os.Args[1], "/")
	token := os.Args[2]
	identity := `{"id":"probe","role":"ADMIN"}`
	if len(os.Args) > 3 {
		identity = os.Args[3]
	}

	ctx := context.Background()
	credential := &http.Cookie{Name: "token", Value: token}

	failed := false
	if err := checkGate(ctx, baseURL, credential, identity); err != nil {
		fmt.Printf("❌ gate: %v\n", err)
		failed = true
	}
	if err := checkLogout(ctx, baseURL, credential); err != nil {
		fmt.Printf("❌ logout: %v\n", err)
		failed = true
	}
	if failed {
		os.Exit(1)
	}
}

func checkGate(ctx context.Context, baseURL string, credential *http.Cookie, identity string) error {
	resp, err := httpclient.Get(ctx, baseURL+"/dashboard",
		httpclient.WithCookie(credential),
		httpclient.WithCookie(&http.Cookie{Name: "user", Value: url.PathEscape(identity)}),
		httpclient.WithHeader("Accept", "text/html"),
	)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	// The shared client follows redirects, so a denial shows up as the final URL.
	if final := resp.RawResponse.Request.URL; final.Path == unauthorizedPath {
		fmt.Printf("🔒 gate redirected to %s\n", final)
		return nil
	}
	if resp.IsError() {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), resp.String())
	}
	fmt.Printf("✅ gate allowed /dashboard (status %d)\n", resp.StatusCode())
	return nil
}

func checkLogout(ctx context.Context, baseURL string, credential *http.Cookie) error {
	var body logoutResponse
	resp, err := httpclient.Post(ctx, baseURL+"/api/auth/logout",
		httpclient.WithCookie(credential),
		httpclient.WithResult(&body),
	)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), body.Message)
	}

	for _, c := range resp.Cookies() {
		if c.Name == credential.Name && c.Value == "" && c.MaxAge < 0 {
			fmt.Printf("✅ %s\n   Set-Cookie: %s\n", body.Message, resp.Header().Get("Set-Cookie"))
			return nil
		}
	}
	return errors.New("logout response did not clear the credential cookie")
}
