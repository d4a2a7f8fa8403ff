package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-care-log/internal/platform/httpclient"

	"github.com/spf13/cobra"
)

// healthcheckCmd consulta /health de una instancia corriendo; pensado para
// HEALTHCHECK de contenedores.
func healthcheckCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Check that a running API answers /health",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkHealth(cmd.Context(), baseURL, timeout); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "base URL of the API")
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "request timeout")
	return cmd
}

func checkHealth(ctx context.Context, baseURL string, timeout time.Duration) error {
	c, err := httpclient.NewWithBaseURL(baseURL, nil)
	if err != nil {
		return err
	}
	c.HTTP.Timeout = timeout

	body, err := c.Do(ctx, http.MethodGet, "/health", "", nil)
	if err != nil {
		if code := httpclient.StatusCode(err); code != 0 {
			return fmt.Errorf("healthcheck: status %d", code)
		}
		return fmt.Errorf("healthcheck: %w", err)
	}
	if strings.TrimSpace(string(body)) != "ok" {
		return fmt.Errorf("healthcheck: unexpected body %q", body)
	}
	return nil
}
