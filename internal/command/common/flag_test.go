package common

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func TestGetClientRetryRateLimited(t *testing.T) {
	type testCase struct {
		Args          []string
		ExpectError   bool
		ExpectedCalls int32
	}

	testCases := []testCase{
		{Args: []string{}, ExpectError: true, ExpectedCalls: 1},
		{Args: []string{"--retry-rate-limited"}, ExpectError: false, ExpectedCalls: 2},
		{Args: []string{"--retry-rate-limited", "--max-retries", "0"}, ExpectError: true, ExpectedCalls: 1},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%v", tc.Args), func(t *testing.T) {
			var calls atomic.Int32

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) == 1 {
					w.Header().Set("Retry-After", "0")
					w.WriteHeader(http.StatusTooManyRequests)
					return
				}

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"files":["a.md"]}`))
			}))
			t.Cleanup(server.Close)

			var listErr error

			app := &cli.App{
				Name: "test",
				Commands: []*cli.Command{
					{
						Name:  "ls",
						Flags: WithCommonFlags(),
						Action: func(ctx *cli.Context) error {
							client, err := GetClient(ctx)
							if err != nil {
								return errors.WithStack(err)
							}

							_, listErr = client.ListFiles(ctx.Context)

							return nil
						},
					},
				},
			}

			args := append([]string{"test", "ls", "--server", server.URL + "/api/files"}, tc.Args...)

			if err := app.RunContext(context.Background(), args); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.ExpectError, listErr != nil; e != g {
				t.Errorf("listErr: expected error %v, got '%v'", e, listErr)
			}

			if e, g := tc.ExpectedCalls, calls.Load(); e != g {
				t.Errorf("calls: expected %d, got %d", e, g)
			}
		})
	}
}
