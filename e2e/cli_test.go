package e2e_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesafacil/reservas/internal/api"
	"github.com/mesafacil/reservas/internal/factory"
	"github.com/mesafacil/reservas/internal/services/auth"
	"github.com/mesafacil/reservas/internal/testutil"
	"github.com/mesafacil/reservas/internal/web"
)

const (
	adminUsername = "admin"
	adminPassword = "admin123"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "reservas-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/reservas")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	// Keep the developer's token out of the test
	cmd.Env = append(os.Environ(), "RESERVAS_TOKEN=")
	output, err := cmd.Output()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Real clock and file storage, as the server binary uses
	app, err := factory.New(factory.Config{
		AuthConfig:  auth.Config{Secret: "e2e-secret", TokenDuration: time.Hour},
		Logger:      logger,
		StorageType: factory.StorageTypeFile,
		DataDir:     t.TempDir(),
	})
	require.NoError(t, err)

	_, err = app.AuthService.EnsureDefaultAdmin(context.Background(), adminUsername, adminPassword)
	require.NoError(t, err)

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:                logger,
		Clock:                 app.Clock,
		ReservationController: app.ReservationController,
		ReportService:         app.ReportService,
		AuthService:           app.AuthService,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:                logger,
		AuthService:           app.AuthService,
		ReportService:         app.ReportService,
		ReservationController: app.ReservationController,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type reservationResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	TaxID     string `json:"taxId"`
	PartySize int    `json:"partySize"`
	Date      string `json:"date"`
	DateISO   string `json:"dateISO"`
}

type verifyResponse struct {
	HasActive   bool                 `json:"hasActive"`
	Reservation *reservationResponse `json:"reservation"`
}

type availabilityResponse struct {
	DateISO   string `json:"dateISO"`
	Existing  int    `json:"existingReservations"`
	Remaining int    `json:"remaining"`
	Available bool   `json:"available"`
}

type loginResponse struct {
	Token string `json:"token"`
	Admin struct {
		Username string `json:"username"`
	} `json:"admin"`
}

type statisticsResponse struct {
	TotalActive int `json:"totalReservations"`
}

type listResponse struct {
	Total        int                   `json:"total"`
	Reservations []reservationResponse `json:"reservations"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_ReservationFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	date := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	taxID := testutil.ValidCPF(1)

	// Book
	output, err := cli.run("reservation", "create",
		"--name", "Maria Silva",
		"--cpf", taxID,
		"--phone", "11987654321",
		"--party-size", "4",
		"--date", date,
	)
	require.NoError(t, err, "output: %s", output)

	var created reservationResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	assert.Equal(t, "Maria Silva", created.Name)
	assert.Equal(t, date, created.DateISO)
	assert.Equal(t, 4, created.PartySize)

	// Verify
	output, err = cli.run("reservation", "verify", taxID)
	require.NoError(t, err, "output: %s", output)

	var verify verifyResponse
	require.NoError(t, json.Unmarshal([]byte(output), &verify))
	assert.True(t, verify.HasActive)
	require.NotNil(t, verify.Reservation)
	assert.Equal(t, created.ID, verify.Reservation.ID)

	// A second booking for the same CPF is rejected
	_, err = cli.run("reservation", "create",
		"--name", "Maria Silva",
		"--cpf", taxID,
		"--phone", "11987654321",
		"--date", date,
	)
	assert.Error(t, err)

	// Availability reflects the booking
	output, err = cli.run("reservation", "availability", "--date", date)
	require.NoError(t, err, "output: %s", output)

	var avail availabilityResponse
	require.NoError(t, json.Unmarshal([]byte(output), &avail))
	assert.Equal(t, 1, avail.Existing)
	assert.Equal(t, 4, avail.Remaining)
	assert.True(t, avail.Available)
}

func TestCLI_AdminFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	for i := 1; i <= 2; i++ {
		output, err := cli.run("reservation", "create",
			"--name", "Cliente Teste",
			"--cpf", testutil.ValidCPF(i),
			"--phone", "1133334444",
			"--date", date,
		)
		require.NoError(t, err, "output: %s", output)
	}

	// Admin routes need a token
	_, err := cli.run("admin", "statistics")
	assert.Error(t, err)

	// Login saves the token to the token file
	output, err := cli.run("admin", "login", "--username", adminUsername, "--password", adminPassword)
	require.NoError(t, err, "output: %s", output)

	var login loginResponse
	require.NoError(t, json.Unmarshal([]byte(output), &login))
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, adminUsername, login.Admin.Username)

	output, err = cli.run("admin", "statistics")
	require.NoError(t, err, "output: %s", output)

	var stats statisticsResponse
	require.NoError(t, json.Unmarshal([]byte(output), &stats))
	assert.Equal(t, 2, stats.TotalActive)

	output, err = cli.run("admin", "reservations", "--date", date)
	require.NoError(t, err, "output: %s", output)

	var list listResponse
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	assert.Equal(t, 2, list.Total)
	assert.Len(t, list.Reservations, 2)
}

func TestCLI_CPFHelpers(t *testing.T) {
	cli := newCLIRunner(t, "http://127.0.0.1:1")

	output, err := cli.run("cpf", "generate", "--count", "3")
	require.NoError(t, err, "output: %s", output)

	var generated struct {
		CPFs []string `json:"cpfs"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &generated))
	require.Len(t, generated.CPFs, 3)

	for _, c := range generated.CPFs {
		_, err := cli.run("cpf", "check", c)
		assert.NoError(t, err, "generated CPF %s should be valid", c)
	}

	_, err = cli.run("cpf", "check", "123.456.789-00")
	assert.Error(t, err)
}
