package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/barcamp-grid/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const localConfig = `backend = "local"

[matrix]
room_id = "!lobby:localhost"
user_id = "@alice:localhost"
`

type gridJSON struct {
	EventID  string `json:"event_id"`
	StateKey string `json:"state_key"`
	Content  struct {
		Tracks []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"tracks"`
		TimeSlots []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"timeSlots"`
		Sessions []struct {
			TopicID string `json:"topicId"`
		} `json:"sessions"`
		ParkingLot []struct {
			TopicID string `json:"topicId"`
		} `json:"parkingLot"`
		ConsumedTopicSubmissions []string `json:"consumedTopicSubmissions"`
		TopicStartEventID        string   `json:"topicStartEventId"`
	} `json:"content"`
}

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestGridShowWithoutGrid(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home, localConfig))

	_, _, err := executeCLI(t, home, "grid", "show")
	require.EqualError(t, err, "No session grid found")
}

func TestMutationWithoutGrid(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home, localConfig))

	_, _, err := executeCLI(t, home, "track", "add")
	require.EqualError(t, err, "No session grid found")
}

func TestUnknownBackendIsRejected(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BCG_BACKEND", "carrier-pigeon")

	_, _, err := executeCLI(t, home, "grid", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown backend "carrier-pigeon"`)
}

func TestGridLifecycleOnLocalBackend(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home, localConfig))

	stdout, _, err := executeCLI(t, home, "grid", "setup")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Session Grid")
	assert.Contains(t, stdout, "Track 1")
	assert.Contains(t, stdout, "tracks: 1  time slots: 1  sessions: 0  parked: 0")

	grid := showGridJSON(t, home)
	assert.Equal(t, "!lobby:localhost", grid.StateKey)
	assert.NotEmpty(t, grid.Content.TopicStartEventID)
	require.Len(t, grid.Content.Tracks, 1)
	require.Len(t, grid.Content.TimeSlots, 1)
	trackID := grid.Content.Tracks[0].ID
	slotID := grid.Content.TimeSlots[0].ID

	stdout, _, err = executeCLI(t, home, "track", "rename", trackID, "Main Hall")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Main Hall")

	_, _, err = executeCLI(t, home, "track", "rename", trackID, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid session grid")
	assert.Equal(t, "Main Hall", showGridJSON(t, home).Content.Tracks[0].Name)

	_, _, err = executeCLI(t, home, "track", "delete", trackID)
	require.EqualError(t, err, "Can not delete last track")

	_, _, err = executeCLI(t, home, "slot", "delete", slotID)
	require.EqualError(t, err, "Can not delete last time slot")

	_, _, err = executeCLI(t, home, "slot", "duration", slotID, "0")
	require.EqualError(t, err, "Duration must be positive")

	_, _, err = executeCLI(t, home, "slot", "add", "--kind", "lunch")
	require.EqualError(t, err, "Unknown time slot type: lunch")

	stdout, _, err = executeCLI(t, home, "slot", "add", "--kind", "common-event")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Break (coffee)")

	grid = showGridJSON(t, home)
	require.Len(t, grid.Content.TimeSlots, 2)
	breakID := grid.Content.TimeSlots[1].ID

	stdout, _, err = executeCLI(t, home, "slot", "event", breakID, "--summary", "Lunch", "--icon", "pizza-slice")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Lunch (pizza-slice)")

	_, _, err = executeCLI(t, home, "slot", "start", breakID, "09:00")
	require.EqualError(t, err, "Only start time of first timeslot can be changed.")

	stdout, _, err = executeCLI(t, home, "slot", "move", breakID, "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Lunch (pizza-slice)")

	grid = showGridJSON(t, home)
	assert.Equal(t, breakID, grid.Content.TimeSlots[0].ID)
}

func TestTopicFlowOnLocalBackend(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home, localConfig))

	_, _, err := executeCLI(t, home, "grid", "setup")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "topic", "submit", "--title", "Go at scale")
	require.EqualError(t, err, "Title and description are required")

	stdout, _, err := executeCLI(t, home, "topic", "submit", "--title", "Go at scale", "--description", "Running Go services")
	require.NoError(t, err)
	assert.Contains(t, stdout, `Submitted "Go at scale" as $`)

	stdout, _, err = executeCLI(t, home, "topic", "queue")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Go at scale (@alice:localhost")

	stdout, _, err = executeCLI(t, home, "topic", "next")
	require.NoError(t, err)
	assert.Contains(t, stdout, "parked: 1")
	assert.Contains(t, stdout, "Go at scale")

	stdout, _, err = executeCLI(t, home, "topic", "queue")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No pending topic submissions.")

	_, _, err = executeCLI(t, home, "topic", "next")
	require.EqualError(t, err, "No next topic submission")

	grid := showGridJSON(t, home)
	require.Len(t, grid.Content.ParkingLot, 1)
	require.Len(t, grid.Content.ConsumedTopicSubmissions, 1)
	topicID := grid.Content.ParkingLot[0].TopicID

	stdout, _, err = executeCLI(t, home, "topic", "move", topicID,
		"--track", grid.Content.Tracks[0].ID,
		"--slot", grid.Content.TimeSlots[0].ID,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "sessions: 1  parked: 0")

	stdout, _, err = executeCLI(t, home, "topic", "pin", topicID)
	require.NoError(t, err)
	assert.Contains(t, stdout, "pinned: true")

	stdout, _, err = executeCLI(t, home, "topic", "edit", topicID, "--title", "Go at huge scale")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Go at huge scale")

	stdout, _, err = executeCLI(t, home, "topic", "show", topicID)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Go at huge scale")
	assert.Contains(t, stdout, "authors: @alice:localhost")
	assert.Contains(t, stdout, "Running Go services")

	_, _, err = executeCLI(t, home, "topic", "edit", topicID, "--description", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid topic")

	stdout, _, err = executeCLI(t, home, "topic", "link", topicID, "!session:localhost")
	require.NoError(t, err)
	assert.Equal(t, "Linked !session:localhost to topic "+topicID+"\n", stdout)

	stdout, _, err = executeCLI(t, home, "room", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No unassigned rooms.")

	_, _, err = executeCLI(t, home, "room", "suggest")
	require.EqualError(t, err, "Could not update space child: No space child event found")

	stdout, _, err = executeCLI(t, home, "topic", "park", topicID, "--index", "5")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sessions: 0  parked: 1")

	stdout, _, err = executeCLI(t, home, "topic", "delete", topicID)
	require.NoError(t, err)
	assert.Contains(t, stdout, "sessions: 0  parked: 0")

	_, _, err = executeCLI(t, home, "topic", "show", "missing")
	require.EqualError(t, err, "Could not load topic missing")
}

func TestGridWatchPrintsCurrentGridUntilTimeout(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home, localConfig))

	_, _, err := executeCLI(t, home, "grid", "setup")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "grid", "watch", "--timeout", "50ms")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Session Grid")
}

func TestLoginStoresTokenAndForgetRemovesIt(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BCG_SECRETS_STORE", "file")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_matrix/client/v3/login", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hunter2", body["password"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user_id":"@alice:example.org","access_token":"syt_token","device_id":"BCGDEV"}`))
	}))
	t.Cleanup(server.Close)

	passwordFile := filepath.Join(home, "password")
	require.NoError(t, os.WriteFile(passwordFile, []byte("hunter2\n"), 0o600))

	stdout, _, err := executeCLI(t, home, "login", "--homeserver", server.URL, "--user", "alice", "--password-file", passwordFile)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged in as @alice:example.org (device BCGDEV)")
	assert.Contains(t, stdout, `user_id = "@alice:example.org"`)

	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)
	secretPath := filepath.Join(home, ".config", "barcamp", "secrets", "credentials.toml")
	data, err := os.ReadFile(secretPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "syt_token")
	assert.Contains(t, string(data), "barcamp/matrix/"+parsed.Host+"/@alice:example.org")

	t.Setenv("BCG_MATRIX_HOMESERVER", server.URL)
	t.Setenv("BCG_MATRIX_USER_ID", "@alice:example.org")

	stdout, _, err = executeCLI(t, home, "login", "forget")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Forgot access token of @alice:example.org")
	assert.NoFileExists(t, secretPath)
}

func TestMatrixBackendRequiresLogin(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BCG_SECRETS_STORE", "file")
	t.Setenv("BCG_BACKEND", "matrix")
	t.Setenv("BCG_MATRIX_HOMESERVER", "https://matrix.example.org")
	t.Setenv("BCG_MATRIX_USER_ID", "@alice:example.org")
	t.Setenv("BCG_MATRIX_ROOM_ID", "!lobby:example.org")

	_, _, err := executeCLI(t, home, "grid", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
	assert.Contains(t, err.Error(), "run bcg login")
}

func TestMatrixBackendRequiresRoom(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BCG_BACKEND", "matrix")
	t.Setenv("BCG_MATRIX_HOMESERVER", "https://matrix.example.org")
	t.Setenv("BCG_MATRIX_USER_ID", "@alice:example.org")

	_, _, err := executeCLI(t, home, "grid", "show")
	require.EqualError(t, err, "matrix.room_id is required for the matrix backend")
}

func showGridJSON(t *testing.T, home string) gridJSON {
	t.Helper()

	stdout, _, err := executeCLI(t, home, "grid", "show", "--json")
	require.NoError(t, err)

	var grid gridJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &grid))
	return grid
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfigFixture(home, config string) error {
	configDir := filepath.Join(home, ".config", "barcamp")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o644)
}
