package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rajtharani77/BlackBuck-pro/internal/handlers"
)

// dialBoard opens an authenticated board connection and consumes the
// connected hello.
func dialBoard(t *testing.T, srv *httptest.Server, token string, projectID uint) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + fmt.Sprintf("/api/ws/%d", projectID)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	header.Set("Origin", "http://localhost:3000")

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		t.Fatalf("dial board (status %d): %v", status, err)
	}
	t.Cleanup(func() { conn.Close() })

	hello := readBoardEvent(t, conn)
	if hello["type"] != "connected" {
		t.Fatalf("expected connected hello, got %+v", hello)
	}

	return conn
}

func readBoardEvent(t *testing.T, conn *websocket.Conn) map[string]string {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}

	var event map[string]string
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read board event: %v", err)
	}
	return event
}

func TestTaskBoardDeliversRefreshOnTaskMutation(t *testing.T) {
	api := newTestAPI(t)
	_, managerToken := api.register(t, "Mandy", "mandy@example.com", "MANAGER")
	project := api.createProject(t, managerToken, map[string]any{"name": "Alpha"})

	srv := httptest.NewServer(api.router)
	defer srv.Close()

	conn := dialBoard(t, srv, managerToken, project.ID)

	task := api.createTask(t, managerToken, map[string]any{
		"title":     "T",
		"projectId": project.ID,
	})

	event := readBoardEvent(t, conn)
	if event["type"] != "refresh" {
		t.Fatalf("expected refresh after task create, got %+v", event)
	}
	if event["project_id"] != fmt.Sprint(project.ID) {
		t.Errorf("refresh for project %q, want %d", event["project_id"], project.ID)
	}

	if result := updateStatus(t, api, managerToken, task.ID, "DONE"); result.code != http.StatusOK {
		t.Fatalf("status update: %d: %s", result.code, result.body)
	}

	if event := readBoardEvent(t, conn); event["type"] != "refresh" {
		t.Fatalf("expected refresh after status change, got %+v", event)
	}
}

func TestTaskBoardRequiresSession(t *testing.T) {
	api := newTestAPI(t)

	srv := httptest.NewServer(api.router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws/1"

	header := http.Header{}
	header.Set("Origin", "http://localhost:3000")

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err == nil {
		t.Fatal("expected dial without a session to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 handshake response, got %+v", resp)
	}
}

// One subscriber, several simultaneous broadcasters: the per-connection
// write lock must keep every frame intact.
func TestBroadcastRefreshConcurrentWriters(t *testing.T) {
	api := newTestAPI(t)
	_, managerToken := api.register(t, "Mandy", "mandy@example.com", "MANAGER")
	project := api.createProject(t, managerToken, map[string]any{"name": "Alpha"})

	srv := httptest.NewServer(api.router)
	defer srv.Close()

	conn := dialBoard(t, srv, managerToken, project.ID)

	const broadcasters = 4
	projectID := fmt.Sprint(project.ID)

	var wg sync.WaitGroup
	for i := 0; i < broadcasters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handlers.BroadcastRefresh(projectID)
		}()
	}
	wg.Wait()

	for i := 0; i < broadcasters; i++ {
		event := readBoardEvent(t, conn)
		if event["type"] != "refresh" || event["project_id"] != projectID {
			t.Fatalf("frame %d corrupted or misrouted: %+v", i, event)
		}
	}
}
