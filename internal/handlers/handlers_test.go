package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"osrsgoals/internal/api"
	"osrsgoals/internal/repository"
	"osrsgoals/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memStore struct {
	mu    sync.Mutex
	order []string
	goals map[string]repository.Goal
}

func newMemStore() *memStore {
	return &memStore{goals: map[string]repository.Goal{}}
}

func (m *memStore) Create(ctx context.Context, g *repository.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order = append(m.order, g.ID)
	m.goals[g.ID] = *g
	return nil
}

func (m *memStore) Get(ctx context.Context, id string) (*repository.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return nil, repository.ErrGoalNotFound
	}
	return &g, nil
}

func (m *memStore) List(ctx context.Context) ([]repository.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repository.Goal
	for _, id := range m.order {
		if g, ok := m.goals[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *memStore) Save(ctx context.Context, g *repository.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[g.ID] = *g
	return nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[id]; !ok {
		return repository.ErrGoalNotFound
	}
	delete(m.goals, id)
	return nil
}

// newTestRouter wires the real client against a fake upstream.
func newTestRouter(t *testing.T, upstream http.HandlerFunc, withGoals bool) *gin.Engine {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	client := api.NewOSRSClient(srv.URL, srv.URL, 0)
	var goals *service.GoalService
	if withGoals {
		goals = service.NewGoalService(newMemStore(), client)
	}
	return NewRouter(service.NewLookupService(client), goals)
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, http.NotFound, false)
	rec := do(t, r, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("health = %d %s", rec.Code, rec.Body.String())
	}
}

func TestGetPlayerSkills(t *testing.T) {
	var player string
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		player = req.URL.Query().Get("player")
		w.Write([]byte(`{"skills": [{"name": "Overall", "level": 32, "xp": 1200}, {"name": "Attack", "level": 3, "xp": 200}]}`))
	}, false)

	rec := do(t, r, http.MethodGet, "/api/players/Iron%20Man/skills", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if player != "Iron Man" {
		t.Errorf("upstream saw player %q", player)
	}

	var skills []api.Skill
	decodeBody(t, rec, &skills)
	if len(skills) != 2 || skills[0].Name != "Overall" || skills[1].XP != 200 {
		t.Errorf("skills = %+v", skills)
	}
}

func TestSearchItems(t *testing.T) {
	var alpha string
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		alpha = req.URL.Query().Get("alpha")
		w.Write([]byte(`{"items": [{"icon": "i", "icon_large": "il", "id": 4151, "type": "Default", "typeIcon": "ti", "name": "Abyssal whip", "description": "A weapon from the abyss.", "members": "true"}]}`))
	}, false)

	rec := do(t, r, http.MethodGet, "/api/items?letter=A", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if alpha != "a" {
		t.Errorf("upstream alpha = %q, want a", alpha)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"type_icon":"ti"`) || strings.Contains(body, "typeIcon") {
		t.Errorf("body = %s", body)
	}

	rec = do(t, r, http.MethodGet, "/api/items", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing letter status = %d", rec.Code)
	}
}

func TestUpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   int
		kind   string
	}{
		{"malformed body", http.StatusOK, "{nope", http.StatusBadGateway, api.KindParse},
		{"unknown player", http.StatusNotFound, "", http.StatusNotFound, api.KindFetch},
		{"upstream down", http.StatusBadGateway, "", http.StatusBadGateway, api.KindFetch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, false)

			rec := do(t, r, http.MethodGet, "/api/players/zezima/skills", nil)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}

			var resp map[string]string
			decodeBody(t, rec, &resp)
			if resp["kind"] != tt.kind || resp["error"] == "" {
				t.Errorf("body = %v", resp)
			}
		})
	}
}

func TestGoalRoutesDisabledWithoutStore(t *testing.T) {
	r := newTestRouter(t, http.NotFound, false)
	if rec := do(t, r, http.MethodGet, "/api/goals", nil); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGoalLifecycle(t *testing.T) {
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"skills": [{"name": "Slayer", "level": 70, "xp": 737627}]}`))
	}, true)

	rec := do(t, r, http.MethodPost, "/api/goals/skill", map[string]any{
		"skill_name": "slayer", "target_level": 85, "player_name": "zezima",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create skill = %d %s", rec.Code, rec.Body.String())
	}
	var skill repository.Goal
	decodeBody(t, rec, &skill)
	if skill.SkillName != "Slayer" || skill.CurrentLevel != 70 {
		t.Errorf("skill goal = %+v", skill)
	}

	rec = do(t, r, http.MethodPost, "/api/goals/drop", map[string]any{
		"item_name":    "Abyssal whip",
		"target_drops": 1,
		"dependencies": []map[string]string{{"goal_id": skill.ID, "goal_type": "skill"}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create drop = %d %s", rec.Code, rec.Body.String())
	}
	var drop repository.Goal
	decodeBody(t, rec, &drop)

	rec = do(t, r, http.MethodGet, "/api/goals", nil)
	var views []service.GoalView
	decodeBody(t, rec, &views)
	if len(views) != 2 || !views[1].IsBlocked || views[0].Label != "85 Slayer" {
		t.Errorf("views = %+v", views)
	}

	rec = do(t, r, http.MethodPost, "/api/goals/"+drop.ID+"/increment", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("increment = %d %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &drop)
	if drop.CurrentDrops != 1 {
		t.Errorf("drops = %d", drop.CurrentDrops)
	}

	if rec = do(t, r, http.MethodPost, "/api/goals/"+drop.ID+"/toggle", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("toggle on drop goal = %d", rec.Code)
	}

	rec = do(t, r, http.MethodPost, "/api/goals/sync?player=zezima", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("sync = %d %s", rec.Code, rec.Body.String())
	}

	if rec = do(t, r, http.MethodDelete, "/api/goals/"+drop.ID, nil); rec.Code != http.StatusNoContent {
		t.Errorf("delete = %d", rec.Code)
	}
	if rec = do(t, r, http.MethodDelete, "/api/goals/"+drop.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("second delete = %d", rec.Code)
	}

	if rec = do(t, r, http.MethodPost, "/api/goals/skill", map[string]any{"skill_name": "slayer", "target_level": 120}); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid level = %d", rec.Code)
	}
	if rec = do(t, r, http.MethodPost, "/api/goals/other", "not an object"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad json = %d", rec.Code)
	}
}

func TestWithCORS(t *testing.T) {
	r := newTestRouter(t, http.NotFound, false)
	h := WithCORS(r, []string{"tauri://localhost"})

	req := httptest.NewRequest(http.MethodOptions, "/api/items?letter=a", nil)
	req.Header.Set("Origin", "tauri://localhost")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "tauri://localhost" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
