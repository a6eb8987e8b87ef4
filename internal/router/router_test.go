package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"menu-app/internal/handler"
	"menu-app/internal/middleware"
	"menu-app/internal/model"
	"menu-app/internal/repository"
	"menu-app/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := zerolog.Nop()
	menu := service.NewMenuService(repository.NewMemoryMenuRepository(logger), logger)

	return &testServer{
		t:       t,
		handler: New(handler.NewMenuHandler(menu, logger), testAPIKey, logger),
	}
}

func (s *testServer) do(method, path, body string, authorised bool) *httptest.ResponseRecorder {
	s.t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authorised {
		req.Header.Set("X-API-Key", testAPIKey)
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *testServer) addItem(name, course, price string) model.MenuItem {
	s.t.Helper()

	body := `{"name":"` + name + `","description":"` + name + ` of the day","course":"` + course + `","price":"` + price + `"}`
	w := s.do(http.MethodPost, "/api/menu/items", body, true)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var item model.MenuItem
	require.NoError(s.t, json.NewDecoder(w.Body).Decode(&item))
	return item
}

func (s *testServer) listItems(query string) []model.MenuItem {
	s.t.Helper()

	w := s.do(http.MethodGet, "/api/menu/items"+query, "", false)
	require.Equal(s.t, http.StatusOK, w.Code)

	var items []model.MenuItem
	require.NoError(s.t, json.NewDecoder(w.Body).Decode(&items))
	return items
}

func names(items []model.MenuItem) []string {
	result := make([]string, len(items))
	for i, item := range items {
		result[i] = item.Name
	}
	return result
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_MenuSession(t *testing.T) {
	s := newTestServer(t)

	// A new session starts with an empty menu
	assert.Empty(t, s.listItems(""))

	soup := s.addItem("Soup", "Starters", "5.50")
	s.addItem("Steak", "Mains", "24")
	s.addItem("Salad", "Starters", "6.5")

	assert.Equal(t, "5.50", soup.Price)
	assert.Equal(t, []string{"Soup", "Steak", "Salad"}, names(s.listItems("")))
	assert.Equal(t, []string{"Soup", "Salad"}, names(s.listItems("?course=Starters")))

	w := s.do(http.MethodGet, "/api/menu/stats", "", false)
	require.Equal(t, http.StatusOK, w.Code)

	var stats handler.StatsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, 3, stats.TotalItems)
	require.Len(t, stats.Averages, 4)
	assert.Equal(t, handler.CourseStat{Course: model.CourseStarters, Average: 6, Count: 2, Display: "$6.00"}, stats.Averages[0])
	assert.Equal(t, handler.CourseStat{Course: model.CourseMains, Average: 24, Count: 1, Display: "$24.00"}, stats.Averages[1])
	assert.Equal(t, handler.CourseStat{Course: model.CourseDessert, Average: 0, Count: 0, Display: "N/A"}, stats.Averages[2])
	assert.Equal(t, handler.CourseStat{Course: model.CourseDrinks, Average: 0, Count: 0, Display: "N/A"}, stats.Averages[3])

	// Item details
	w = s.do(http.MethodGet, "/api/menu/items/"+soup.ID, "", false)
	require.Equal(t, http.StatusOK, w.Code)

	// Removing an unknown ID changes nothing
	w = s.do(http.MethodDelete, "/api/menu/items/nonexistent-id", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"nonexistent-id","removed":false}`, w.Body.String())
	assert.Equal(t, []string{"Soup", "Steak", "Salad"}, names(s.listItems("")))

	// Removing an existing item preserves the order of the rest
	w = s.do(http.MethodDelete, "/api/menu/items/"+soup.ID, "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"`+soup.ID+`","removed":true}`, w.Body.String())
	assert.Equal(t, []string{"Steak", "Salad"}, names(s.listItems("")))

	w = s.do(http.MethodGet, "/api/menu/items/"+soup.ID, "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/menu/courses", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":2,"courses":[
		{"course":"Starters","count":1},
		{"course":"Mains","count":1},
		{"course":"Dessert","count":0},
		{"course":"Drinks","count":0}
	]}`, w.Body.String())
}

func TestRouter_RejectsInvalidInput(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name         string
		body         string
		expectedCode string
	}{
		{
			name:         "Price with three decimals",
			body:         `{"name":"Wine","description":"Red","course":"Drinks","price":"9.999"}`,
			expectedCode: model.ErrCodeInvalidPrice,
		},
		{
			name:         "Zero price",
			body:         `{"name":"Wine","description":"Red","course":"Drinks","price":"0"}`,
			expectedCode: model.ErrCodeInvalidPrice,
		},
		{
			name:         "Blank name",
			body:         `{"name":"   ","description":"Red","course":"Drinks","price":"9.99"}`,
			expectedCode: model.ErrCodeMissingField,
		},
		{
			name:         "Unknown course",
			body:         `{"name":"Wine","description":"Red","course":"Cocktails","price":"9.99"}`,
			expectedCode: model.ErrCodeInvalidCourse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/menu/items", tt.body, true)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp model.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.expectedCode, resp.Error)
			assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), resp.CorrelationID)
		})
	}

	assert.Empty(t, s.listItems(""))
}

func TestRouter_MutationsRequireAPIKey(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/menu/items",
		`{"name":"Soup","description":"Hot","course":"Starters","price":"5.50"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodDelete, "/api/menu/items/anything", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Empty(t, s.listItems(""))
}

func TestRouter_Preflight(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodOptions, "/api/menu/items", "", false)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_UnknownRoute(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/unknown", "", false)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
