package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/area"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/paging"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/user"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/infrastructure/api"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/portal"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

func newClient(t *testing.T, h http.Handler) *portal.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := portal.New(portal.Options{BaseURL: srv.URL, CSRFToken: "tok", SessionID: "sess"})
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestResource_ListShapes(t *testing.T) {
	t.Parallel()

	shapes := map[string]any{
		"paginated": map[string]any{"count": 2, "results": []map[string]any{{"id": 1, "name": "A"}, {"id": 2, "name": "B"}}},
		"keyed":     map[string]any{"success": true, "areas": []map[string]any{{"id": 1, "name": "A"}, {"id": 2, "name": "B"}}},
		"bare":      []map[string]any{{"id": 1, "name": "A"}, {"id": 2, "name": "B"}},
	}
	for name, body := range shapes {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			r := mux.NewRouter()
			r.HandleFunc(api.AreasPath, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, body)
			}).Methods(http.MethodGet)
			res := api.NewResource[area.Area](newClient(t, r), api.AreasPath, "areas", "area")

			items, total, err := res.List(context.Background(), paging.Params{})
			require.NoError(t, err)
			require.Equal(t, 2, total)
			require.Len(t, items, 2)
			require.Equal(t, "B", items[1].Name)
		})
	}
}

func TestResource_AllFollowsPages(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var pages []string
	r := mux.NewRouter()
	r.HandleFunc(api.UsersPath, func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		pages = append(pages, req.URL.Query().Get("page"))
		mu.Unlock()
		page, _ := strconv.Atoi(req.URL.Query().Get("page"))
		results := []map[string]any{}
		for i := 0; i < 2 && (page-1)*2+i < 5; i++ {
			results = append(results, map[string]any{"id": (page-1)*2 + i + 1, "username": "u"})
		}
		writeJSON(w, http.StatusOK, map[string]any{"count": 5, "results": results})
	})
	res := api.NewResource[user.User](newClient(t, r), api.UsersPath, "users", "user")

	all, err := res.All(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, all, 5)
	require.Equal(t, int64(5), all[4].ID)
	require.Equal(t, []string{"1", "2", "3"}, pages)
}

func TestResource_CRUD(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var calls []string
	record := func(req *http.Request) map[string]any {
		mu.Lock()
		calls = append(calls, req.Method+" "+req.URL.Path+" "+req.Header.Get(portal.CSRFHeader))
		mu.Unlock()
		var body map[string]any
		if req.Body != nil {
			data, _ := io.ReadAll(req.Body)
			_ = json.Unmarshal(data, &body)
		}
		return body
	}
	r := mux.NewRouter()
	r.HandleFunc(api.AreasPath, func(w http.ResponseWriter, req *http.Request) {
		body := record(req)
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "area": map[string]any{"id": 9, "name": body["name"]}})
	}).Methods(http.MethodPost)
	r.HandleFunc(api.AreasPath+"{id:[0-9]+}/", func(w http.ResponseWriter, req *http.Request) {
		body := record(req)
		switch req.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]any{"id": 9, "name": "Kho", "radius": "150.5"})
		case http.MethodPut:
			writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"id": 9, "name": body["name"]}})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	res := api.NewResource[area.Area](newClient(t, r), api.AreasPath, "areas", "area")
	ctx := context.Background()

	created, err := res.Create(ctx, map[string]any{"name": "Kho"})
	require.NoError(t, err)
	require.Equal(t, int64(9), created.ID)
	require.Equal(t, "Kho", created.Name)

	got, err := res.Get(ctx, 9)
	require.NoError(t, err)
	require.InDelta(t, 150.5, float64(got.Radius), 1e-9)

	updated, err := res.Update(ctx, 9, map[string]any{"name": "Kho 2"})
	require.NoError(t, err)
	require.Equal(t, "Kho 2", updated.Name)

	require.NoError(t, res.Delete(ctx, 9))

	require.Equal(t, []string{
		"POST /area/api/areas/ tok",
		"GET /area/api/areas/9/ ",
		"PUT /area/api/areas/9/ tok",
		"DELETE /area/api/areas/9/ tok",
	}, calls)
}

func TestResource_BusinessError(t *testing.T) {
	t.Parallel()

	r := mux.NewRouter()
	r.HandleFunc(api.LocationsPath+"{id:[0-9]+}/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Địa điểm đang được sử dụng"})
	})
	res := api.NewResource[area.Area](newClient(t, r), api.LocationsPath, "locations", "location")

	err := res.Delete(context.Background(), 3)
	require.Error(t, err)
	require.True(t, serrors.IsBusiness(err))
	be, _ := serrors.As(err)
	require.Equal(t, "Địa điểm đang được sử dụng", be.Message)
}
