package api_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/notifications/infrastructure/api"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/portal"
)

func serve(t *testing.T, listBody, countBody string) *api.NotificationRepository {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/notifications/api/", func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "1", req.URL.Query().Get("page"))
		require.Equal(t, "20", req.URL.Query().Get("page_size"))
		_, _ = io.WriteString(w, listBody)
	})
	r.HandleFunc("/notifications/api/unread-count/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, countBody)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	c, err := portal.New(portal.Options{BaseURL: srv.URL})
	require.NoError(t, err)
	return api.NewNotificationRepository(c)
}

func TestList_AcceptsAllShapes(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		body  string
		n     int
		total int
	}{
		"paginated":  {`{"count":42,"results":[{"id":1,"title":"a"},{"id":2,"title":"b"}]}`, 2, 42},
		"enveloped":  {`{"success":true,"notifications":[{"id":1,"is_read":true}]}`, 1, 1},
		"bare array": {`[{"id":1},{"id":2},{"id":3}]`, 3, 3},
		"empty":      {`{"success":true}`, 0, 0},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			repo := serve(t, tc.body, `{}`)
			items, total, err := repo.List(context.Background(), 1, 20)
			require.NoError(t, err)
			require.Len(t, items, tc.n)
			require.Equal(t, tc.total, total)
		})
	}
}

func TestUnreadCount_Shapes(t *testing.T) {
	t.Parallel()

	n, err := serve(t, `[]`, `{"success":true,"unread_count":7}`).UnreadCount(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, n)

	n, err = serve(t, `[]`, `{"count":3}`).UnreadCount(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, n)
}
