package httpapi_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/httpapi"
)

type thing struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestDecodeList(t *testing.T) {
	t.Parallel()

	items, total, err := httpapi.DecodeList[thing]([]byte(`{"count":30,"next":null,"results":[{"id":1}]}`), "areas")
	require.NoError(t, err)
	require.Equal(t, []thing{{ID: 1}}, items)
	require.Equal(t, 30, total)

	items, total, err = httpapi.DecodeList[thing]([]byte(`{"success":true,"areas":[{"id":1},{"id":2}]}`), "areas")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 2, total)

	items, total, err = httpapi.DecodeList[thing]([]byte(` [{"id":5}]`))
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, 5, items[0].ID)

	items, _, err = httpapi.DecodeList[thing]([]byte(`{"success":true}`), "areas")
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)

	_, _, err = httpapi.DecodeList[thing]([]byte(`{"results":"nope"}`))
	require.Error(t, err)
}

func TestDecodeItem(t *testing.T) {
	t.Parallel()

	it, err := httpapi.DecodeItem[thing]([]byte(`{"success":true,"area":{"id":3,"name":"HQ"}}`), "area")
	require.NoError(t, err)
	require.Equal(t, thing{ID: 3, Name: "HQ"}, it)

	it, err = httpapi.DecodeItem[thing]([]byte(`{"id":4,"name":"Kho"}`), "area")
	require.NoError(t, err)
	require.Equal(t, thing{ID: 4, Name: "Kho"}, it)
}
