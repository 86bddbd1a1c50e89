package checkin_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/domain/checkin"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

func TestCheckin_AcceptsBothGeofenceNames(t *testing.T) {
	t.Parallel()

	var fromArea, fromLocation checkin.Checkin
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"area_id":4,"area_name":"Văn phòng","latitude":"21.03"}`), &fromArea))
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"location_id":4,"location_name":"Văn phòng","latitude":21.03}`), &fromLocation))

	for _, c := range []checkin.Checkin{fromArea, fromLocation} {
		require.NotNil(t, c.AreaID)
		require.Equal(t, int64(4), *c.AreaID)
		require.Equal(t, "Văn phòng", c.AreaName)
		require.InDelta(t, 21.03, float64(c.Latitude), 1e-9)
	}
}

func TestCheckin_AreaWinsOverLocation(t *testing.T) {
	t.Parallel()

	var c checkin.Checkin
	require.NoError(t, json.Unmarshal([]byte(`{"area_id":1,"area_name":"A","location_id":2,"location_name":"B","user_full_name":"Nguyễn Văn An"}`), &c))
	require.Equal(t, int64(1), *c.AreaID)
	require.Equal(t, "A", c.AreaName)
	require.Equal(t, "Nguyễn Văn An", c.UserName)
}

func TestParseType(t *testing.T) {
	t.Parallel()

	typ, err := checkin.ParseType("")
	require.NoError(t, err)
	require.Equal(t, checkin.TypeCheckIn, typ)

	typ, err = checkin.ParseType("check_out")
	require.NoError(t, err)
	require.Equal(t, checkin.TypeCheckOut, typ)

	_, err = checkin.ParseType("lunch")
	require.True(t, serrors.IsValidation(err))
}
