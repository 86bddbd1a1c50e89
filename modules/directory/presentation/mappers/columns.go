package mappers

import (
	"strconv"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/area"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/location"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/user"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/listing"
)

func id(v int64) string { return strconv.FormatInt(v, 10) }

func active(b bool) string {
	if b {
		return "✓"
	}
	return ""
}

func AreaColumns() []listing.Column[area.Area] {
	return []listing.Column[area.Area]{
		{Key: "id", Title: "ID", Kind: listing.KindNumber, Value: func(a area.Area) string { return id(a.ID) }},
		{Key: "name", Title: "Tên khu vực", Value: func(a area.Area) string { return a.Name }},
		{Key: "latitude", Title: "Vĩ độ", Kind: listing.KindNumber, Value: func(a area.Area) string { return a.Latitude.String() }},
		{Key: "longitude", Title: "Kinh độ", Kind: listing.KindNumber, Value: func(a area.Area) string { return a.Longitude.String() }},
		{Key: "radius", Title: "Bán kính (m)", Kind: listing.KindNumber, Value: func(a area.Area) string { return a.Radius.String() }},
		{Key: "is_active", Title: "Hoạt động", Value: func(a area.Area) string { return active(a.IsActive) }},
	}
}

func LocationColumns() []listing.Column[location.Location] {
	return []listing.Column[location.Location]{
		{Key: "id", Title: "ID", Kind: listing.KindNumber, Value: func(l location.Location) string { return id(l.ID) }},
		{Key: "name", Title: "Tên địa điểm", Value: func(l location.Location) string { return l.Name }},
		{Key: "address", Title: "Địa chỉ", Value: func(l location.Location) string { return l.Address }},
		{Key: "latitude", Title: "Vĩ độ", Kind: listing.KindNumber, Value: func(l location.Location) string { return l.Latitude.String() }},
		{Key: "longitude", Title: "Kinh độ", Kind: listing.KindNumber, Value: func(l location.Location) string { return l.Longitude.String() }},
		{Key: "radius", Title: "Bán kính (m)", Kind: listing.KindNumber, Value: func(l location.Location) string { return l.Radius.String() }},
		{Key: "is_active", Title: "Hoạt động", Value: func(l location.Location) string { return active(l.IsActive) }},
	}
}

func UserColumns() []listing.Column[user.User] {
	return []listing.Column[user.User]{
		{Key: "id", Title: "ID", Kind: listing.KindNumber, Value: func(u user.User) string { return id(u.ID) }},
		{Key: "username", Title: "Tên đăng nhập", Value: func(u user.User) string { return u.Username }},
		{Key: "full_name", Title: "Họ tên", Value: func(u user.User) string { return u.DisplayName() }},
		{Key: "email", Title: "Email", Value: func(u user.User) string { return u.Email }},
		{Key: "role", Title: "Vai trò", Value: func(u user.User) string { return u.Role }},
		{Key: "department_name", Title: "Phòng ban", Value: func(u user.User) string { return u.DepartmentName }},
		{Key: "date_joined", Title: "Ngày tham gia", Kind: listing.KindDate, Value: func(u user.User) string { return u.DateJoined }},
		{Key: "is_active", Title: "Hoạt động", Value: func(u user.User) string { return active(u.IsActive) }},
	}
}

// SearchFields are the text fields the free-text filter looks at.
func AreaSearchFields() []func(area.Area) string {
	return []func(area.Area) string{
		func(a area.Area) string { return a.Name },
		func(a area.Area) string { return a.Description },
	}
}

func LocationSearchFields() []func(location.Location) string {
	return []func(location.Location) string{
		func(l location.Location) string { return l.Name },
		func(l location.Location) string { return l.Address },
	}
}

func UserSearchFields() []func(user.User) string {
	return []func(user.User) string{
		func(u user.User) string { return u.Username },
		func(u user.User) string { return u.DisplayName() },
		func(u user.User) string { return u.Email },
		func(u user.User) string { return u.DepartmentName },
	}
}
