package mappers

import (
	"strconv"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/domain/checkin"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/listing"
)

type Checkin = checkin.Checkin

func CheckinColumns() []listing.Column[Checkin] {
	return []listing.Column[Checkin]{
		{Key: "id", Title: "ID", Kind: listing.KindNumber, Value: func(c Checkin) string { return strconv.FormatInt(c.ID, 10) }},
		{Key: "user_name", Title: "Nhân viên", Value: func(c Checkin) string { return c.UserName }},
		{Key: "checkin_type", Title: "Loại", Value: func(c Checkin) string { return string(c.Type) }},
		{Key: "area_name", Title: "Khu vực", Value: func(c Checkin) string { return c.AreaName }},
		{Key: "latitude", Title: "Vĩ độ", Kind: listing.KindNumber, Value: func(c Checkin) string { return c.Latitude.String() }},
		{Key: "longitude", Title: "Kinh độ", Kind: listing.KindNumber, Value: func(c Checkin) string { return c.Longitude.String() }},
		{Key: "distance", Title: "Khoảng cách (m)", Kind: listing.KindNumber, Value: func(c Checkin) string { return c.Distance.String() }},
		{Key: "status", Title: "Trạng thái", Value: func(c Checkin) string { return c.Status }},
		{Key: "note", Title: "Ghi chú", Value: func(c Checkin) string { return c.Note }},
		{Key: "created_at", Title: "Thời gian", Kind: listing.KindDate, Value: func(c Checkin) string { return c.CreatedAt }},
	}
}

type Filters struct {
	Type     string
	Area     string
	Search   string
	From, To string
}

// Validate rejects date bounds that would otherwise be dropped silently.
func (f Filters) Validate() error {
	if err := listing.CheckDate("from", f.From); err != nil {
		return err
	}
	return listing.CheckDate("to", f.To)
}

func (f Filters) Predicates() map[string]listing.Predicate[Checkin] {
	from, _ := listing.ParseDate(f.From)
	to, _ := listing.ParseDate(f.To)
	return map[string]listing.Predicate[Checkin]{
		"type":  listing.FieldEquals(func(c Checkin) string { return string(c.Type) }, f.Type),
		"area":  listing.FieldEquals(func(c Checkin) string { return c.AreaName }, f.Area),
		"dates": listing.DateRange(func(c Checkin) string { return c.CreatedAt }, from, to),
		"search": listing.TextSearch(f.Search,
			func(c Checkin) string { return c.UserName },
			func(c Checkin) string { return c.Note },
			func(c Checkin) string { return c.AreaName },
		),
	}
}
