package mappers

import (
	"strconv"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/domain/absencerequest"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/listing"
)

type Request = absencerequest.Request

// RequestColumns are the list and export columns, in display order.
func RequestColumns() []listing.Column[Request] {
	return []listing.Column[Request]{
		{Key: "id", Title: "ID", Kind: listing.KindNumber, Value: func(r Request) string { return strconv.FormatInt(r.ID, 10) }},
		{Key: "requester_name", Title: "Người gửi", Value: func(r Request) string { return r.RequesterName }},
		{Key: "department_name", Title: "Phòng ban", Value: func(r Request) string { return r.DepartmentName }},
		{Key: "absence_type", Title: "Loại nghỉ", Value: func(r Request) string {
			if r.AbsenceTypeName != "" {
				return r.AbsenceTypeName
			}
			return r.AbsenceType
		}},
		{Key: "start_date", Title: "Từ ngày", Kind: listing.KindDate, Value: func(r Request) string { return r.StartDate }},
		{Key: "end_date", Title: "Đến ngày", Kind: listing.KindDate, Value: func(r Request) string { return r.EndDate }},
		{Key: "total_days", Title: "Số ngày", Kind: listing.KindNumber, Value: func(r Request) string { return r.TotalDays.String() }},
		{Key: "status", Title: "Trạng thái", Value: func(r Request) string { return string(r.Status) }},
		{Key: "approval_level", Title: "Cấp duyệt", Value: func(r Request) string { return string(r.ApprovalLevel) }},
		{Key: "current_approver_name", Title: "Người duyệt", Value: func(r Request) string { return r.CurrentApproverName }},
		{Key: "created_at", Title: "Ngày tạo", Kind: listing.KindDate, Value: func(r Request) string { return r.CreatedAt }},
	}
}

// Filters built from the list view's controls.
type Filters struct {
	Status      string
	AbsenceType string
	Department  string
	Search      string
	From, To    string
}

// Validate rejects date bounds that would otherwise be dropped silently.
func (f Filters) Validate() error {
	if err := listing.CheckDate("from", f.From); err != nil {
		return err
	}
	return listing.CheckDate("to", f.To)
}

func (f Filters) Predicates() map[string]listing.Predicate[Request] {
	from, _ := listing.ParseDate(f.From)
	to, _ := listing.ParseDate(f.To)
	return map[string]listing.Predicate[Request]{
		"status":       listing.FieldEquals(func(r Request) string { return string(r.Status) }, f.Status),
		"absence_type": listing.FieldEquals(func(r Request) string { return r.AbsenceType }, f.AbsenceType),
		"department":   listing.FieldEquals(func(r Request) string { return r.DepartmentName }, f.Department),
		"dates":        listing.DateRange(func(r Request) string { return r.StartDate }, from, to),
		"search": listing.TextSearch(f.Search,
			func(r Request) string { return r.RequesterName },
			func(r Request) string { return r.Reason },
			func(r Request) string { return r.DepartmentName },
		),
	}
}
