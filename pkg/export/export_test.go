package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/export"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/listing"
)

type item struct {
	Name string
	Note string
}

var cols = []listing.Column[item]{
	{Key: "name", Title: "Họ tên", Value: func(i item) string { return i.Name }},
	{Key: "note", Title: "Ghi chú", Value: func(i item) string { return i.Note }},
}

func TestWriteCSV_QuotingRoundTrips(t *testing.T) {
	t.Parallel()

	items := []item{
		{Name: "Nguyễn, Văn A", Note: `nói "xin chào"`},
		{Name: "B", Note: "dòng 1\ndòng 2"},
		{Name: "C", Note: "plain"},
		{Name: "D", Note: "dòng 1\r\ndòng 2"},
		{Name: "E\r", Note: ""},
	}
	header, rows := export.Rows(items, cols)

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, header, rows))
	raw := buf.Bytes()
	require.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3])
	require.Contains(t, string(raw), `"Nguyễn, Văn A","nói ""xin chào"""`)
	require.Contains(t, string(raw), "\"dòng 1\ndòng 2\"")
	require.Contains(t, string(raw), "\"dòng 1\r\ndòng 2\"")

	got, err := export.ReadCSV(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, append([][]string{header}, rows...), got)
}

func TestReadCSV_CRLFRecordsAndErrors(t *testing.T) {
	t.Parallel()

	got, err := export.ReadCSV(bytes.NewReader([]byte("\xEF\xBB\xBFa,b\r\n\"x\r\ny\",\r\n\r\nlast,\"\"\"q\"\"\"")))
	require.NoError(t, err)
	require.Equal(t, [][]string{{"a", "b"}, {"x\r\ny", ""}, {"last", `"q"`}}, got)

	_, err = export.ReadCSV(bytes.NewReader([]byte("a,\"open\n")))
	require.Error(t, err)
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	header, rows := export.Rows([]item{{Name: "A", Note: "x,y"}}, cols)
	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, "Đơn nghỉ phép", header, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	got, err := f.GetRows("Đơn nghỉ phép")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"Họ tên", "Ghi chú"}, {"A", "x,y"}}, got)
}

func TestFileNameAndFormat(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 7, 15, 0, 0, 0, time.UTC)
	require.Equal(t, "absence_requests_20240307.csv", export.FileName("absence_requests", export.CSV, now))
	require.Equal(t, "users_20240307.xlsx", export.FileName("users", export.XLSX, now))

	f, err := export.ParseFormat("XLSX")
	require.NoError(t, err)
	require.Equal(t, export.XLSX, f)
	f, err = export.ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, export.CSV, f)
	_, err = export.ParseFormat("pdf")
	require.Error(t, err)
}
