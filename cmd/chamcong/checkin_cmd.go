package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/domain/capture"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/domain/checkin"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/infrastructure/device"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/presentation/mappers"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/presentation/views"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/services"
)

type submitFlags struct {
	front, back string
	facing      string
	lat, lng    float64
	accuracy    float64
	typ         string
	note        string
	areaID      int64
}

func newCheckinCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record a check-in with a photo and a GPS fix",
	}
	cmd.AddCommand(newCheckinSubmitCmd(rt))
	return cmd
}

func newCheckinSubmitCmd(rt *runtime) *cobra.Command {
	var f submitFlags
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Capture a photo from an image file and submit the check-in",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc := rt.checkins()

			var locator device.StaticLocator
			if cmd.Flags().Changed("lat") {
				locator.Latitude = float64Ptr(f.lat)
			}
			if cmd.Flags().Changed("lng") {
				locator.Longitude = float64Ptr(f.lng)
			}
			locator.Accuracy = f.accuracy

			facing := capture.Facing(f.facing)
			if facing != capture.FacingUser && facing != capture.FacingEnvironment {
				return withCode(exitUsage, fmt.Errorf("invalid --facing %q (expected user|environment)", f.facing))
			}

			conf := rt.conf.Checkin
			flow := capture.NewFlow(
				device.NewFileCamera(f.front, f.back, conf.MaxPhotoSize),
				locator,
				capture.Options{MaxWidth: conf.MaxPhotoWidth, Quality: conf.JPEGQuality},
			)
			defer flow.Close()

			var photoErr, fixErr error
			if err := flow.OpenCamera(ctx, facing); err != nil {
				photoErr = err
			} else if _, err := flow.Capture(); err != nil {
				photoErr = err
			}
			if _, err := flow.Locate(ctx); err != nil {
				fixErr = err
			}
			if rt.output == outputTable {
				if err := views.RenderFlow(rt.out, rt.app.Translator(), flow.State()); err != nil {
					return err
				}
			}
			if err := firstErr(photoErr, fixErr); err != nil {
				return rt.reject(err)
			}

			in := services.SubmitInput{Type: f.typ, Note: f.note}
			if f.areaID > 0 {
				in.AreaID = &f.areaID
			}
			res, err := svc.Submit(ctx, flow, in, svc.SubmitButton(flow))
			if err != nil {
				return toasted(err)
			}
			return rt.emit(res.Checkin, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "#%d %s\n", res.Checkin.ID, rt.app.Translator().T("Checkin."+string(res.Checkin.Type), nil))
				return err
			})
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.front, "photo", "", "Image file for the front camera (jpeg, png or webp)")
	fs.StringVar(&f.back, "back-photo", "", "Image file for the back camera")
	fs.StringVar(&f.facing, "facing", string(capture.FacingUser), "Camera facing mode: user|environment")
	fs.Float64Var(&f.lat, "lat", 0, "GPS latitude")
	fs.Float64Var(&f.lng, "lng", 0, "GPS longitude")
	fs.Float64Var(&f.accuracy, "accuracy", 0, "GPS accuracy in meters")
	fs.StringVar(&f.typ, "type", string(checkin.TypeCheckIn), "check_in|check_out")
	fs.StringVar(&f.note, "note", "", "Optional note")
	fs.Int64Var(&f.areaID, "area-id", 0, "Area to check in at")
	return cmd
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

type checkinFilterFlags struct {
	filters mappers.Filters
	sort    string
	desc    bool
	page    int
}

func (f *checkinFilterFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.filters.Type, "type", "", "Filter by check_in|check_out")
	fs.StringVar(&f.filters.Area, "area", "", "Filter by area name")
	fs.StringVar(&f.filters.Search, "search", "", "Free-text search over user, note and area")
	fs.StringVar(&f.filters.From, "from", "", "From date (YYYY-MM-DD)")
	fs.StringVar(&f.filters.To, "to", "", "To date (YYYY-MM-DD)")
	fs.StringVar(&f.sort, "sort", "", "Sort column key")
	fs.BoolVar(&f.desc, "desc", false, "Sort descending")
	fs.IntVar(&f.page, "page", 1, "Page number")
}

func newCheckinsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkins",
		Short: "Check-in list and history",
	}
	cmd.AddCommand(
		newCheckinsListCmd(rt, "list", "List recent check-ins", false),
		newCheckinsListCmd(rt, "history", "List your check-in history", true),
		newCheckinsExportCmd(rt),
	)
	return cmd
}

func (rt *runtime) checkinView(cmd *cobra.Command, history bool, f checkinFilterFlags) (*views.ListView, error) {
	svc := rt.checkins()
	fetch := views.Fetch(svc.List)
	if history {
		fetch = svc.History
	}
	if err := f.filters.Validate(); err != nil {
		return nil, rt.reject(err)
	}
	v := views.NewListView(fetch, rt.app.Translator(), rt.conf.PageSize, rt.conf.MaxPageSize)
	if err := v.Load(cmd.Context()); err != nil {
		return nil, err
	}
	v.ApplyFilters(f.filters)
	if err := applySort(v.Table(), f.sort, f.desc); err != nil {
		return nil, err
	}
	v.Table().GoTo(f.page)
	return v, nil
}

func newCheckinsListCmd(rt *runtime, use, short string, history bool) *cobra.Command {
	var f checkinFilterFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := rt.checkinView(cmd, history, f)
			if err != nil {
				return err
			}
			return rt.emit(toPageJSON(v.Table().View()), v.Render)
		},
	}
	f.bind(cmd)
	return cmd
}

func newCheckinsExportCmd(rt *runtime) *cobra.Command {
	var f checkinFilterFlags
	var opts exportOptions
	var history bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export check-ins to CSV or XLSX",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := rt.checkinView(cmd, history, f)
			if err != nil {
				return err
			}
			entity := "checkins"
			if history {
				entity = "checkin_history"
			}
			return writeExport(rt, entity, v.Table().Filtered(), mappers.CheckinColumns(), opts)
		},
	}
	f.bind(cmd)
	cmd.Flags().BoolVar(&history, "history", false, "Export the history instead of the list")
	cmd.Flags().StringVar(&opts.format, "format", "csv", "Export format: csv|xlsx")
	cmd.Flags().StringVar(&opts.file, "file", "", "Output file (default <entity>_<date>.<ext>)")
	return cmd
}
