package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/area"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/location"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/user"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/presentation/dtos"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/presentation/mappers"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/presentation/views"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/services"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/listing"
)

// dtoForm binds create/update flags. base is the current item on update and
// nil on create; only changed flags override it.
type dtoForm[D any] interface {
	bind(fs *pflag.FlagSet)
	build(fs *pflag.FlagSet, base D) D
}

type resourceCmd[T any, D services.Validatable] struct {
	use     string
	short   string
	entity  string
	service func() *services.Service[T, D]
	columns func() []listing.Column[T]
	search  func() []func(T) string
	seed    func(T) D
	form    func() dtoForm[D]
}

func (rc resourceCmd[T, D]) command(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{Use: rc.use, Short: rc.short}
	cmd.AddCommand(rc.list(rt), rc.show(rt), rc.create(rt), rc.update(rt), rc.delete(rt), rc.export(rt))
	return cmd
}

type listFlags struct {
	search string
	sort   string
	desc   bool
	page   int
}

func (f *listFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.search, "search", "", "Free-text search")
	fs.StringVar(&f.sort, "sort", "", "Sort column key")
	fs.BoolVar(&f.desc, "desc", false, "Sort descending")
	fs.IntVar(&f.page, "page", 1, "Page number")
}

func (rc resourceCmd[T, D]) view(cmd *cobra.Command, rt *runtime, f listFlags) (*views.TableView[T], error) {
	v := views.NewTableView[T](rc.service(), rc.columns(), rc.search(), rt.app.Translator(), rt.conf.PageSize)
	if err := v.Load(cmd.Context()); err != nil {
		return nil, err
	}
	v.Search(f.search)
	if err := applySort(v.Table(), f.sort, f.desc); err != nil {
		return nil, err
	}
	v.Table().GoTo(f.page)
	return v, nil
}

func (rc resourceCmd[T, D]) list(rt *runtime) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + rc.use,
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := rc.view(cmd, rt, f)
			if err != nil {
				return err
			}
			return rt.emit(toPageJSON(v.Table().View()), v.Render)
		},
	}
	f.bind(cmd.Flags())
	return cmd
}

func (rc resourceCmd[T, D]) show(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one " + rc.entity,
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			item, err := rc.service().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return rt.emit(item, rc.renderOne(item))
		},
	}
}

func (rc resourceCmd[T, D]) renderOne(item T) func(w io.Writer) error {
	return func(w io.Writer) error {
		return writeRecord(w, item, rc.columns())
	}
}

func (rc resourceCmd[T, D]) create(rt *runtime) *cobra.Command {
	form := rc.form()
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + rc.entity,
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var zero D
			item, err := rc.service().Create(cmd.Context(), form.build(cmd.Flags(), zero))
			if err != nil {
				return toasted(err)
			}
			return rt.emit(item, rc.renderOne(item))
		},
	}
	form.bind(cmd.Flags())
	return cmd
}

func (rc resourceCmd[T, D]) update(rt *runtime) *cobra.Command {
	form := rc.form()
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a " + rc.entity + "; only the given flags change",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc := rc.service()
			current, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return rt.reject(err)
			}
			item, err := svc.Update(cmd.Context(), id, form.build(cmd.Flags(), rc.seed(current)))
			if err != nil {
				return toasted(err)
			}
			return rt.emit(item, rc.renderOne(item))
		},
	}
	form.bind(cmd.Flags())
	return cmd
}

func (rc resourceCmd[T, D]) delete(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + rc.entity,
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := rc.service().Delete(cmd.Context(), id); err != nil {
				return toasted(err)
			}
			return rt.emit(map[string]any{"deleted": id}, func(io.Writer) error { return nil })
		},
	}
}

func (rc resourceCmd[T, D]) export(rt *runtime) *cobra.Command {
	var f listFlags
	var opts exportOptions
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export " + rc.use + " to CSV or XLSX",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := rc.view(cmd, rt, f)
			if err != nil {
				return err
			}
			return writeExport(rt, rc.use, v.Table().Filtered(), rc.columns(), opts)
		},
	}
	f.bind(cmd.Flags())
	cmd.Flags().StringVar(&opts.format, "format", "csv", "Export format: csv|xlsx")
	cmd.Flags().StringVar(&opts.file, "file", "", "Output file (default <entity>_<date>.<ext>)")
	return cmd
}

func newAreasCmd(rt *runtime) *cobra.Command {
	return resourceCmd[area.Area, *dtos.AreaDTO]{
		use:     "areas",
		short:   "Check-in areas (geofences)",
		entity:  "area",
		service: func() *services.AreaService { return rt.areas() },
		columns: mappers.AreaColumns,
		search:  mappers.AreaSearchFields,
		seed: func(a area.Area) *dtos.AreaDTO {
			return &dtos.AreaDTO{
				Name:        a.Name,
				Description: a.Description,
				Latitude:    float64Ptr(float64(a.Latitude)),
				Longitude:   float64Ptr(float64(a.Longitude)),
				Radius:      float64(a.Radius),
				IsActive:    a.IsActive,
			}
		},
		form: func() dtoForm[*dtos.AreaDTO] { return &geoForm{} },
	}.command(rt)
}

func newLocationsCmd(rt *runtime) *cobra.Command {
	return resourceCmd[location.Location, *dtos.AreaDTO]{
		use:     "locations",
		short:   "Named locations",
		entity:  "location",
		service: func() *services.LocationService { return rt.locations() },
		columns: mappers.LocationColumns,
		search:  mappers.LocationSearchFields,
		seed: func(l location.Location) *dtos.AreaDTO {
			return &dtos.AreaDTO{
				Name:        l.Name,
				Description: l.Description,
				Address:     l.Address,
				Latitude:    float64Ptr(float64(l.Latitude)),
				Longitude:   float64Ptr(float64(l.Longitude)),
				Radius:      float64(l.Radius),
				IsActive:    l.IsActive,
			}
		},
		form: func() dtoForm[*dtos.AreaDTO] { return &geoForm{withAddress: true} },
	}.command(rt)
}

func newUsersCmd(rt *runtime) *cobra.Command {
	return resourceCmd[user.User, *dtos.UserDTO]{
		use:     "users",
		short:   "User administration",
		entity:  "user",
		service: func() *services.UserService { return rt.users() },
		columns: mappers.UserColumns,
		search:  mappers.UserSearchFields,
		seed: func(u user.User) *dtos.UserDTO {
			return &dtos.UserDTO{
				Username:  u.Username,
				Email:     u.Email,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Role:      u.Role,
				Phone:     u.Phone,
				IsActive:  u.IsActive,
			}
		},
		form: func() dtoForm[*dtos.UserDTO] { return &userForm{} },
	}.command(rt)
}

func float64Ptr(v float64) *float64 { return &v }

// geoForm covers both areas and locations.
type geoForm struct {
	withAddress bool
	dto         dtos.AreaDTO
	lat, lng    float64
}

func (f *geoForm) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.dto.Name, "name", "", "Name")
	fs.StringVar(&f.dto.Description, "description", "", "Description")
	if f.withAddress {
		fs.StringVar(&f.dto.Address, "address", "", "Street address")
	}
	fs.Float64Var(&f.lat, "latitude", 0, "Center latitude (-90..90)")
	fs.Float64Var(&f.lng, "longitude", 0, "Center longitude (-180..180)")
	fs.Float64Var(&f.dto.Radius, "radius", 100, "Radius in meters (0..10000]")
	fs.BoolVar(&f.dto.IsActive, "active", true, "Whether check-ins may use it")
}

func (f *geoForm) build(fs *pflag.FlagSet, base *dtos.AreaDTO) *dtos.AreaDTO {
	out := &dtos.AreaDTO{}
	if base != nil {
		*out = *base
	}
	set := func(name string) bool { return base == nil || fs.Changed(name) }
	if set("name") {
		out.Name = f.dto.Name
	}
	if set("description") {
		out.Description = f.dto.Description
	}
	if f.withAddress && set("address") {
		out.Address = f.dto.Address
	}
	if fs.Changed("latitude") {
		out.Latitude = float64Ptr(f.lat)
	}
	if fs.Changed("longitude") {
		out.Longitude = float64Ptr(f.lng)
	}
	if set("radius") {
		out.Radius = f.dto.Radius
	}
	if set("active") {
		out.IsActive = f.dto.IsActive
	}
	return out
}

type userForm struct {
	dto dtos.UserDTO
}

func (f *userForm) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.dto.Username, "username", "", "Login name")
	fs.StringVar(&f.dto.Email, "email", "", "Email address")
	fs.StringVar(&f.dto.FirstName, "first-name", "", "Given name")
	fs.StringVar(&f.dto.LastName, "last-name", "", "Family and middle names")
	fs.StringVar(&f.dto.Role, "role", "", "Role")
	fs.Int64Var(&f.dto.DepartmentID, "department-id", 0, "Department id")
	fs.StringVar(&f.dto.Phone, "phone", "", "Phone number")
	fs.StringVar(&f.dto.Password, "password", "", "Initial password (at least 8 characters)")
	fs.BoolVar(&f.dto.IsActive, "active", true, "Whether the account can sign in")
}

func (f *userForm) build(fs *pflag.FlagSet, base *dtos.UserDTO) *dtos.UserDTO {
	out := &dtos.UserDTO{}
	if base != nil {
		*out = *base
	}
	set := func(name string) bool { return base == nil || fs.Changed(name) }
	if set("username") {
		out.Username = f.dto.Username
	}
	if set("email") {
		out.Email = f.dto.Email
	}
	if set("first-name") {
		out.FirstName = f.dto.FirstName
	}
	if set("last-name") {
		out.LastName = f.dto.LastName
	}
	if set("role") {
		out.Role = f.dto.Role
	}
	if set("department-id") {
		out.DepartmentID = f.dto.DepartmentID
	}
	if set("phone") {
		out.Phone = f.dto.Phone
	}
	if set("password") {
		out.Password = f.dto.Password
	}
	if set("active") {
		out.IsActive = f.dto.IsActive
	}
	return out
}
