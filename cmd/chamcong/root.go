package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dungnt1702/NOV-RECO-sub000/modules"
	absencesvc "github.com/dungnt1702/NOV-RECO-sub000/modules/absence/services"
	checkinsvc "github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/services"
	directorysvc "github.com/dungnt1702/NOV-RECO-sub000/modules/directory/services"
	notificationsvc "github.com/dungnt1702/NOV-RECO-sub000/modules/notifications/services"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/application"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/configuration"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/portal"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/ui"
)

type globalOptions struct {
	baseURL   string
	session   string
	csrfToken string
	lang      string
	output    string
	userID    int64
}

// runtime is built once per invocation, before any subcommand runs.
type runtime struct {
	conf      *configuration.Configuration
	app       application.Application
	presenter *ui.Presenter
	out       io.Writer
	output    string
}

func newRootCmd() *cobra.Command {
	var g globalOptions
	rt := &runtime{}

	cmd := &cobra.Command{
		Use:           "chamcong",
		Short:         "Terminal client for the NOV-RECO attendance portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.init(cmd, g)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			rt.close()
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return withCode(exitUsage, err)
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.baseURL, "base-url", "", "Portal base URL (overrides PORTAL_BASE_URL)")
	pf.StringVar(&g.session, "session", "", "Session cookie value (overrides PORTAL_SESSION_ID)")
	pf.StringVar(&g.csrfToken, "csrf-token", "", "CSRF token (overrides PORTAL_CSRF_TOKEN)")
	pf.StringVar(&g.lang, "lang", "", "Message language: vi|en (overrides CHAMCONG_LANG)")
	pf.StringVar(&g.output, "output", outputTable, "Output format: table|json")
	pf.Int64Var(&g.userID, "user-id", 0, "Signed-in user id (overrides PORTAL_USER_ID)")

	cmd.AddCommand(newRequestsCmd(rt))
	cmd.AddCommand(newNotificationsCmd(rt))
	cmd.AddCommand(newAreasCmd(rt))
	cmd.AddCommand(newLocationsCmd(rt))
	cmd.AddCommand(newUsersCmd(rt))
	cmd.AddCommand(newCheckinCmd(rt))
	cmd.AddCommand(newCheckinsCmd(rt))
	return cmd
}

func (rt *runtime) init(cmd *cobra.Command, g globalOptions) error {
	output := strings.ToLower(strings.TrimSpace(g.output))
	if output != outputTable && output != outputJSON {
		return withCode(exitUsage, fmt.Errorf("invalid --output %q (expected table|json)", g.output))
	}

	conf, err := configuration.Load([]string{".env", ".env.local"})
	if err != nil {
		return withCode(exitUsage, err)
	}
	if g.baseURL != "" {
		conf.Portal.BaseURL = g.baseURL
	}
	if g.session != "" {
		conf.Portal.SessionID = g.session
	}
	if g.csrfToken != "" {
		conf.Portal.CSRFToken = g.csrfToken
	}
	if g.lang != "" {
		conf.Language = g.lang
	}
	if g.userID != 0 {
		conf.Portal.UserID = g.userID
	}
	if err := conf.Validate(); err != nil {
		conf.Unload()
		return withCode(exitUsage, err)
	}

	client, err := portal.New(portal.OptionsFromConfig(conf))
	if err != nil {
		conf.Unload()
		return withCode(exitUsage, err)
	}
	app := application.New(&application.ApplicationOptions{Config: conf, Client: client})

	rt.conf = conf
	rt.app = app
	rt.out = cmd.OutOrStdout()
	rt.output = output
	rt.presenter = ui.NewPresenter(app.EventPublisher(), cmd.ErrOrStderr())

	prompter := ui.NewLinePrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	if err := modules.Load(app, modules.BuiltInModules(modules.Options{Prompter: prompter})...); err != nil {
		return withCode(exitFailure, err)
	}
	return nil
}

func (rt *runtime) close() {
	if rt.presenter != nil {
		rt.presenter.Close()
	}
	if rt.conf != nil {
		rt.conf.Unload()
	}
}

func (rt *runtime) requests() *absencesvc.RequestService {
	return rt.app.Service(absencesvc.RequestService{}).(*absencesvc.RequestService)
}

func (rt *runtime) approvals() *absencesvc.ApprovalService {
	return rt.app.Service(absencesvc.ApprovalService{}).(*absencesvc.ApprovalService)
}

func (rt *runtime) notifications() *notificationsvc.NotificationService {
	return rt.app.Service(notificationsvc.NotificationService{}).(*notificationsvc.NotificationService)
}

func (rt *runtime) poller() *notificationsvc.Poller {
	return rt.app.Service(notificationsvc.Poller{}).(*notificationsvc.Poller)
}

func (rt *runtime) areas() *directorysvc.AreaService {
	return rt.app.Service(directorysvc.AreaService{}).(*directorysvc.AreaService)
}

func (rt *runtime) locations() *directorysvc.LocationService {
	return rt.app.Service(directorysvc.LocationService{}).(*directorysvc.LocationService)
}

func (rt *runtime) users() *directorysvc.UserService {
	return rt.app.Service(directorysvc.UserService{}).(*directorysvc.UserService)
}

func (rt *runtime) checkins() *checkinsvc.CheckinService {
	return rt.app.Service(checkinsvc.CheckinService{}).(*checkinsvc.CheckinService)
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return withCode(exitUsage, err)
		}
		return nil
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, withCode(exitUsage, fmt.Errorf("invalid id %q", s))
	}
	return id, nil
}

func Execute() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns its exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		if !wasReported(err) {
			fmt.Fprintln(stderr, err.Error())
		}
		return exitCode(err)
	}
	return exitOK
}
