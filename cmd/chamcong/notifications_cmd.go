package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/notifications/presentation/views"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/metrics"
)

func newNotificationsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "Notification bell and list",
	}
	cmd.AddCommand(
		newNotificationsListCmd(rt),
		newNotificationMutationCmd(rt, "read <id>", "Mark a notification as read", 1, func(ctx context.Context, id int64) error {
			return rt.notifications().MarkRead(ctx, id)
		}),
		newNotificationMutationCmd(rt, "read-all", "Mark every notification as read", 0, func(ctx context.Context, _ int64) error {
			return rt.notifications().MarkAllRead(ctx)
		}),
		newNotificationMutationCmd(rt, "delete <id>", "Delete a notification", 1, func(ctx context.Context, id int64) error {
			return rt.notifications().Delete(ctx, id)
		}),
		newNotificationsWatchCmd(rt),
	)
	return cmd
}

func newNotificationsListCmd(rt *runtime) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of notifications",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := rt.notifications()
			p, err := svc.List(cmd.Context(), page)
			if err != nil {
				return err
			}
			return rt.emit(toPageJSON(p), func(w io.Writer) error {
				return views.RenderList(w, rt.app.Translator(), p)
			})
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func newNotificationMutationCmd(rt *runtime, use, short string, nargs int, call func(ctx context.Context, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  exactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int64
			if nargs == 1 {
				var err error
				if id, err = parseID(args[0]); err != nil {
					return err
				}
			}
			if err := call(cmd.Context(), id); err != nil {
				return toasted(err)
			}
			n, err := rt.notifications().UnreadCount(cmd.Context())
			if err != nil {
				return err
			}
			return rt.emit(map[string]int{"unread": n}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "unread: %d\n", n)
				return err
			})
		},
	}
}

func newNotificationsWatchCmd(rt *runtime) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the unread count and print the bell badge when it changes",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			bell := views.NewBell(rt.app.EventPublisher())
			defer bell.Close()
			bell.OnChange = func(badge string) {
				if rt.output == outputJSON {
					_ = writeJSONLine(rt.out, map[string]any{"unread": bell.Count(), "badge": badge, "at": time.Now().Format(time.RFC3339)})
					return
				}
				if badge == "" {
					badge = "0"
				}
				fmt.Fprintf(rt.out, "unread: %s\n", badge)
			}

			addr := metricsAddr
			if addr == "" {
				addr = rt.conf.Notifications.MetricsAddr
			}
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return rt.poller().Run(gctx) })
			if addr != "" {
				g.Go(func() error { return metrics.Serve(gctx, addr, rt.conf.Notifications.MetricsPath, rt.app.Logger()) })
			}
			err := g.Wait()
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address (overrides METRICS_ADDR)")
	return cmd
}
