package views

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/notifications/domain/notification"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/notifications/presentation/viewmodels"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/eventbus"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/intl"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/listing"
)

// Bell tracks the unread badge from UnreadChanged events. OnChange, when
// set, is called with the new badge text.
type Bell struct {
	mu       sync.Mutex
	count    int
	unsub    func()
	OnChange func(badge string)
}

func NewBell(bus eventbus.EventBus) *Bell {
	b := &Bell{}
	b.unsub = bus.Subscribe(func(e *notification.UnreadChanged) {
		b.mu.Lock()
		b.count = e.Count
		cb := b.OnChange
		b.mu.Unlock()
		if cb != nil {
			cb(viewmodels.Badge(e.Count))
		}
	})
	return b
}

func (b *Bell) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

func (b *Bell) Badge() string {
	return viewmodels.Badge(b.Count())
}

func (b *Bell) Close() {
	b.unsub()
}

// RenderList writes one page of notifications.
func RenderList(w io.Writer, tr *intl.Translator, page listing.Page[notification.Notification]) error {
	if len(page.Items) == 0 {
		_, err := fmt.Fprintln(w, tr.T("Notifications.Empty", nil))
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, n := range page.Items {
		mark := "*"
		if n.IsRead {
			mark = " "
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", mark, n.ID, n.CreatedAt, n.Title, oneLine(n.Message))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d/%d (%d)\n", page.Number, page.Pages, page.Total)
	return err
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
