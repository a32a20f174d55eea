package actions_test

import (
	"context"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/nicholas-fedor/harborlift/internal/actions"
	"github.com/nicholas-fedor/harborlift/pkg/metrics"
	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// recordingNotifier remembers the reports it was asked to send.
type recordingNotifier struct {
	started int
	reports []types.Report
}

func (n *recordingNotifier) StartNotification() { n.started++ }
func (n *recordingNotifier) SendNotification(r types.Report) { n.reports = append(n.reports, r) }
func (n *recordingNotifier) AddLogHook() {}
func (n *recordingNotifier) GetNames() []string { return []string{"recording"} }
func (n *recordingNotifier) GetURLs() []string { return nil }
func (n *recordingNotifier) Close() {}

var _ = ginkgo.Describe("RunTransfersWithNotifications", func() {
	var (
		rt      *fakeRuntime
		catalog *fakeCatalog
	)

	ginkgo.BeforeEach(func() {
		rt = newFakeRuntime()
		catalog = &fakeCatalog{
			repositories: []string{"nginx"},
			tags:         map[string][]string{"nginx": {"1.25", "1.24"}},
		}
	})

	ginkgo.It("batches notifications around the session", func() {
		notifier := &recordingNotifier{}
		rt.failOn("push "+dst("nginx", "1.24").String(), -1)

		metric, err := actions.RunTransfersWithNotifications(context.Background(), catalog, rt, notifier, baseParams())
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		gomega.Expect(notifier.started).To(gomega.Equal(1))
		gomega.Expect(notifier.reports).To(gomega.HaveLen(1))
		gomega.Expect(notifier.reports[0].Failed()).To(gomega.HaveLen(1))
		gomega.Expect(*metric).To(gomega.Equal(metrics.Metric{Scanned: 2, Transferred: 1, Failed: 1}))
	})

	ginkgo.It("works without a notifier", func() {
		metric, err := actions.RunTransfersWithNotifications(context.Background(), catalog, rt, nil, baseParams())
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(metric.Transferred).To(gomega.Equal(2))
	})

	ginkgo.It("returns the session error with a partial metric", func() {
		params := baseParams()
		params.FailFast = true
		rt.failOn("pull "+src("nginx", "1.24").String(), -1)
		notifier := &recordingNotifier{}

		metric, err := actions.RunTransfersWithNotifications(context.Background(), catalog, rt, notifier, params)
		gomega.Expect(err).To(gomega.MatchError(actions.ErrSessionAborted))
		gomega.Expect(metric.Failed).To(gomega.Equal(1))
		gomega.Expect(notifier.reports).To(gomega.HaveLen(1))
	})
})
