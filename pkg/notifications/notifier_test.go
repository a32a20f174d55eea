package notifications_test

import (
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/harborlift/internal/flags"
	"github.com/nicholas-fedor/harborlift/pkg/notifications"
)

// newCommand returns a command carrying only the notification flags.
func newCommand(args ...string) *cobra.Command {
	command := &cobra.Command{Use: "harborlift"}
	flags.RegisterNotificationFlags(command)

	gomega.ExpectWithOffset(1, command.ParseFlags(args)).To(gomega.Succeed())

	return command
}

var _ = ginkgo.Describe("notifications", func() {
	ginkgo.Describe("the notifier", func() {
		ginkgo.When("no notification URLs are provided", func() {
			ginkgo.It("should have no service names", func() {
				notifier := notifications.NewNotifier(newCommand("--notifications-level", "info"))
				ginkgo.DeferCleanup(notifier.Close)

				gomega.Expect(notifier.GetNames()).To(gomega.BeEmpty())
			})
		})

		ginkgo.When("notification URLs are provided", func() {
			ginkgo.It("should name the services by scheme", func() {
				notifier := notifications.NewNotifier(newCommand(
					"--notifications-level", "info",
					"--notification-url", "logger://",
					"--notification-url", "generic+https://hooks.example.com/harborlift",
				))
				ginkgo.DeferCleanup(notifier.Close)

				gomega.Expect(notifier.GetNames()).To(gomega.Equal([]string{"logger", "generic+https"}))
				gomega.Expect(notifier.GetURLs()).To(gomega.HaveLen(2))
			})
		})

		ginkgo.When("title is overridden in flag", func() {
			ginkgo.It("should use the specified hostname in the title", func() {
				data := notifications.GetTemplateData(newCommand("--notifications-hostname", "test.host"))
				gomega.Expect(data.Title).To(gomega.Equal("Image transfers on test.host"))
				gomega.Expect(data.Host).To(gomega.Equal("test.host"))
			})
		})

		ginkgo.When("no hostname can be resolved", func() {
			ginkgo.It("should use the default simple title", func() {
				gomega.Expect(notifications.GetTitle("", "")).To(gomega.Equal("Image transfers"))
			})
		})

		ginkgo.When("title tag is set", func() {
			ginkgo.It("should use the prefix in the title", func() {
				data := notifications.GetTemplateData(newCommand("--notification-title-tag", "PREFIX"))
				gomega.Expect(data.Title).To(gomega.HavePrefix("[PREFIX] Image transfers"))
			})
		})

		ginkgo.When("the skip title flag is set", func() {
			ginkgo.It("should return an empty title", func() {
				data := notifications.GetTemplateData(newCommand("--notification-skip-title"))
				gomega.Expect(data.Title).To(gomega.BeEmpty())
			})
		})

		ginkgo.When("no delay is defined", func() {
			ginkgo.It("should not delay", func() {
				gomega.Expect(notifications.GetDelay(newCommand())).To(gomega.Equal(time.Duration(0)))
			})
		})

		ginkgo.When("delay is defined", func() {
			ginkgo.It("should use the specified delay", func() {
				delay := notifications.GetDelay(newCommand("--notifications-delay", "5"))
				gomega.Expect(delay).To(gomega.Equal(5 * time.Second))
			})
		})

		ginkgo.When("a negative delay is defined", func() {
			ginkgo.It("should not delay", func() {
				delay := notifications.GetDelay(newCommand("--notifications-delay", "-3"))
				gomega.Expect(delay).To(gomega.Equal(time.Duration(0)))
			})
		})
	})
})
