package notifications

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// titleBase is the fixed part of every notification title.
const titleBase = "Image transfers"

// NewNotifier creates a Shoutrrr notifier from the notification flags of the command.
//
// Parameters:
//   - c: Command carrying the notification flags.
//
// Returns:
//   - types.Notifier: Configured notifier.
func NewNotifier(c *cobra.Command) types.Notifier {
	flag := c.PersistentFlags()

	level, _ := flag.GetString("notifications-level")
	clog := logrus.WithField("level", level)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		clog.WithError(err).Fatal("Invalid notifications log level")
	}

	reportTemplate, _ := flag.GetBool("notification-report")
	stdout, _ := flag.GetBool("notification-log-stdout")
	tplString, _ := flag.GetString("notification-template")
	urls, _ := flag.GetStringArray("notification-url")

	data := GetTemplateData(c)
	delay := GetDelay(c)

	sanitized := make([]string, len(urls))
	for i, u := range urls {
		sanitized[i] = sanitizeURLForLogging(u)
	}

	clog.WithFields(logrus.Fields{
		"urls":        sanitized,
		"template":    tplString,
		"skip_report": !reportTemplate,
		"stdout":      stdout,
		"delay":       delay,
		"hostname":    data.Host,
		"title":       data.Title,
	}).Debug("Creating notifier with configuration")

	return createNotifier(urls, logLevel, tplString, !reportTemplate, data, stdout, delay)
}

// GetDelay returns the configured delay before notifications are sent.
func GetDelay(c *cobra.Command) time.Duration {
	delay, _ := c.PersistentFlags().GetInt("notifications-delay")
	if delay > 0 {
		return time.Duration(delay) * time.Second
	}

	return 0
}

// GetTitle formats the title based on the passed hostname and tag.
//
// Parameters:
//   - hostname: Host the transfers ran on; omitted when empty.
//   - tag: Optional prefix rendered in brackets.
//
// Returns:
//   - string: Title such as "[prod] Image transfers on build-01".
func GetTitle(hostname string, tag string) string {
	titleBuilder := strings.Builder{}
	if tag != "" {
		titleBuilder.WriteRune('[')
		titleBuilder.WriteString(tag)
		titleBuilder.WriteString("] ")
	}

	titleBuilder.WriteString(titleBase)

	if hostname != "" {
		titleBuilder.WriteString(" on ")
		titleBuilder.WriteString(hostname)
	}

	return titleBuilder.String()
}

// GetTemplateData populates the static notification data from flags and the system hostname.
func GetTemplateData(c *cobra.Command) StaticData {
	flag := c.PersistentFlags()

	hostname, _ := flag.GetString("notifications-hostname")
	if hostname == "" {
		hostname, _ = os.Hostname()
	}

	title := ""

	if skip, _ := flag.GetBool("notification-skip-title"); !skip {
		tag, _ := flag.GetString("notification-title-tag")
		title = GetTitle(hostname, tag)
	}

	logrus.WithFields(logrus.Fields{
		"hostname": hostname,
		"title":    title,
	}).Debug("Populated template data")

	return StaticData{
		Host:  hostname,
		Title: title,
	}
}
