package notifications

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/sirupsen/logrus"

	shoutrrrTypes "github.com/nicholas-fedor/shoutrrr/pkg/types"

	"github.com/nicholas-fedor/harborlift/pkg/notifications/templates"
	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// LocalLog is a logrus logger that does not send entries as notifications.
// It is used for internal logging to avoid notification loops.
var LocalLog = logrus.WithField("notify", "no")

// initialEntriesCapacity sets the initial capacity of a notification batch.
const initialEntriesCapacity = 10

// Failure categories reported when a service rejects a notification.
const (
	failureAuthentication = "authentication"
	failureNetwork        = "network"
	failureRateLimit      = "rate_limit"
	failureUnknown        = "unknown"
)

// router defines the interface for sending Shoutrrr notifications.
type router interface {
	Send(message string, params *shoutrrrTypes.Params) []error
}

// shoutrrrTypeNotifier implements the Notifier and logrus.Hook interfaces for Shoutrrr notifications.
// Log entries fired during a session are batched and sent together with the session report.
type shoutrrrTypeNotifier struct {
	Urls           []string
	Router         router
	entries        []*logrus.Entry
	logLevel       logrus.Level
	template       *template.Template
	messages       chan string
	done           chan struct{}
	legacyTemplate bool
	params         *shoutrrrTypes.Params
	data           StaticData
	receiving      bool
	delay          time.Duration

	mu        sync.Mutex // Guards entries, receiving and closed.
	closed    bool
	closeOnce sync.Once

	//nolint:containedctx
	ctx    context.Context
	cancel context.CancelFunc
}

// GetScheme extracts the scheme part of a Shoutrrr URL.
// It returns "invalid" if no scheme is found.
func GetScheme(url string) string {
	schemeEnd := strings.Index(url, ":")
	if schemeEnd <= 0 {
		return "invalid"
	}

	return url[:schemeEnd]
}

// sanitizeURLForLogging strips credentials and query parameters from a service URL.
//
// Parameters:
//   - rawURL: Shoutrrr service URL.
//
// Returns:
//   - string: URL safe to write to logs.
func sanitizeURLForLogging(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" {
		return GetScheme(rawURL) + "://[redacted]"
	}

	if parsed.User != nil {
		parsed.User = url.User("[redacted]")
	}

	parsed.RawQuery = ""
	parsed.Fragment = ""

	return parsed.String()
}

// GetNames returns a list of notification service names derived from URLs.
func (n *shoutrrrTypeNotifier) GetNames() []string {
	names := make([]string, len(n.Urls))
	for i, u := range n.Urls {
		names[i] = GetScheme(u)
	}

	return names
}

// GetURLs returns the list of URLs for configured notification services.
func (n *shoutrrrTypeNotifier) GetURLs() []string {
	return n.Urls
}

// AddLogHook adds the notifier as a logrus hook and starts the sending goroutine.
// Subsequent calls are no-ops.
func (n *shoutrrrTypeNotifier) AddLogHook() {
	n.mu.Lock()
	if n.receiving || n.closed {
		n.mu.Unlock()

		return
	}

	n.receiving = true
	n.mu.Unlock()

	logrus.AddHook(n)

	go sendNotifications(n)
}

// createNotifier initializes a Shoutrrr notifier for the given service URLs.
//
// The template string may name a common template or contain a Go template. When it cannot be
// parsed the default template is used. Legacy mode renders log entries only, otherwise the
// template receives the full Data model including the session report.
//
// Parameters:
//   - urls: Shoutrrr service URLs.
//   - level: Highest log level forwarded to services.
//   - tplString: Template name or body.
//   - legacy: Render log entries only.
//   - data: Title and host.
//   - stdout: Write Shoutrrr logs to stdout instead of trace logs.
//   - delay: Wait before each send.
//
// Returns:
//   - *shoutrrrTypeNotifier: Initialized notifier.
func createNotifier(
	urls []string,
	level logrus.Level,
	tplString string,
	legacy bool,
	data StaticData,
	stdout bool,
	delay time.Duration,
) *shoutrrrTypeNotifier {
	tpl, err := getShoutrrrTemplate(tplString, legacy)
	if err != nil {
		logrus.WithError(err).Error("Could not use configured notification template, using default template")

		tpl, _ = getShoutrrrTemplate("", legacy)
	}

	var logger shoutrrrTypes.StdLogger
	if stdout {
		logger = log.New(os.Stdout, ``, 0)
	} else {
		logger = log.New(logrus.StandardLogger().WriterLevel(logrus.TraceLevel), "Shoutrrr: ", 0)
	}

	router, err := shoutrrr.NewSender(logger, urls...)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize Shoutrrr notifications")
	}

	params := &shoutrrrTypes.Params{}
	if data.Title != "" {
		params.SetTitle(data.Title)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &shoutrrrTypeNotifier{
		Urls:           urls,
		Router:         router,
		messages:       make(chan string, 1),
		done:           make(chan struct{}),
		logLevel:       level,
		template:       tpl,
		legacyTemplate: legacy,
		data:           data,
		params:         params,
		delay:          delay,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// sendNotifications processes queued messages and sends them via the router.
// It applies the configured delay before each send and logs failures locally.
func sendNotifications(notifier *shoutrrrTypeNotifier) {
	defer close(notifier.done)

	for {
		select {
		case msg, ok := <-notifier.messages:
			if !ok {
				return
			}

			select {
			case <-time.After(notifier.delay):
			case <-notifier.ctx.Done():
				return
			}

			notifier.logSendErrors(notifier.Router.Send(msg, notifier.params))
		case <-notifier.ctx.Done():
			return
		}
	}
}

// logSendErrors reports per-service failures and a summary.
func (n *shoutrrrTypeNotifier) logSendErrors(errs []error) {
	failed := 0

	for i, err := range errs {
		if err == nil {
			continue
		}

		failed++

		if i >= len(n.Urls) {
			LocalLog.WithFields(logrus.Fields{
				"index":          i,
				"url_count":      len(n.Urls),
				"index_mismatch": true,
			}).WithError(err).Error("Failed to send shoutrrr notification")

			continue
		}

		LocalLog.WithFields(logrus.Fields{
			"service":      GetScheme(n.Urls[i]),
			"url":          sanitizeURLForLogging(n.Urls[i]),
			"index":        i,
			"failure_type": categorizeFailure(err),
		}).WithError(err).Error("Failed to send shoutrrr notification")
	}

	if failed > 0 {
		LocalLog.WithFields(logrus.Fields{
			"failed_count": failed,
			"total_count":  len(n.Urls),
		}).Warn("Notification delivery incomplete")
	}
}

// categorizeFailure maps a delivery error to a coarse failure type.
func categorizeFailure(err error) string {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "unauthorized"), strings.Contains(msg, "forbidden"),
		strings.Contains(msg, "401"), strings.Contains(msg, "403"), strings.Contains(msg, "auth"):
		return failureAuthentication
	case strings.Contains(msg, "too many requests"), strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "429"):
		return failureRateLimit
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "connection"),
		strings.Contains(msg, "no such host"), strings.Contains(msg, "network"):
		return failureNetwork
	default:
		return failureUnknown
	}
}

// buildMessage renders a notification message with the configured template.
func (n *shoutrrrTypeNotifier) buildMessage(data Data) (string, error) {
	var body bytes.Buffer

	var templateData any = data
	if n.legacyTemplate {
		templateData = data.Entries
	}

	if err := n.template.Execute(&body, templateData); err != nil {
		return "", fmt.Errorf("failed to execute notification template: %w", err)
	}

	return body.String(), nil
}

// sendEntries queues a batch of log entries and an optional report for sending.
// Empty messages are skipped.
func (n *shoutrrrTypeNotifier) sendEntries(entries []*logrus.Entry, report types.Report) {
	msg, err := n.buildMessage(Data{n.data, entries, report})
	if err != nil {
		// Logged from a goroutine since this may run inside Fire.
		go LocalLog.WithError(err).Error("Notification template error")

		return
	}

	if msg == "" {
		if len(n.Urls) > 1 {
			go LocalLog.Info("Skipping notification due to empty message")
		}

		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed || !n.receiving {
		return
	}

	select {
	case n.messages <- msg:
	case <-n.ctx.Done():
	}
}

// StartNotification begins batching log entries until SendNotification is called.
func (n *shoutrrrTypeNotifier) StartNotification() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.entries == nil {
		n.entries = make([]*logrus.Entry, 0, initialEntriesCapacity)
	}
}

// SendNotification sends the batched entries together with the session report.
func (n *shoutrrrTypeNotifier) SendNotification(report types.Report) {
	n.mu.Lock()
	entries := n.entries
	n.entries = nil
	n.mu.Unlock()

	n.sendEntries(entries, report)
}

// Close prevents further messages from being queued and waits until queued messages are sent.
// It is safe to call more than once and from multiple goroutines.
func (n *shoutrrrTypeNotifier) Close() {
	n.closeOnce.Do(func() {
		n.mu.Lock()
		n.closed = true
		receiving := n.receiving
		close(n.messages)
		n.mu.Unlock()

		if !receiving {
			n.cancel()

			return
		}

		LocalLog.Info("Waiting for the notification goroutine to finish")

		<-n.done
		n.cancel()
	})
}

// Levels returns the log levels that trigger notifications.
func (n *shoutrrrTypeNotifier) Levels() []logrus.Level {
	return logrus.AllLevels[:n.logLevel+1]
}

// Fire handles a new log entry as a logrus hook.
// Entries are batched during a session and sent immediately otherwise.
func (n *shoutrrrTypeNotifier) Fire(entry *logrus.Entry) error {
	if entry.Data["notify"] == "no" {
		return nil
	}

	n.mu.Lock()
	if n.entries != nil {
		n.entries = append(n.entries, entry)
		n.mu.Unlock()

		return nil
	}
	n.mu.Unlock()

	// Log output generated outside a session is sent immediately.
	n.sendEntries([]*logrus.Entry{entry}, nil)

	return nil
}

// getShoutrrrTemplate resolves a common template name or parses a custom template.
// An empty string selects the default template for the mode.
func getShoutrrrTemplate(tplString string, legacy bool) (*template.Template, error) {
	tplBase := template.New("").Funcs(templates.Funcs)

	if builtin, found := commonTemplates[tplString]; found {
		logrus.WithField(`template`, tplString).Debug(`Using common template`)
		tplString = builtin
	}

	if tplString == "" {
		defaultKey := `default`
		if legacy {
			defaultKey = `default-legacy`
		}

		return template.Must(tplBase.Parse(commonTemplates[defaultKey])), nil
	}

	tpl, err := tplBase.Parse(tplString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse notification template string: %w", err)
	}

	return tpl, nil
}
