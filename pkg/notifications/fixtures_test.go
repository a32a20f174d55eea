package notifications

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/harborlift/pkg/session"
	"github.com/nicholas-fedor/harborlift/pkg/types"
)

func sourceRef(repository, tag string) types.ImageRef {
	return types.ImageRef{Host: "harbor.example.com", Project: "library", Repository: repository, Tag: tag}
}

// mockReport builds a report with one transferred, one failed and one skipped image.
func mockReport() types.Report {
	progress := session.NewProgress()

	transferred := sourceRef("nginx", "1.25")
	failed := sourceRef("redis", "7")
	skipped := sourceRef("nginx", "latest")

	progress.AddScanned(transferred, transferred.Retarget("myacr.azurecr.io", "mirror"))
	progress.AddScanned(failed, failed.Retarget("myacr.azurecr.io", "mirror"))
	progress.AddSkipped(skipped, skipped.Retarget("myacr.azurecr.io", "mirror"), errors.New("excluded by filter"))
	progress.MarkTransferred(transferred, 1500*time.Millisecond)
	progress.MarkFailed(failed, errors.New("push denied"), 0)

	return progress.Report()
}

var legacyEntries = []*logrus.Entry{
	{
		Level:   logrus.InfoLevel,
		Message: "Transferred image",
		Data: logrus.Fields{
			"source":      "harbor.example.com/library/nginx:1.25",
			"destination": "myacr.azurecr.io/mirror/nginx:1.25",
		},
	},
	{
		Level:   logrus.ErrorLevel,
		Message: "Image transfer failed",
		Data: logrus.Fields{
			"source": "harbor.example.com/library/redis:7",
			"error":  errors.New("push denied"),
		},
	},
	{
		Level:   logrus.ErrorLevel,
		Message: "Tag listing failed",
		Data: logrus.Fields{
			"repository": "broken",
		},
	},
}

var mockDataMultipleEntries = Data{
	Entries: []*logrus.Entry{
		{Level: logrus.InfoLevel, Message: "Starting transfer session"},
		{Level: logrus.WarnLevel, Message: "Failed to remove local images"},
		{Level: logrus.ErrorLevel, Message: "Transfer session failed"},
	},
}

// mockData wraps a report with the static data of a mock host.
func mockData(report types.Report) Data {
	hostname := "Mock"

	return Data{
		Entries: legacyEntries[:1],
		Report:  report,
		StaticData: StaticData{
			Title: GetTitle(hostname, ""),
			Host:  hostname,
		},
	}
}
