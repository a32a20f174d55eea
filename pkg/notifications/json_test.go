package notifications

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("JSON template", func() {
	ginkgo.When("using report templates", func() {
		ginkgo.When("JSON template is used", func() {
			ginkgo.It("should format the messages to the expected format", func() {
				expected := `{
	"entries": [
		{
			"data": {
				"destination": "myacr.azurecr.io/mirror/nginx:1.25",
				"source": "harbor.example.com/library/nginx:1.25"
			},
			"level": "info",
			"message": "Transferred image",
			"time": "0001-01-01T00:00:00Z"
		}
	],
	"host": "Mock",
	"report": {
		"failed": [
			{
				"destination": "myacr.azurecr.io/mirror/redis:7",
				"error": "push denied",
				"repository": "redis",
				"source": "harbor.example.com/library/redis:7",
				"state": "Failed",
				"tag": "7"
			}
		],
		"scanned": [
			{
				"destination": "myacr.azurecr.io/mirror/nginx:1.25",
				"duration": "1.5s",
				"repository": "nginx",
				"source": "harbor.example.com/library/nginx:1.25",
				"state": "Transferred",
				"tag": "1.25"
			},
			{
				"destination": "myacr.azurecr.io/mirror/redis:7",
				"error": "push denied",
				"repository": "redis",
				"source": "harbor.example.com/library/redis:7",
				"state": "Failed",
				"tag": "7"
			}
		],
		"skipped": [
			{
				"destination": "myacr.azurecr.io/mirror/nginx:latest",
				"error": "excluded by filter",
				"repository": "nginx",
				"source": "harbor.example.com/library/nginx:latest",
				"state": "Skipped",
				"tag": "latest"
			}
		],
		"transferred": [
			{
				"destination": "myacr.azurecr.io/mirror/nginx:1.25",
				"duration": "1.5s",
				"repository": "nginx",
				"source": "harbor.example.com/library/nginx:1.25",
				"state": "Transferred",
				"tag": "1.25"
			}
		]
	},
	"title": "Image transfers on Mock"
}`
				gomega.Expect(getTemplatedResult(`json.v1`, false, mockData(mockReport()))).
					To(gomega.MatchJSON(expected))
			})

			ginkgo.It("should render a null report outside a session", func() {
				data := mockData(nil)
				gomega.Expect(getTemplatedResult(`json.v1`, false, data)).
					To(gomega.MatchRegexp(`"report":\s*null`))
			})
		})
	})
})
