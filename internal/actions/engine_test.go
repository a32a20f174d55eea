package actions_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	dockerConfigTypes "github.com/docker/cli/cli/config/types"
	dockerClient "github.com/docker/docker/client"

	"github.com/nicholas-fedor/harborlift/internal/actions"
	"github.com/nicholas-fedor/harborlift/pkg/runtime"
)

var _ = ginkgo.Describe("Transfer through the Docker Engine", func() {
	var (
		mockServer *ghttp.Server
		engine     *runtime.Engine
		pushAuth   dockerConfigTypes.AuthConfig
	)

	ginkgo.BeforeEach(func() {
		configDir := ginkgo.GinkgoT().TempDir()
		stored := base64.StdEncoding.EncodeToString([]byte("acr:token"))
		gomega.Expect(os.WriteFile(
			filepath.Join(configDir, "config.json"),
			[]byte(`{"auths":{"`+dstHost+`":{"auth":"`+stored+`"}}}`),
			0o600,
		)).To(gomega.Succeed())
		ginkgo.GinkgoT().Setenv("DOCKER_CONFIG", configDir)

		mockServer = ghttp.NewServer()
		mockServer.RouteToHandler(http.MethodPost, regexp.MustCompile(`^/v[\d.]+/images/create$`),
			ghttp.RespondWith(http.StatusOK, `{"status":"Downloaded newer image"}`))
		mockServer.RouteToHandler(http.MethodPost, regexp.MustCompile(`^/v[\d.]+/images/.+/tag$`),
			ghttp.RespondWith(http.StatusCreated, ""))
		mockServer.RouteToHandler(http.MethodPost, regexp.MustCompile(`^/v[\d.]+/images/.+/push$`),
			ghttp.CombineHandlers(
				func(_ http.ResponseWriter, r *http.Request) {
					raw, err := base64.URLEncoding.DecodeString(r.Header.Get("X-Registry-Auth"))
					gomega.Expect(err).NotTo(gomega.HaveOccurred())
					gomega.Expect(json.Unmarshal(raw, &pushAuth)).To(gomega.Succeed())
				},
				ghttp.RespondWith(http.StatusOK, `{"status":"Pushed"}`),
			))
		mockServer.RouteToHandler(http.MethodDelete, regexp.MustCompile(`^/v[\d.]+/images/.+$`),
			ghttp.RespondWithJSONEncoded(http.StatusOK, []map[string]string{}))

		docker, err := dockerClient.NewClientWithOpts(
			dockerClient.WithHost(mockServer.URL()),
			dockerClient.WithHTTPClient(mockServer.HTTPTestServer.Client()))
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		engine = runtime.NewEngine(docker)
	})

	ginkgo.AfterEach(func() {
		mockServer.Close()
	})

	ginkgo.It("pushes to a pre-authenticated destination with its stored credentials", func() {
		catalog := &fakeCatalog{
			repositories: []string{"nginx"},
			tags:         map[string][]string{"nginx": {"1.25"}},
		}
		params := baseParams()
		params.Source.Username = ""
		params.Source.Password = ""
		params.Destination.Username = ""
		params.Destination.Password = ""

		report, err := actions.Transfer(context.Background(), catalog, engine, params)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(report.Transferred()).To(gomega.HaveLen(1))
		gomega.Expect(pushAuth.Username).To(gomega.Equal("acr"))
		gomega.Expect(pushAuth.Password).To(gomega.Equal("token"))
	})
})
