package runtime_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	dockerConfigTypes "github.com/docker/cli/cli/config/types"
	dockerClient "github.com/docker/docker/client"

	"github.com/nicholas-fedor/harborlift/pkg/runtime"
	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// decodeRegistryAuth decodes the X-Registry-Auth header of a request.
func decodeRegistryAuth(r *http.Request) dockerConfigTypes.AuthConfig {
	raw, err := base64.URLEncoding.DecodeString(r.Header.Get("X-Registry-Auth"))
	gomega.Expect(err).NotTo(gomega.HaveOccurred())

	var cfg dockerConfigTypes.AuthConfig
	gomega.Expect(json.Unmarshal(raw, &cfg)).To(gomega.Succeed())

	return cfg
}

var _ = ginkgo.Describe("the engine runtime", func() {
	var (
		mockServer *ghttp.Server
		engine     *runtime.Engine
		source     types.RegistryConfig
		src        types.ImageRef
		dst        types.ImageRef
	)

	ginkgo.BeforeEach(func() {
		mockServer = ghttp.NewServer()
		docker, err := dockerClient.NewClientWithOpts(
			dockerClient.WithHost(mockServer.URL()),
			dockerClient.WithHTTPClient(mockServer.HTTPTestServer.Client()))
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		engine = runtime.NewEngine(docker)
		source = types.RegistryConfig{Host: "harbor.example.com", Username: "robot", Password: "secret"}
		src = types.ImageRef{Host: "harbor.example.com", Project: "library", Repository: "nginx", Tag: "1.25"}
		dst = src.Retarget("myacr.azurecr.io", "mirror")
	})

	ginkgo.AfterEach(func() {
		mockServer.Close()
	})

	ginkgo.When("logging in with explicit credentials", func() {
		ginkgo.It("should validate them with the daemon and use them for pulls", func() {
			mockServer.AppendHandlers(
				ghttp.CombineHandlers(
					ghttp.VerifyRequest(http.MethodPost, gomega.MatchRegexp(`^/v[\d.]+/auth$`)),
					ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]string{"Status": "Login Succeeded"}),
				),
				ghttp.CombineHandlers(
					ghttp.VerifyRequest(http.MethodPost, gomega.MatchRegexp(`^/v[\d.]+/images/create$`)),
					func(_ http.ResponseWriter, r *http.Request) {
						gomega.Expect(r.URL.Query().Get("fromImage")).To(gomega.Equal("harbor.example.com/library/nginx"))
						gomega.Expect(r.URL.Query().Get("tag")).To(gomega.Equal("1.25"))

						creds := decodeRegistryAuth(r)
						gomega.Expect(creds.Username).To(gomega.Equal("robot"))
						gomega.Expect(creds.Password).To(gomega.Equal("secret"))
					},
					ghttp.RespondWith(http.StatusOK, `{"status":"Pulling from library/nginx"}`+"\n"+`{"status":"Downloaded newer image"}`),
				),
			)

			gomega.Expect(engine.Login(context.Background(), source)).To(gomega.Succeed())
			gomega.Expect(engine.Pull(context.Background(), src)).To(gomega.Succeed())
			gomega.Expect(mockServer.ReceivedRequests()).To(gomega.HaveLen(2))
		})

		ginkgo.It("should fail when the daemon rejects the credentials", func() {
			mockServer.AppendHandlers(ghttp.RespondWithJSONEncoded(
				http.StatusUnauthorized,
				map[string]string{"message": "unauthorized: incorrect username or password"},
			))

			err := engine.Login(context.Background(), source)
			gomega.Expect(err).To(gomega.MatchError(runtime.ErrLoginFailed))
		})
	})

	ginkgo.When("the destination has no explicit credentials", func() {
		ginkgo.It("should push with the credentials stored in the Docker config", func() {
			configDir := ginkgo.GinkgoT().TempDir()
			stored := base64.StdEncoding.EncodeToString([]byte("acr:token"))
			gomega.Expect(os.WriteFile(
				filepath.Join(configDir, "config.json"),
				[]byte(`{"auths":{"myacr.azurecr.io":{"auth":"`+stored+`"}}}`),
				0o600,
			)).To(gomega.Succeed())
			ginkgo.GinkgoT().Setenv("DOCKER_CONFIG", configDir)

			mockServer.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodPost, gomega.MatchRegexp(`^/v[\d.]+/images/myacr.azurecr.io/mirror/nginx/push$`)),
				func(_ http.ResponseWriter, r *http.Request) {
					creds := decodeRegistryAuth(r)
					gomega.Expect(creds.Username).To(gomega.Equal("acr"))
					gomega.Expect(creds.Password).To(gomega.Equal("token"))
				},
				ghttp.RespondWith(http.StatusOK, `{"status":"Pushed"}`),
			))

			destination := types.RegistryConfig{Host: "myacr.azurecr.io", Project: "mirror"}
			gomega.Expect(engine.Login(context.Background(), destination)).To(gomega.Succeed())
			gomega.Expect(engine.Push(context.Background(), dst)).To(gomega.Succeed())
			gomega.Expect(mockServer.ReceivedRequests()).To(gomega.HaveLen(1))
		})
	})

	ginkgo.When("the push stream reports an error", func() {
		ginkgo.It("should return it", func() {
			mockServer.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodPost, gomega.MatchRegexp(`^/v[\d.]+/images/myacr.azurecr.io/mirror/nginx/push$`)),
				ghttp.RespondWith(
					http.StatusOK,
					`{"status":"The push refers to repository"}`+"\n"+`{"errorDetail":{"message":"denied"},"error":"denied"}`,
				),
			))

			err := engine.Push(context.Background(), dst)
			gomega.Expect(err).To(gomega.MatchError(runtime.ErrPushFailed))
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("denied"))
		})
	})

	ginkgo.When("tagging an image", func() {
		ginkgo.It("should call the tag endpoint with the destination reference", func() {
			mockServer.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodPost, gomega.MatchRegexp(`^/v[\d.]+/images/.+/tag$`)),
				func(_ http.ResponseWriter, r *http.Request) {
					gomega.Expect(r.URL.Query().Get("repo")).To(gomega.Equal("myacr.azurecr.io/mirror/nginx"))
					gomega.Expect(r.URL.Query().Get("tag")).To(gomega.Equal("1.25"))
				},
				ghttp.RespondWith(http.StatusCreated, ""),
			))

			gomega.Expect(engine.Tag(context.Background(), src, dst)).To(gomega.Succeed())
		})
	})

	ginkgo.When("removing images", func() {
		ginkgo.It("should ignore references that are already gone", func() {
			mockServer.AppendHandlers(
				ghttp.CombineHandlers(
					ghttp.VerifyRequest(http.MethodDelete, gomega.MatchRegexp(`^/v[\d.]+/images/harbor.example.com/library/nginx:1.25$`)),
					ghttp.RespondWithJSONEncoded(http.StatusOK, []map[string]string{{"Untagged": src.String()}}),
				),
				ghttp.CombineHandlers(
					ghttp.VerifyRequest(http.MethodDelete, gomega.MatchRegexp(`^/v[\d.]+/images/myacr.azurecr.io/mirror/nginx:1.25$`)),
					ghttp.RespondWithJSONEncoded(http.StatusNotFound, map[string]string{"message": "No such image"}),
				),
			)

			gomega.Expect(engine.Remove(context.Background(), src, dst)).To(gomega.Succeed())
		})

		ginkgo.It("should report other failures", func() {
			mockServer.AppendHandlers(ghttp.RespondWithJSONEncoded(
				http.StatusConflict,
				map[string]string{"message": "image is being used by running container"},
			))

			err := engine.Remove(context.Background(), src)
			gomega.Expect(err).To(gomega.MatchError(runtime.ErrRemoveFailed))
		})
	})
})
