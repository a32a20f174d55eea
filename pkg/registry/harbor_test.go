package registry_test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/nicholas-fedor/harborlift/pkg/registry"
	"github.com/nicholas-fedor/harborlift/pkg/types"
)

type named struct {
	Name string `json:"name"`
}

type artifact struct {
	Digest string  `json:"digest"`
	Tags   []named `json:"tags"`
}

var _ = ginkgo.Describe("the Harbor catalog client", func() {
	var (
		server *ghttp.Server
		client *registry.HarborClient
		cfg    types.RegistryConfig
	)

	ginkgo.BeforeEach(func() {
		server = ghttp.NewServer()
		cfg = types.RegistryConfig{
			Host:     server.Addr(),
			Project:  "library",
			Username: "robot$lift",
			Password: "secret",
			Insecure: true,
		}

		var err error
		client, err = registry.NewHarborClient(cfg)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
	})

	ginkgo.AfterEach(func() {
		server.Close()
	})

	ginkgo.Describe("ListRepositories", func() {
		ginkgo.It("should return names relative to the project", func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodGet, "/api/v2.0/projects/library/repositories", "page=1&page_size=100"),
				ghttp.VerifyBasicAuth("robot$lift", "secret"),
				ghttp.RespondWithJSONEncoded(http.StatusOK, []named{{Name: "library/nginx"}, {Name: "library/team/api"}}),
			))

			repos, err := client.ListRepositories(context.Background(), "library")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(repos).To(gomega.Equal([]string{"nginx", "team/api"}))
		})

		ginkgo.It("should follow pagination until a short page", func() {
			firstPage := make([]named, 100)
			for i := range firstPage {
				firstPage[i] = named{Name: fmt.Sprintf("library/repo-%03d", i)}
			}

			server.AppendHandlers(
				ghttp.CombineHandlers(
					ghttp.VerifyRequest(http.MethodGet, "/api/v2.0/projects/library/repositories", "page=1&page_size=100"),
					ghttp.RespondWithJSONEncoded(http.StatusOK, firstPage),
				),
				ghttp.CombineHandlers(
					ghttp.VerifyRequest(http.MethodGet, "/api/v2.0/projects/library/repositories", "page=2&page_size=100"),
					ghttp.RespondWithJSONEncoded(http.StatusOK, []named{{Name: "library/last"}}),
				),
			)

			repos, err := client.ListRepositories(context.Background(), "library")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(repos).To(gomega.HaveLen(101))
			gomega.Expect(repos[100]).To(gomega.Equal("last"))
			gomega.Expect(server.ReceivedRequests()).To(gomega.HaveLen(2))
		})

		ginkgo.It("should return an empty list for an empty project", func() {
			server.AppendHandlers(ghttp.RespondWithJSONEncoded(http.StatusOK, []named{}))

			repos, err := client.ListRepositories(context.Background(), "library")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(repos).To(gomega.BeEmpty())
		})

		ginkgo.It("should fail on a non-success status", func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusUnauthorized, `{"errors":[{"code":"UNAUTHORIZED"}]}`))

			_, err := client.ListRepositories(context.Background(), "library")
			gomega.Expect(err).To(gomega.MatchError(registry.ErrCatalogRequest))
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("401"))
		})

		ginkgo.It("should fail on a malformed body", func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusOK, `{"not":"a list"`))

			_, err := client.ListRepositories(context.Background(), "library")
			gomega.Expect(err).To(gomega.MatchError(registry.ErrCatalogDecode))
		})
	})

	ginkgo.Describe("ListTags", func() {
		ginkgo.It("should list tags scoped to the repository", func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodGet, "/api/v2.0/projects/library/repositories/nginx/tags", "page=1&page_size=100"),
				ghttp.RespondWithJSONEncoded(http.StatusOK, []named{{Name: "1.25"}, {Name: "latest"}}),
			))

			tags, err := client.ListTags(context.Background(), "library", "nginx")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(tags).To(gomega.Equal([]string{"1.25", "latest"}))
		})

		ginkgo.It("should escape nested repository names twice", func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodGet, "/api/v2.0/projects/library/repositories/team%2Fapi/tags"),
				ghttp.RespondWithJSONEncoded(http.StatusOK, []named{{Name: "v1"}}),
			))

			tags, err := client.ListTags(context.Background(), "library", "team/api")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(tags).To(gomega.Equal([]string{"v1"}))
			gomega.Expect(server.ReceivedRequests()[0].URL.EscapedPath()).
				To(gomega.ContainSubstring("team%252Fapi"))
		})

		ginkgo.It("should flatten artifact tags in artifacts mode", func() {
			artifacts, err := registry.NewHarborClient(cfg, registry.WithTagListing(registry.TagListingArtifacts))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(
					http.MethodGet,
					"/api/v2.0/projects/library/repositories/nginx/artifacts",
					"with_tag=true&page=1&page_size=100",
				),
				ghttp.RespondWithJSONEncoded(http.StatusOK, []artifact{
					{Digest: "sha256:aaa", Tags: []named{{Name: "1.25"}, {Name: "stable"}}},
					{Digest: "sha256:bbb"},
					{Digest: "sha256:ccc", Tags: []named{{Name: "1.24"}}},
				}),
			))

			tags, err := artifacts.ListTags(context.Background(), "library", "nginx")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(tags).To(gomega.Equal([]string{"1.25", "stable", "1.24"}))
		})
	})

	ginkgo.Describe("NewHarborClient", func() {
		ginkgo.It("should reject an unknown tag listing mode", func() {
			_, err := registry.NewHarborClient(cfg, registry.WithTagListing("manifests"))
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject an empty host", func() {
			_, err := registry.NewHarborClient(types.RegistryConfig{})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should send anonymous requests without a username", func() {
			anonymous, err := registry.NewHarborClient(types.RegistryConfig{Host: server.Addr(), Insecure: true})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			server.AppendHandlers(func(w http.ResponseWriter, r *http.Request) {
				_, _, ok := r.BasicAuth()
				gomega.Expect(ok).To(gomega.BeFalse())
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`[]`))
			})

			_, err = anonymous.ListRepositories(context.Background(), "public")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})
	})
})
