package actions_test

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"

	"github.com/nicholas-fedor/harborlift/internal/actions"
	"github.com/nicholas-fedor/harborlift/pkg/filters"
	"github.com/nicholas-fedor/harborlift/pkg/types"
	"github.com/nicholas-fedor/harborlift/pkg/types/mocks"
)

const (
	srcHost = "harbor.example.com"
	dstHost = "myacr.azurecr.io"
)

func image(host, project, repository, tag string) types.ImageRef {
	return types.ImageRef{Host: host, Project: project, Repository: repository, Tag: tag}
}

func src(repository, tag string) types.ImageRef {
	return image(srcHost, "library", repository, tag)
}

func dst(repository, tag string) types.ImageRef {
	return image(dstHost, "mirror", repository, tag)
}

func baseParams() types.TransferParams {
	return types.TransferParams{
		Source: types.RegistryConfig{
			Host: srcHost, Project: "library", Username: "robot", Password: "secret",
		},
		Destination: types.RegistryConfig{
			Host: dstHost, Project: "mirror", Username: "acr", Password: "token",
		},
		Cleanup: true,
	}
}

var _ = ginkgo.Describe("Transfer", func() {
	var (
		ctx     context.Context
		rt      *fakeRuntime
		catalog *fakeCatalog
		params  types.TransferParams
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		rt = newFakeRuntime()
		catalog = &fakeCatalog{
			repositories: []string{"nginx", "tools/redis"},
			tags: map[string][]string{
				"nginx":       {"1.25", "1.24"},
				"tools/redis": {"7"},
			},
		}
		params = baseParams()
	})

	ginkgo.When("nothing fails", func() {
		ginkgo.It("runs one pull, tag, push and cleanup sequence per image", func() {
			report, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(rt.Calls()).To(gomega.Equal([]string{
				"login " + srcHost,
				"login " + dstHost,
				"pull " + src("nginx", "1.25").String(),
				"tag " + src("nginx", "1.25").String() + " " + dst("nginx", "1.25").String(),
				"push " + dst("nginx", "1.25").String(),
				"remove " + src("nginx", "1.25").String() + " " + dst("nginx", "1.25").String(),
				"pull " + src("nginx", "1.24").String(),
				"tag " + src("nginx", "1.24").String() + " " + dst("nginx", "1.24").String(),
				"push " + dst("nginx", "1.24").String(),
				"remove " + src("nginx", "1.24").String() + " " + dst("nginx", "1.24").String(),
				"pull " + src("tools/redis", "7").String(),
				"tag " + src("tools/redis", "7").String() + " " + dst("tools/redis", "7").String(),
				"push " + dst("tools/redis", "7").String(),
				"remove " + src("tools/redis", "7").String() + " " + dst("tools/redis", "7").String(),
			}))

			gomega.Expect(report.Scanned()).To(gomega.HaveLen(3))
			gomega.Expect(report.Transferred()).To(gomega.HaveLen(3))
			gomega.Expect(report.Failed()).To(gomega.BeEmpty())
			gomega.Expect(report.Transferred()[0].Destination()).To(gomega.Equal("myacr.azurecr.io/mirror/nginx:1.24"))
		})

		ginkgo.It("scales with repositories times tags", func() {
			catalog.repositories = []string{"a", "b", "c"}
			catalog.tags = map[string][]string{
				"a": {"1", "2", "3", "4"},
				"b": {"1", "2", "3", "4"},
				"c": {"1", "2", "3", "4"},
			}

			report, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			for _, step := range []string{"pull", "tag", "push", "remove"} {
				gomega.Expect(rt.Count(step)).To(gomega.Equal(12), step)
			}

			gomega.Expect(report.Transferred()).To(gomega.HaveLen(12))
		})

		ginkgo.It("keeps local copies when cleanup is disabled", func() {
			params.Cleanup = false

			_, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(rt.Count("remove")).To(gomega.BeZero())
		})

		ginkgo.It("produces an empty report for an empty project", func() {
			catalog.repositories = nil

			report, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(report.All()).To(gomega.BeEmpty())
			gomega.Expect(rt.Count("pull")).To(gomega.BeZero())
		})
	})

	ginkgo.When("an image fails", func() {
		ginkgo.It("isolates the failure and still cleans up the pulled image", func() {
			rt.failOn("push "+dst("nginx", "1.25").String(), -1)

			report, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(report.Failed()).To(gomega.HaveLen(1))
			gomega.Expect(report.Failed()[0].Source()).To(gomega.Equal(src("nginx", "1.25").String()))
			gomega.Expect(report.Failed()[0].Error()).To(gomega.ContainSubstring("fake runtime failure"))
			gomega.Expect(report.Transferred()).To(gomega.HaveLen(2))
			gomega.Expect(rt.Calls()).To(gomega.ContainElement(
				"remove " + src("nginx", "1.25").String() + " " + dst("nginx", "1.25").String(),
			))
		})

		ginkgo.It("removes only the source when tagging fails", func() {
			rt.failOn("tag "+src("tools/redis", "7").String()+" "+dst("tools/redis", "7").String(), -1)

			_, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(rt.Calls()).To(gomega.ContainElement("remove " + src("tools/redis", "7").String()))
			gomega.Expect(rt.Calls()).NotTo(gomega.ContainElement("push " + dst("tools/redis", "7").String()))
		})

		ginkgo.It("does not clean up when the pull failed", func() {
			rt.failOn("pull "+src("tools/redis", "7").String(), -1)

			report, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(report.Failed()).To(gomega.HaveLen(1))
			gomega.Expect(rt.Count("remove")).To(gomega.Equal(2))
		})

		ginkgo.It("treats cleanup failures as warnings", func() {
			rt.failOn("remove "+src("nginx", "1.24").String()+" "+dst("nginx", "1.24").String(), -1)

			report, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(report.Transferred()).To(gomega.HaveLen(3))
		})

		ginkgo.It("aborts on the first failure with fail-fast", func() {
			params.FailFast = true
			rt.failOn("push "+dst("nginx", "1.25").String(), -1)

			report, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).To(gomega.MatchError(actions.ErrSessionAborted))
			gomega.Expect(report.Failed()).To(gomega.HaveLen(1))
			gomega.Expect(report.Transferred()).To(gomega.BeEmpty())
			gomega.Expect(rt.Count("pull")).To(gomega.Equal(1))
		})
	})

	ginkgo.When("a step fails transiently", func() {
		ginkgo.It("retries it until it succeeds", func() {
			params.RetryTimeout = 2 * time.Second
			params.RetryInterval = 10 * time.Millisecond
			rt.failOn("pull "+src("nginx", "1.25").String(), 2)

			report, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(report.Transferred()).To(gomega.HaveLen(3))
			gomega.Expect(rt.Count("pull")).To(gomega.Equal(5))
		})

		ginkgo.It("gives up once the retry timeout expired", func() {
			params.RetryTimeout = 100 * time.Millisecond
			params.RetryInterval = 10 * time.Millisecond
			rt.failOn("pull "+src("tools/redis", "7").String(), -1)

			report, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(report.Failed()).To(gomega.HaveLen(1))
			gomega.Expect(report.Failed()[0].Error()).To(gomega.ContainSubstring("fake runtime failure"))
		})

		ginkgo.It("runs each step once without a retry timeout", func() {
			rt.failOn("pull "+src("nginx", "1.25").String(), 1)

			report, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(report.Failed()).To(gomega.HaveLen(1))
			gomega.Expect(rt.Count("pull")).To(gomega.Equal(3))
		})
	})

	ginkgo.When("filters are set", func() {
		ginkgo.It("skips excluded repositories and tags", func() {
			params.RepositoryFilter = filters.FilterByNames([]string{"nginx"}, filters.NoFilter)
			params.TagFilter = filters.FilterByExcludes([]string{"1.24"}, filters.NoFilter)

			report, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(report.Transferred()).To(gomega.HaveLen(1))
			gomega.Expect(report.Transferred()[0].Tag()).To(gomega.Equal("1.25"))
			gomega.Expect(report.Skipped()).To(gomega.HaveLen(2))

			for _, skipped := range report.Skipped() {
				gomega.Expect(skipped.Error()).To(gomega.Equal("excluded by filter"))
			}

			gomega.Expect(rt.Count("pull")).To(gomega.Equal(1))
		})
	})

	ginkgo.When("running a dry run", func() {
		ginkgo.It("lists images without touching the runtime", func() {
			params.DryRun = true

			report, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(rt.Calls()).To(gomega.BeEmpty())
			gomega.Expect(report.Skipped()).To(gomega.HaveLen(3))
			gomega.Expect(report.Scanned()).To(gomega.BeEmpty())
			gomega.Expect(report.Skipped()[0].Error()).To(gomega.Equal("dry run"))
		})
	})

	ginkgo.When("transferring concurrently", func() {
		ginkgo.It("bounds the number of parallel transfers", func() {
			catalog.repositories = []string{"app"}
			catalog.tags = map[string][]string{"app": {"1", "2", "3", "4", "5", "6", "7", "8"}}
			params.Concurrency = 3
			rt.delay = 20 * time.Millisecond

			report, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(report.Transferred()).To(gomega.HaveLen(8))

			rt.mu.Lock()
			peak := rt.peak
			rt.mu.Unlock()

			gomega.Expect(peak).To(gomega.BeNumerically("<=", 3))
			gomega.Expect(peak).To(gomega.BeNumerically(">", 1))
		})
	})

	ginkgo.When("listing fails", func() {
		ginkgo.It("marks the repository failed and continues", func() {
			catalog.tagErrors = map[string]error{"nginx": errors.New("harbor unavailable")}

			report, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(report.Failed()).To(gomega.HaveLen(1))
			gomega.Expect(report.Failed()[0].Source()).To(gomega.Equal("harbor.example.com/library/nginx"))
			gomega.Expect(report.Transferred()).To(gomega.HaveLen(1))
		})

		ginkgo.It("aborts on a tag listing failure with fail-fast", func() {
			params.FailFast = true
			catalog.tagErrors = map[string]error{"nginx": errors.New("harbor unavailable")}

			_, err := actions.Transfer(ctx, catalog, rt, params)
			gomega.Expect(err).To(gomega.MatchError(actions.ErrSessionAborted))
			gomega.Expect(rt.Count("pull")).To(gomega.BeZero())
		})

		ginkgo.It("aborts when repositories cannot be listed", func() {
			mockCatalog := mocks.NewMockCatalog(ginkgo.GinkgoT())
			mockCatalog.EXPECT().ListRepositories(mock.Anything, "library").Return(nil, errors.New("forbidden"))

			_, err := actions.Transfer(ctx, mockCatalog, rt, params)
			gomega.Expect(err).To(gomega.MatchError(actions.ErrListRepositoriesFailed))
		})
	})

	ginkgo.Describe("registry logins", func() {
		var mockRuntime *mocks.MockRuntime

		ginkgo.BeforeEach(func() {
			mockRuntime = mocks.NewMockRuntime(ginkgo.GinkgoT())
			mockRuntime.EXPECT().Name().Return("mock").Maybe()
			catalog.repositories = nil
		})

		ginkgo.It("aborts when the source login fails", func() {
			mockRuntime.EXPECT().Login(mock.Anything, params.Source).Return(errors.New("denied"))

			_, err := actions.Transfer(ctx, catalog, mockRuntime, params)
			gomega.Expect(err).To(gomega.MatchError(actions.ErrSourceLoginFailed))
		})

		ginkgo.It("aborts when the destination login fails", func() {
			mockRuntime.EXPECT().Login(mock.Anything, params.Source).Return(nil)
			mockRuntime.EXPECT().Login(mock.Anything, params.Destination).Return(errors.New("denied"))

			_, err := actions.Transfer(ctx, catalog, mockRuntime, params)
			gomega.Expect(err).To(gomega.MatchError(actions.ErrDestinationLoginFailed))
		})

		ginkgo.It("runs the login command when the destination has no credentials", func() {
			params.Destination.Username = ""
			params.Destination.Password = ""
			params.DestinationLoginCommand = "exit 3"
			mockRuntime.EXPECT().Login(mock.Anything, params.Source).Return(nil)

			_, err := actions.Transfer(ctx, catalog, mockRuntime, params)
			gomega.Expect(err).To(gomega.MatchError(actions.ErrDestinationLoginFailed))
		})

		ginkgo.It("registers the destination after running its login command", func() {
			marker := filepath.Join(ginkgo.GinkgoT().TempDir(), "logged-in")
			params.Destination.Username = ""
			params.Destination.Password = ""
			params.DestinationLoginCommand = "touch " + marker
			mockRuntime.EXPECT().Login(mock.Anything, params.Source).Return(nil).Once()
			mockRuntime.EXPECT().Login(mock.Anything, params.Destination).
				RunAndReturn(func(context.Context, types.RegistryConfig) error {
					gomega.Expect(marker).To(gomega.BeAnExistingFile())

					return nil
				}).Once()

			_, err := actions.Transfer(ctx, catalog, mockRuntime, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("registers a destination with an existing session", func() {
			params.Destination.Username = ""
			params.Destination.Password = ""
			params.Destination.Insecure = true
			mockRuntime.EXPECT().Login(mock.Anything, params.Source).Return(nil).Once()
			mockRuntime.EXPECT().Login(mock.Anything, params.Destination).Return(nil).Once()

			_, err := actions.Transfer(ctx, catalog, mockRuntime, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("skips logins in a dry run", func() {
			params.DryRun = true

			_, err := actions.Transfer(ctx, catalog, mockRuntime, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})
	})
})
