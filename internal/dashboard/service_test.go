package dashboard

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	departmentDomain "github.com/frahmantamala/notice-management/internal/department"
)

func TestDashboard(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Dashboard Module Suite")
}

type mockRepo struct {
	stats     *AdminStats
	recent    []NoticeSummary
	unseen    int64
	downloads int64
	err       error
}

func (m *mockRepo) AdminStats() (*AdminStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

func (m *mockRepo) RecentNoticesForDepartment(departmentID int64, limit int) ([]NoticeSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.recent) {
		return m.recent[:limit], nil
	}
	return m.recent, nil
}

func (m *mockRepo) UnseenMemberCount(departmentID int64) (int64, error) {
	return m.unseen, m.err
}

func (m *mockRepo) DownloadMemberCount(departmentID int64) (int64, error) {
	return m.downloads, m.err
}

type mockDepartments struct {
	known map[int64]bool
}

func (m *mockDepartments) GetByID(id int64) (*departmentDomain.Department, error) {
	if !m.known[id] {
		return nil, departmentDomain.ErrNotFound
	}
	return &departmentDomain.Department{ID: id, Name: "Transmission Directorate"}, nil
}

var _ = ginkgo.Describe("DashboardService", func() {
	var (
		service     *Service
		repo        *mockRepo
		departments *mockDepartments
	)

	ginkgo.BeforeEach(func() {
		repo = &mockRepo{
			stats:     &AdminStats{TotalNotices: 5, EmailDelivered: 3, EmailFailed: 1, UrgentNotices: 2, Departments: 4},
			recent:    []NoticeSummary{{ID: 2, Title: "b"}, {ID: 1, Title: "a"}},
			unseen:    7,
			downloads: 3,
		}
		departments = &mockDepartments{known: map[int64]bool{1: true}}
		service = NewService(repo, departments, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	ginkgo.Describe("AdminOverview", func() {
		ginkgo.It("should surface the aggregated counts", func() {
			stats, err := service.AdminOverview()

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(stats.TotalNotices).To(gomega.Equal(int64(5)))
			gomega.Expect(stats.EmailFailed).To(gomega.Equal(int64(1)))
		})

		ginkgo.It("should propagate repository errors", func() {
			repo.err = errors.New("connection refused")
			_, err := service.AdminOverview()
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("DepartmentOverview", func() {
		ginkgo.It("should assemble the per-department view", func() {
			stats, err := service.DepartmentOverview(1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(stats.DepartmentID).To(gomega.Equal(int64(1)))
			gomega.Expect(stats.RecentNotices).To(gomega.HaveLen(2))
			gomega.Expect(stats.UnseenMembers).To(gomega.Equal(int64(7)))
			gomega.Expect(stats.Downloads).To(gomega.Equal(int64(3)))
		})

		ginkgo.It("should reject an unknown department", func() {
			_, err := service.DepartmentOverview(99)
			gomega.Expect(err).To(gomega.Equal(departmentDomain.ErrNotFound))
		})
	})
})
