package postgres

import (
	"fmt"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	departmentDatamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/department"
	noticeDatamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/notice"
	userDatamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/user"
)

func TestDashboardRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "DashboardRepository Suite")
}

var _ = Describe("DashboardRepository", func() {
	var (
		db   *gorm.DB
		repo *DashboardRepository
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&userDatamodel.User{},
			&departmentDatamodel.Department{},
			&noticeDatamodel.Notice{},
			&noticeDatamodel.Distribution{},
			&noticeDatamodel.Tracking{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = NewDashboardRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	seedUser := func(id, departmentID int64) {
		dept := departmentID
		Expect(db.Create(&userDatamodel.User{
			ID:           id,
			Name:         "member",
			Email:        fmt.Sprintf("member%d@nea.local", id),
			Role:         userDatamodel.RoleStaff,
			DepartmentID: &dept,
			IsActive:     true,
			PasswordHash: "x",
		}).Error).To(Succeed())
	}

	seedNotice := func(id int64, priority string, createdAt time.Time) {
		Expect(db.Create(&noticeDatamodel.Notice{
			ID:          id,
			Title:       "notice",
			Content:     "body",
			Priority:    priority,
			Status:      noticeDatamodel.StatusApproved,
			CreatedByID: 1,
			CreatedAt:   createdAt,
		}).Error).To(Succeed())
	}

	Describe("AdminStats", func() {
		It("should count notices, deliveries and departments", func() {
			// Given: two departments, three notices, mixed email outcomes
			Expect(db.Create(&departmentDatamodel.Department{ID: 1, Name: "HQ"}).Error).To(Succeed())
			Expect(db.Create(&departmentDatamodel.Department{ID: 2, Name: "Regional"}).Error).To(Succeed())

			now := time.Now()
			seedNotice(1, noticeDatamodel.PriorityUrgent, now)
			seedNotice(2, noticeDatamodel.PriorityNormal, now)
			seedNotice(3, noticeDatamodel.PriorityUrgent, now)

			Expect(db.Create(&noticeDatamodel.Distribution{NoticeID: 1, DepartmentID: 1, EmailStatus: "sent"}).Error).To(Succeed())
			Expect(db.Create(&noticeDatamodel.Distribution{NoticeID: 1, DepartmentID: 2, EmailStatus: "failed"}).Error).To(Succeed())
			Expect(db.Create(&noticeDatamodel.Distribution{NoticeID: 2, DepartmentID: 1, EmailStatus: "sent"}).Error).To(Succeed())

			// When: computing the admin overview
			stats, err := repo.AdminStats()

			// Then: every counter reflects the seeded rows
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalNotices).To(Equal(int64(3)))
			Expect(stats.EmailDelivered).To(Equal(int64(2)))
			Expect(stats.EmailFailed).To(Equal(int64(1)))
			Expect(stats.UrgentNotices).To(Equal(int64(2)))
			Expect(stats.Departments).To(Equal(int64(2)))
		})

		It("should return zeros on an empty database", func() {
			stats, err := repo.AdminStats()

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalNotices).To(BeZero())
			Expect(stats.Departments).To(BeZero())
		})
	})

	Describe("RecentNoticesForDepartment", func() {
		It("should return only notices distributed to the department, newest first", func() {
			now := time.Now()
			seedNotice(1, noticeDatamodel.PriorityNormal, now.Add(-2*time.Hour))
			seedNotice(2, noticeDatamodel.PriorityNormal, now.Add(-1*time.Hour))
			seedNotice(3, noticeDatamodel.PriorityNormal, now)

			Expect(db.Create(&noticeDatamodel.Distribution{NoticeID: 1, DepartmentID: 1}).Error).To(Succeed())
			Expect(db.Create(&noticeDatamodel.Distribution{NoticeID: 2, DepartmentID: 1}).Error).To(Succeed())
			Expect(db.Create(&noticeDatamodel.Distribution{NoticeID: 3, DepartmentID: 2}).Error).To(Succeed())

			summaries, err := repo.RecentNoticesForDepartment(1, 10)

			Expect(err).NotTo(HaveOccurred())
			Expect(summaries).To(HaveLen(2))
			Expect(summaries[0].ID).To(Equal(int64(2)))
			Expect(summaries[1].ID).To(Equal(int64(1)))
		})

		It("should honor the limit", func() {
			now := time.Now()
			for i := int64(1); i <= 12; i++ {
				seedNotice(i, noticeDatamodel.PriorityNormal, now.Add(time.Duration(i)*time.Minute))
				Expect(db.Create(&noticeDatamodel.Distribution{NoticeID: i, DepartmentID: 1}).Error).To(Succeed())
			}

			summaries, err := repo.RecentNoticesForDepartment(1, 10)

			Expect(err).NotTo(HaveOccurred())
			Expect(summaries).To(HaveLen(10))
			Expect(summaries[0].ID).To(Equal(int64(12)))
		})
	})

	Describe("UnseenMemberCount", func() {
		It("should count members with no view timestamp anywhere", func() {
			seedUser(1, 1)
			seedUser(2, 1)
			seedUser(3, 2)

			now := time.Now()
			Expect(db.Create(&noticeDatamodel.Tracking{UserID: 1, NoticeID: 1, ViewedAt: &now}).Error).To(Succeed())
			// user 2 has a tracking row but never viewed
			Expect(db.Create(&noticeDatamodel.Tracking{UserID: 2, NoticeID: 1}).Error).To(Succeed())

			count, err := repo.UnseenMemberCount(1)

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("DownloadMemberCount", func() {
		It("should count members with at least one download", func() {
			seedUser(1, 1)
			seedUser(2, 1)

			now := time.Now()
			Expect(db.Create(&noticeDatamodel.Tracking{UserID: 1, NoticeID: 1, Downloaded: true, DownloadTime: &now}).Error).To(Succeed())
			Expect(db.Create(&noticeDatamodel.Tracking{UserID: 2, NoticeID: 1, ViewedAt: &now}).Error).To(Succeed())

			count, err := repo.DownloadMemberCount(1)

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})
	})
})
