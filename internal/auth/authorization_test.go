package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	datamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/user"
)

var _ = ginkgo.Describe("Authorization", func() {
	noticeWorkflowOps := []Operation{
		OpCreateNotice,
		OpUpdateNotice,
		OpApproveNotice,
		OpArchiveNotice,
		OpViewTracking,
	}

	ginkgo.Describe("Can", func() {
		ginkgo.Context("admin", func() {
			ginkgo.It("should allow every operation", func() {
				for _, op := range []Operation{
					OpCreateNotice, OpUpdateNotice, OpApproveNotice, OpArchiveNotice,
					OpViewTracking, OpManageDepartments, OpRegisterUser,
					OpViewDashboard, OpDirectNotify,
				} {
					gomega.Expect(Can(datamodel.RoleAdmin, op)).To(gomega.BeTrue(), string(op))
				}
			})
		})

		ginkgo.Context("department head and IT manager", func() {
			ginkgo.It("should allow the notice workflow", func() {
				for _, role := range []string{datamodel.RoleDepartmentHead, datamodel.RoleITManager} {
					for _, op := range noticeWorkflowOps {
						gomega.Expect(Can(role, op)).To(gomega.BeTrue(), role+" "+string(op))
					}
				}
			})

			ginkgo.It("should allow department management and direct notification", func() {
				for _, role := range []string{datamodel.RoleDepartmentHead, datamodel.RoleITManager} {
					gomega.Expect(Can(role, OpManageDepartments)).To(gomega.BeTrue(), role)
					gomega.Expect(Can(role, OpDirectNotify)).To(gomega.BeTrue(), role)
				}
			})

			ginkgo.It("should not allow user registration", func() {
				gomega.Expect(Can(datamodel.RoleDepartmentHead, OpRegisterUser)).To(gomega.BeFalse())
				gomega.Expect(Can(datamodel.RoleITManager, OpRegisterUser)).To(gomega.BeFalse())
			})
		})

		ginkgo.Context("section chief and staff", func() {
			ginkgo.It("should deny the notice workflow", func() {
				for _, role := range []string{datamodel.RoleSectionChief, datamodel.RoleStaff} {
					for _, op := range noticeWorkflowOps {
						gomega.Expect(Can(role, op)).To(gomega.BeFalse(), role+" "+string(op))
					}
				}
			})

			ginkgo.It("should deny administration operations", func() {
				for _, role := range []string{datamodel.RoleSectionChief, datamodel.RoleStaff} {
					gomega.Expect(Can(role, OpManageDepartments)).To(gomega.BeFalse(), role)
					gomega.Expect(Can(role, OpRegisterUser)).To(gomega.BeFalse(), role)
					gomega.Expect(Can(role, OpDirectNotify)).To(gomega.BeFalse(), role)
				}
			})

			ginkgo.It("should deny dashboard views", func() {
				gomega.Expect(Can(datamodel.RoleSectionChief, OpViewDashboard)).To(gomega.BeFalse())
				gomega.Expect(Can(datamodel.RoleStaff, OpViewDashboard)).To(gomega.BeFalse())
			})
		})

		ginkgo.Context("unknown inputs", func() {
			ginkgo.It("should deny an unknown role", func() {
				gomega.Expect(Can("superuser", OpCreateNotice)).To(gomega.BeFalse())
				gomega.Expect(Can("", OpViewDashboard)).To(gomega.BeFalse())
			})

			ginkgo.It("should deny an unknown operation", func() {
				gomega.Expect(Can(datamodel.RoleAdmin, Operation("notice:delete"))).To(gomega.BeFalse())
			})
		})
	})
})
