package user

import (
	"errors"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

type mockRepo struct {
	usersByID    map[int64]*User
	usersByEmail map[string]*User
	contacts     map[int64][]Contact
	nextID       int64
	createErr    error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		usersByID:    map[int64]*User{},
		usersByEmail: map[string]*User{},
		contacts:     map[int64][]Contact{},
		nextID:       1,
	}
}

func (m *mockRepo) Create(u *User) error {
	if m.createErr != nil {
		return m.createErr
	}
	u.ID = m.nextID
	m.nextID++
	m.usersByID[u.ID] = u
	m.usersByEmail[u.Email] = u
	return nil
}

func (m *mockRepo) GetByID(userID int64) (*User, error) {
	if u, ok := m.usersByID[userID]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (m *mockRepo) GetByEmail(email string) (*User, error) {
	if u, ok := m.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (m *mockRepo) ContactsByDepartment(departmentID int64) ([]Contact, error) {
	return m.contacts[departmentID], nil
}

type mockHasher struct{}

func (mockHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

var _ = ginkgo.Describe("UserService", func() {
	var (
		service *Service
		repo    *mockRepo
	)

	ginkgo.BeforeEach(func() {
		repo = newMockRepo()
		service = NewService(repo, mockHasher{})
	})

	ginkgo.Describe("Register", func() {
		ginkgo.Context("with a valid payload", func() {
			ginkgo.It("should create an active user with hashed password", func() {
				// Given
				deptID := int64(7)
				dto := RegisterDTO{
					Email:        "new@nea.local",
					Name:         "Gita Rai",
					Password:     "longenough",
					Role:         "section_chief",
					DepartmentID: &deptID,
				}

				// When
				created, err := service.Register(dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(created.ID).To(gomega.Equal(int64(1)))
				gomega.Expect(created.IsActive).To(gomega.BeTrue())
				gomega.Expect(created.PasswordHash).To(gomega.Equal("hashed:longenough"))
				gomega.Expect(created.Role).To(gomega.Equal("section_chief"))
				gomega.Expect(*created.DepartmentID).To(gomega.Equal(int64(7)))
			})

			ginkgo.It("should default the role to staff", func() {
				// Given
				dto := RegisterDTO{
					Email:    "plain@nea.local",
					Name:     "Bikash Lama",
					Password: "longenough",
				}

				// When
				created, err := service.Register(dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(created.Role).To(gomega.Equal("staff"))
			})
		})

		ginkgo.Context("with an invalid payload", func() {
			ginkgo.It("should reject missing email", func() {
				_, err := service.Register(RegisterDTO{Name: "X", Password: "longenough"})
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("email is required"))
			})

			ginkgo.It("should reject a short password", func() {
				_, err := service.Register(RegisterDTO{Email: "a@b.c", Name: "X", Password: "short"})
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("at least 8 characters"))
			})

			ginkgo.It("should reject an unknown role", func() {
				_, err := service.Register(RegisterDTO{Email: "a@b.c", Name: "X", Password: "longenough", Role: "superuser"})
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("role is invalid"))
			})
		})

		ginkgo.Context("when the email is taken", func() {
			ginkgo.It("should return ErrDuplicateEmail", func() {
				// Given
				_, err := service.Register(RegisterDTO{Email: "dup@nea.local", Name: "First", Password: "longenough"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When
				_, err = service.Register(RegisterDTO{Email: "dup@nea.local", Name: "Second", Password: "longenough"})

				// Then
				gomega.Expect(errors.Is(err, ErrDuplicateEmail)).To(gomega.BeTrue())
			})
		})
	})

	ginkgo.Describe("ContactsByDepartment", func() {
		ginkgo.It("should return the department's contact rows", func() {
			// Given
			repo.contacts[3] = []Contact{
				{UserID: 1, Email: "a@nea.local", Phone: "9841000001"},
				{UserID: 2, Email: "b@nea.local"},
			}

			// When
			contacts, err := service.ContactsByDepartment(3)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(contacts).To(gomega.HaveLen(2))
			gomega.Expect(contacts[0].Phone).To(gomega.Equal("9841000001"))
		})

		ginkgo.It("should return empty for a department with no members", func() {
			contacts, err := service.ContactsByDepartment(99)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(contacts).To(gomega.BeEmpty())
		})
	})
})
