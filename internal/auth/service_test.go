package auth

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock repository for testing
type mockRepository struct {
	usersByEmail  map[string]*User
	hashes        map[string]string // email -> password hash
	usersByID     map[int64]*User
	revoked       map[string]bool // token hash -> revoked
	revokedUsers  []int64
	returnError   bool
	errorToReturn error
}

func newMockRepository() *mockRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.DefaultCost)

	deptID := int64(3)
	staff := &User{ID: 1, Name: "Ramesh Thapa", Email: "staff@nea.local", Role: "staff", DepartmentID: &deptID}
	admin := &User{ID: 2, Name: "Sita Sharma", Email: "admin@nea.local", Role: "admin"}
	head := &User{ID: 3, Name: "Hari Koirala", Email: "head@nea.local", Role: "department_head", DepartmentID: &deptID}

	return &mockRepository{
		usersByEmail: map[string]*User{
			staff.Email: staff,
			admin.Email: admin,
			head.Email:  head,
		},
		hashes: map[string]string{
			staff.Email: string(hashedPassword),
			admin.Email: string(hashedPassword),
			head.Email:  string(hashedPassword),
		},
		usersByID: map[int64]*User{
			1: staff,
			2: admin,
			3: head,
		},
		revoked: map[string]bool{},
	}
}

func (m *mockRepository) GetByEmail(email string) (*User, string, error) {
	if m.returnError {
		return nil, "", m.errorToReturn
	}
	if user, ok := m.usersByEmail[email]; ok {
		return user, m.hashes[email], nil
	}
	return nil, "", errors.New("user not found")
}

func (m *mockRepository) GetByID(userID int64) (*User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	if user, ok := m.usersByID[userID]; ok {
		return user, nil
	}
	return nil, errors.New("user not found")
}

func (m *mockRepository) RevokeToken(tokenHash string, userID int64, expiresAt time.Time) error {
	if m.returnError {
		return m.errorToReturn
	}
	m.revoked[tokenHash] = true
	m.revokedUsers = append(m.revokedUsers, userID)
	return nil
}

func (m *mockRepository) IsTokenRevoked(tokenHash string) (bool, error) {
	if m.returnError {
		return false, m.errorToReturn
	}
	return m.revoked[tokenHash], nil
}

func (m *mockRepository) setError(err error) {
	m.returnError = true
	m.errorToReturn = err
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service       *Service
		mockRepo      *mockRepository
		tokenGen      *JWTTokenGenerator
		accessSecret  string        = "test-access-secret-0123456789abcdef"
		refreshSecret string        = "test-refresh-secret-0123456789abcde"
		accessTTL     time.Duration = 60 * time.Minute
		refreshTTL    time.Duration = 24 * time.Hour
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRepository()
		tokenGen = NewJWTTokenGenerator(accessSecret, refreshSecret, accessTTL, refreshTTL)
		service = NewService(mockRepo, tokenGen, bcrypt.MinCost, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return both tokens and the user record", func() {
				// Given
				dto := LoginDTO{
					Email:    "staff@nea.local",
					Password: "correct_password",
				}

				// When
				resp, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(resp.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(resp.RefreshToken).ToNot(gomega.BeEmpty())
				gomega.Expect(resp.AccessToken).ToNot(gomega.Equal(resp.RefreshToken))
				gomega.Expect(resp.User).ToNot(gomega.BeNil())
				gomega.Expect(resp.User.ID).To(gomega.Equal(int64(1)))
				gomega.Expect(resp.User.Role).To(gomega.Equal("staff"))
			})

			ginkgo.It("should embed identity and role in the access token", func() {
				// Given
				dto := LoginDTO{
					Email:    "admin@nea.local",
					Password: "correct_password",
				}

				// When
				resp, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := service.ValidateAccessToken(resp.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal("2"))
				gomega.Expect(claims.Email).To(gomega.Equal("admin@nea.local"))
				gomega.Expect(claims.Role).To(gomega.Equal("admin"))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should return error for unknown email", func() {
				// Given
				dto := LoginDTO{
					Email:    "nobody@nea.local",
					Password: "any_password",
				}

				// When
				resp, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
				gomega.Expect(resp).To(gomega.BeNil())
			})

			ginkgo.It("should return error for wrong password", func() {
				// Given
				dto := LoginDTO{
					Email:    "staff@nea.local",
					Password: "wrong_password",
				}

				// When
				resp, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
				gomega.Expect(resp).To(gomega.BeNil())
			})
		})

		ginkgo.Context("when input validation fails", func() {
			ginkgo.It("should return validation error for empty email", func() {
				// Given
				dto := LoginDTO{
					Email:    "",
					Password: "password",
				}

				// When
				resp, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("email is required"))
				gomega.Expect(resp).To(gomega.BeNil())
			})

			ginkgo.It("should return validation error for empty password", func() {
				// Given
				dto := LoginDTO{
					Email:    "staff@nea.local",
					Password: "",
				}

				// When
				resp, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("password is required"))
				gomega.Expect(resp).To(gomega.BeNil())
			})
		})

		ginkgo.Context("when repository returns error", func() {
			ginkgo.It("should return invalid credentials error", func() {
				// Given
				mockRepo.setError(errors.New("database error"))
				dto := LoginDTO{
					Email:    "staff@nea.local",
					Password: "correct_password",
				}

				// When
				resp, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
				gomega.Expect(resp).To(gomega.BeNil())
			})
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		var validRefreshToken string

		ginkgo.BeforeEach(func() {
			dto := LoginDTO{
				Email:    "staff@nea.local",
				Password: "correct_password",
			}
			resp, err := service.Authenticate(dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			validRefreshToken = resp.RefreshToken
		})

		ginkgo.Context("when refresh token is valid", func() {
			ginkgo.It("should return new token pair", func() {
				// When
				newTokens, err := service.RefreshTokens(validRefreshToken)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(newTokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(newTokens.RefreshToken).ToNot(gomega.BeEmpty())
			})

			ginkgo.It("should preserve user identity in new tokens", func() {
				// When
				newTokens, err := service.RefreshTokens(validRefreshToken)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := service.ValidateAccessToken(newTokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal("1"))
				gomega.Expect(claims.Email).To(gomega.Equal("staff@nea.local"))
			})
		})

		ginkgo.Context("when refresh token has been revoked", func() {
			ginkgo.It("should reject the token", func() {
				// Given
				err := service.Logout(validRefreshToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When
				tokens, err := service.RefreshTokens(validRefreshToken)

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrTokenRevoked))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
			})
		})

		ginkgo.Context("when refresh token is invalid", func() {
			ginkgo.It("should return error for malformed token", func() {
				// When
				tokens, err := service.RefreshTokens("invalid.token.format")

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).To(gomega.BeEmpty())
			})

			ginkgo.It("should return error for an access token used as refresh token", func() {
				// Given: access tokens are signed with a different secret
				dto := LoginDTO{
					Email:    "staff@nea.local",
					Password: "correct_password",
				}
				resp, err := service.Authenticate(dto)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When
				tokens, err := service.RefreshTokens(resp.AccessToken)

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
			})

			ginkgo.It("should return error for expired token", func() {
				// Given
				expiredTokenGen := NewJWTTokenGenerator(accessSecret, refreshSecret, accessTTL, refreshTTL)
				expiredTokenGen.RefreshTokenTTL = -1 * time.Hour
				user := &User{ID: 1, Email: "staff@nea.local", Role: "staff"}
				expiredToken, err := expiredTokenGen.GenerateRefreshToken(user)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When
				tokens, err := service.RefreshTokens(expiredToken)

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrTokenExpired))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
			})
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.Context("when refresh token is valid", func() {
			ginkgo.It("should record the token digest in the blacklist", func() {
				// Given
				dto := LoginDTO{
					Email:    "head@nea.local",
					Password: "correct_password",
				}
				resp, err := service.Authenticate(dto)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When
				err = service.Logout(resp.RefreshToken)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(mockRepo.revoked).To(gomega.HaveKey(TokenHash(resp.RefreshToken)))
				gomega.Expect(mockRepo.revokedUsers).To(gomega.ContainElement(int64(3)))
			})
		})

		ginkgo.Context("when refresh token is invalid", func() {
			ginkgo.It("should not touch the blacklist", func() {
				// When
				err := service.Logout("garbage.token.value")

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(mockRepo.revoked).To(gomega.BeEmpty())
			})
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		var validAccessToken string

		ginkgo.BeforeEach(func() {
			dto := LoginDTO{
				Email:    "head@nea.local",
				Password: "correct_password",
			}
			resp, err := service.Authenticate(dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			validAccessToken = resp.AccessToken
		})

		ginkgo.Context("when access token is valid", func() {
			ginkgo.It("should return claims with user information", func() {
				// When
				claims, err := service.ValidateAccessToken(validAccessToken)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims).ToNot(gomega.BeNil())
				gomega.Expect(claims.UserID).To(gomega.Equal("3"))
				gomega.Expect(claims.Role).To(gomega.Equal("department_head"))
				gomega.Expect(claims.ExpiresAt).ToNot(gomega.BeNil())
			})
		})

		ginkgo.Context("when access token is invalid", func() {
			ginkgo.It("should return error for malformed token", func() {
				// When
				claims, err := service.ValidateAccessToken("invalid.token")

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(claims).To(gomega.BeNil())
			})

			ginkgo.It("should return error for empty token", func() {
				// When
				claims, err := service.ValidateAccessToken("")

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(claims).To(gomega.BeNil())
			})

			ginkgo.It("should return ErrTokenExpired for expired token", func() {
				// Given
				expiredGen := NewJWTTokenGenerator(accessSecret, refreshSecret, accessTTL, refreshTTL)
				expiredGen.AccessTokenTTL = -1 * time.Hour
				user := &User{ID: 1, Email: "staff@nea.local", Role: "staff"}
				expiredToken, err := expiredGen.GenerateAccessToken(user)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When
				claims, err := service.ValidateAccessToken(expiredToken)

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrTokenExpired))
				gomega.Expect(claims).To(gomega.BeNil())
			})
		})
	})

	ginkgo.Describe("HashPassword", func() {
		ginkgo.It("should return a hash that verifies against the password", func() {
			// Given
			password := "test_password_123"

			// When
			hash, err := service.HashPassword(password)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(hash).ToNot(gomega.BeEmpty())
			gomega.Expect(hash).ToNot(gomega.Equal(password))

			err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should generate different hashes for same password", func() {
			// Given
			password := "same_password"

			// When
			hash1, err1 := service.HashPassword(password)
			hash2, err2 := service.HashPassword(password)

			// Then
			gomega.Expect(err1).ToNot(gomega.HaveOccurred())
			gomega.Expect(err2).ToNot(gomega.HaveOccurred())
			gomega.Expect(hash1).ToNot(gomega.Equal(hash2))
		})
	})
})

var _ = ginkgo.Describe("TokenHash", func() {
	ginkgo.It("should be deterministic", func() {
		gomega.Expect(TokenHash("abc")).To(gomega.Equal(TokenHash("abc")))
	})

	ginkgo.It("should differ for different tokens", func() {
		gomega.Expect(TokenHash("abc")).ToNot(gomega.Equal(TokenHash("abd")))
	})

	ginkgo.It("should be a hex sha256 digest", func() {
		gomega.Expect(TokenHash("anything")).To(gomega.HaveLen(64))
	})
})
