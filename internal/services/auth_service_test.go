package services_test

import (
	"fmt"
	"testing"
	"time"

	"linkbio/internal/models"
	"linkbio/internal/repositories"
	"linkbio/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

const testJWTSecret = "test_jwt_secret"

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	// Successful registration
	mockRepo.On("GetByEmail", "ada@example.com").Return(nil, repositories.ErrUserNotFound).Once()
	mockRepo.On("GetByUsername", "ada").Return(nil, repositories.ErrUserNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.Register("ada@example.com", "ada", "pw123456")
	assert.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, "free", user.Plan)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123456")))
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("GetByEmail", "ada@example.com").Return(&models.User{ID: 1}, nil).Once()
	_, err = authService.Register("ada@example.com", "ada2", "pw123456")
	assert.ErrorIs(t, err, services.ErrUserExists)
	mockRepo.AssertExpectations(t)

	// Username already taken
	mockRepo.On("GetByEmail", "other@example.com").Return(nil, repositories.ErrUserNotFound).Once()
	mockRepo.On("GetByUsername", "ada").Return(&models.User{ID: 1}, nil).Once()
	_, err = authService.Register("other@example.com", "ada", "pw123456")
	assert.ErrorIs(t, err, services.ErrUserExists)
	mockRepo.AssertExpectations(t)

	// Storage failure during lookup surfaces as a wrapped error
	mockRepo.On("GetByEmail", "boom@example.com").Return(nil, fmt.Errorf("connection refused")).Once()
	_, err = authService.Register("boom@example.com", "boom", "pw123456")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrUserExists)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           42,
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: string(hashedPassword),
	}

	// Successful login
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, loggedIn, err := authService.Login("ada@example.com", "pw123456")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	// The decoded payload's userId must match the registered user's id
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, float64(user.ID), claims["userId"])
	assert.Contains(t, claims, "iat")
	assert.Contains(t, claims, "exp")
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, err = authService.Login("ada@example.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown email
	mockRepo.On("GetByEmail", "ghost@example.com").Return(nil, repositories.ErrUserNotFound).Once()
	_, _, err = authService.Login("ghost@example.com", "pw123456")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	// Valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": 42,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, float64(42), claims["userId"])

	// Garbage token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)

	// Token signed with a different secret
	foreignToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": 42,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	foreignTokenString, _ := foreignToken.SignedString([]byte("other_secret"))
	_, err = authService.ValidateToken(foreignTokenString)
	assert.Error(t, err)

	// Expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": 42,
		"exp":    time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
}
