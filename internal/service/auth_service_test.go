package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tasktrack/internal/auth"
	apperrors "tasktrack/internal/errors"
	"tasktrack/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByName(ctx context.Context, name string) (*model.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret", "HS256", 0, 0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		userName      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			email:    "test@example.com",
			userName: "testuser",
			password: "testpass",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "email already registered",
			email:    "taken@example.com",
			userName: "freshname",
			password: "testpass",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:     "lookup failure after conflict is not misreported",
			email:    "test@example.com",
			userName: "testuser",
			password: "testpass",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrInvalidDB)
			},
			expectedError: gorm.ErrInvalidDB,
		},
		{
			name:     "name already registered",
			email:    "fresh@example.com",
			userName: "takenname",
			password: "testpass",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
				m.On("FindByEmail", mock.Anything, "fresh@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, newTestJWTService())
			user, err := service.Register(context.Background(), tt.email, tt.userName, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.userName, user.Name)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("testpass"), bcryptCost)

	tests := []struct {
		name          string
		userName      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			userName: "testuser",
			password: "testpass",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByName", mock.Anything, "testuser").Return(&model.User{
					ID:           1,
					Name:         "testuser",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			userName: "testuser",
			password: "wrongpassword",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByName", mock.Anything, "testuser").Return(&model.User{
					ID:           1,
					Name:         "testuser",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown name yields the same error as a wrong password",
			userName: "ghost",
			password: "testpass",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByName", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := newTestJWTService()
			service := NewAuthService(mockRepo, jwtService)

			accessToken, refreshToken, err := service.Login(context.Background(), tt.userName, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)

				claims, err := jwtService.ValidateToken(accessToken)
				assert.NoError(t, err)
				assert.Equal(t, tt.userName, claims.Subject)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	jwtService := newTestJWTService()
	refreshToken, err := jwtService.GenerateRefreshToken("testuser")
	assert.NoError(t, err)

	tests := []struct {
		name          string
		token         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful refresh",
			token: refreshToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByName", mock.Anything, "testuser").Return(&model.User{ID: 1, Name: "testuser"}, nil)
			},
			expectedError: nil,
		},
		{
			name:          "malformed token",
			token:         "garbage",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidToken,
		},
		{
			name:  "subject no longer exists",
			token: refreshToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByName", mock.Anything, "testuser").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, jwtService)
			accessToken, err := service.Refresh(context.Background(), tt.token)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)

				claims, err := jwtService.ValidateToken(accessToken)
				assert.NoError(t, err)
				assert.Equal(t, "testuser", claims.Subject)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
