package devauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Claims carried by issued tokens.
const (
	ClaimUserID = "sub"
	ClaimEmail  = "email"
	ClaimRole   = "role"
)

// AuthService implements registration, login and the demo bill seed.
type AuthService struct {
	users     UserRepository
	bills     BillRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
	newID     func() string
}

func NewAuthService(users UserRepository, bills BillRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		bills:     bills,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// RegisterInput describes a new account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, ErrInvalidCredentials
	}
	role := in.Role
	if role == "" {
		role = RoleCustomer
	}
	if role != RoleCustomer && role != RoleAdmin {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           s.newID(),
		Email:        email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Name:         strings.TrimSpace(in.FirstName + " " + in.LastName),
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if in.Phone != "" {
		phone := in.Phone
		user.Phone = &phone
	}
	return s.users.Create(ctx, user)
}

// Login verifies the password and returns a signed access token, an opaque
// refresh token and the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, string, *User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", "", nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", "", nil, err
	}
	return token, s.newID(), user, nil
}

// SeedDemo creates the demo account if it does not exist yet. The account has
// no balance so clients show their fallback.
func (s *AuthService) SeedDemo(ctx context.Context) error {
	_, err := s.Register(ctx, RegisterInput{
		Email:     DemoEmail,
		Password:  DemoPassword,
		FirstName: "Demo",
		LastName:  "User",
	})
	if errors.Is(err, ErrUserExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	return nil
}

// SeedBills creates the demo bills for userID once. Later calls return the
// existing bills with created=false.
func (s *AuthService) SeedBills(ctx context.Context, userID string) ([]Bill, bool, error) {
	due := s.now().AddDate(0, 0, 14).Format("2006-01-02")
	bills := []Bill{
		{ID: s.newID(), Biller: "Meralco", Amount: 2450.75, Currency: "PHP", DueDate: due},
		{ID: s.newID(), Biller: "Manila Water", Amount: 615.20, Currency: "PHP", DueDate: due},
		{ID: s.newID(), Biller: "PLDT Home", Amount: 1699.00, Currency: "PHP", DueDate: due},
	}

	created, err := s.bills.SeedOnce(ctx, userID, bills)
	if err != nil {
		return nil, false, fmt.Errorf("seed bills: %w", err)
	}
	stored, err := s.bills.List(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("list bills: %w", err)
	}
	return stored, created, nil
}

func (s *AuthService) generateToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		ClaimUserID: user.ID,
		ClaimEmail:  user.Email,
		ClaimRole:   user.Role,
		"iat":       s.now().Unix(),
		"exp":       s.now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
