package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"
	"time"

	"resort-backend/models"
	"resort-backend/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// AdminClaims identifies a staff member; Subject carries the admin id.
type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AdminService struct {
	repo     repositories.AdminRepository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewAdminService(repo repositories.AdminRepository, secret string, tokenTTL time.Duration) *AdminService {
	return &AdminService{repo: repo, secret: []byte(secret), tokenTTL: tokenTTL, now: time.Now}
}

type AdminInput struct {
	FullName     string   `json:"fullName"`
	Username     string   `json:"username"`
	Password     string   `json:"password"`
	ExternalID   *string  `json:"externalId"`
	IsSuperAdmin bool     `json:"isSuperAdmin"`
	Permissions  []string `json:"permissions"`
}

// Authenticate checks the credentials and issues a signed HS256 token. Unknown
// users and wrong passwords both return ErrUnauthorized.
func (s *AdminService) Authenticate(ctx context.Context, username, password string) (string, *models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, fmt.Errorf("%w: username and password required", ErrUnauthorized)
	}
	admin, err := s.repo.FindAdminByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err != nil {
		return "", nil, storeErr(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	now := s.now()
	claims := AdminClaims{
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(admin.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	log.Printf("✅ Admin %s logged in", admin.Username)
	return token, admin, nil
}

// ParseToken validates a bearer token and returns the admin id it was issued to.
func (s *AdminService) ParseToken(raw string) (uint, error) {
	var claims AdminClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: bad token subject", ErrUnauthorized)
	}
	return uint(id), nil
}

func (s *AdminService) GetAdmin(ctx context.Context, id uint) (*models.Admin, error) {
	a, err := readWithRetry(ctx, "get admin", func() (*models.Admin, error) {
		return s.repo.FindAdmin(ctx, id)
	})
	if err != nil {
		return nil, notFound(err, ErrNotFound, "admin %d", id)
	}
	return a, nil
}

// CheckPermission loads the admin and returns ErrForbidden unless it holds
// permission. Superadmins hold every permission.
func (s *AdminService) CheckPermission(ctx context.Context, adminID uint, permission string) (*models.Admin, error) {
	a, err := s.GetAdmin(ctx, adminID)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: admin %d no longer exists", ErrUnauthorized, adminID)
	}
	if err != nil {
		return nil, err
	}
	if !a.Can(permission) {
		return nil, fmt.Errorf("%w: %s lacks %q", ErrForbidden, a.Username, permission)
	}
	return a, nil
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	return readWithRetry(ctx, "list admins", func() ([]models.Admin, error) {
		return s.repo.ListAdmins(ctx)
	})
}

func (s *AdminService) CreateAdmin(ctx context.Context, in AdminInput) (*models.Admin, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	perms, err := normalizePermissions(in.Permissions)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	a := &models.Admin{
		FullName:     strings.TrimSpace(in.FullName),
		Username:     username,
		Password:     string(hash),
		IsSuperAdmin: in.IsSuperAdmin,
	}
	if in.ExternalID != nil && strings.TrimSpace(*in.ExternalID) != "" {
		ext := strings.TrimSpace(*in.ExternalID)
		a.ExternalID = &ext
	}
	for _, p := range perms {
		a.Permissions = append(a.Permissions, models.AdminPermission{Permission: p})
	}
	if err := s.repo.CreateAdmin(ctx, a); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: admin %q already exists", ErrInvalidInput, username)
		}
		return nil, fmt.Errorf("failed to create admin: %w", storeErr(err))
	}
	log.Printf("✅ Admin %d (%s) created, superadmin=%t permissions=%v", a.ID, a.Username, a.IsSuperAdmin, perms)
	return a, nil
}

// EnsureSuperAdmin creates the bootstrap superadmin when no admin with that
// username exists yet.
func (s *AdminService) EnsureSuperAdmin(ctx context.Context, username, password string) error {
	_, err := s.repo.FindAdminByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return storeErr(err)
	}
	_, err = s.CreateAdmin(ctx, AdminInput{
		FullName:     "Administrator",
		Username:     username,
		Password:     password,
		IsSuperAdmin: true,
	})
	return err
}

// DeleteAdmin removes another admin. Admins cannot delete themselves.
func (s *AdminService) DeleteAdmin(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return fmt.Errorf("%w: cannot delete your own account", ErrInvalidInput)
	}
	if err := s.repo.DeleteAdmin(ctx, id); err != nil {
		return notFound(err, ErrNotFound, "admin %d", id)
	}
	log.Printf("✅ Admin %d deleted by %d", id, actorID)
	return nil
}

func (s *AdminService) GrantPermission(ctx context.Context, adminID uint, permission string) (*models.Admin, error) {
	return s.changePermissions(ctx, adminID, func(current []string) []string {
		if slices.Contains(current, permission) {
			return current
		}
		return append(current, permission)
	}, permission)
}

func (s *AdminService) RevokePermission(ctx context.Context, adminID uint, permission string) (*models.Admin, error) {
	return s.changePermissions(ctx, adminID, func(current []string) []string {
		return slices.DeleteFunc(current, func(p string) bool { return p == permission })
	}, permission)
}

func (s *AdminService) changePermissions(ctx context.Context, adminID uint, edit func([]string) []string, permission string) (*models.Admin, error) {
	if !models.IsPermission(permission) {
		return nil, fmt.Errorf("%w: unknown permission %q", ErrInvalidInput, permission)
	}
	a, err := s.GetAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	current := make([]string, 0, len(a.Permissions))
	for _, p := range a.Permissions {
		current = append(current, p.Permission)
	}
	next := edit(current)
	if err := s.repo.SetPermissions(ctx, adminID, next); err != nil {
		return nil, fmt.Errorf("failed to update permissions of admin %d: %w", adminID, storeErr(err))
	}
	log.Printf("✅ Admin %d permissions now %v", adminID, next)
	return s.GetAdmin(ctx, adminID)
}

func normalizePermissions(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if !models.IsPermission(p) {
			return nil, fmt.Errorf("%w: unknown permission %q", ErrInvalidInput, p)
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out, nil
}
