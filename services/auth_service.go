package services

import (
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"car_configurator_server/structs/tables"
	"context"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var DefaultParams = &structs.ArgonParams{
	Memory:  64 * 1024, // 64 MB
	Time:    1,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *tables.User `json:"user"`
}

type AuthService struct {
	logger    *gecho.Logger
	cfg       *structs.Config
	users     UserStore
	blacklist TokenBlacklist
	mailer    Mailer
	params    *structs.ArgonParams
}

// NewAuthService wires authentication. blacklist and mailer may be nil.
func NewAuthService(logger *gecho.Logger, cfg *structs.Config, users UserStore, blacklist TokenBlacklist, mailer Mailer) *AuthService {
	return &AuthService{
		logger:    logger,
		cfg:       cfg,
		users:     users,
		blacklist: blacklist,
		mailer:    mailer,
		params:    DefaultParams,
	}
}

// WithArgonParams overrides the hashing cost, mainly so tests run fast.
func (as *AuthService) WithArgonParams(p *structs.ArgonParams) *AuthService {
	as.params = p
	return as
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a regular account and signs the user in. A taken email is ErrConflict.
func (as *AuthService) Register(ctx context.Context, req *structs.RegisterRequest) (*AuthResponse, error) {
	start := time.Now()
	email := normalizeEmail(req.Email)

	existing, err := as.users.GetByEmail(ctx, email)
	if err != nil && !lib.IsNotFound(err) {
		as.logger.Error("Database error during registration", gecho.Field("error", err))
		return nil, err
	}
	if existing != nil {
		as.logger.Warn("Registration failed - duplicate user", gecho.Field("email", email))
		return nil, lib.ErrConflict
	}

	passwordHash, err := lib.HashPassword(req.Password, as.params)
	if err != nil {
		as.logger.Error("Failed to hash password", gecho.Field("error", err))
		return nil, err
	}

	user, err := as.users.Create(ctx, &tables.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: passwordHash,
	})
	if err != nil {
		if lib.IsConflict(err) {
			as.logger.Warn("Registration failed - duplicate user", gecho.Field("email", email))
		} else {
			as.logger.Error("Database error during registration", gecho.Field("error", err))
		}
		return nil, err
	}

	as.logger.Debug("User registered successfully", gecho.Field("user_id", user.ID), gecho.Field("elapsed_time_ms", time.Since(start).Milliseconds()))

	if as.mailer != nil {
		go func(u tables.User) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := as.mailer.SendWelcome(ctx, &u); err != nil {
				as.logger.Error("Failed to send welcome email", gecho.Field("error", err), gecho.Field("user_id", u.ID))
			}
		}(*user)
	}

	return as.issue(user)
}

// Login checks credentials. Unknown emails and wrong passwords both return ErrInvalidCredentials.
func (as *AuthService) Login(ctx context.Context, req *structs.AuthRequest) (*AuthResponse, error) {
	user, err := as.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if !lib.IsNotFound(err) {
			as.logger.Error("Unexpected database error during login", gecho.Field("error", err))
			return nil, err
		}
		as.logger.Debug("User not found during login attempt", gecho.Field("identifier", req.Email))
		return nil, lib.ErrInvalidCredentials
	}

	valid, err := lib.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash", gecho.Field("error", err), gecho.Field("user_id", user.ID))
		return nil, err
	}
	if !valid {
		as.logger.Debug("Invalid password attempt", gecho.Field("user_id", user.ID))
		return nil, lib.ErrInvalidCredentials
	}

	as.logger.Debug("User logged in successfully", gecho.Field("user_id", user.ID))
	return as.issue(user)
}

func (as *AuthService) issue(user *tables.User) (*AuthResponse, error) {
	token, exp, err := as.GenerateAccessToken(user)
	if err != nil {
		as.logger.Error("Failed to sign access token", gecho.Field("error", err), gecho.Field("user_id", user.ID))
		return nil, err
	}
	user.PasswordHash = ""
	return &AuthResponse{Token: token, ExpiresAt: exp, User: user}, nil
}

// GenerateAccessToken generates a JWT access token for the given user
func (as *AuthService) GenerateAccessToken(user *tables.User) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(as.cfg.Auth.AccessTokenExpiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID.String(),
		"email":    user.Email,
		"is_admin": user.IsAdmin,
		"iss":      as.cfg.Auth.Issuer,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
		"jti":      uuid.New().String(),
	})

	signed, err := token.SignedString([]byte(as.cfg.Auth.AccessTokenSecret))
	return signed, exp, err
}

// VerifyAccessToken parses the token and rejects revoked ones. An unreachable
// blacklist is logged and the token is accepted.
func (as *AuthService) VerifyAccessToken(ctx context.Context, token string) (*structs.AuthClaims, error) {
	claims, err := lib.ParseToken(token, as.cfg.Auth.AccessTokenSecret)
	if err != nil {
		return nil, err
	}

	if as.blacklist != nil {
		revoked, err := as.blacklist.IsTokenBlacklisted(ctx, claims.Jti)
		if err != nil {
			as.logger.Warn("Failed to check token blacklist", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
		} else if revoked {
			return nil, lib.ErrInvalidToken
		}
	}

	return claims, nil
}

// Logout revokes the token until its natural expiry.
func (as *AuthService) Logout(ctx context.Context, claims *structs.AuthClaims) error {
	if as.blacklist == nil {
		return nil
	}
	if err := as.blacklist.BlacklistToken(ctx, claims.Jti, claims.Exp); err != nil {
		as.logger.Error("Failed to blacklist token", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
		return err
	}
	return nil
}

func (as *AuthService) Me(ctx context.Context, userID uuid.UUID) (*tables.User, error) {
	return as.users.GetByID(ctx, userID)
}

// DeleteSelf removes the caller's own account. The last administrator cannot leave.
func (as *AuthService) DeleteSelf(ctx context.Context, caller *structs.Caller) error {
	user, err := as.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return err
	}
	if err := guardLastAdmin(ctx, as.users, user); err != nil {
		return err
	}
	if err := as.users.Delete(ctx, user.ID); err != nil {
		return err
	}
	as.logger.Info("User deleted own account", gecho.Field("user_id", user.ID))
	return nil
}

// EnsureAdmin creates the bootstrap administrator from configuration when it does not exist yet.
func (as *AuthService) EnsureAdmin(ctx context.Context) error {
	email := normalizeEmail(as.cfg.Auth.AdminEmail)
	if email == "" || as.cfg.Auth.AdminPassword == "" {
		return nil
	}

	_, err := as.users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !lib.IsNotFound(err) {
		return err
	}

	hash, err := lib.HashPassword(as.cfg.Auth.AdminPassword, as.params)
	if err != nil {
		return err
	}
	admin, err := as.users.Create(ctx, &tables.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         as.cfg.Auth.AdminName,
		PasswordHash: hash,
		IsAdmin:      true,
	})
	if err != nil {
		return err
	}
	as.logger.Info("Bootstrap administrator created", gecho.Field("user_id", admin.ID), gecho.Field("email", email))
	return nil
}

// guardLastAdmin refuses to remove administrator rights from the only administrator left.
func guardLastAdmin(ctx context.Context, users UserStore, user *tables.User) error {
	if !user.IsAdmin {
		return nil
	}
	admins, err := users.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return lib.ErrLastAdmin
	}
	return nil
}
