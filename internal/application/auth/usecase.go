package auth

import (
	"crypto/subtle"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/pkg/jwt"
)

// RoleAdmin único rol emitido: la aplicación tiene una sola cuenta administradora.
const RoleAdmin = "admin"

// Config credenciales del administrador y parámetros del token.
type Config struct {
	AdminUser         string
	AdminPasswordHash string // bcrypt
	Secret            string
	ExpMinutes        int
	Issuer            string
}

// AuthUseCase login del administrador configurado por entorno y validación de tokens.
type AuthUseCase struct {
	cfg Config
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(cfg Config) *AuthUseCase {
	return &AuthUseCase{cfg: cfg}
}

// Enabled indica si la API debe protegerse: requiere secreto JWT y hash de contraseña.
func (uc *AuthUseCase) Enabled() bool {
	return uc.cfg.Secret != "" && uc.cfg.AdminPasswordHash != ""
}

// Login verifica usuario/contraseña (bcrypt) y emite un JWT. Credenciales erróneas → domain.ErrUnauthorized.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !uc.Enabled() {
		return nil, domain.ErrUnauthorized
	}
	// Ambas comprobaciones se ejecutan siempre: el tiempo de respuesta no revela cuál falló.
	userOK := subtle.ConstantTimeCompare([]byte(in.Username), []byte(uc.cfg.AdminUser)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(uc.cfg.AdminPasswordHash), []byte(in.Password))
	if !userOK || passErr != nil {
		return nil, domain.ErrUnauthorized
	}
	expiresAt := time.Now().Add(time.Duration(uc.cfg.ExpMinutes) * time.Minute)
	token, err := jwt.Generate(uc.cfg.Secret, in.Username, RoleAdmin, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{OK: true, Token: token, ExpiresAt: expiresAt.UTC()}, nil
}

// Verify valida el token y devuelve el usuario. Token inválido o expirado → domain.ErrUnauthorized.
func (uc *AuthUseCase) Verify(token string) (string, error) {
	userID, _, err := jwt.Parse(uc.cfg.Secret, token)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	return userID, nil
}

// TokenTTL duración de la sesión (también usada como Max-Age de la cookie).
func (uc *AuthUseCase) TokenTTL() time.Duration {
	return time.Duration(uc.cfg.ExpMinutes) * time.Minute
}
