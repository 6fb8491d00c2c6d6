package entity

import "time"

// Roles válidos para User.
const (
	RoleUser    = "USER"
	RoleCompany = "COMPANY"
	RoleAdmin   = "ADMIN"
)

// User ancla de identidad. Puede originarse por credenciales o por un proveedor OAuth;
// en el segundo caso PasswordHash es un hash aleatorio que nunca se usa para autenticar.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // USER, COMPANY, ADMIN
	FirstName    *string
	LastName     *string
	FullName     *string
	CompanyName  *string // caché desnormalizada del nombre de su empresa
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PromoteToCompany sube el rol USER a COMPANY y cachea el nombre de la empresa.
// ADMIN conserva su rol.
func (u *User) PromoteToCompany(companyName string, now time.Time) {
	if u.Role == RoleUser || u.Role == "" {
		u.Role = RoleCompany
	}
	name := companyName
	u.CompanyName = &name
	u.UpdatedAt = now
}

// DisplayName nombre para mostrar: empresa, nombre completo, nombre o email.
func (u *User) DisplayName() string {
	for _, s := range []*string{u.CompanyName, u.FullName, u.FirstName} {
		if s != nil && *s != "" {
			return *s
		}
	}
	return u.Email
}
