// Package user holds the operator's own profile and document list.
package user

import "github.com/shopspring/decimal"

// File is a document uploaded to the operator's profile.
type File struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Size       string `json:"size"`
	UploadDate string `json:"uploadDate"`
}

// Profile is the operator's identity and personal goal settings.
type Profile struct {
	Name                string          `json:"name"`
	Role                string          `json:"role"`
	Avatar              string          `json:"avatar"`
	Email               string          `json:"email"`
	Files               []File          `json:"files"`
	PersonalPaymentGoal decimal.Decimal `json:"personalPaymentGoal"`
}

// Default returns the first-run profile.
func Default() Profile {
	return Profile{
		Name:                "Operador",
		Role:                "Administrador de Ventas",
		Email:               "operador@terranova.mx",
		PersonalPaymentGoal: decimal.NewFromInt(50000),
	}
}
