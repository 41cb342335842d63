package dto

import "time"

// CreateCompanyRequest registers a new tenant.
type CreateCompanyRequest struct {
	Name         string   `json:"name"`
	Code         string   `json:"code"`
	Domains      []string `json:"domains"`
	OrderPrefix  string   `json:"order_prefix"`
	PostalCode   string   `json:"postal_code"`
	Prefecture   string   `json:"prefecture"`
	City         string   `json:"city"`
	Address1     string   `json:"address1"`
	Address2     string   `json:"address2"`
	PaymentTerms string   `json:"payment_terms"`
}

// UpdateCompanyRequest mutates a tenant. Nil fields are left untouched.
type UpdateCompanyRequest struct {
	Name         *string   `json:"name"`
	Domains      *[]string `json:"domains"`
	OrderPrefix  *string   `json:"order_prefix"`
	PostalCode   *string   `json:"postal_code"`
	Prefecture   *string   `json:"prefecture"`
	City         *string   `json:"city"`
	Address1     *string   `json:"address1"`
	Address2     *string   `json:"address2"`
	PaymentTerms *string   `json:"payment_terms"`
	IsActive     *bool     `json:"is_active"`
}

// CompanyResponse is the public tenant view. OrderSeq is internal and
// deliberately not exposed.
type CompanyResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Domains      []string  `json:"domains"`
	OrderPrefix  string    `json:"order_prefix"`
	PostalCode   string    `json:"postal_code,omitempty"`
	Prefecture   string    `json:"prefecture,omitempty"`
	City         string    `json:"city,omitempty"`
	Address1     string    `json:"address1,omitempty"`
	Address2     string    `json:"address2,omitempty"`
	PaymentTerms string    `json:"payment_terms,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateManufacturerRequest registers a platform manufacturer.
type CreateManufacturerRequest struct {
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	Domains      []string `json:"domains"`
	PaymentTerms string   `json:"payment_terms"`
}

// UpdateManufacturerRequest mutates a manufacturer.
type UpdateManufacturerRequest struct {
	Name         *string   `json:"name"`
	Domains      *[]string `json:"domains"`
	PaymentTerms *string   `json:"payment_terms"`
	IsActive     *bool     `json:"is_active"`
}

// ManufacturerResponse is the public manufacturer view.
type ManufacturerResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Domains      []string  `json:"domains"`
	PaymentTerms string    `json:"payment_terms,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
