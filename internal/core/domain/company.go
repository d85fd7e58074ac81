package domain

// Company is a payroll company. Read-only reference data for this engine.
type Company struct {
	CompanyID string `json:"id"`
	Name      string `json:"name"`
}

// Client is a client a company bills work against. Read-only reference data.
type Client struct {
	ClientID  string `json:"id"`
	CompanyID string `json:"companyId"`
	Name      string `json:"name"`
}
