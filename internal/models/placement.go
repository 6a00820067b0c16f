package models

// Placement records a hire reported by the placement office. It is immutable.
type Placement struct {
	ID          int64  `json:"id"`
	StudentName string `json:"studentName"`
	CompanyName string `json:"companyName"`
	Position    string `json:"position"`
	Salary      string `json:"salary"`
	Date        string `json:"date"`
}

type PlacementInput struct {
	StudentName string `json:"studentName" validate:"required"`
	CompanyName string `json:"companyName" validate:"required"`
	Position    string `json:"position" validate:"required"`
	Salary      string `json:"salary"`
}
