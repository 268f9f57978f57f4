package dto

type DocumentMarkerRequest struct {
	Name string `json:"name" binding:"required"`
}

type PropertyRequest struct {
	Name          string                  `json:"name" binding:"required"`
	Type          string                  `json:"type" binding:"required,oneof=Residential Commercial Land Industrial Agricultural Other"`
	Address       string                  `json:"address" binding:"required"`
	City          string                  `json:"city" binding:"required"`
	State         string                  `json:"state"`
	PostalCode    string                  `json:"postal_code"`
	PurchaseDate  string                  `json:"purchase_date" binding:"required,datetime=2006-01-02"`
	PurchaseValue float64                 `json:"purchase_value" binding:"required,gte=0"`
	CurrentValue  float64                 `json:"current_value" binding:"gte=0"`
	MarketValue   float64                 `json:"market_value" binding:"gte=0"`
	LandArea      float64                 `json:"land_area" binding:"gte=0"`
	BuiltArea     float64                 `json:"built_area" binding:"gte=0"`
	LoanStatus    string                  `json:"loan_status" binding:"omitempty,oneof='No Loan' 'Active' 'Paid Off'"`
	LoanAmount    float64                 `json:"loan_amount" binding:"gte=0"`
	LoanProvider  string                  `json:"loan_provider"`
	Documents     []DocumentMarkerRequest `json:"documents"`
	Notes         string                  `json:"notes"`
}

type UploadDocumentRequest struct {
	Name string `form:"name" binding:"required"`
}
