package dto

type InsuranceRequest struct {
	PolicyNumber     string  `json:"policy_number" binding:"required"`
	Provider         string  `json:"provider" binding:"required"`
	PropertyID       string  `json:"property_id" binding:"required,uuid"`
	Type             string  `json:"type" binding:"required,oneof=property liability fire flood earthquake other"`
	CoverageAmount   float64 `json:"coverage_amount" binding:"required,gte=0"`
	Premium          float64 `json:"premium" binding:"required,gte=0"`
	PremiumFrequency string  `json:"premium_frequency" binding:"required,oneof=Monthly Quarterly Semi-Annual Annual"`
	StartDate        string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate          string  `json:"end_date" binding:"required,datetime=2006-01-02"`
	NextPaymentDate  string  `json:"next_payment_date" binding:"omitempty,datetime=2006-01-02"`
	CoverageDetails  string  `json:"coverage_details"`
}
